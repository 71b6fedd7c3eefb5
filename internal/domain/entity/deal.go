package entity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Deal negociación de licencia de una canción con un contacto.
// SongID y ContactID son obligatorios. El historial de etapas se reconstruye desde
// las fechas por etapa; no existe un log de transiciones.
type Deal struct {
	ID            string
	UserID        string
	ProjectName   string
	ProjectType   string
	SongID        string
	ContactID     string
	Status        DealStatus
	Territory     string
	Exclusivity   bool
	Description   string
	Term          string
	Usage         string
	TotalFee      decimal.NullDecimal
	PublishingFee decimal.NullDecimal
	RecordingFee  decimal.NullDecimal
	BallparkFee   *BallparkBracket
	Notes         string
	AirDate       *time.Time

	PendingApprovalDate *time.Time
	QuotedDate          *time.Time
	UseConfirmedDate    *time.Time
	BeingDraftedDate    *time.Time
	OutForSignatureDate *time.Time
	PaymentReceivedDate *time.Time
	CompletedDate       *time.Time
	NotUsedDate         *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StageEntry una etapa alcanzada y cuándo.
type StageEntry struct {
	Status    DealStatus
	EnteredAt time.Time
}

// stageDate puntero al campo de fecha de cada etapa; new_request usa CreatedAt.
func (d *Deal) stageDate(s DealStatus) **time.Time {
	switch s {
	case StatusPendingApproval:
		return &d.PendingApprovalDate
	case StatusQuoted:
		return &d.QuotedDate
	case StatusUseConfirmed:
		return &d.UseConfirmedDate
	case StatusBeingDrafted:
		return &d.BeingDraftedDate
	case StatusOutForSignature:
		return &d.OutForSignatureDate
	case StatusPaymentReceived:
		return &d.PaymentReceivedDate
	case StatusCompleted:
		return &d.CompletedDate
	case StatusNotUsed:
		return &d.NotUsedDate
	}
	return nil
}

// StageDate fecha en que el deal entró en la etapa (nil si nunca).
func (d *Deal) StageDate(s DealStatus) *time.Time {
	if s == StatusNewRequest {
		t := d.CreatedAt
		return &t
	}
	if p := d.stageDate(s); p != nil {
		return *p
	}
	return nil
}

// SetStatus cambia la etapa y registra su fecha si todavía no tenía una.
func (d *Deal) SetStatus(s DealStatus, at time.Time) {
	d.Status = s
	if p := d.stageDate(s); p != nil && *p == nil {
		t := at
		*p = &t
	}
}

// StageHistory historial ordenado por fecha (empates en orden de pipeline).
func (d *Deal) StageHistory() []StageEntry {
	var out []StageEntry
	for _, s := range PipelineStatuses {
		if t := d.StageDate(s); t != nil && !t.IsZero() {
			out = append(out, StageEntry{Status: s, EnteredAt: *t})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EnteredAt.Before(out[j].EnteredAt) })
	return out
}

// CurrentStageEnteredAt fecha de entrada en la etapa actual; CreatedAt si no hay registro.
func (d *Deal) CurrentStageEnteredAt() time.Time {
	if t := d.StageDate(d.Status); t != nil {
		return *t
	}
	return d.CreatedAt
}

// FeeValue TotalFee o cero.
func (d *Deal) FeeValue() decimal.Decimal {
	if d.TotalFee.Valid {
		return d.TotalFee.Decimal
	}
	return decimal.Zero
}
