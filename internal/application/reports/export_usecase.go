// Package reports exporta datos del usuario a hojas de cálculo y genera documentos de factura.
package reports

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jhoicas/syncdesk-api/internal/application/analytics"
	"github.com/jhoicas/syncdesk-api/internal/application/ports"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

// Tipos de exportación.
const (
	ExportDeals    = "deals"
	ExportPayments = "payments"
	ExportRevenue  = "revenue"
)

const dateLayout = "2006-01-02"

// ExportUseCase arma las tablas y las escribe en formato xlsx.
type ExportUseCase struct {
	codec    ports.SpreadsheetCodec
	songs    repository.SongRepository
	contacts repository.ContactRepository
	deals    repository.DealRepository
	payments repository.PaymentRepository
	now      func() time.Time
}

func NewExportUseCase(
	codec ports.SpreadsheetCodec,
	songs repository.SongRepository,
	contacts repository.ContactRepository,
	deals repository.DealRepository,
	payments repository.PaymentRepository,
) *ExportUseCase {
	return &ExportUseCase{codec: codec, songs: songs, contacts: contacts, deals: deals, payments: payments, now: time.Now}
}

// Export escribe el libro del tipo pedido en w y devuelve el nombre de archivo sugerido.
func (uc *ExportUseCase) Export(ctx context.Context, userID, kind string, w io.Writer) (string, error) {
	var (
		table ports.Table
		err   error
	)
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case ExportDeals:
		table, err = uc.dealsTable(ctx, userID)
	case ExportPayments:
		table, err = uc.paymentsTable(ctx, userID)
	case ExportRevenue:
		table, err = uc.revenueTable(ctx, userID)
	default:
		return "", domain.NewValidationError("Validation failed", domain.FieldError{
			Field: "type", Message: "must be one of: deals payments revenue",
		})
	}
	if err != nil {
		return "", err
	}
	if err := uc.codec.WriteXLSX(w, []ports.Table{table}); err != nil {
		return "", fmt.Errorf("exportar %s: %w", table.Name, err)
	}
	return fmt.Sprintf("%s_%s.xlsx", strings.ToLower(table.Name), uc.now().Format("20060102")), nil
}

func (uc *ExportUseCase) dealsTable(ctx context.Context, userID string) (ports.Table, error) {
	deals, err := uc.deals.ListAll(ctx, userID)
	if err != nil {
		return ports.Table{}, err
	}
	songs, err := uc.songs.ListAll(ctx, userID)
	if err != nil {
		return ports.Table{}, err
	}
	contacts, err := uc.contacts.ListAll(ctx, userID)
	if err != nil {
		return ports.Table{}, err
	}
	songByID := make(map[string]*entity.Song, len(songs))
	for _, s := range songs {
		songByID[s.ID] = s
	}
	contactByID := make(map[string]*entity.Contact, len(contacts))
	for _, c := range contacts {
		contactByID[c.ID] = c
	}

	t := ports.Table{
		Name: "Deals",
		Headers: []string{
			"Project", "Project Type", "Song", "Artist", "Contact", "Company", "Status",
			"Territory", "Exclusive", "Total Fee", "Publishing Fee", "Recording Fee", "Air Date", "Created",
		},
	}
	for _, d := range deals {
		var song, artist, contact, company string
		if s := songByID[d.SongID]; s != nil {
			song, artist = s.Title, s.Artist
		}
		if c := contactByID[d.ContactID]; c != nil {
			contact, company = c.Name, c.Company
		}
		t.Rows = append(t.Rows, []interface{}{
			d.ProjectName, d.ProjectType, song, artist, contact, company, d.Status.Label(),
			d.Territory, yesNo(d.Exclusivity), money(d.TotalFee.Valid, d.TotalFee.Decimal.InexactFloat64()),
			money(d.PublishingFee.Valid, d.PublishingFee.Decimal.InexactFloat64()),
			money(d.RecordingFee.Valid, d.RecordingFee.Decimal.InexactFloat64()),
			date(d.AirDate), d.CreatedAt.Format(dateLayout),
		})
	}
	return t, nil
}

func (uc *ExportUseCase) paymentsTable(ctx context.Context, userID string) (ports.Table, error) {
	payments, err := uc.payments.ListAll(ctx, userID)
	if err != nil {
		return ports.Table{}, err
	}
	deals, err := uc.deals.ListAll(ctx, userID)
	if err != nil {
		return ports.Table{}, err
	}
	project := make(map[string]string, len(deals))
	for _, d := range deals {
		project[d.ID] = d.ProjectName
	}
	at := uc.now()
	t := ports.Table{
		Name:    "Payments",
		Headers: []string{"Project", "Amount", "Status", "Due Date", "Paid Date", "Method", "Notes"},
	}
	for _, p := range payments {
		t.Rows = append(t.Rows, []interface{}{
			project[p.DealID], p.Amount.InexactFloat64(), string(p.EffectiveStatus(at)),
			date(p.DueDate), date(p.PaidDate), p.Method, p.Notes,
		})
	}
	return t, nil
}

func (uc *ExportUseCase) revenueTable(ctx context.Context, userID string) (ports.Table, error) {
	payments, err := uc.payments.ListAll(ctx, userID)
	if err != nil {
		return ports.Table{}, err
	}
	rev := analytics.RevenueAnalytics(payments, uc.now())
	t := ports.Table{Name: "Revenue", Headers: []string{"Month", "Total"}}
	for _, m := range rev.Monthly {
		t.Rows = append(t.Rows, []interface{}{m.Month, m.Total.InexactFloat64()})
	}
	t.Rows = append(t.Rows, []interface{}{"Year to date", rev.CurrentYear.InexactFloat64()})
	return t, nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// money celda vacía para importes no informados.
func money(valid bool, v float64) interface{} {
	if !valid {
		return ""
	}
	return v
}

func date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
