package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

func TestNormalizeDealStatus(t *testing.T) {
	cases := map[string]entity.DealStatus{
		"new_request":          entity.StatusNewRequest,
		"new request":          entity.StatusNewRequest,
		"New Request":          entity.StatusNewRequest,
		"  OUT-FOR-signature ": entity.StatusOutForSignature,
		"not used":             entity.StatusNotUsed,
	}
	for in, want := range cases {
		got, ok := entity.NormalizeDealStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := entity.NormalizeDealStatus("archived")
	assert.False(t, ok)
	_, ok = entity.NormalizeDealStatus("")
	assert.False(t, ok)
}

func TestDealStatusLabel(t *testing.T) {
	assert.Equal(t, "New Request", entity.StatusLabel("new_request"))
	assert.Equal(t, "New Request", entity.StatusLabel("new request"))
	assert.Equal(t, "Out For Signature", entity.StatusOutForSignature.Label())
	assert.Equal(t, "Payment Received", entity.StatusLabel("PAYMENT_RECEIVED"))
}

func TestDeal_SetStatusKeepsFirstStageDate(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := &entity.Deal{Status: entity.StatusNewRequest, CreatedAt: created}

	first := created.AddDate(0, 0, 3)
	d.SetStatus(entity.StatusQuoted, first)
	d.SetStatus(entity.StatusPendingApproval, first.AddDate(0, 0, 1))
	d.SetStatus(entity.StatusQuoted, first.AddDate(0, 0, 5))

	assert.Equal(t, entity.StatusQuoted, d.Status)
	assert.Equal(t, first, *d.QuotedDate)
	assert.Equal(t, first, d.CurrentStageEnteredAt())
}

func TestDeal_StageHistoryOrderedByDate(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	quoted := created.AddDate(0, 0, 2)
	confirmed := created.AddDate(0, 0, 9)
	d := &entity.Deal{CreatedAt: created, QuotedDate: &quoted, UseConfirmedDate: &confirmed}

	h := d.StageHistory()
	assert.Equal(t, []entity.StageEntry{
		{Status: entity.StatusNewRequest, EnteredAt: created},
		{Status: entity.StatusQuoted, EnteredAt: quoted},
		{Status: entity.StatusUseConfirmed, EnteredAt: confirmed},
	}, h)
}

func TestPayment_EffectiveStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	p := &entity.Payment{Status: entity.PaymentPending, DueDate: &past}
	assert.Equal(t, entity.PaymentOverdue, p.EffectiveStatus(now))

	p.Status = entity.PaymentPaid
	assert.Equal(t, entity.PaymentPaid, p.EffectiveStatus(now))
}

func TestInvoice_Recalculate(t *testing.T) {
	inv := &entity.Invoice{}
	inv.Subtotal = mustDec("1000")
	inv.TaxRate = mustDec("20")
	inv.Recalculate()
	assert.Equal(t, "200", inv.TaxAmount.String())
	assert.Equal(t, "1200", inv.Total.String())
}
