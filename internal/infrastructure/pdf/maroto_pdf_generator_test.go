package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/syncdesk-api/internal/application/ports"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", formatMoney(decimal.Zero))
	assert.Equal(t, "$999.90", formatMoney(decimal.RequireFromString("999.9")))
	assert.Equal(t, "$25,000.00", formatMoney(decimal.NewFromInt(25000)))
	assert.Equal(t, "$1,234,567.89", formatMoney(decimal.RequireFromString("1234567.891")))
	assert.Equal(t, "-$1,200.50", formatMoney(decimal.RequireFromString("-1200.5")))
}

func TestSplitEvery(t *testing.T) {
	assert.Equal(t, []string{"abc", "def", "g"}, splitEvery("abcdefg", 3))
	assert.Equal(t, []string{"ñañ", "a"}, splitEvery("ñaña", 3))
	assert.Nil(t, splitEvery("", 3))
}

func TestLineDescription(t *testing.T) {
	title, detail := lineDescription(ports.InvoiceDocument{})
	assert.Equal(t, "Sync licensing services", title)
	assert.Empty(t, detail)

	title, detail = lineDescription(ports.InvoiceDocument{
		Deal: &entity.Deal{ProjectName: "Car Ad", ProjectType: "Commercial", Territory: "Worldwide", Exclusivity: true},
		Song: &entity.Song{Title: "Night Drive", Artist: "The Wires"},
	})
	assert.Equal(t, "Sync license: Car Ad", title)
	assert.Equal(t, `"Night Drive" by The Wires  ·  Commercial  ·  Territory: Worldwide  ·  Exclusive`, detail)
}

func TestGenerateInvoicePDF(t *testing.T) {
	due := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	inv := &entity.Invoice{
		InvoiceNumber: "INV-0042",
		IssueDate:     time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
		DueDate:       &due,
		Subtotal:      decimal.NewFromInt(4500),
		TaxRate:       decimal.NewFromInt(20),
		Status:        entity.InvoiceSent,
		Notes:         "Payable by bank transfer.",
	}
	inv.Recalculate()

	out, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), ports.InvoiceDocument{
		IssuerName: "Blue Room Music",
		Invoice:    inv,
		Contact:    &entity.Contact{Name: "Sam Supervisor", Company: "Agency"},
		Deal:       &entity.Deal{ProjectName: "Car Ad"},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateInvoicePDF_RequiresContact(t *testing.T) {
	_, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), ports.InvoiceDocument{Invoice: &entity.Invoice{}})
	assert.Error(t, err)
}
