package reports

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/syncdesk-api/internal/application/ports"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

var fixedNow = time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC)

// ── Fakes ────────────────────────────────────────────────────────────────────

type captureCodec struct {
	ports.SpreadsheetCodec
	tables []ports.Table
}

func (c *captureCodec) WriteXLSX(w io.Writer, tables []ports.Table) error {
	c.tables = tables
	_, err := w.Write([]byte("xlsx"))
	return err
}

type songsRepo struct {
	repository.SongRepository
	items []*entity.Song
}

func (r songsRepo) ListAll(context.Context, string) ([]*entity.Song, error) { return r.items, nil }

func (r songsRepo) GetByID(_ context.Context, _, id string) (*entity.Song, error) {
	for _, s := range r.items {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

type contactsRepo struct {
	repository.ContactRepository
	items []*entity.Contact
}

func (r contactsRepo) ListAll(context.Context, string) ([]*entity.Contact, error) { return r.items, nil }

func (r contactsRepo) GetByID(_ context.Context, _, id string) (*entity.Contact, error) {
	for _, c := range r.items {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

type dealsRepo struct {
	repository.DealRepository
	items []*entity.Deal
}

func (r dealsRepo) ListAll(context.Context, string) ([]*entity.Deal, error) { return r.items, nil }

func (r dealsRepo) GetByID(_ context.Context, _, id string) (*entity.Deal, error) {
	for _, d := range r.items {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

type paymentsRepo struct {
	repository.PaymentRepository
	items []*entity.Payment
}

func (r paymentsRepo) ListAll(context.Context, string) ([]*entity.Payment, error) { return r.items, nil }

type invoicesRepo struct {
	repository.InvoiceRepository
	items map[string]*entity.Invoice
}

func (r invoicesRepo) GetByID(_ context.Context, _, id string) (*entity.Invoice, error) {
	return r.items[id], nil
}

type captureRenderer struct {
	doc ports.InvoiceDocument
}

func (c *captureRenderer) GenerateInvoicePDF(_ context.Context, doc ports.InvoiceDocument) ([]byte, error) {
	c.doc = doc
	return []byte("%PDF"), nil
}

func (c *captureRenderer) BuildInvoiceXML(doc ports.InvoiceDocument) ([]byte, string, error) {
	c.doc = doc
	return []byte("<Invoice/>"), "digest==", nil
}

// ── Fixtures ─────────────────────────────────────────────────────────────────

func fixtures() (songsRepo, contactsRepo, dealsRepo, paymentsRepo) {
	paid := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	songs := songsRepo{items: []*entity.Song{{ID: "s1", Title: "Neon Rain", Artist: "The Wires"}}}
	contacts := contactsRepo{items: []*entity.Contact{{ID: "c1", Name: "Ana Ruiz", Company: "Agency"}}}
	deals := dealsRepo{items: []*entity.Deal{{
		ID: "d1", ProjectName: "Summer Campaign", SongID: "s1", ContactID: "c1",
		Status: entity.StatusOutForSignature, Exclusivity: true, CreatedAt: fixedNow,
		TotalFee: decimal.NewNullDecimal(decimal.NewFromInt(4500)),
	}}}
	payments := paymentsRepo{items: []*entity.Payment{
		{DealID: "d1", Amount: decimal.NewFromInt(1000), Status: entity.PaymentPaid, PaidDate: &paid},
		{DealID: "d1", Amount: decimal.NewFromInt(3500), Status: entity.PaymentPending, DueDate: &due},
	}}
	return songs, contacts, deals, payments
}

func newExport() (*ExportUseCase, *captureCodec) {
	codec := &captureCodec{}
	songs, contacts, deals, payments := fixtures()
	uc := NewExportUseCase(codec, songs, contacts, deals, payments)
	uc.now = func() time.Time { return fixedNow }
	return uc, codec
}

// ── Export ───────────────────────────────────────────────────────────────────

func TestExport_Deals(t *testing.T) {
	uc, codec := newExport()
	var buf bytes.Buffer

	name, err := uc.Export(context.Background(), "user-1", "Deals", &buf)
	require.NoError(t, err)
	assert.Equal(t, "deals_20260515.xlsx", name)
	assert.Equal(t, "xlsx", buf.String())

	require.Len(t, codec.tables, 1)
	tbl := codec.tables[0]
	require.Len(t, tbl.Rows, 1)
	row := tbl.Rows[0]
	assert.Len(t, row, len(tbl.Headers))
	assert.Equal(t, "Neon Rain", row[2])
	assert.Equal(t, "Ana Ruiz", row[4])
	assert.Equal(t, "Out For Signature", row[6])
	assert.Equal(t, "Yes", row[8])
	assert.Equal(t, 4500.0, row[9])
	assert.Equal(t, "", row[10])
}

func TestExport_PaymentsUseEffectiveStatus(t *testing.T) {
	uc, codec := newExport()
	_, err := uc.Export(context.Background(), "user-1", "payments", io.Discard)
	require.NoError(t, err)

	rows := codec.tables[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "Summer Campaign", rows[0][0])
	assert.Equal(t, "paid", rows[0][2])
	assert.Equal(t, "overdue", rows[1][2])
}

func TestExport_Revenue(t *testing.T) {
	uc, codec := newExport()
	_, err := uc.Export(context.Background(), "user-1", "revenue", io.Discard)
	require.NoError(t, err)

	rows := codec.tables[0].Rows
	require.Len(t, rows, 6)
	assert.Equal(t, []interface{}{"2026-04", 1000.0}, rows[3])
	assert.Equal(t, []interface{}{"Year to date", 1000.0}, rows[5])
}

func TestExport_UnknownType(t *testing.T) {
	uc, _ := newExport()
	_, err := uc.Export(context.Background(), "user-1", "songs", io.Discard)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "type", ve.Fields[0].Field)
}

// ── Invoice documents ────────────────────────────────────────────────────────

func TestInvoiceDocuments(t *testing.T) {
	songs, contacts, deals, _ := fixtures()
	dealID := "d1"
	invoices := invoicesRepo{items: map[string]*entity.Invoice{
		"i1": {ID: "i1", InvoiceNumber: "INV 2026/001", ContactID: "c1", DealID: &dealID},
		"i2": {ID: "i2", InvoiceNumber: "INV-2", ContactID: "ghost"},
	}}
	r := &captureRenderer{}
	uc := NewInvoiceDocumentUseCase(invoices, contacts, deals, songs, r, r, "SyncDesk")

	b, name, err := uc.DownloadPDF(context.Background(), "user-1", "i1")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b))
	assert.Equal(t, "invoice_INV_2026_001.pdf", name)
	assert.Equal(t, "SyncDesk", r.doc.IssuerName)
	require.NotNil(t, r.doc.Song)
	assert.Equal(t, "Neon Rain", r.doc.Song.Title)

	x, err := uc.DownloadXML(context.Background(), "user-1", "i1")
	require.NoError(t, err)
	assert.Equal(t, "digest==", x.Digest)
	assert.Equal(t, "invoice_INV_2026_001.xml", x.Filename)

	_, _, err = uc.DownloadPDF(context.Background(), "user-1", "missing")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Invoice", nf.Entity)

	_, err = uc.DownloadXML(context.Background(), "user-1", "i2")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Contact", nf.Entity)
}
