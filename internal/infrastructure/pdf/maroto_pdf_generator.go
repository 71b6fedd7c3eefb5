// Package pdf genera la representación PDF de las facturas de licencias.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor             │  INVOICE N° + fechas + estado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO: contacto + compañía + email                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción (proyecto / canción / territorio) | Fee  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Tax (x%) / TOTAL DUE                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/syncdesk-api/internal/application/ports"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

var _ ports.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

const dateLayout = "Jan 2, 2006"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 44, Green: 62, Blue: 80}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, doc ports.InvoiceDocument) ([]byte, error) {
	if doc.Invoice == nil || doc.Contact == nil {
		return nil, fmt.Errorf("pdf: factura y contacto son obligatorios")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+doc.Invoice.InvoiceNumber, true).
		WithAuthor(nonEmpty(doc.IssuerName, "SyncDesk"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billToRow(doc.Contact))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(lineItemRow(doc))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc.Invoice))

	if notes := strings.TrimSpace(doc.Invoice.Notes); notes != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(notesRows(notes)...)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor (izq) y número, fechas y estado (der).
func headerRow(doc ports.InvoiceDocument) core.Row {
	inv := doc.Invoice
	dates := "Issued: " + inv.IssueDate.Format(dateLayout)
	if inv.DueDate != nil {
		dates += "   Due: " + inv.DueDate.Format(dateLayout)
	}
	return row.New(22).Add(
		col.New(7).Add(
			text.New(nonEmpty(doc.IssuerName, "SyncDesk"), props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Music licensing", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New(dates, props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
			text.New("Status: "+statusLabel(inv.Status), props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

// billToRow: datos del contacto facturado.
func billToRow(c *entity.Contact) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("%s   |   Email: %s   |   Tel: %s",
				nonEmpty(c.Company, "-"),
				nonEmpty(c.Email, "-"),
				nonEmpty(c.Phone, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 9, align.Left),
		h("Amount", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// lineItemRow: una sola línea con el proyecto licenciado (o genérica si no hay deal).
func lineItemRow(doc ports.InvoiceDocument) core.Row {
	title, detail := lineDescription(doc)
	return row.New(14).Add(
		col.New(9).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Top: 2, Left: 1}),
			text.New(detail, props.Text{Size: 8, Top: 7, Left: 1, Color: colorGray}),
		),
		col.New(3).Add(text.New(
			formatMoney(doc.Invoice.Subtotal),
			props.Text{Size: 9, Align: align.Right, Top: 2, Right: 1},
		)),
	)
}

func lineDescription(doc ports.InvoiceDocument) (string, string) {
	if doc.Deal == nil {
		return "Sync licensing services", ""
	}
	title := "Sync license: " + doc.Deal.ProjectName
	var parts []string
	if doc.Song != nil {
		s := `"` + doc.Song.Title + `"`
		if doc.Song.Artist != "" {
			s += " by " + doc.Song.Artist
		}
		parts = append(parts, s)
	}
	if doc.Deal.ProjectType != "" {
		parts = append(parts, doc.Deal.ProjectType)
	}
	if doc.Deal.Territory != "" {
		parts = append(parts, "Territory: "+doc.Deal.Territory)
	}
	if doc.Deal.Term != "" {
		parts = append(parts, "Term: "+doc.Deal.Term)
	}
	if doc.Deal.Exclusivity {
		parts = append(parts, "Exclusive")
	}
	return title, strings.Join(parts, "  ·  ")
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(inv *entity.Invoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:"),
			text.New(fmt.Sprintf("Tax (%s%%):", inv.TaxRate.String()), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5,
			}),
			text.New("TOTAL DUE:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 11,
			}),
		),
		col.New(3).Add(
			value(formatMoney(inv.Subtotal), 0),
			value(formatMoney(inv.TaxAmount), 5),
			text.New(formatMoney(inv.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 11,
			}),
		),
	)
}

func notesRows(notes string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("NOTES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, chunk := range splitEvery(notes, 110) {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 8, Color: colorGray, Top: 0.5}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func statusLabel(s entity.InvoiceStatus) string {
	v := string(s)
	if v == "" {
		return "-"
	}
	return strings.ToUpper(v[:1]) + v[1:]
}

// formatMoney dos decimales con coma de miles. Ej: 25000 → "$25,000.00", -1200.5 → "-$1,200.50".
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + string(buf) + frac
}

// splitEvery divide s en trozos de máximo n runas.
func splitEvery(s string, n int) []string {
	r := []rune(s)
	var parts []string
	for len(r) > n {
		parts = append(parts, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		parts = append(parts, string(r))
	}
	return parts
}
