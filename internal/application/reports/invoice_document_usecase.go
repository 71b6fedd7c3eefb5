package reports

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jhoicas/syncdesk-api/internal/application/ports"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

// InvoiceDocumentUseCase genera el PDF y el XML de una factura.
type InvoiceDocumentUseCase struct {
	invoices repository.InvoiceRepository
	contacts repository.ContactRepository
	deals    repository.DealRepository
	songs    repository.SongRepository
	pdf      ports.InvoicePDFGenerator
	xml      ports.InvoiceXMLBuilder
	issuer   string
}

// NewInvoiceDocumentUseCase issuer es el nombre que aparece como emisor (APP_NAME).
func NewInvoiceDocumentUseCase(
	invoices repository.InvoiceRepository,
	contacts repository.ContactRepository,
	deals repository.DealRepository,
	songs repository.SongRepository,
	pdf ports.InvoicePDFGenerator,
	xml ports.InvoiceXMLBuilder,
	issuer string,
) *InvoiceDocumentUseCase {
	return &InvoiceDocumentUseCase{
		invoices: invoices,
		contacts: contacts,
		deals:    deals,
		songs:    songs,
		pdf:      pdf,
		xml:      xml,
		issuer:   issuer,
	}
}

// XMLDocument XML canónico y su digest (base64 SHA-256).
type XMLDocument struct {
	Content  []byte
	Digest   string
	Filename string
}

// DownloadPDF devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *InvoiceDocumentUseCase) DownloadPDF(ctx context.Context, userID, invoiceID string) ([]byte, string, error) {
	doc, err := uc.load(ctx, userID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateInvoicePDF(ctx, *doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return b, filename(doc, "pdf"), nil
}

// DownloadXML devuelve el XML de la factura con su digest.
func (uc *InvoiceDocumentUseCase) DownloadXML(ctx context.Context, userID, invoiceID string) (*XMLDocument, error) {
	doc, err := uc.load(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	b, digest, err := uc.xml.BuildInvoiceXML(*doc)
	if err != nil {
		return nil, fmt.Errorf("xml: construcción fallida: %w", err)
	}
	return &XMLDocument{Content: b, Digest: digest, Filename: filename(doc, "xml")}, nil
}

// load reúne factura, contacto y, si existe, deal y canción.
func (uc *InvoiceDocumentUseCase) load(ctx context.Context, userID, invoiceID string) (*ports.InvoiceDocument, error) {
	// ── 1. Factura ───────────────────────────────────────────────────────────
	inv, err := uc.invoices.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("documento: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.NewNotFoundError("Invoice")
	}

	// ── 2. Contacto facturado ────────────────────────────────────────────────
	contact, err := uc.contacts.GetByID(ctx, userID, inv.ContactID)
	if err != nil {
		return nil, fmt.Errorf("documento: obtener contacto: %w", err)
	}
	if contact == nil {
		return nil, domain.NewNotFoundError("Contact")
	}
	doc := &ports.InvoiceDocument{IssuerName: uc.issuer, Invoice: inv, Contact: contact}

	// ── 3. Deal y canción (opcionales) ───────────────────────────────────────
	if inv.DealID == nil {
		return doc, nil
	}
	deal, err := uc.deals.GetByID(ctx, userID, *inv.DealID)
	if err != nil {
		return nil, fmt.Errorf("documento: obtener deal: %w", err)
	}
	if deal == nil {
		return doc, nil
	}
	doc.Deal = deal
	if doc.Song, err = uc.songs.GetByID(ctx, userID, deal.SongID); err != nil {
		return nil, fmt.Errorf("documento: obtener canción: %w", err)
	}
	return doc, nil
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func filename(doc *ports.InvoiceDocument, ext string) string {
	return "invoice_" + unsafeFilename.ReplaceAllString(doc.Invoice.InvoiceNumber, "_") + "." + ext
}
