package ports

import (
	"context"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

// InvoiceDocument datos necesarios para renderizar una factura.
// Deal y Song son opcionales (facturas sin deal asociado).
type InvoiceDocument struct {
	IssuerName string
	Invoice    *entity.Invoice
	Contact    *entity.Contact
	Deal       *entity.Deal
	Song       *entity.Song
}

// InvoicePDFGenerator genera la representación PDF de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}

// InvoiceXMLBuilder genera el XML canónico de la factura y su digest.
type InvoiceXMLBuilder interface {
	BuildInvoiceXML(doc InvoiceDocument) (xmlBytes []byte, digest string, err error)
}
