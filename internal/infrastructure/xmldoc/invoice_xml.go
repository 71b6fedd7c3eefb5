// Package xmldoc construye la representación XML de las facturas y su digest canónico.
package xmldoc

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/syncdesk-api/internal/application/ports"
)

var _ ports.InvoiceXMLBuilder = (*InvoiceXMLBuilder)(nil)

// Namespace del documento.
const NsInvoice = "urn:syncdesk:invoice:1"

const dateLayout = "2006-01-02"

// InvoiceXMLBuilder implementa ports.InvoiceXMLBuilder con etree; el digest es SHA-256 (base64)
// de la forma canónica C14N del documento.
type InvoiceXMLBuilder struct{}

func NewInvoiceXMLBuilder() *InvoiceXMLBuilder { return &InvoiceXMLBuilder{} }

// BuildInvoiceXML genera el documento y su digest.
func (b *InvoiceXMLBuilder) BuildInvoiceXML(doc ports.InvoiceDocument) ([]byte, string, error) {
	if doc.Invoice == nil || doc.Contact == nil {
		return nil, "", fmt.Errorf("xmldoc: factura y contacto son obligatorios")
	}
	inv := doc.Invoice

	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := x.CreateElement("Invoice")
	root.CreateAttr("xmlns", NsInvoice)
	root.CreateAttr("id", inv.ID)

	// ── 1. Cabecera ──
	text(root, "Number", inv.InvoiceNumber)
	text(root, "IssueDate", inv.IssueDate.Format(dateLayout))
	if inv.DueDate != nil {
		text(root, "DueDate", inv.DueDate.Format(dateLayout))
	}
	text(root, "Status", string(inv.Status))

	// ── 2. Partes ──
	issuer := root.CreateElement("Issuer")
	text(issuer, "Name", doc.IssuerName)

	customer := root.CreateElement("Customer")
	customer.CreateAttr("id", doc.Contact.ID)
	text(customer, "Name", doc.Contact.Name)
	optional(customer, "Company", doc.Contact.Company)
	optional(customer, "Email", doc.Contact.Email)
	optional(customer, "Phone", doc.Contact.Phone)

	// ── 3. Licencia (opcional) ──
	if doc.Deal != nil {
		license := root.CreateElement("License")
		license.CreateAttr("dealId", doc.Deal.ID)
		text(license, "Project", doc.Deal.ProjectName)
		optional(license, "ProjectType", doc.Deal.ProjectType)
		if doc.Song != nil {
			song := license.CreateElement("Song")
			song.CreateAttr("id", doc.Song.ID)
			text(song, "Title", doc.Song.Title)
			optional(song, "Artist", doc.Song.Artist)
		}
		optional(license, "Territory", doc.Deal.Territory)
		optional(license, "Term", doc.Deal.Term)
		text(license, "Exclusive", fmt.Sprintf("%t", doc.Deal.Exclusivity))
	}

	// ── 4. Importes ──
	amounts := root.CreateElement("Amounts")
	text(amounts, "Subtotal", money(inv.Subtotal))
	text(amounts, "TaxRate", inv.TaxRate.StringFixed(2))
	text(amounts, "TaxAmount", money(inv.TaxAmount))
	text(amounts, "Total", money(inv.Total))

	optional(root, "Notes", inv.Notes)

	x.Indent(2)
	out, err := x.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("xmldoc: serializar: %w", err)
	}
	digest, err := Digest(out)
	if err != nil {
		return nil, "", err
	}
	return out, digest, nil
}

// Digest SHA-256 en base64 de la forma canónica (C14N) del XML.
func Digest(data []byte) (string, error) {
	canon, err := Canonicalize(data)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canon)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

// Canonicalize devuelve la forma C14N del documento.
func Canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	out, err := c14n.Canonicalize(dec)
	if err != nil {
		return nil, fmt.Errorf("xmldoc: canonicalizar: %w", err)
	}
	return out, nil
}

func text(parent *etree.Element, tag, value string) *etree.Element {
	el := parent.CreateElement(tag)
	el.SetText(value)
	return el
}

func optional(parent *etree.Element, tag, value string) {
	if value != "" {
		text(parent, tag, value)
	}
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }
