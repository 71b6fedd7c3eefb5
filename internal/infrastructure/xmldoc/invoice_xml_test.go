package xmldoc

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/syncdesk-api/internal/application/ports"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

func sampleDoc() ports.InvoiceDocument {
	inv := &entity.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-0042",
		IssueDate:     time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
		Subtotal:      decimal.NewFromInt(4500),
		TaxRate:       decimal.NewFromInt(20),
		Status:        entity.InvoiceSent,
		Notes:         `Ref "A&B" <net 30>`,
	}
	inv.Recalculate()
	return ports.InvoiceDocument{
		IssuerName: "Blue Room Music",
		Invoice:    inv,
		Contact:    &entity.Contact{ID: "c-1", Name: "Sam Supervisor", Email: "sam@agency.tv"},
		Deal:       &entity.Deal{ID: "d-1", ProjectName: "Car Ad", Territory: "Worldwide", Exclusivity: true},
		Song:       &entity.Song{ID: "s-1", Title: "Night Drive"},
	}
}

func TestBuildInvoiceXML_Structure(t *testing.T) {
	out, digest, err := NewInvoiceXMLBuilder().BuildInvoiceXML(sampleDoc())
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Invoice", root.Tag)
	assert.Equal(t, NsInvoice, root.SelectAttrValue("xmlns", ""))

	assert.Equal(t, "INV-0042", root.SelectElement("Number").Text())
	assert.Equal(t, "2026-05-31", root.SelectElement("IssueDate").Text())
	assert.Nil(t, root.SelectElement("DueDate"))
	assert.Equal(t, "sent", root.SelectElement("Status").Text())
	assert.Equal(t, "Sam Supervisor", root.FindElement("Customer/Name").Text())
	assert.Equal(t, "Night Drive", root.FindElement("License/Song/Title").Text())
	assert.Equal(t, "true", root.FindElement("License/Exclusive").Text())
	assert.Equal(t, "900.00", root.FindElement("Amounts/TaxAmount").Text())
	assert.Equal(t, "5400.00", root.FindElement("Amounts/Total").Text())
	assert.Equal(t, `Ref "A&B" <net 30>`, root.SelectElement("Notes").Text())
}

func TestBuildInvoiceXML_DigestIsCanonical(t *testing.T) {
	out, digest, err := NewInvoiceXMLBuilder().BuildInvoiceXML(sampleDoc())
	require.NoError(t, err)

	again, err := Digest(out)
	require.NoError(t, err)
	assert.Equal(t, digest, again)

	// Atributos en otro orden y comillas simples: misma forma canónica.
	a := []byte(`<?xml version="1.0"?><r xmlns="urn:x" b="2" a="1"><v>1</v></r>`)
	b := []byte(`<r a='1' b='2' xmlns="urn:x"><v>1</v></r>`)
	da, err := Digest(a)
	require.NoError(t, err)
	db, err := Digest(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)

	changed := sampleDoc()
	changed.Invoice.Subtotal = decimal.NewFromInt(4600)
	changed.Invoice.Recalculate()
	_, other, err := NewInvoiceXMLBuilder().BuildInvoiceXML(changed)
	require.NoError(t, err)
	assert.NotEqual(t, digest, other)
}

func TestBuildInvoiceXML_WithoutDeal(t *testing.T) {
	d := sampleDoc()
	d.Deal, d.Song = nil, nil
	out, _, err := NewInvoiceXMLBuilder().BuildInvoiceXML(d)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	assert.Nil(t, doc.Root().SelectElement("License"))
}

func TestBuildInvoiceXML_RequiresContact(t *testing.T) {
	d := sampleDoc()
	d.Contact = nil
	_, _, err := NewInvoiceXMLBuilder().BuildInvoiceXML(d)
	assert.Error(t, err)
}
