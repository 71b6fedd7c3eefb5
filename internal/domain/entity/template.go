package entity

import "time"

// TemplateType tipo de documento.
type TemplateType string

const (
	TemplateLicense   TemplateType = "license"
	TemplateQuote     TemplateType = "quote"
	TemplateAgreement TemplateType = "agreement"
	TemplateInvoice   TemplateType = "invoice"
	TemplateOther     TemplateType = "other"
)

// Valid indica si el tipo pertenece a la enumeración.
func (t TemplateType) Valid() bool {
	switch t {
	case TemplateLicense, TemplateQuote, TemplateAgreement, TemplateInvoice, TemplateOther:
		return true
	}
	return false
}

// Template documento con tokens {{variable}}. Variables se deriva del contenido.
type Template struct {
	ID        string
	UserID    string
	Name      string
	Type      TemplateType
	Content   string
	Variables []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmailStageGeneral etapa de las plantillas de correo que no dependen del pipeline.
const EmailStageGeneral = "general"

// EmailTemplate plantilla de correo ligada a una etapa del pipeline o "general".
type EmailTemplate struct {
	ID        string
	UserID    string
	Name      string
	Stage     string
	Subject   string
	Body      string
	Variables []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
