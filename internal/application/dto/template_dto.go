package dto

import "time"

type CreateTemplateRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Type    string `json:"type" validate:"omitempty,oneof=license quote agreement invoice other"`
	Content string `json:"content"`
}

type UpdateTemplateRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Type    *string `json:"type" validate:"omitempty,oneof=license quote agreement invoice other"`
	Content *string `json:"content"`
}

type TemplateResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Variables []string  `json:"variables"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateEmailTemplateRequest Stage es una etapa del pipeline o "general".
type CreateEmailTemplateRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Stage   string `json:"stage"`
	Subject string `json:"subject" validate:"max=500"`
	Body    string `json:"body"`
}

type UpdateEmailTemplateRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Stage   *string `json:"stage"`
	Subject *string `json:"subject" validate:"omitempty,max=500"`
	Body    *string `json:"body"`
}

type EmailTemplateResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Stage      string    `json:"stage"`
	StageLabel string    `json:"stageLabel"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	Variables  []string  `json:"variables"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ExtractVariablesRequest texto libre a analizar.
type ExtractVariablesRequest struct {
	Content string `json:"content"`
}

// RenderTemplateRequest valores explícitos y/o un deal del que derivar valores.
// Los valores explícitos tienen prioridad sobre los derivados.
type RenderTemplateRequest struct {
	Values map[string]string `json:"values"`
	DealID string            `json:"dealId" validate:"omitempty,uuid"`
}

// RenderTemplateResponse resultado del render. Los tokens sin valor quedan en el texto.
type RenderTemplateResponse struct {
	Subject string   `json:"subject,omitempty"`
	Content string   `json:"content"`
	Missing []string `json:"missing"`
}
