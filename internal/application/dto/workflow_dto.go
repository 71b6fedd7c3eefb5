package dto

import "time"

type CreateWorkflowRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	Trigger         string `json:"trigger" validate:"required,oneof=deal_created deal_status_changed payment_overdue pitch_follow_up_due"`
	TriggerStatus   string `json:"triggerStatus"`
	Action          string `json:"action" validate:"required,oneof=send_email create_reminder notify"`
	EmailTemplateID string `json:"emailTemplateId" validate:"omitempty,uuid"`
	Active          *bool  `json:"active"`
}

type UpdateWorkflowRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=1,max=200"`
	Trigger         *string `json:"trigger" validate:"omitempty,oneof=deal_created deal_status_changed payment_overdue pitch_follow_up_due"`
	TriggerStatus   *string `json:"triggerStatus"`
	Action          *string `json:"action" validate:"omitempty,oneof=send_email create_reminder notify"`
	EmailTemplateID *string `json:"emailTemplateId" validate:"omitempty,uuid"`
	Active          *bool   `json:"active"`
}

type WorkflowResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Trigger         string    `json:"trigger"`
	TriggerStatus   *string   `json:"triggerStatus"`
	Action          string    `json:"action"`
	EmailTemplateID *string   `json:"emailTemplateId"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
