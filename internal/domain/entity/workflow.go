package entity

import "time"

// WorkflowTrigger evento que dispara una automatización.
type WorkflowTrigger string

const (
	TriggerDealCreated       WorkflowTrigger = "deal_created"
	TriggerDealStatusChanged WorkflowTrigger = "deal_status_changed"
	TriggerPaymentOverdue    WorkflowTrigger = "payment_overdue"
	TriggerPitchFollowUpDue  WorkflowTrigger = "pitch_follow_up_due"
)

// WorkflowAction acción a ejecutar.
type WorkflowAction string

const (
	ActionSendEmail      WorkflowAction = "send_email"
	ActionCreateReminder WorkflowAction = "create_reminder"
	ActionNotify         WorkflowAction = "notify"
)

func (t WorkflowTrigger) Valid() bool {
	switch t {
	case TriggerDealCreated, TriggerDealStatusChanged, TriggerPaymentOverdue, TriggerPitchFollowUpDue:
		return true
	}
	return false
}

func (a WorkflowAction) Valid() bool {
	switch a {
	case ActionSendEmail, ActionCreateReminder, ActionNotify:
		return true
	}
	return false
}

// WorkflowAutomation regla configurada por el usuario. TriggerStatus solo aplica a deal_status_changed.
type WorkflowAutomation struct {
	ID              string
	UserID          string
	Name            string
	Trigger         WorkflowTrigger
	TriggerStatus   *DealStatus
	Action          WorkflowAction
	EmailTemplateID *string
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
