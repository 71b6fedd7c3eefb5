package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

// WorkflowUseCase reglas de automatización. Solo se almacenan y se activan/desactivan;
// no hay un motor que las ejecute en segundo plano.
type WorkflowUseCase struct {
	workflows repository.WorkflowRepository
	emails    repository.EmailTemplateRepository
}

func NewWorkflowUseCase(workflows repository.WorkflowRepository, emails repository.EmailTemplateRepository) *WorkflowUseCase {
	return &WorkflowUseCase{workflows: workflows, emails: emails}
}

func (uc *WorkflowUseCase) Create(ctx context.Context, userID string, in dto.CreateWorkflowRequest) (*dto.WorkflowResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	t := now()
	w := &entity.WorkflowAutomation{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		Trigger:   entity.WorkflowTrigger(in.Trigger),
		Action:    entity.WorkflowAction(in.Action),
		Active:    in.Active == nil || *in.Active,
		CreatedAt: t,
		UpdatedAt: t,
	}
	var err error
	if w.TriggerStatus, err = triggerStatus(w.Trigger, in.TriggerStatus); err != nil {
		return nil, err
	}
	w.EmailTemplateID = optString(in.EmailTemplateID)
	if err := uc.checkAction(ctx, userID, w); err != nil {
		return nil, err
	}
	if err := uc.workflows.Create(ctx, w); err != nil {
		return nil, err
	}
	return toWorkflowResponse(w), nil
}

func (uc *WorkflowUseCase) GetByID(ctx context.Context, userID, id string) (*dto.WorkflowResponse, error) {
	w, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toWorkflowResponse(w), nil
}

func (uc *WorkflowUseCase) get(ctx context.Context, userID, id string) (*entity.WorkflowAutomation, error) {
	w, err := uc.workflows.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.NewNotFoundError("Workflow")
	}
	return w, nil
}

func (uc *WorkflowUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateWorkflowRequest) (*dto.WorkflowResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	w, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		w.Name = strings.TrimSpace(*in.Name)
	}
	if in.Trigger != nil {
		w.Trigger = entity.WorkflowTrigger(*in.Trigger)
	}
	if in.Trigger != nil || in.TriggerStatus != nil {
		raw := ""
		if in.TriggerStatus != nil {
			raw = *in.TriggerStatus
		} else if w.TriggerStatus != nil {
			raw = string(*w.TriggerStatus)
		}
		if w.TriggerStatus, err = triggerStatus(w.Trigger, raw); err != nil {
			return nil, err
		}
	}
	if in.Action != nil {
		w.Action = entity.WorkflowAction(*in.Action)
	}
	if in.EmailTemplateID != nil {
		w.EmailTemplateID = optString(*in.EmailTemplateID)
	}
	if in.Active != nil {
		w.Active = *in.Active
	}
	if err := uc.checkAction(ctx, userID, w); err != nil {
		return nil, err
	}
	w.UpdatedAt = now()
	if err := uc.workflows.Update(ctx, w); err != nil {
		return nil, notFound("Workflow", err)
	}
	return toWorkflowResponse(w), nil
}

// Toggle invierte el estado activo.
func (uc *WorkflowUseCase) Toggle(ctx context.Context, userID, id string) (*dto.WorkflowResponse, error) {
	w, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	w.Active = !w.Active
	w.UpdatedAt = now()
	if err := uc.workflows.Update(ctx, w); err != nil {
		return nil, notFound("Workflow", err)
	}
	return toWorkflowResponse(w), nil
}

func (uc *WorkflowUseCase) List(ctx context.Context, userID, search string, p dto.PageParams) (*dto.PageResult[dto.WorkflowResponse], error) {
	list, total, err := uc.workflows.List(ctx, listFilter(userID, search, p))
	if err != nil {
		return nil, err
	}
	return toPage(list, total, func(w *entity.WorkflowAutomation) dto.WorkflowResponse { return *toWorkflowResponse(w) }), nil
}

func (uc *WorkflowUseCase) Delete(ctx context.Context, userID, id string) error {
	return notFound("Workflow", uc.workflows.Delete(ctx, userID, id))
}

// triggerStatus solo se conserva para deal_status_changed; vacío significa cualquier etapa.
func triggerStatus(trigger entity.WorkflowTrigger, raw string) (*entity.DealStatus, error) {
	if trigger != entity.TriggerDealStatusChanged || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	st, ok := entity.NormalizeDealStatus(raw)
	if !ok {
		return nil, invalidField("triggerStatus", "unknown deal status "+quote(raw))
	}
	return &st, nil
}

// checkAction send_email exige una plantilla de correo del usuario.
func (uc *WorkflowUseCase) checkAction(ctx context.Context, userID string, w *entity.WorkflowAutomation) error {
	if w.Action != entity.ActionSendEmail {
		return nil
	}
	if w.EmailTemplateID == nil {
		return invalidField("emailTemplateId", "is required for send_email")
	}
	et, err := uc.emails.GetByID(ctx, userID, *w.EmailTemplateID)
	if err != nil {
		return err
	}
	if et == nil {
		return domain.NewNotFoundError("Email template")
	}
	return nil
}

func toWorkflowResponse(w *entity.WorkflowAutomation) *dto.WorkflowResponse {
	var ts *string
	if w.TriggerStatus != nil {
		s := string(*w.TriggerStatus)
		ts = &s
	}
	return &dto.WorkflowResponse{
		ID:              w.ID,
		Name:            w.Name,
		Trigger:         string(w.Trigger),
		TriggerStatus:   ts,
		Action:          string(w.Action),
		EmailTemplateID: w.EmailTemplateID,
		Active:          w.Active,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}
