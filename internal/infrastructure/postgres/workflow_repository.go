package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

var _ repository.WorkflowRepository = (*WorkflowRepo)(nil)

const workflowColumns = `id, user_id, name, trigger, trigger_status, action, email_template_id, active, created_at, updated_at`

// WorkflowRepo reglas de automatización configuradas por el usuario.
type WorkflowRepo struct {
	q Querier
}

func NewWorkflowRepository(q Querier) *WorkflowRepo {
	return &WorkflowRepo{q: q}
}

func scanWorkflow(row rowScanner) (*entity.WorkflowAutomation, error) {
	var (
		w             entity.WorkflowAutomation
		trigger       string
		action        string
		triggerStatus *string
	)
	if err := row.Scan(&w.ID, &w.UserID, &w.Name, &trigger, &triggerStatus, &action, &w.EmailTemplateID,
		&w.Active, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	w.Trigger = entity.WorkflowTrigger(trigger)
	w.Action = entity.WorkflowAction(action)
	if triggerStatus != nil {
		s := entity.DealStatus(*triggerStatus)
		w.TriggerStatus = &s
	}
	return &w, nil
}

func triggerStatusArg(s *entity.DealStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func (r *WorkflowRepo) Create(ctx context.Context, w *entity.WorkflowAutomation) error {
	_, err := r.q.Exec(ctx, `INSERT INTO workflow_automations (`+workflowColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		w.ID, w.UserID, w.Name, string(w.Trigger), triggerStatusArg(w.TriggerStatus), string(w.Action),
		w.EmailTemplateID, w.Active, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert workflow: %w", err)
	}
	return nil
}

func (r *WorkflowRepo) GetByID(ctx context.Context, userID, id string) (*entity.WorkflowAutomation, error) {
	w, err := scanWorkflow(r.q.QueryRow(ctx,
		`SELECT `+workflowColumns+` FROM workflow_automations WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get workflow: %w", err)
	}
	return w, nil
}

func (r *WorkflowRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.WorkflowAutomation, int, error) {
	w := newWhere(f.UserID)
	w.search(f.Search, "name")
	total, err := count(ctx, r.q, "workflow_automations", w)
	if err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + workflowColumns + ` FROM workflow_automations` + w.String() + ` ORDER BY name` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list workflows: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkflowAutomation
	for rows.Next() {
		wf, err := scanWorkflow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan workflow: %w", err)
		}
		list = append(list, wf)
	}
	return list, total, rows.Err()
}

func (r *WorkflowRepo) Update(ctx context.Context, w *entity.WorkflowAutomation) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE workflow_automations SET name = $3, trigger = $4, trigger_status = $5, action = $6,
			email_template_id = $7, active = $8, updated_at = $9
		WHERE user_id = $1 AND id = $2`,
		w.UserID, w.ID, w.Name, string(w.Trigger), triggerStatusArg(w.TriggerStatus), string(w.Action),
		w.EmailTemplateID, w.Active, w.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update workflow: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WorkflowRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM workflow_automations WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete workflow: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
