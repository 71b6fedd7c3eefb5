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

var (
	_ repository.TemplateRepository      = (*TemplateRepo)(nil)
	_ repository.EmailTemplateRepository = (*EmailTemplateRepo)(nil)
)

// ── Plantillas de documento ──

const templateColumns = `id, user_id, name, type, content, variables, created_at, updated_at`

// TemplateRepo implementación de TemplateRepository.
type TemplateRepo struct {
	q Querier
}

func NewTemplateRepository(q Querier) *TemplateRepo {
	return &TemplateRepo{q: q}
}

func scanTemplate(row rowScanner) (*entity.Template, error) {
	var (
		t   entity.Template
		typ string
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &typ, &t.Content, &t.Variables, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Type = entity.TemplateType(typ)
	return &t, nil
}

func (r *TemplateRepo) Create(ctx context.Context, t *entity.Template) error {
	_, err := r.q.Exec(ctx, `INSERT INTO templates (`+templateColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.UserID, t.Name, string(t.Type), t.Content, orEmpty(t.Variables), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

func (r *TemplateRepo) GetByID(ctx context.Context, userID, id string) (*entity.Template, error) {
	t, err := scanTemplate(r.q.QueryRow(ctx,
		`SELECT `+templateColumns+` FROM templates WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

func (r *TemplateRepo) List(ctx context.Context, f repository.ListFilter, templateType entity.TemplateType) ([]*entity.Template, int, error) {
	w := newWhere(f.UserID)
	w.eqIf("type", string(templateType))
	w.search(f.Search, "name", "content")
	total, err := count(ctx, r.q, "templates", w)
	if err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + templateColumns + ` FROM templates` + w.String() + ` ORDER BY name` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()
	var list []*entity.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan template: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

func (r *TemplateRepo) Update(ctx context.Context, t *entity.Template) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE templates SET name = $3, type = $4, content = $5, variables = $6, updated_at = $7
		WHERE user_id = $1 AND id = $2`,
		t.UserID, t.ID, t.Name, string(t.Type), t.Content, orEmpty(t.Variables), t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TemplateRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM templates WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── Plantillas de correo ──

const emailTemplateColumns = `id, user_id, name, stage, subject, body, variables, created_at, updated_at`

// EmailTemplateRepo implementación de EmailTemplateRepository.
type EmailTemplateRepo struct {
	q Querier
}

func NewEmailTemplateRepository(q Querier) *EmailTemplateRepo {
	return &EmailTemplateRepo{q: q}
}

func scanEmailTemplate(row rowScanner) (*entity.EmailTemplate, error) {
	var t entity.EmailTemplate
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Stage, &t.Subject, &t.Body, &t.Variables,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *EmailTemplateRepo) Create(ctx context.Context, t *entity.EmailTemplate) error {
	_, err := r.q.Exec(ctx, `INSERT INTO email_templates (`+emailTemplateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.UserID, t.Name, t.Stage, t.Subject, t.Body, orEmpty(t.Variables), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert email template: %w", err)
	}
	return nil
}

func (r *EmailTemplateRepo) GetByID(ctx context.Context, userID, id string) (*entity.EmailTemplate, error) {
	t, err := scanEmailTemplate(r.q.QueryRow(ctx,
		`SELECT `+emailTemplateColumns+` FROM email_templates WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get email template: %w", err)
	}
	return t, nil
}

func (r *EmailTemplateRepo) List(ctx context.Context, f repository.ListFilter, stage string) ([]*entity.EmailTemplate, int, error) {
	w := newWhere(f.UserID)
	w.eqIf("stage", stage)
	w.search(f.Search, "name", "subject")
	total, err := count(ctx, r.q, "email_templates", w)
	if err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + emailTemplateColumns + ` FROM email_templates` + w.String() + ` ORDER BY name` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list email templates: %w", err)
	}
	defer rows.Close()
	var list []*entity.EmailTemplate
	for rows.Next() {
		t, err := scanEmailTemplate(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan email template: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

func (r *EmailTemplateRepo) Update(ctx context.Context, t *entity.EmailTemplate) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE email_templates SET name = $3, stage = $4, subject = $5, body = $6, variables = $7, updated_at = $8
		WHERE user_id = $1 AND id = $2`,
		t.UserID, t.ID, t.Name, t.Stage, t.Subject, t.Body, orEmpty(t.Variables), t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update email template: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EmailTemplateRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM email_templates WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete email template: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
