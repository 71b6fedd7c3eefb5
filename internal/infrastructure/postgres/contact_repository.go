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

var _ repository.ContactRepository = (*ContactRepo)(nil)

const contactColumns = `id, user_id, name, email, phone, company, role, notes, last_contacted_at, created_at, updated_at`

// ContactRepo implementación de ContactRepository (usable con pool o tx).
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador. Pasar pool o tx (Querier).
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

func scanContact(row rowScanner) (*entity.Contact, error) {
	var c entity.Contact
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Role, &c.Notes,
		&c.LastContactedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepo) Create(ctx context.Context, c *entity.Contact) error {
	query := `INSERT INTO contacts (` + contactColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query, c.ID, c.UserID, c.Name, c.Email, c.Phone, c.Company, c.Role, c.Notes,
		c.LastContactedAt, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *ContactRepo) GetByID(ctx context.Context, userID, id string) (*entity.Contact, error) {
	return r.one(ctx, "get contact", `SELECT `+contactColumns+` FROM contacts WHERE user_id = $1 AND id = $2`, userID, id)
}

// FindByEmail coincidencia exacta sin distinguir mayúsculas.
func (r *ContactRepo) FindByEmail(ctx context.Context, userID, email string) (*entity.Contact, error) {
	return r.one(ctx, "find contact by email",
		`SELECT `+contactColumns+` FROM contacts WHERE user_id = $1 AND lower(email) = lower($2) ORDER BY created_at LIMIT 1`,
		userID, email)
}

// FindByName coincidencia exacta sin distinguir mayúsculas.
func (r *ContactRepo) FindByName(ctx context.Context, userID, name string) (*entity.Contact, error) {
	return r.one(ctx, "find contact by name",
		`SELECT `+contactColumns+` FROM contacts WHERE user_id = $1 AND lower(name) = lower($2) ORDER BY created_at LIMIT 1`,
		userID, name)
}

func (r *ContactRepo) one(ctx context.Context, op, query string, args ...interface{}) (*entity.Contact, error) {
	c, err := scanContact(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// List busca en nombre, email y compañía.
func (r *ContactRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Contact, int, error) {
	w := newWhere(f.UserID)
	w.search(f.Search, "name", "email", "company")
	total, err := count(ctx, r.q, "contacts", w)
	if err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + contactColumns + ` FROM contacts` + w.String() + ` ORDER BY name` + w.page(f.Limit, f.Offset)
	list, err := r.query(ctx, query, w.args...)
	return list, total, err
}

func (r *ContactRepo) ListAll(ctx context.Context, userID string) ([]*entity.Contact, error) {
	return r.query(ctx, `SELECT `+contactColumns+` FROM contacts WHERE user_id = $1 ORDER BY name`, userID)
}

func (r *ContactRepo) query(ctx context.Context, query string, args ...interface{}) ([]*entity.Contact, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *ContactRepo) Update(ctx context.Context, c *entity.Contact) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE contacts SET name = $3, email = $4, phone = $5, company = $6, role = $7, notes = $8,
			last_contacted_at = $9, updated_at = $10
		WHERE user_id = $1 AND id = $2`,
		c.UserID, c.ID, c.Name, c.Email, c.Phone, c.Company, c.Role, c.Notes, c.LastContactedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete falla con domain.ErrConflict si el contacto tiene deals o facturas.
func (r *ContactRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM contacts WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete contact: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
