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

var _ repository.PitchRepository = (*PitchRepo)(nil)

const pitchColumns = `id, user_id, deal_id, submission_date, status, follow_up_date, notes, created_at, updated_at`

// PitchRepo implementación de PitchRepository.
type PitchRepo struct {
	q Querier
}

func NewPitchRepository(q Querier) *PitchRepo {
	return &PitchRepo{q: q}
}

func scanPitch(row rowScanner) (*entity.Pitch, error) {
	var (
		p      entity.Pitch
		status string
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.DealID, &p.SubmissionDate, &status, &p.FollowUpDate, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Status = entity.PitchStatus(status)
	return &p, nil
}

func (r *PitchRepo) Create(ctx context.Context, p *entity.Pitch) error {
	_, err := r.q.Exec(ctx, `INSERT INTO pitches (`+pitchColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.UserID, p.DealID, p.SubmissionDate, string(p.Status), p.FollowUpDate, p.Notes, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert pitch: %w", err)
	}
	return nil
}

func (r *PitchRepo) GetByID(ctx context.Context, userID, id string) (*entity.Pitch, error) {
	p, err := scanPitch(r.q.QueryRow(ctx,
		`SELECT `+pitchColumns+` FROM pitches WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pitch: %w", err)
	}
	return p, nil
}

func (r *PitchRepo) List(ctx context.Context, f repository.PitchFilter) ([]*entity.Pitch, int, error) {
	w := newWhere(f.UserID)
	w.eqIf("deal_id", f.DealID)
	w.eqIf("status", string(f.Status))
	w.search(f.Search, "notes")
	total, err := count(ctx, r.q, "pitches", w)
	if err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + pitchColumns + ` FROM pitches` + w.String() + ` ORDER BY submission_date DESC` + w.page(f.Limit, f.Offset)
	list, err := r.query(ctx, query, w.args...)
	return list, total, err
}

func (r *PitchRepo) ListAll(ctx context.Context, userID string) ([]*entity.Pitch, error) {
	return r.query(ctx, `SELECT `+pitchColumns+` FROM pitches WHERE user_id = $1 ORDER BY submission_date DESC`, userID)
}

func (r *PitchRepo) query(ctx context.Context, query string, args ...interface{}) ([]*entity.Pitch, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pitches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pitch
	for rows.Next() {
		p, err := scanPitch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pitch: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PitchRepo) Update(ctx context.Context, p *entity.Pitch) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE pitches SET deal_id = $3, submission_date = $4, status = $5, follow_up_date = $6, notes = $7,
			updated_at = $8
		WHERE user_id = $1 AND id = $2`,
		p.UserID, p.ID, p.DealID, p.SubmissionDate, string(p.Status), p.FollowUpDate, p.Notes, p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update pitch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PitchRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM pitches WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete pitch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
