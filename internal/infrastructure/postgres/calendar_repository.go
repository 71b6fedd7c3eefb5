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

var _ repository.CalendarEventRepository = (*CalendarEventRepo)(nil)

const calendarColumns = `id, user_id, title, event_type, starts_at, ends_at, all_day, deal_id, contact_id, notes, created_at, updated_at`

type CalendarEventRepo struct {
	q Querier
}

func NewCalendarEventRepository(q Querier) *CalendarEventRepo {
	return &CalendarEventRepo{q: q}
}

func scanCalendarEvent(row rowScanner) (*entity.CalendarEvent, error) {
	var (
		e   entity.CalendarEvent
		typ string
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Title, &typ, &e.StartsAt, &e.EndsAt, &e.AllDay, &e.DealID,
		&e.ContactID, &e.Notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.EventType = entity.CalendarEventType(typ)
	return &e, nil
}

func (r *CalendarEventRepo) Create(ctx context.Context, e *entity.CalendarEvent) error {
	_, err := r.q.Exec(ctx, `INSERT INTO calendar_events (`+calendarColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.ID, e.UserID, e.Title, string(e.EventType), e.StartsAt, e.EndsAt, e.AllDay, e.DealID, e.ContactID,
		e.Notes, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert calendar event: %w", err)
	}
	return nil
}

func (r *CalendarEventRepo) GetByID(ctx context.Context, userID, id string) (*entity.CalendarEvent, error) {
	e, err := scanCalendarEvent(r.q.QueryRow(ctx,
		`SELECT `+calendarColumns+` FROM calendar_events WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get calendar event: %w", err)
	}
	return e, nil
}

// List eventos que empiezan dentro de [From, To]; límites en cero no filtran.
func (r *CalendarEventRepo) List(ctx context.Context, f repository.CalendarFilter) ([]*entity.CalendarEvent, int, error) {
	w := newWhere(f.UserID)
	if !f.From.IsZero() {
		w.cond("starts_at >= " + w.arg(f.From))
	}
	if !f.To.IsZero() {
		w.cond("starts_at <= " + w.arg(f.To))
	}
	w.search(f.Search, "title", "notes")
	total, err := count(ctx, r.q, "calendar_events", w)
	if err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + calendarColumns + ` FROM calendar_events` + w.String() + ` ORDER BY starts_at` + w.page(f.Limit, f.Offset)
	list, err := r.query(ctx, query, w.args...)
	return list, total, err
}

func (r *CalendarEventRepo) ListAll(ctx context.Context, userID string) ([]*entity.CalendarEvent, error) {
	return r.query(ctx, `SELECT `+calendarColumns+` FROM calendar_events WHERE user_id = $1 ORDER BY starts_at`, userID)
}

func (r *CalendarEventRepo) query(ctx context.Context, query string, args ...interface{}) ([]*entity.CalendarEvent, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	defer rows.Close()
	var list []*entity.CalendarEvent
	for rows.Next() {
		e, err := scanCalendarEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calendar event: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *CalendarEventRepo) Update(ctx context.Context, e *entity.CalendarEvent) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE calendar_events SET title = $3, event_type = $4, starts_at = $5, ends_at = $6, all_day = $7,
			deal_id = $8, contact_id = $9, notes = $10, updated_at = $11
		WHERE user_id = $1 AND id = $2`,
		e.UserID, e.ID, e.Title, string(e.EventType), e.StartsAt, e.EndsAt, e.AllDay, e.DealID, e.ContactID,
		e.Notes, e.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update calendar event: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CalendarEventRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM calendar_events WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete calendar event: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
