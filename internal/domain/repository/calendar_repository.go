package repository

import (
	"context"
	"time"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

// CalendarFilter filtro por rango; From/To cero = sin límite.
type CalendarFilter struct {
	ListFilter
	From time.Time
	To   time.Time
}

// CalendarEventRepository define el puerto de persistencia para CalendarEvent.
type CalendarEventRepository interface {
	Create(ctx context.Context, e *entity.CalendarEvent) error
	GetByID(ctx context.Context, userID, id string) (*entity.CalendarEvent, error)
	List(ctx context.Context, f CalendarFilter) ([]*entity.CalendarEvent, int, error)
	ListAll(ctx context.Context, userID string) ([]*entity.CalendarEvent, error)
	Update(ctx context.Context, e *entity.CalendarEvent) error
	Delete(ctx context.Context, userID, id string) error
}
