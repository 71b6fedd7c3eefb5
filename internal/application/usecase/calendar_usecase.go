package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

// CalendarUseCase eventos del calendario (fechas de emisión, plazos, reuniones).
type CalendarUseCase struct {
	events   repository.CalendarEventRepository
	deals    repository.DealRepository
	contacts repository.ContactRepository
}

func NewCalendarUseCase(
	events repository.CalendarEventRepository,
	deals repository.DealRepository,
	contacts repository.ContactRepository,
) *CalendarUseCase {
	return &CalendarUseCase{events: events, deals: deals, contacts: contacts}
}

func (uc *CalendarUseCase) Create(ctx context.Context, userID string, in dto.CreateCalendarEventRequest) (*dto.CalendarEventResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	starts := in.StartsAt.Ptr()
	if starts == nil {
		return nil, invalidField("startsAt", "is required")
	}
	t := now()
	e := &entity.CalendarEvent{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     strings.TrimSpace(in.Title),
		EventType: entity.CalendarEventType(in.EventType),
		StartsAt:  *starts,
		EndsAt:    in.EndsAt.Ptr(),
		AllDay:    in.AllDay,
		DealID:    optString(in.DealID),
		ContactID: optString(in.ContactID),
		Notes:     in.Notes,
		CreatedAt: t,
		UpdatedAt: t,
	}
	if e.EventType == "" {
		e.EventType = entity.EventOther
	}
	if err := uc.check(ctx, userID, e); err != nil {
		return nil, err
	}
	if err := uc.events.Create(ctx, e); err != nil {
		return nil, err
	}
	return toCalendarEventResponse(e), nil
}

func (uc *CalendarUseCase) GetByID(ctx context.Context, userID, id string) (*dto.CalendarEventResponse, error) {
	e, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toCalendarEventResponse(e), nil
}

func (uc *CalendarUseCase) get(ctx context.Context, userID, id string) (*entity.CalendarEvent, error) {
	e, err := uc.events.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.NewNotFoundError("Calendar event")
	}
	return e, nil
}

func (uc *CalendarUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateCalendarEventRequest) (*dto.CalendarEventResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	e, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		e.Title = strings.TrimSpace(*in.Title)
	}
	if in.EventType != nil {
		e.EventType = entity.CalendarEventType(*in.EventType)
	}
	if s := in.StartsAt.Ptr(); s != nil {
		e.StartsAt = *s
	}
	if in.EndsAt != nil {
		e.EndsAt = in.EndsAt.Ptr()
	}
	if in.AllDay != nil {
		e.AllDay = *in.AllDay
	}
	if in.DealID != nil {
		e.DealID = optString(*in.DealID)
	}
	if in.ContactID != nil {
		e.ContactID = optString(*in.ContactID)
	}
	if in.Notes != nil {
		e.Notes = *in.Notes
	}
	if err := uc.check(ctx, userID, e); err != nil {
		return nil, err
	}
	e.UpdatedAt = now()
	if err := uc.events.Update(ctx, e); err != nil {
		return nil, notFound("Calendar event", err)
	}
	return toCalendarEventResponse(e), nil
}

// List filtra por rango [from, to]; cualquiera de los dos puede omitirse.
func (uc *CalendarUseCase) List(ctx context.Context, userID, search, from, to string, p dto.PageParams) (*dto.PageResult[dto.CalendarEventResponse], error) {
	f := repository.CalendarFilter{ListFilter: listFilter(userID, search, p)}
	var err error
	if f.From, err = optDate("from", from); err != nil {
		return nil, err
	}
	if f.To, err = optDate("to", to); err != nil {
		return nil, err
	}
	list, total, err := uc.events.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toPage(list, total, func(e *entity.CalendarEvent) dto.CalendarEventResponse { return *toCalendarEventResponse(e) }), nil
}

func (uc *CalendarUseCase) Delete(ctx context.Context, userID, id string) error {
	return notFound("Calendar event", uc.events.Delete(ctx, userID, id))
}

func optDate(field, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	t, err := dto.ParseFlexTime(raw)
	if err != nil {
		return time.Time{}, invalidField(field, "must be a date")
	}
	return t, nil
}

func (uc *CalendarUseCase) check(ctx context.Context, userID string, e *entity.CalendarEvent) error {
	if e.EndsAt != nil && e.EndsAt.Before(e.StartsAt) {
		return invalidField("endsAt", "must not be before startsAt")
	}
	if e.DealID != nil {
		if err := requireDeal(ctx, uc.deals, userID, *e.DealID); err != nil {
			return err
		}
	}
	if e.ContactID != nil {
		c, err := uc.contacts.GetByID(ctx, userID, *e.ContactID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.NewNotFoundError("Contact")
		}
	}
	return nil
}

func toCalendarEventResponse(e *entity.CalendarEvent) *dto.CalendarEventResponse {
	return &dto.CalendarEventResponse{
		ID:        e.ID,
		Title:     e.Title,
		EventType: string(e.EventType),
		StartsAt:  e.StartsAt,
		EndsAt:    e.EndsAt,
		AllDay:    e.AllDay,
		DealID:    e.DealID,
		ContactID: e.ContactID,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
