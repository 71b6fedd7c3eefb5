package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

// DealUseCase casos de uso del pipeline de licencias.
// Toda escritura valida que canción y contacto pertenezcan al usuario.
type DealUseCase struct {
	deals    repository.DealRepository
	songs    repository.SongRepository
	contacts repository.ContactRepository
}

// NewDealUseCase construye el caso de uso.
func NewDealUseCase(
	deals repository.DealRepository,
	songs repository.SongRepository,
	contacts repository.ContactRepository,
) *DealUseCase {
	return &DealUseCase{deals: deals, songs: songs, contacts: contacts}
}

// ParseDealStatus normaliza un estado de entrada; vacío = new_request.
func ParseDealStatus(raw string) (entity.DealStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return entity.StatusNewRequest, nil
	}
	st, ok := entity.NormalizeDealStatus(raw)
	if !ok {
		return "", invalidField("status", "unknown deal status "+quote(raw))
	}
	return st, nil
}

func quote(s string) string { return `"` + s + `"` }

// Create crea un deal y registra la fecha de la etapa inicial.
func (uc *DealUseCase) Create(ctx context.Context, userID string, in dto.CreateDealRequest) (*dto.DealResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	status, err := ParseDealStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if err := uc.checkRefs(ctx, userID, in.SongID, in.ContactID); err != nil {
		return nil, err
	}
	ballpark, err := parseBallpark(in.BallparkFee)
	if err != nil {
		return nil, err
	}
	t := now()
	d := &entity.Deal{
		ID:          uuid.New().String(),
		UserID:      userID,
		ProjectName: strings.TrimSpace(in.ProjectName),
		ProjectType: in.ProjectType,
		SongID:      in.SongID,
		ContactID:   in.ContactID,
		Territory:   in.Territory,
		Exclusivity: in.Exclusivity,
		Description: in.Description,
		Term:        in.Term,
		Usage:       in.Usage,
		BallparkFee: ballpark,
		Notes:       in.Notes,
		AirDate:     in.AirDate.Ptr(),
		CreatedAt:   t,
		UpdatedAt:   t,
	}
	if d.TotalFee, err = fee("totalFee", in.TotalFee); err != nil {
		return nil, err
	}
	if d.PublishingFee, err = fee("publishingFee", in.PublishingFee); err != nil {
		return nil, err
	}
	if d.RecordingFee, err = fee("recordingFee", in.RecordingFee); err != nil {
		return nil, err
	}
	d.SetStatus(status, t)
	if err := uc.deals.Create(ctx, d); err != nil {
		return nil, err
	}
	return ToDealResponse(d), nil
}

func (uc *DealUseCase) GetByID(ctx context.Context, userID, id string) (*dto.DealResponse, error) {
	d, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return ToDealResponse(d), nil
}

func (uc *DealUseCase) get(ctx context.Context, userID, id string) (*entity.Deal, error) {
	d, err := uc.deals.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.NewNotFoundError("Deal")
	}
	return d, nil
}

// Update actualización parcial. Un cambio de estado registra la fecha de la nueva etapa.
func (uc *DealUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateDealRequest) (*dto.DealResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	d, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	songID, contactID := d.SongID, d.ContactID
	if in.SongID != nil {
		songID = *in.SongID
	}
	if in.ContactID != nil {
		contactID = *in.ContactID
	}
	if songID != d.SongID || contactID != d.ContactID {
		if err := uc.checkRefs(ctx, userID, songID, contactID); err != nil {
			return nil, err
		}
		d.SongID, d.ContactID = songID, contactID
	}
	if in.ProjectName != nil {
		d.ProjectName = strings.TrimSpace(*in.ProjectName)
	}
	if in.ProjectType != nil {
		d.ProjectType = *in.ProjectType
	}
	if in.Territory != nil {
		d.Territory = *in.Territory
	}
	if in.Exclusivity != nil {
		d.Exclusivity = *in.Exclusivity
	}
	if in.Description != nil {
		d.Description = *in.Description
	}
	if in.Term != nil {
		d.Term = *in.Term
	}
	if in.Usage != nil {
		d.Usage = *in.Usage
	}
	if in.Notes != nil {
		d.Notes = *in.Notes
	}
	if in.AirDate != nil {
		d.AirDate = in.AirDate.Ptr()
	}
	if in.BallparkFee != nil {
		if d.BallparkFee, err = parseBallpark(*in.BallparkFee); err != nil {
			return nil, err
		}
	}
	if in.TotalFee != nil {
		if d.TotalFee, err = fee("totalFee", in.TotalFee); err != nil {
			return nil, err
		}
	}
	if in.PublishingFee != nil {
		if d.PublishingFee, err = fee("publishingFee", in.PublishingFee); err != nil {
			return nil, err
		}
	}
	if in.RecordingFee != nil {
		if d.RecordingFee, err = fee("recordingFee", in.RecordingFee); err != nil {
			return nil, err
		}
	}
	t := now()
	if in.Status != nil {
		st, err := ParseDealStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		d.SetStatus(st, t)
	}
	d.UpdatedAt = t
	if err := uc.deals.Update(ctx, d); err != nil {
		return nil, notFound("Deal", err)
	}
	return ToDealResponse(d), nil
}

// UpdateStatus mueve el deal a otra etapa del pipeline.
func (uc *DealUseCase) UpdateStatus(ctx context.Context, userID, id string, in dto.UpdateDealStatusRequest) (*dto.DealResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	st, err := ParseDealStatus(in.Status)
	if err != nil {
		return nil, err
	}
	d, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	t := now()
	d.SetStatus(st, t)
	d.UpdatedAt = t
	if err := uc.deals.Update(ctx, d); err != nil {
		return nil, notFound("Deal", err)
	}
	return ToDealResponse(d), nil
}

// History historial de etapas con los días que el deal pasó en cada una.
func (uc *DealUseCase) History(ctx context.Context, userID, id string) ([]dto.StageHistoryEntry, error) {
	d, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return stageHistory(d, now()), nil
}

func stageHistory(d *entity.Deal, at time.Time) []dto.StageHistoryEntry {
	h := d.StageHistory()
	out := make([]dto.StageHistoryEntry, 0, len(h))
	for i, e := range h {
		end := at
		if i+1 < len(h) {
			end = h[i+1].EnteredAt
		}
		out = append(out, dto.StageHistoryEntry{
			Status:      string(e.Status),
			Label:       e.Status.Label(),
			EnteredAt:   e.EnteredAt,
			DaysInStage: daysBetween(e.EnteredAt, end),
		})
	}
	return out
}

func daysBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(math.Floor(to.Sub(from).Hours() / 24))
}

// StatusOptions valores canónicos del pipeline con su etiqueta.
func StatusOptions() []dto.StatusOption {
	out := make([]dto.StatusOption, 0, len(entity.PipelineStatuses))
	for _, s := range entity.PipelineStatuses {
		out = append(out, dto.StatusOption{Value: string(s), Label: s.Label()})
	}
	return out
}

// DealListFilter filtros opcionales del listado de deals.
type DealListFilter struct {
	Search    string
	Status    string
	SongID    string
	ContactID string
}

func (uc *DealUseCase) List(ctx context.Context, userID string, f DealListFilter, p dto.PageParams) (*dto.PageResult[dto.DealResponse], error) {
	filter := repository.DealFilter{
		ListFilter: listFilter(userID, f.Search, p),
		SongID:     f.SongID,
		ContactID:  f.ContactID,
	}
	if strings.TrimSpace(f.Status) != "" {
		st, ok := entity.NormalizeDealStatus(f.Status)
		if !ok {
			return nil, invalidField("status", "unknown deal status "+quote(f.Status))
		}
		filter.Status = st
	}
	list, total, err := uc.deals.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toPage(list, total, func(d *entity.Deal) dto.DealResponse { return *ToDealResponse(d) }), nil
}

func (uc *DealUseCase) Delete(ctx context.Context, userID, id string) error {
	return notFound("Deal", uc.deals.Delete(ctx, userID, id))
}

func (uc *DealUseCase) checkRefs(ctx context.Context, userID, songID, contactID string) error {
	song, err := uc.songs.GetByID(ctx, userID, songID)
	if err != nil {
		return err
	}
	if song == nil {
		return domain.NewNotFoundError("Song")
	}
	contact, err := uc.contacts.GetByID(ctx, userID, contactID)
	if err != nil {
		return err
	}
	if contact == nil {
		return domain.NewNotFoundError("Contact")
	}
	return nil
}

func parseBallpark(raw string) (*entity.BallparkBracket, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return nil, nil
	}
	b := entity.BallparkBracket(raw)
	if !b.Valid() {
		return nil, invalidField("ballparkFee", "unknown ballpark bracket "+quote(raw))
	}
	return &b, nil
}

func fee(field string, v *decimal.Decimal) (decimal.NullDecimal, error) {
	if v == nil {
		return decimal.NullDecimal{}, nil
	}
	if v.IsNegative() {
		return decimal.NullDecimal{}, invalidField(field, "must not be negative")
	}
	return decimal.NewNullDecimal(*v), nil
}

// ToDealResponse mapea la entidad a la salida HTTP.
func ToDealResponse(d *entity.Deal) *dto.DealResponse {
	var ballpark *string
	if d.BallparkFee != nil {
		s := string(*d.BallparkFee)
		ballpark = &s
	}
	stages := make(map[string]time.Time)
	for _, e := range d.StageHistory() {
		stages[string(e.Status)] = e.EnteredAt
	}
	return &dto.DealResponse{
		ID:            d.ID,
		ProjectName:   d.ProjectName,
		ProjectType:   d.ProjectType,
		SongID:        d.SongID,
		ContactID:     d.ContactID,
		Status:        string(d.Status),
		StatusLabel:   d.Status.Label(),
		Territory:     d.Territory,
		Exclusivity:   d.Exclusivity,
		Description:   d.Description,
		Term:          d.Term,
		Usage:         d.Usage,
		TotalFee:      d.TotalFee,
		PublishingFee: d.PublishingFee,
		RecordingFee:  d.RecordingFee,
		BallparkFee:   ballpark,
		Notes:         d.Notes,
		AirDate:       d.AirDate,
		StageDates:    stages,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
