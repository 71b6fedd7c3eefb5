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

// PitchUseCase propuestas enviadas por deal.
type PitchUseCase struct {
	pitches repository.PitchRepository
	deals   repository.DealRepository
}

func NewPitchUseCase(pitches repository.PitchRepository, deals repository.DealRepository) *PitchUseCase {
	return &PitchUseCase{pitches: pitches, deals: deals}
}

// Create registra un pitch; sin fecha de envío se usa la actual.
func (uc *PitchUseCase) Create(ctx context.Context, userID string, in dto.CreatePitchRequest) (*dto.PitchResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := requireDeal(ctx, uc.deals, userID, in.DealID); err != nil {
		return nil, err
	}
	t := now()
	p := &entity.Pitch{
		ID:           uuid.New().String(),
		UserID:       userID,
		DealID:       in.DealID,
		Status:       entity.PitchStatus(strings.TrimSpace(in.Status)),
		FollowUpDate: in.FollowUpDate.Ptr(),
		Notes:        in.Notes,
		CreatedAt:    t,
		UpdatedAt:    t,
	}
	if sd := in.SubmissionDate.Ptr(); sd != nil {
		p.SubmissionDate = *sd
	} else {
		p.SubmissionDate = t
	}
	if p.Status == "" {
		p.Status = entity.PitchPending
	}
	if err := uc.pitches.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPitchResponse(p), nil
}

func (uc *PitchUseCase) GetByID(ctx context.Context, userID, id string) (*dto.PitchResponse, error) {
	p, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toPitchResponse(p), nil
}

func (uc *PitchUseCase) get(ctx context.Context, userID, id string) (*entity.Pitch, error) {
	p, err := uc.pitches.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFoundError("Pitch")
	}
	return p, nil
}

func (uc *PitchUseCase) Update(ctx context.Context, userID, id string, in dto.UpdatePitchRequest) (*dto.PitchResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	p, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if sd := in.SubmissionDate.Ptr(); sd != nil {
		p.SubmissionDate = *sd
	}
	if in.Status != nil {
		p.Status = entity.PitchStatus(*in.Status)
	}
	if in.FollowUpDate != nil {
		p.FollowUpDate = in.FollowUpDate.Ptr()
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	p.UpdatedAt = now()
	if err := uc.pitches.Update(ctx, p); err != nil {
		return nil, notFound("Pitch", err)
	}
	return toPitchResponse(p), nil
}

// PitchListFilter filtros opcionales del listado.
type PitchListFilter struct {
	Search string
	DealID string
	Status string
}

func (uc *PitchUseCase) List(ctx context.Context, userID string, f PitchListFilter, p dto.PageParams) (*dto.PageResult[dto.PitchResponse], error) {
	status := entity.PitchStatus(strings.TrimSpace(f.Status))
	if status != "" && !status.Valid() {
		return nil, invalidField("status", "must be one of: pending responded no_response")
	}
	list, total, err := uc.pitches.List(ctx, repository.PitchFilter{
		ListFilter: listFilter(userID, f.Search, p),
		DealID:     f.DealID,
		Status:     status,
	})
	if err != nil {
		return nil, err
	}
	return toPage(list, total, func(p *entity.Pitch) dto.PitchResponse { return *toPitchResponse(p) }), nil
}

func (uc *PitchUseCase) Delete(ctx context.Context, userID, id string) error {
	return notFound("Pitch", uc.pitches.Delete(ctx, userID, id))
}

func toPitchResponse(p *entity.Pitch) *dto.PitchResponse {
	return &dto.PitchResponse{
		ID:             p.ID,
		DealID:         p.DealID,
		SubmissionDate: p.SubmissionDate,
		Status:         string(p.Status),
		FollowUpDate:   p.FollowUpDate,
		FollowUpDue:    p.FollowUpDue(now()),
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
