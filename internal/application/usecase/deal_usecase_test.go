package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

type dealFixture struct {
	uc      *DealUseCase
	deals   *memDeals
	song    *entity.Song
	contact *entity.Contact
}

func newDealFixture(t *testing.T) *dealFixture {
	freezeClock(t, clock)
	f := &dealFixture{deals: newMemDeals(), song: seedSong("Neon Rain"), contact: seedContact("Ana Ruiz")}
	f.uc = NewDealUseCase(f.deals, newMemSongs(f.song), newMemContacts(f.contact))
	return f
}

func TestParseDealStatus(t *testing.T) {
	tests := []struct {
		in   string
		want entity.DealStatus
	}{
		{"", entity.StatusNewRequest},
		{"Quoted", entity.StatusQuoted},
		{"out for signature", entity.StatusOutForSignature},
		{"PAYMENT-RECEIVED", entity.StatusPaymentReceived},
		{" not_used ", entity.StatusNotUsed},
	}
	for _, tt := range tests {
		got, err := ParseDealStatus(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseDealStatus("archived")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Fields[0].Field)
}

func TestDealCreate_NormalizesStatusAndStampsStage(t *testing.T) {
	f := newDealFixture(t)

	res, err := f.uc.Create(context.Background(), testUser, dto.CreateDealRequest{
		ProjectName: "  Summer Campaign ",
		SongID:      f.song.ID,
		ContactID:   f.contact.ID,
		Status:      "Being Drafted",
		TotalFee:    decPtr(4500),
		BallparkFee: "5K_10K",
	})
	require.NoError(t, err)
	assert.Equal(t, "Summer Campaign", res.ProjectName)
	assert.Equal(t, "being_drafted", res.Status)
	assert.Equal(t, "Being Drafted", res.StatusLabel)
	require.NotNil(t, res.BallparkFee)
	assert.Equal(t, "5k_10k", *res.BallparkFee)
	assert.Equal(t, clock, res.StageDates["being_drafted"])
	assert.Equal(t, clock, res.StageDates["new_request"])

	stored := f.deals.items[res.ID]
	require.NotNil(t, stored)
	assert.Equal(t, testUser, stored.UserID)
}

func TestDealCreate_Rejections(t *testing.T) {
	f := newDealFixture(t)
	base := dto.CreateDealRequest{ProjectName: "Spot", SongID: f.song.ID, ContactID: f.contact.ID}

	t.Run("missing project name", func(t *testing.T) {
		in := base
		in.ProjectName = ""
		_, err := f.uc.Create(context.Background(), testUser, in)
		ae, ok := domain.As(err)
		require.True(t, ok)
		assert.Equal(t, domain.CodeValidation, ae.Code)
	})
	t.Run("unknown status", func(t *testing.T) {
		in := base
		in.Status = "archived"
		_, err := f.uc.Create(context.Background(), testUser, in)
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve)
	})
	t.Run("negative fee", func(t *testing.T) {
		in := base
		in.TotalFee = decPtr(-1)
		_, err := f.uc.Create(context.Background(), testUser, in)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "totalFee", ve.Fields[0].Field)
	})
	t.Run("song of another user", func(t *testing.T) {
		in := base
		in.SongID = uuid.NewString()
		_, err := f.uc.Create(context.Background(), testUser, in)
		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "Song not found", nf.Message)
	})
	t.Run("contact missing", func(t *testing.T) {
		in := base
		in.ContactID = uuid.NewString()
		_, err := f.uc.Create(context.Background(), testUser, in)
		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "Contact", nf.Entity)
	})
	assert.Empty(t, f.deals.items)
}

func TestDealUpdateStatus_KeepsFirstStageDate(t *testing.T) {
	f := newDealFixture(t)
	res, err := f.uc.Create(context.Background(), testUser, dto.CreateDealRequest{
		ProjectName: "Trailer", SongID: f.song.ID, ContactID: f.contact.ID, Status: "quoted",
	})
	require.NoError(t, err)

	later := clock.Add(72 * time.Hour)
	freezeClock(t, later)
	_, err = f.uc.UpdateStatus(context.Background(), testUser, res.ID, dto.UpdateDealStatusRequest{Status: "use confirmed"})
	require.NoError(t, err)

	freezeClock(t, later.Add(24*time.Hour))
	upd, err := f.uc.UpdateStatus(context.Background(), testUser, res.ID, dto.UpdateDealStatusRequest{Status: "Quoted"})
	require.NoError(t, err)
	assert.Equal(t, "quoted", upd.Status)
	assert.Equal(t, clock, upd.StageDates["quoted"], "la fecha de etapa no se sobrescribe")
	assert.Equal(t, later, upd.StageDates["use_confirmed"])
	assert.Equal(t, later.Add(24*time.Hour), upd.UpdatedAt)
}

func TestDealUpdate_PartialAndNotFound(t *testing.T) {
	f := newDealFixture(t)
	res, err := f.uc.Create(context.Background(), testUser, dto.CreateDealRequest{
		ProjectName: "Trailer", SongID: f.song.ID, ContactID: f.contact.ID, Territory: "Worldwide",
	})
	require.NoError(t, err)

	upd, err := f.uc.Update(context.Background(), testUser, res.ID, dto.UpdateDealRequest{
		Status:   strPtr("completed"),
		TotalFee: decPtr(1200),
	})
	require.NoError(t, err)
	assert.Equal(t, "Worldwide", upd.Territory)
	assert.Equal(t, "completed", upd.Status)
	assert.True(t, upd.TotalFee.Valid)
	assert.Contains(t, upd.StageDates, "completed")

	_, err = f.uc.Update(context.Background(), "otro-usuario", res.ID, dto.UpdateDealRequest{Notes: strPtr("x")})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Deal not found", nf.Message)

	err = f.uc.Delete(context.Background(), testUser, uuid.NewString())
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Deal", nf.Entity)
}

func TestDealHistory(t *testing.T) {
	f := newDealFixture(t)
	d := &entity.Deal{
		ID:         uuid.NewString(),
		UserID:     testUser,
		Status:     entity.StatusQuoted,
		CreatedAt:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		QuotedDate: func() *time.Time { t := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC); return &t }(),
	}
	f.deals.items[d.ID] = d

	h, err := f.uc.History(context.Background(), testUser, d.ID)
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, "new_request", h[0].Status)
	assert.Equal(t, 3, h[0].DaysInStage)
	assert.Equal(t, "Quoted", h[1].Label)
	assert.Equal(t, 11, h[1].DaysInStage)
}

func TestStatusOptions(t *testing.T) {
	opts := StatusOptions()
	require.Len(t, opts, len(entity.PipelineStatuses))
	assert.Equal(t, dto.StatusOption{Value: "new_request", Label: "New Request"}, opts[0])
}
