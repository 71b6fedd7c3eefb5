package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

type templateFixture struct {
	uc   *TemplateUseCase
	deal *entity.Deal
}

func newTemplateFixture(t *testing.T) *templateFixture {
	freezeClock(t, clock)
	song := seedSong("Neon Rain")
	contact := seedContact("Ana Ruiz")
	air := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	deal := &entity.Deal{
		ID: uuid.NewString(), UserID: testUser, ProjectName: "Summer Campaign",
		SongID: song.ID, ContactID: contact.ID, Status: entity.StatusQuoted,
		TotalFee: decimal.NewNullDecimal(decimal.NewFromInt(4500)), AirDate: &air,
	}
	uc := NewTemplateUseCase(
		&memTemplates{items: map[string]*entity.Template{}},
		&memEmails{items: map[string]*entity.EmailTemplate{}},
		newMemDeals(deal), newMemSongs(song), newMemContacts(contact),
	)
	return &templateFixture{uc: uc, deal: deal}
}

func TestTemplateCreate_ExtractsVariables(t *testing.T) {
	f := newTemplateFixture(t)
	res, err := f.uc.Create(context.Background(), testUser, dto.CreateTemplateRequest{
		Name:    "License",
		Content: "Dear {{ contactName }}, {{songTitle}} for {{projectName}}. Thanks {{contactName}}",
	})
	require.NoError(t, err)
	assert.Equal(t, "other", res.Type)
	assert.Equal(t, []string{"contactName", "songTitle", "projectName"}, res.Variables)
	assert.Equal(t, "Dear {{contactName}}, {{songTitle}} for {{projectName}}. Thanks {{contactName}}", res.Content)
}

func TestTemplateRender_DealContextAndMissing(t *testing.T) {
	f := newTemplateFixture(t)
	tpl, err := f.uc.Create(context.Background(), testUser, dto.CreateTemplateRequest{
		Name:    "Quote",
		Content: "{{songTitle}} by {{songArtist}} for {{projectName}}: ${{totalFee}}. Term: {{term}}. Signed {{signer}}",
	})
	require.NoError(t, err)

	out, err := f.uc.Render(context.Background(), testUser, tpl.ID, dto.RenderTemplateRequest{
		DealID: f.deal.ID,
		Values: map[string]string{"signer": "Luis", "projectName": "Override"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Neon Rain by The Wires for Override: $4500.00. Term: {{term}}. Signed Luis", out.Content)
	assert.Equal(t, []string{"term"}, out.Missing)
}

func TestTemplateRender_UnknownDeal(t *testing.T) {
	f := newTemplateFixture(t)
	tpl, err := f.uc.Create(context.Background(), testUser, dto.CreateTemplateRequest{Name: "x", Content: "{{a}}"})
	require.NoError(t, err)

	_, err = f.uc.Render(context.Background(), testUser, tpl.ID, dto.RenderTemplateRequest{DealID: uuid.NewString()})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Deal", nf.Entity)

	_, err = f.uc.Render(context.Background(), testUser, uuid.NewString(), dto.RenderTemplateRequest{})
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Template", nf.Entity)
}

func TestEmailTemplate_StageAndRender(t *testing.T) {
	f := newTemplateFixture(t)

	_, err := f.uc.CreateEmail(context.Background(), testUser, dto.CreateEmailTemplateRequest{Name: "bad", Stage: "archived"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)

	et, err := f.uc.CreateEmail(context.Background(), testUser, dto.CreateEmailTemplateRequest{
		Name:    "Quote sent",
		Stage:   "Quoted",
		Subject: "Quote for {{projectName}}",
		Body:    "Hi {{contactName}}, airing {{airDate}}. {{missingOne}}",
	})
	require.NoError(t, err)
	assert.Equal(t, "quoted", et.Stage)
	assert.Equal(t, "Quoted", et.StageLabel)
	assert.Equal(t, []string{"projectName", "contactName", "airDate", "missingOne"}, et.Variables)

	out, err := f.uc.RenderEmail(context.Background(), testUser, et.ID, dto.RenderTemplateRequest{DealID: f.deal.ID})
	require.NoError(t, err)
	assert.Equal(t, "Quote for Summer Campaign", out.Subject)
	assert.Equal(t, "Hi Ana Ruiz, airing 2026-06-01. {{missingOne}}", out.Content)
	assert.Equal(t, []string{"missingOne"}, out.Missing)

	general, err := f.uc.CreateEmail(context.Background(), testUser, dto.CreateEmailTemplateRequest{Name: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "General", general.StageLabel)
}

func TestExtractVariables(t *testing.T) {
	uc := &TemplateUseCase{}
	assert.Equal(t, []string{"a", "b"}, uc.ExtractVariables(dto.ExtractVariablesRequest{Content: "{{a}} {{b}} {{a}}"}))
	assert.Empty(t, uc.ExtractVariables(dto.ExtractVariablesRequest{Content: "sin variables"}))
}
