package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
	"github.com/jhoicas/syncdesk-api/internal/domain/templating"
)

// TemplateUseCase plantillas de documentos y de correo. Las variables se recalculan
// en cada escritura a partir del contenido.
type TemplateUseCase struct {
	templates repository.TemplateRepository
	emails    repository.EmailTemplateRepository
	deals     repository.DealRepository
	songs     repository.SongRepository
	contacts  repository.ContactRepository
}

// NewTemplateUseCase construye el caso de uso.
func NewTemplateUseCase(
	templates repository.TemplateRepository,
	emails repository.EmailTemplateRepository,
	deals repository.DealRepository,
	songs repository.SongRepository,
	contacts repository.ContactRepository,
) *TemplateUseCase {
	return &TemplateUseCase{templates: templates, emails: emails, deals: deals, songs: songs, contacts: contacts}
}

// ── Document templates ───────────────────────────────────────────────────────

func (uc *TemplateUseCase) Create(ctx context.Context, userID string, in dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	t := now()
	tpl := &entity.Template{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		Type:      entity.TemplateType(in.Type),
		Content:   templating.Normalize(in.Content),
		Variables: templating.ExtractVariables(in.Content),
		CreatedAt: t,
		UpdatedAt: t,
	}
	if tpl.Type == "" {
		tpl.Type = entity.TemplateOther
	}
	if err := uc.templates.Create(ctx, tpl); err != nil {
		return nil, err
	}
	return toTemplateResponse(tpl), nil
}

func (uc *TemplateUseCase) GetByID(ctx context.Context, userID, id string) (*dto.TemplateResponse, error) {
	tpl, err := uc.getTemplate(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toTemplateResponse(tpl), nil
}

func (uc *TemplateUseCase) getTemplate(ctx context.Context, userID, id string) (*entity.Template, error) {
	tpl, err := uc.templates.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, domain.NewNotFoundError("Template")
	}
	return tpl, nil
}

func (uc *TemplateUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	tpl, err := uc.getTemplate(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		tpl.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		tpl.Type = entity.TemplateType(*in.Type)
	}
	if in.Content != nil {
		tpl.Content = templating.Normalize(*in.Content)
	}
	tpl.Variables = templating.ExtractVariables(tpl.Content)
	tpl.UpdatedAt = now()
	if err := uc.templates.Update(ctx, tpl); err != nil {
		return nil, notFound("Template", err)
	}
	return toTemplateResponse(tpl), nil
}

func (uc *TemplateUseCase) List(ctx context.Context, userID, search, templateType string, p dto.PageParams) (*dto.PageResult[dto.TemplateResponse], error) {
	tt := entity.TemplateType(strings.TrimSpace(templateType))
	if tt != "" && !tt.Valid() {
		return nil, invalidField("type", "must be one of: license quote agreement invoice other")
	}
	list, total, err := uc.templates.List(ctx, listFilter(userID, search, p), tt)
	if err != nil {
		return nil, err
	}
	return toPage(list, total, func(t *entity.Template) dto.TemplateResponse { return *toTemplateResponse(t) }), nil
}

func (uc *TemplateUseCase) Delete(ctx context.Context, userID, id string) error {
	return notFound("Template", uc.templates.Delete(ctx, userID, id))
}

// Render sustituye las variables del contenido. Los valores explícitos prevalecen sobre los del deal.
func (uc *TemplateUseCase) Render(ctx context.Context, userID, id string, in dto.RenderTemplateRequest) (*dto.RenderTemplateResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	tpl, err := uc.getTemplate(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	values, err := uc.values(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	res := templating.Render(tpl.Content, values)
	return &dto.RenderTemplateResponse{Content: res.Text, Missing: templating.MergeMissing(res)}, nil
}

// ExtractVariables variables de un texto libre.
func (uc *TemplateUseCase) ExtractVariables(in dto.ExtractVariablesRequest) []string {
	return templating.ExtractVariables(in.Content)
}

// ── Email templates ──────────────────────────────────────────────────────────

// normalizeStage acepta "general" o cualquier variante de un estado del pipeline.
func normalizeStage(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, entity.EmailStageGeneral) {
		return entity.EmailStageGeneral, nil
	}
	st, ok := entity.NormalizeDealStatus(raw)
	if !ok {
		return "", invalidField("stage", "must be a pipeline status or general")
	}
	return string(st), nil
}

func stageLabel(stage string) string {
	if stage == entity.EmailStageGeneral {
		return "General"
	}
	return entity.StatusLabel(stage)
}

func (uc *TemplateUseCase) CreateEmail(ctx context.Context, userID string, in dto.CreateEmailTemplateRequest) (*dto.EmailTemplateResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	stage, err := normalizeStage(in.Stage)
	if err != nil {
		return nil, err
	}
	t := now()
	et := &entity.EmailTemplate{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		Stage:     stage,
		Subject:   templating.Normalize(in.Subject),
		Body:      templating.Normalize(in.Body),
		Variables: templating.ExtractVariables(in.Subject, in.Body),
		CreatedAt: t,
		UpdatedAt: t,
	}
	if err := uc.emails.Create(ctx, et); err != nil {
		return nil, err
	}
	return toEmailTemplateResponse(et), nil
}

func (uc *TemplateUseCase) GetEmail(ctx context.Context, userID, id string) (*dto.EmailTemplateResponse, error) {
	et, err := uc.getEmail(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toEmailTemplateResponse(et), nil
}

func (uc *TemplateUseCase) getEmail(ctx context.Context, userID, id string) (*entity.EmailTemplate, error) {
	et, err := uc.emails.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if et == nil {
		return nil, domain.NewNotFoundError("Email template")
	}
	return et, nil
}

func (uc *TemplateUseCase) UpdateEmail(ctx context.Context, userID, id string, in dto.UpdateEmailTemplateRequest) (*dto.EmailTemplateResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	et, err := uc.getEmail(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		et.Name = strings.TrimSpace(*in.Name)
	}
	if in.Stage != nil {
		if et.Stage, err = normalizeStage(*in.Stage); err != nil {
			return nil, err
		}
	}
	if in.Subject != nil {
		et.Subject = templating.Normalize(*in.Subject)
	}
	if in.Body != nil {
		et.Body = templating.Normalize(*in.Body)
	}
	et.Variables = templating.ExtractVariables(et.Subject, et.Body)
	et.UpdatedAt = now()
	if err := uc.emails.Update(ctx, et); err != nil {
		return nil, notFound("Email template", err)
	}
	return toEmailTemplateResponse(et), nil
}

func (uc *TemplateUseCase) ListEmails(ctx context.Context, userID, search, stage string, p dto.PageParams) (*dto.PageResult[dto.EmailTemplateResponse], error) {
	var st string
	if strings.TrimSpace(stage) != "" {
		var err error
		if st, err = normalizeStage(stage); err != nil {
			return nil, err
		}
	}
	list, total, err := uc.emails.List(ctx, listFilter(userID, search, p), st)
	if err != nil {
		return nil, err
	}
	return toPage(list, total, func(t *entity.EmailTemplate) dto.EmailTemplateResponse { return *toEmailTemplateResponse(t) }), nil
}

func (uc *TemplateUseCase) DeleteEmail(ctx context.Context, userID, id string) error {
	return notFound("Email template", uc.emails.Delete(ctx, userID, id))
}

// RenderEmail renderiza asunto y cuerpo; Missing une los faltantes de ambos.
func (uc *TemplateUseCase) RenderEmail(ctx context.Context, userID, id string, in dto.RenderTemplateRequest) (*dto.RenderTemplateResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	et, err := uc.getEmail(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	values, err := uc.values(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	subject := templating.Render(et.Subject, values)
	body := templating.Render(et.Body, values)
	return &dto.RenderTemplateResponse{
		Subject: subject.Text,
		Content: body.Text,
		Missing: templating.MergeMissing(subject, body),
	}, nil
}

// values combina el contexto del deal (si se indicó) con los valores explícitos.
func (uc *TemplateUseCase) values(ctx context.Context, userID string, in dto.RenderTemplateRequest) (map[string]string, error) {
	values := map[string]string{}
	if in.DealID != "" {
		d, err := uc.deals.GetByID(ctx, userID, in.DealID)
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, domain.NewNotFoundError("Deal")
		}
		song, err := uc.songs.GetByID(ctx, userID, d.SongID)
		if err != nil {
			return nil, err
		}
		contact, err := uc.contacts.GetByID(ctx, userID, d.ContactID)
		if err != nil {
			return nil, err
		}
		values = DealContextValues(d, song, contact)
	}
	for k, v := range in.Values {
		values[k] = v
	}
	return values, nil
}

// DealContextValues valores derivados de un deal para el render de plantillas.
// Los campos vacíos no se incluyen, de modo que aparecen como faltantes.
func DealContextValues(d *entity.Deal, song *entity.Song, contact *entity.Contact) map[string]string {
	v := map[string]string{"today": now().Format("2006-01-02")}
	set := func(k, s string) {
		if strings.TrimSpace(s) != "" {
			v[k] = s
		}
	}
	set("projectName", d.ProjectName)
	set("projectType", d.ProjectType)
	set("territory", d.Territory)
	set("term", d.Term)
	set("usage", d.Usage)
	set("status", d.Status.Label())
	if d.TotalFee.Valid {
		set("totalFee", d.TotalFee.Decimal.StringFixed(2))
	}
	if d.AirDate != nil {
		set("airDate", d.AirDate.Format("2006-01-02"))
	}
	if song != nil {
		set("songTitle", song.Title)
		set("songArtist", song.Artist)
	}
	if contact != nil {
		set("contactName", contact.Name)
		set("contactEmail", contact.Email)
		set("contactCompany", contact.Company)
	}
	return v
}

func toTemplateResponse(t *entity.Template) *dto.TemplateResponse {
	vars := t.Variables
	if vars == nil {
		vars = []string{}
	}
	return &dto.TemplateResponse{
		ID:        t.ID,
		Name:      t.Name,
		Type:      string(t.Type),
		Content:   t.Content,
		Variables: vars,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toEmailTemplateResponse(t *entity.EmailTemplate) *dto.EmailTemplateResponse {
	vars := t.Variables
	if vars == nil {
		vars = []string{}
	}
	return &dto.EmailTemplateResponse{
		ID:         t.ID,
		Name:       t.Name,
		Stage:      t.Stage,
		StageLabel: stageLabel(t.Stage),
		Subject:    t.Subject,
		Body:       t.Body,
		Variables:  vars,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
