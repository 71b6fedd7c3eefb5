package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/application/ports"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

const testUser = "user-1"

var clock = time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC)

// freezeClock fija el reloj del paquete durante el test.
func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

// ── Songs / Contacts ─────────────────────────────────────────────────────────

type memSongs struct {
	repository.SongRepository
	items map[string]*entity.Song
}

func newMemSongs(songs ...*entity.Song) *memSongs {
	m := &memSongs{items: map[string]*entity.Song{}}
	for _, s := range songs {
		m.items[s.ID] = s
	}
	return m
}

func (m *memSongs) GetByID(_ context.Context, userID, id string) (*entity.Song, error) {
	if s, ok := m.items[id]; ok && s.UserID == userID {
		return s, nil
	}
	return nil, nil
}

type memContacts struct {
	repository.ContactRepository
	items map[string]*entity.Contact
}

func newMemContacts(contacts ...*entity.Contact) *memContacts {
	m := &memContacts{items: map[string]*entity.Contact{}}
	for _, c := range contacts {
		m.items[c.ID] = c
	}
	return m
}

func (m *memContacts) GetByID(_ context.Context, userID, id string) (*entity.Contact, error) {
	if c, ok := m.items[id]; ok && c.UserID == userID {
		return c, nil
	}
	return nil, nil
}

// ── Deals ────────────────────────────────────────────────────────────────────

type memDeals struct {
	repository.DealRepository
	items map[string]*entity.Deal
}

func newMemDeals(deals ...*entity.Deal) *memDeals {
	m := &memDeals{items: map[string]*entity.Deal{}}
	for _, d := range deals {
		m.items[d.ID] = d
	}
	return m
}

func (m *memDeals) Create(_ context.Context, d *entity.Deal) error {
	cp := *d
	m.items[d.ID] = &cp
	return nil
}

func (m *memDeals) GetByID(_ context.Context, userID, id string) (*entity.Deal, error) {
	if d, ok := m.items[id]; ok && d.UserID == userID {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

func (m *memDeals) Update(_ context.Context, d *entity.Deal) error {
	if _, ok := m.items[d.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *d
	m.items[d.ID] = &cp
	return nil
}

func (m *memDeals) Delete(_ context.Context, userID, id string) error {
	if d, ok := m.items[id]; !ok || d.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

// ── Templates ────────────────────────────────────────────────────────────────

type memTemplates struct {
	repository.TemplateRepository
	items map[string]*entity.Template
}

func (m *memTemplates) Create(_ context.Context, t *entity.Template) error {
	m.items[t.ID] = t
	return nil
}

func (m *memTemplates) GetByID(_ context.Context, userID, id string) (*entity.Template, error) {
	if t, ok := m.items[id]; ok && t.UserID == userID {
		return t, nil
	}
	return nil, nil
}

type memEmails struct {
	repository.EmailTemplateRepository
	items map[string]*entity.EmailTemplate
}

func (m *memEmails) Create(_ context.Context, t *entity.EmailTemplate) error {
	m.items[t.ID] = t
	return nil
}

func (m *memEmails) GetByID(_ context.Context, userID, id string) (*entity.EmailTemplate, error) {
	if t, ok := m.items[id]; ok && t.UserID == userID {
		return t, nil
	}
	return nil, nil
}

// ── Workflows / Playlists ────────────────────────────────────────────────────

type memWorkflows struct {
	repository.WorkflowRepository
	items map[string]*entity.WorkflowAutomation
}

func (m *memWorkflows) Create(_ context.Context, w *entity.WorkflowAutomation) error {
	m.items[w.ID] = w
	return nil
}

func (m *memWorkflows) GetByID(_ context.Context, userID, id string) (*entity.WorkflowAutomation, error) {
	if w, ok := m.items[id]; ok && w.UserID == userID {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (m *memWorkflows) Update(_ context.Context, w *entity.WorkflowAutomation) error {
	m.items[w.ID] = w
	return nil
}

type memPlaylists struct {
	repository.PlaylistRepository
	items map[string]*entity.Playlist
	adds  int
}

func (m *memPlaylists) Create(_ context.Context, p *entity.Playlist) error {
	cp := *p
	cp.SongIDs = append([]string(nil), p.SongIDs...)
	m.items[p.ID] = &cp
	return nil
}

func (m *memPlaylists) GetByID(_ context.Context, userID, id string) (*entity.Playlist, error) {
	if p, ok := m.items[id]; ok && p.UserID == userID {
		cp := *p
		cp.SongIDs = append([]string(nil), p.SongIDs...)
		return &cp, nil
	}
	return nil, nil
}

func (m *memPlaylists) AddSong(_ context.Context, playlistID, songID string) error {
	m.adds++
	p := m.items[playlistID]
	p.SongIDs = append(p.SongIDs, songID)
	return nil
}

func (m *memPlaylists) RemoveSong(_ context.Context, playlistID, songID string) error {
	p := m.items[playlistID]
	for i, id := range p.SongIDs {
		if id == songID {
			p.SongIDs = append(p.SongIDs[:i], p.SongIDs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── Attachments ──────────────────────────────────────────────────────────────

type memAttachments struct {
	repository.AttachmentRepository
	items     map[string]*entity.Attachment
	createErr error
}

func (m *memAttachments) Create(_ context.Context, a *entity.Attachment) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.items[a.ID] = a
	return nil
}

func (m *memAttachments) GetByID(_ context.Context, userID, id string) (*entity.Attachment, error) {
	if a, ok := m.items[id]; ok && a.UserID == userID {
		return a, nil
	}
	return nil, nil
}

func (m *memAttachments) Delete(_ context.Context, _, id string) error {
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

// memFileStore guarda en memoria y respeta el límite de bytes como el almacenamiento en disco.
type memFileStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemFileStore() *memFileStore { return &memFileStore{files: map[string][]byte{}} }

func (s *memFileStore) Save(_ context.Context, key string, r io.Reader, maxBytes int64) (*ports.StoredFile, error) {
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && int64(len(b)) > maxBytes {
		return nil, ports.ErrFileTooLarge
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = b
	return &ports.StoredFile{Key: key, Size: int64(len(b)), Checksum: "sum"}, nil
}

func (s *memFileStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *memFileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.files, key)
	return nil
}

// ── LLM ──────────────────────────────────────────────────────────────────────

type stubLLM struct {
	fn func(ctx context.Context, song *entity.Song, projectType, desc string) (*dto.SyncSuitabilityDTO, error)
}

func (s stubLLM) AnalyzeSyncSuitability(ctx context.Context, song *entity.Song, projectType, desc string) (*dto.SyncSuitabilityDTO, error) {
	return s.fn(ctx, song, projectType, desc)
}

// ── Fixtures ─────────────────────────────────────────────────────────────────

func seedSong(title string) *entity.Song {
	return &entity.Song{ID: uuid.NewString(), UserID: testUser, Title: title, Artist: "The Wires"}
}

func seedContact(name string) *entity.Contact {
	return &entity.Contact{ID: uuid.NewString(), UserID: testUser, Name: name, Email: "sup@agency.tv", Company: "Agency"}
}

func decPtr(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

func strPtr(s string) *string { return &s }

var errBoom = errors.New("boom")

func (m *memSongs) Create(_ context.Context, s *entity.Song) error {
	m.items[s.ID] = s
	return nil
}

type memPayments struct {
	repository.PaymentRepository
	items map[string]*entity.Payment
}

func (m *memPayments) Create(_ context.Context, p *entity.Payment) error {
	m.items[p.ID] = p
	return nil
}
