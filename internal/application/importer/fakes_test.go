package importer_test

import (
	"context"
	"io"
	"strings"

	"github.com/jhoicas/syncdesk-api/internal/application/importer"
	"github.com/jhoicas/syncdesk-api/internal/application/ports"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

// memDB base en memoria; cada fila trabaja sobre una copia que solo se confirma si no hay error.
type memDB struct {
	songs    []*entity.Song
	contacts []*entity.Contact
	deals    []*entity.Deal
	txCount  int
}

func (db *memDB) clone() *memDB {
	return &memDB{
		songs:    append([]*entity.Song(nil), db.songs...),
		contacts: append([]*entity.Contact(nil), db.contacts...),
		deals:    append([]*entity.Deal(nil), db.deals...),
	}
}

func (db *memDB) RunImportRow(ctx context.Context, fn func(r importer.Repos) error) error {
	db.txCount++
	tx := db.clone()
	if err := fn(importer.Repos{Songs: &memSongs{tx}, Contacts: &memContacts{tx}, Deals: &memDeals{tx}}); err != nil {
		return err
	}
	db.songs, db.contacts, db.deals = tx.songs, tx.contacts, tx.deals
	return nil
}

type memSongs struct{ db *memDB }

var _ repository.SongRepository = (*memSongs)(nil)

func (m *memSongs) Create(_ context.Context, s *entity.Song) error {
	m.db.songs = append(m.db.songs, s)
	return nil
}
func (m *memSongs) GetByID(_ context.Context, userID, id string) (*entity.Song, error) {
	for _, s := range m.db.songs {
		if s.UserID == userID && s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}
func (m *memSongs) FindByTitle(_ context.Context, userID, title, artist string) (*entity.Song, error) {
	for _, s := range m.db.songs {
		if s.UserID == userID && strings.EqualFold(s.Title, title) && (artist == "" || strings.EqualFold(s.Artist, artist)) {
			return s, nil
		}
	}
	return nil, nil
}
func (m *memSongs) List(context.Context, repository.ListFilter) ([]*entity.Song, int, error) {
	return m.db.songs, len(m.db.songs), nil
}
func (m *memSongs) ListAll(context.Context, string) ([]*entity.Song, error) { return m.db.songs, nil }
func (m *memSongs) Update(context.Context, *entity.Song) error              { return nil }
func (m *memSongs) Delete(context.Context, string, string) error            { return nil }

type memContacts struct{ db *memDB }

var _ repository.ContactRepository = (*memContacts)(nil)

func (m *memContacts) Create(_ context.Context, c *entity.Contact) error {
	m.db.contacts = append(m.db.contacts, c)
	return nil
}
func (m *memContacts) GetByID(_ context.Context, userID, id string) (*entity.Contact, error) {
	for _, c := range m.db.contacts {
		if c.UserID == userID && c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memContacts) FindByEmail(_ context.Context, userID, email string) (*entity.Contact, error) {
	for _, c := range m.db.contacts {
		if c.UserID == userID && strings.EqualFold(c.Email, email) {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memContacts) FindByName(_ context.Context, userID, name string) (*entity.Contact, error) {
	for _, c := range m.db.contacts {
		if c.UserID == userID && strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memContacts) List(context.Context, repository.ListFilter) ([]*entity.Contact, int, error) {
	return m.db.contacts, len(m.db.contacts), nil
}
func (m *memContacts) ListAll(context.Context, string) ([]*entity.Contact, error) {
	return m.db.contacts, nil
}
func (m *memContacts) Update(context.Context, *entity.Contact) error { return nil }
func (m *memContacts) Delete(context.Context, string, string) error  { return nil }

type memDeals struct{ db *memDB }

var _ repository.DealRepository = (*memDeals)(nil)

func (m *memDeals) Create(_ context.Context, d *entity.Deal) error {
	m.db.deals = append(m.db.deals, d)
	return nil
}
func (m *memDeals) GetByID(context.Context, string, string) (*entity.Deal, error) { return nil, nil }
func (m *memDeals) List(context.Context, repository.DealFilter) ([]*entity.Deal, int, error) {
	return m.db.deals, len(m.db.deals), nil
}
func (m *memDeals) ListAll(context.Context, string) ([]*entity.Deal, error) { return m.db.deals, nil }
func (m *memDeals) Update(context.Context, *entity.Deal) error              { return nil }
func (m *memDeals) Delete(context.Context, string, string) error            { return nil }

// stubCodec devuelve una hoja fija.
type stubCodec struct{ sheet *ports.Sheet }

func (c stubCodec) Parse(string, io.Reader) (*ports.Sheet, error) { return c.sheet, nil }
func (c stubCodec) WriteXLSX(io.Writer, []ports.Table) error      { return nil }
