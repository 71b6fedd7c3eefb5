package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/syncdesk-api/internal/application/usecase"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
	apphttp "github.com/jhoicas/syncdesk-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/syncdesk-api/pkg/jwt"
	"github.com/jhoicas/syncdesk-api/pkg/logger"
)

// songRepo repositorio en memoria para las pruebas del router.
type songRepo struct {
	mu    sync.Mutex
	songs map[string]*entity.Song
}

var _ repository.SongRepository = (*songRepo)(nil)

func newSongRepo() *songRepo { return &songRepo{songs: map[string]*entity.Song{}} }

func (r *songRepo) Create(_ context.Context, s *entity.Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.songs[s.ID] = &cp
	return nil
}

func (r *songRepo) GetByID(_ context.Context, userID, id string) (*entity.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.songs[id]
	if !ok || s.UserID != userID {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *songRepo) FindByTitle(ctx context.Context, userID, title, artist string) (*entity.Song, error) {
	all, _ := r.ListAll(ctx, userID)
	for _, s := range all {
		if strings.EqualFold(s.Title, title) && (artist == "" || strings.EqualFold(s.Artist, artist)) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *songRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Song, int, error) {
	all, _ := r.ListAll(ctx, f.UserID)
	var hits []*entity.Song
	for _, s := range all {
		if f.Search == "" || strings.Contains(strings.ToLower(s.Title), strings.ToLower(f.Search)) {
			hits = append(hits, s)
		}
	}
	total := len(hits)
	if f.Offset >= len(hits) {
		return nil, total, nil
	}
	hits = hits[f.Offset:]
	if f.Limit > 0 && len(hits) > f.Limit {
		hits = hits[:f.Limit]
	}
	return hits, total, nil
}

func (r *songRepo) ListAll(_ context.Context, userID string) ([]*entity.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Song
	for _, s := range r.songs {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *songRepo) Update(_ context.Context, s *entity.Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.songs[s.ID]; !ok || cur.UserID != s.UserID {
		return domain.ErrNotFound
	}
	cp := *s
	r.songs[s.ID] = &cp
	return nil
}

func (r *songRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.songs[id]; !ok || cur.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.songs, id)
	return nil
}

func buildRouterApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	apphttp.Router(app, apphttp.RouterDeps{
		SongUC:    usecase.NewSongUseCase(newSongRepo()),
		JWTSecret: testJWTSecret,
		JWTIssuer: testIssuer,
	})
	return app, bearer(t, pkgjwt.Identity{UserID: testUserID}, testIssuer, testExpMin)
}

func doJSON(t *testing.T, app *fiber.App, method, path, auth, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRouter_SongLifecycle(t *testing.T) {
	app, auth := buildRouterApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/songs", auth, `{"title":"Night Drive","artist":"Blue Room","tempo":96}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	env := decode(t, resp)
	require.True(t, env.Success)
	var song struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &song))
	assert.Equal(t, "Night Drive", song.Title)

	resp = doJSON(t, app, http.MethodGet, "/api/songs/"+song.ID, auth, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPut, "/api/songs/"+song.ID, auth, `{"title":"Night Drive (Remaster)"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env = decode(t, resp)
	require.NoError(t, json.Unmarshal(env.Data, &song))
	assert.Equal(t, "Night Drive (Remaster)", song.Title)

	resp = doJSON(t, app, http.MethodDelete, "/api/songs/"+song.ID, auth, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/songs/"+song.ID, auth, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	env = decode(t, resp)
	assert.Equal(t, "Song not found", env.Error.Message)
}

func TestRouter_ListPagination(t *testing.T) {
	app, auth := buildRouterApp(t)
	for _, title := range []string{"A", "B", "C", "D", "E"} {
		resp := doJSON(t, app, http.MethodPost, "/api/songs", auth, `{"title":"`+title+`"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodGet, "/api/songs?page=2&limit=2", auth, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env := decode(t, resp)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.Page)
	assert.Equal(t, 2, env.Meta.Limit)
	assert.Equal(t, 5, env.Meta.Total)
	assert.Equal(t, 3, env.Meta.TotalPages)

	var items []struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "C", items[0].Title)

	// limit fuera de rango se acota a 100; page inválida vuelve a 1.
	resp = doJSON(t, app, http.MethodGet, "/api/songs?page=abc&limit=500", auth, "")
	env = decode(t, resp)
	assert.Equal(t, 1, env.Meta.Page)
	assert.Equal(t, 100, env.Meta.Limit)
	assert.Equal(t, 1, env.Meta.TotalPages)
}

func TestRouter_ValidationErrors(t *testing.T) {
	app, auth := buildRouterApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/songs", auth, `{"artist":"nobody"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := decode(t, resp)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, string(env.Error.Details), `"field":"title"`)

	resp = doJSON(t, app, http.MethodPost, "/api/songs", auth, `{"title":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/songs/not-a-uuid", auth, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_RequiresAuth(t *testing.T) {
	app, _ := buildRouterApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/songs", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_UserScoping(t *testing.T) {
	app, auth := buildRouterApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/songs", auth, `{"title":"Mine"}`)
	env := decode(t, resp)
	var song struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &song))

	other := bearer(t, pkgjwt.Identity{UserID: "00000000-0000-0000-0000-000000000099"}, testIssuer, testExpMin)
	resp = doJSON(t, app, http.MethodGet, "/api/songs/"+song.ID, other, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_StatusOptions(t *testing.T) {
	app, auth := buildRouterApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/deals/status-options", auth, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env := decode(t, resp)

	var opts []struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &opts))
	require.Len(t, opts, 9)
	assert.Equal(t, "new_request", opts[0].Value)
	assert.Equal(t, "New Request", opts[0].Label)
}
