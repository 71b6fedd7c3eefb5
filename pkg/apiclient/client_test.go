package apiclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/syncdesk-api/pkg/apiclient"
)

func TestInvalidationKeys(t *testing.T) {
	tests := []struct {
		collection string
		want       []string
	}{
		{apiclient.Deals, []string{"deals", "dashboard", "pitches", "payments", "calendar-events"}},
		{apiclient.Payments, []string{"payments", "dashboard"}},
		{apiclient.Import, []string{"deals", "songs", "contacts", "dashboard"}},
		{apiclient.Templates, []string{"templates"}},
		{"unknown", []string{"unknown"}},
	}
	for _, tt := range tests {
		t.Run(tt.collection, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, apiclient.InvalidationKeys(tt.collection))
		})
	}

	// El resultado es una copia.
	keys := apiclient.InvalidationKeys(apiclient.Payments)
	keys[0] = "mutated"
	assert.Equal(t, "payments", apiclient.InvalidationKeys(apiclient.Payments)[0])
}

func TestQueryCache(t *testing.T) {
	q := apiclient.NewQueryCache()
	q.Set("songs", "/api/songs", []byte(`a`))
	q.Set("songs", "/api/songs?page=2", []byte(`b`))
	q.Set("deals", "/api/deals", []byte(`c`))
	assert.Equal(t, 3, q.Len())

	b, ok := q.Get("songs", "/api/songs")
	require.True(t, ok)
	assert.Equal(t, "a", string(b))

	q.Invalidate("songs", "dashboard")
	_, ok = q.Get("songs", "/api/songs")
	assert.False(t, ok)
	assert.Equal(t, 1, q.Len())
}

// fakeAPI cuenta lecturas por ruta.
type fakeAPI struct {
	hits atomic.Int32
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/deals", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			f.hits.Add(1)
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"d-1"}],"meta":{"page":1,"limit":50,"total":1,"totalPages":1}}`))
		case http.MethodPost:
			if r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"success":false,"error":{"code":"UNAUTHORIZED","message":"Unauthorized"}}`))
				return
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"success":true,"data":{"id":"d-2"}}`))
		}
	})
	mux.HandleFunc("/api/templates", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"VALIDATION_ERROR","message":"Validation failed","details":[{"field":"name","message":"is required"}]}}`))
	})
	return mux
}

func TestClient_ReadsServedFromCacheUntilInvalidated(t *testing.T) {
	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	c := apiclient.New(srv.URL, apiclient.WithToken("tok"))
	ctx := context.Background()

	var deals []struct {
		ID string `json:"id"`
	}
	meta, err := c.List(ctx, apiclient.Deals, nil, &deals)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, 1, meta.Total)
	assert.Equal(t, "d-1", deals[0].ID)

	_, err = c.List(ctx, apiclient.Deals, nil, &deals)
	require.NoError(t, err)
	assert.Equal(t, int32(1), api.hits.Load(), "segunda lectura desde caché")

	// Otra colección no invalida deals.
	c.Cache().Invalidate(apiclient.Templates)
	_, err = c.List(ctx, apiclient.Deals, nil, &deals)
	require.NoError(t, err)
	assert.Equal(t, int32(1), api.hits.Load())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, c.Create(ctx, apiclient.Deals, map[string]string{"projectName": "Ad"}, &created))
	assert.Equal(t, "d-2", created.ID)

	_, err = c.List(ctx, apiclient.Deals, nil, &deals)
	require.NoError(t, err)
	assert.Equal(t, int32(2), api.hits.Load(), "la escritura invalida la colección")
}

func TestClient_ImportInvalidatesDeals(t *testing.T) {
	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	c := apiclient.New(srv.URL)
	c.Cache().Set(apiclient.Deals, "/api/deals", []byte(`{"success":true,"data":[]}`))
	c.Cache().Set(apiclient.Templates, "/api/templates", []byte(`{"success":true,"data":[]}`))

	// La petición falla (no existe la ruta): sin éxito no hay invalidación.
	err := c.ImportDeals(context.Background(), map[string]interface{}{}, nil)
	require.Error(t, err)
	assert.Equal(t, 2, c.Cache().Len())

	c.Cache().Invalidate(apiclient.InvalidationKeys(apiclient.Import)...)
	assert.Equal(t, 1, c.Cache().Len())
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer((&fakeAPI{}).handler())
	defer srv.Close()

	c := apiclient.New(srv.URL)
	_, err := c.List(context.Background(), apiclient.Templates, url.Values{"search": {"x"}}, nil)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	assert.JSONEq(t, `[{"field":"name","message":"is required"}]`, string(apiErr.Details))

	err = c.Create(context.Background(), apiclient.Deals, map[string]string{}, nil)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
