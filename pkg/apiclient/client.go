// Package apiclient es el cliente Go del API de syncdesk. Las lecturas se sirven desde un QueryCache
// explícito y cada escritura invalida las colecciones que devuelve InvalidationKeys.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Meta paginación de los listados.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// APIError error devuelto por el servidor en el envelope de error.
type APIError struct {
	Status  int
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *Meta           `json:"meta"`
	Error   *APIError       `json:"error"`
}

// Client cliente HTTP con caché de consultas.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cache      *QueryCache
}

// Option configura el cliente.
type Option func(*Client)

// WithToken bearer token del proveedor de identidad.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithCache comparte una caché entre clientes.
func WithCache(q *QueryCache) Option {
	return func(c *Client) { c.cache = q }
}

// New baseURL sin /api, ej. "https://api.example.com".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		cache:      NewQueryCache(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Cache() *QueryCache { return c.cache }

// ── Lecturas (cacheadas) ──

// List GET /api/{collection}?query; decodifica data en out.
func (c *Client) List(ctx context.Context, collection string, query url.Values, out interface{}) (*Meta, error) {
	path := "/api/" + collection
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	env, err := c.read(ctx, collection, path)
	if err != nil {
		return nil, err
	}
	return env.Meta, decodeData(env, out)
}

// Get GET /api/{collection}/{id}.
func (c *Client) Get(ctx context.Context, collection, id string, out interface{}) error {
	env, err := c.read(ctx, collection, "/api/"+collection+"/"+url.PathEscape(id))
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

// Dashboard GET /api/dashboard o /api/dashboard/{section}.
func (c *Client) Dashboard(ctx context.Context, section string, out interface{}) error {
	path := "/api/dashboard"
	if section != "" {
		path += "/" + section
	}
	env, err := c.read(ctx, Dashboard, path)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func (c *Client) read(ctx context.Context, collection, path string) (*envelope, error) {
	if body, ok := c.cache.Get(collection, path); ok {
		var env envelope
		if err := json.Unmarshal(body, &env); err == nil {
			return &env, nil
		}
	}
	body, env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	c.cache.Set(collection, path, body)
	return env, nil
}

// ── Escrituras (invalidan) ──

func (c *Client) Create(ctx context.Context, collection string, in, out interface{}) error {
	return c.Mutate(ctx, collection, http.MethodPost, "/api/"+collection, in, out)
}

func (c *Client) Update(ctx context.Context, collection, id string, in, out interface{}) error {
	return c.Mutate(ctx, collection, http.MethodPut, "/api/"+collection+"/"+url.PathEscape(id), in, out)
}

func (c *Client) Delete(ctx context.Context, collection, id string) error {
	return c.Mutate(ctx, collection, http.MethodDelete, "/api/"+collection+"/"+url.PathEscape(id), nil, nil)
}

// ImportDeals POST /api/deals/import/create.
func (c *Client) ImportDeals(ctx context.Context, req, out interface{}) error {
	return c.Mutate(ctx, Import, http.MethodPost, "/api/deals/import/create", req, out)
}

// Mutate ejecuta una escritura arbitraria (ej. PATCH /api/deals/{id}/status) y, si tuvo éxito,
// invalida InvalidationKeys(collection).
func (c *Client) Mutate(ctx context.Context, collection, method, path string, in, out interface{}) error {
	_, env, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	c.cache.Invalidate(InvalidationKeys(collection)...)
	return decodeData(env, out)
}

func (c *Client) do(ctx context.Context, method, path string, in interface{}) ([]byte, *envelope, error) {
	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, nil, fmt.Errorf("apiclient: serializar petición: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("apiclient: crear petición: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("apiclient: leer respuesta: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode >= 300 {
			return nil, nil, &APIError{Status: resp.StatusCode, Code: "HTTP_ERROR", Message: http.StatusText(resp.StatusCode)}
		}
		return nil, nil, fmt.Errorf("apiclient: respuesta no es JSON: %w", err)
	}
	if resp.StatusCode >= 300 || !env.Success {
		apiErr := env.Error
		if apiErr == nil {
			apiErr = &APIError{Code: "HTTP_ERROR", Message: http.StatusText(resp.StatusCode)}
		}
		apiErr.Status = resp.StatusCode
		return nil, nil, apiErr
	}
	return body, &env, nil
}

func decodeData(env *envelope, out interface{}) error {
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("apiclient: decodificar data: %w", err)
	}
	return nil
}
