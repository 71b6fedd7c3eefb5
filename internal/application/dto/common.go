package dto

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 100
)

// PageParams paginación resuelta: offset = (page-1) × limit.
type PageParams struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// NewPageParams interpreta page/limit de la query. Valores ausentes o no numéricos toman el
// valor por defecto; page < 1 pasa a 1 y limit se acota a [1, 100].
func NewPageParams(page, limit string) PageParams {
	p := parseIntOr(page, DefaultPage)
	if p < 1 {
		p = 1
	}
	l := parseIntOr(limit, DefaultLimit)
	if l < 1 {
		l = 1
	}
	if l > MaxLimit {
		l = MaxLimit
	}
	return PageParams{Page: p, Limit: l, Offset: (p - 1) * l}
}

func parseIntOr(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Meta metadatos de página en respuestas paginadas.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewMeta calcula totalPages = ceil(total / limit).
func NewMeta(page, limit, total int) Meta {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Meta{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// SuccessResponse envelope de éxito.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorBody detalle del error.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse envelope de error.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// PageResult resultado de un listado paginado en la capa de aplicación.
type PageResult[T any] struct {
	Items []T
	Total int
}

// IDRequest cuerpo con un único id.
type IDRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}
