package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("resource already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict with current state")
)

// Códigos de error expuestos en el envelope.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
)

// FieldError detalle de validación por campo.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError error tipado con status HTTP y código. Base del resto de la taxonomía.
type AppError struct {
	Status  int
	Code    string
	Message string
	Details interface{}
	Err     error // causa original, nunca se serializa
}

// NewAppError construye un error con status y código elegidos por el llamador.
func NewAppError(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// WithCause adjunta la causa original.
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// ValidationError 400 para violaciones de forma o esquema.
type ValidationError struct {
	AppError
	Fields []FieldError
}

// NewValidationError construye un ValidationError; fields es opcional.
func NewValidationError(message string, fields ...FieldError) *ValidationError {
	ve := &ValidationError{
		AppError: AppError{Status: http.StatusBadRequest, Code: CodeValidation, Message: message},
		Fields:   fields,
	}
	if len(fields) > 0 {
		ve.Details = fields
	}
	return ve
}

// NotFoundError 404 con mensaje "{Entity} not found".
type NotFoundError struct {
	AppError
	Entity string
}

// NewNotFoundError construye el error para la entidad indicada.
func NewNotFoundError(entity string) *NotFoundError {
	return &NotFoundError{
		AppError: AppError{
			Status:  http.StatusNotFound,
			Code:    CodeNotFound,
			Message: fmt.Sprintf("%s not found", entity),
			Err:     ErrNotFound,
		},
		Entity: entity,
	}
}

// UnauthorizedError 401.
type UnauthorizedError struct {
	AppError
}

// NewUnauthorizedError construye el error; mensaje vacío = "Unauthorized".
func NewUnauthorizedError(message string) *UnauthorizedError {
	if strings.TrimSpace(message) == "" {
		message = "Unauthorized"
	}
	return &UnauthorizedError{AppError: AppError{
		Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message, Err: ErrUnauthorized,
	}}
}

// As extrae el *AppError de cualquier miembro de la taxonomía.
func As(err error) (*AppError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return &ve.AppError, true
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return &nf.AppError, true
	}
	var ue *UnauthorizedError
	if errors.As(err, &ue) {
		return &ue.AppError, true
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	switch {
	case errors.Is(err, ErrDuplicate):
		return NewAppError(http.StatusConflict, CodeConflict, "Resource already exists"), true
	case errors.Is(err, ErrConflict):
		return NewAppError(http.StatusConflict, CodeConflict, "Conflict with current state"), true
	case errors.Is(err, ErrForbidden):
		return NewAppError(http.StatusForbidden, CodeForbidden, "Forbidden"), true
	case errors.Is(err, ErrUnauthorized):
		return &NewUnauthorizedError("").AppError, true
	case errors.Is(err, ErrNotFound):
		return &NewNotFoundError("Resource").AppError, true
	case errors.Is(err, ErrInvalidInput):
		return &NewValidationError("Invalid input").AppError, true
	}
	return nil, false
}
