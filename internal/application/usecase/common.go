package usecase

import (
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

// now reloj del paquete; los tests lo reemplazan.
var now = time.Now

func listFilter(userID, search string, p dto.PageParams) repository.ListFilter {
	return repository.ListFilter{
		UserID: userID,
		Search: strings.TrimSpace(search),
		Limit:  p.Limit,
		Offset: p.Offset,
	}
}

func toPage[E any, T any](list []E, total int, conv func(E) T) *dto.PageResult[T] {
	items := make([]T, 0, len(list))
	for _, e := range list {
		items = append(items, conv(e))
	}
	return &dto.PageResult[T]{Items: items, Total: total}
}

// notFound traduce domain.ErrNotFound de los repositorios a un NotFoundError de la entidad.
func notFound(entity string, err error) error {
	if err == nil {
		return nil
	}
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return err
	}
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewNotFoundError(entity)
	}
	return err
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func invalidField(field, msg string) error {
	return domain.NewValidationError("Validation failed", domain.FieldError{Field: field, Message: msg})
}
