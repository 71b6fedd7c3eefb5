package importer

import (
	"context"

	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

// Repos repositorios atados a la transacción de una fila.
type Repos struct {
	Songs    repository.SongRepository
	Contacts repository.ContactRepository
	Deals    repository.DealRepository
}

// TxRunner ejecuta fn dentro de una transacción; si fn devuelve error se hace rollback.
type TxRunner interface {
	RunImportRow(ctx context.Context, fn func(r Repos) error) error
}
