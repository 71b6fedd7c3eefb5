package ports

import (
	"context"
	"errors"
	"io"
)

// StoredFile resultado de guardar un archivo.
type StoredFile struct {
	Key      string
	Size     int64
	Checksum string
}

// FileStore almacenamiento binario de adjuntos.
type FileStore interface {
	// Save copia r bajo key. Falla si se superan maxBytes.
	Save(ctx context.Context, key string, r io.Reader, maxBytes int64) (*StoredFile, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// ErrFileTooLarge lo devuelve FileStore.Save al superar el límite.
var ErrFileTooLarge = errors.New("file exceeds the upload limit")
