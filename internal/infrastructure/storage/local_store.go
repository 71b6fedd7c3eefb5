// Package storage guarda los adjuntos en disco local.
package storage

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/jhoicas/syncdesk-api/internal/application/ports"
	"github.com/jhoicas/syncdesk-api/internal/domain"
)

var _ ports.FileStore = (*LocalStore)(nil)

// LocalStore FileStore sobre un directorio raíz. Las claves tienen la forma "user/id.ext".
type LocalStore struct {
	root string
}

// NewLocalStore crea el directorio raíz si no existe.
func NewLocalStore(root string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: ruta raíz: %w", err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("storage: crear raíz: %w", err)
	}
	return &LocalStore{root: abs}, nil
}

// Save escribe en un temporal y lo renombra al terminar. El checksum es BLAKE2b-256 en hex.
func (s *LocalStore) Save(ctx context.Context, key string, r io.Reader, maxBytes int64) (*ports.StoredFile, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("storage: crear directorio: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("storage: crear temporal: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	h, _ := blake2b.New256(nil)
	src := r
	if maxBytes > 0 {
		src = io.LimitReader(r, maxBytes+1)
	}
	n, err := io.Copy(io.MultiWriter(tmp, h), &ctxReader{ctx: ctx, r: src})
	if err != nil {
		return nil, fmt.Errorf("storage: escribir: %w", err)
	}
	if maxBytes > 0 && n > maxBytes {
		return nil, ports.ErrFileTooLarge
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("storage: cerrar: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, fmt.Errorf("storage: mover: %w", err)
	}
	committed = true
	return &ports.StoredFile{Key: key, Size: n, Checksum: hex.EncodeToString(h.Sum(nil))}, nil
}

// Open abre el archivo; domain.ErrNotFound si no existe.
func (s *LocalStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: abrir: %w", err)
	}
	return f, nil
}

// Delete borra el archivo; domain.ErrNotFound si no existe.
func (s *LocalStore) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("storage: borrar: %w", err)
	}
	return nil
}

// path resuelve la clave dentro de la raíz y rechaza rutas que escapen de ella.
func (s *LocalStore) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || filepath.IsAbs(key) || strings.Contains(key, "\\") {
		return "", fmt.Errorf("storage: clave inválida %q: %w", key, domain.ErrInvalidInput)
	}
	p := filepath.Join(s.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.root, p)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("storage: clave inválida %q: %w", key, domain.ErrInvalidInput)
	}
	return p, nil
}

// ctxReader corta la copia si el contexto se cancela.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
