package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

var _ repository.AttachmentRepository = (*AttachmentRepo)(nil)

const attachmentColumns = `id, user_id, entity_type, entity_id, filename, mime_type, size, checksum, storage_key,
	description, created_at`

// AttachmentRepo metadatos de adjuntos; el contenido vive en el FileStore.
type AttachmentRepo struct {
	q Querier
}

func NewAttachmentRepository(q Querier) *AttachmentRepo {
	return &AttachmentRepo{q: q}
}

func scanAttachment(row rowScanner) (*entity.Attachment, error) {
	var (
		a  entity.Attachment
		et string
	)
	if err := row.Scan(&a.ID, &a.UserID, &et, &a.EntityID, &a.Filename, &a.MimeType, &a.Size, &a.Checksum,
		&a.StorageKey, &a.Description, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.EntityType = entity.AttachmentEntityType(et)
	return &a, nil
}

func (r *AttachmentRepo) Create(ctx context.Context, a *entity.Attachment) error {
	_, err := r.q.Exec(ctx, `INSERT INTO attachments (`+attachmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.UserID, string(a.EntityType), a.EntityID, a.Filename, a.MimeType, a.Size, a.Checksum,
		a.StorageKey, a.Description, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert attachment: %w", err)
	}
	return nil
}

func (r *AttachmentRepo) GetByID(ctx context.Context, userID, id string) (*entity.Attachment, error) {
	a, err := scanAttachment(r.q.QueryRow(ctx,
		`SELECT `+attachmentColumns+` FROM attachments WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attachment: %w", err)
	}
	return a, nil
}

func (r *AttachmentRepo) ListByEntity(ctx context.Context, userID string, entityType entity.AttachmentEntityType, entityID string) ([]*entity.Attachment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+attachmentColumns+` FROM attachments
		WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3 ORDER BY created_at DESC`,
		userID, string(entityType), entityID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Attachment
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *AttachmentRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM attachments WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
