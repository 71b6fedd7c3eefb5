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

var _ repository.DealRepository = (*DealRepo)(nil)

const dealColumns = `id, user_id, project_name, project_type, song_id, contact_id, status, territory, exclusivity,
	description, term, usage, total_fee, publishing_fee, recording_fee, ballpark_fee, notes, air_date,
	pending_approval_date, quoted_date, use_confirmed_date, being_drafted_date, out_for_signature_date,
	payment_received_date, completed_date, not_used_date, created_at, updated_at`

// DealRepo implementación de DealRepository (usable con pool o tx).
type DealRepo struct {
	q Querier
}

// NewDealRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDealRepository(q Querier) *DealRepo {
	return &DealRepo{q: q}
}

func scanDeal(row rowScanner) (*entity.Deal, error) {
	var (
		d        entity.Deal
		status   string
		ballpark *string
	)
	err := row.Scan(&d.ID, &d.UserID, &d.ProjectName, &d.ProjectType, &d.SongID, &d.ContactID, &status,
		&d.Territory, &d.Exclusivity, &d.Description, &d.Term, &d.Usage, &d.TotalFee, &d.PublishingFee,
		&d.RecordingFee, &ballpark, &d.Notes, &d.AirDate, &d.PendingApprovalDate, &d.QuotedDate,
		&d.UseConfirmedDate, &d.BeingDraftedDate, &d.OutForSignatureDate, &d.PaymentReceivedDate,
		&d.CompletedDate, &d.NotUsedDate, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	// Filas antiguas pueden traer etiquetas ("Quoted"); se normalizan al leer.
	if s, ok := entity.NormalizeDealStatus(status); ok {
		d.Status = s
	} else {
		d.Status = entity.DealStatus(status)
	}
	if ballpark != nil {
		b := entity.BallparkBracket(*ballpark)
		d.BallparkFee = &b
	}
	return &d, nil
}

func ballparkArg(b *entity.BallparkBracket) *string {
	if b == nil {
		return nil
	}
	s := string(*b)
	return &s
}

// Create persiste el deal con sus fechas por etapa.
func (r *DealRepo) Create(ctx context.Context, d *entity.Deal) error {
	query := `INSERT INTO deals (` + dealColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.UserID, d.ProjectName, d.ProjectType, d.SongID, d.ContactID, string(d.Status), d.Territory,
		d.Exclusivity, d.Description, d.Term, d.Usage, d.TotalFee, d.PublishingFee, d.RecordingFee,
		ballparkArg(d.BallparkFee), d.Notes, d.AirDate, d.PendingApprovalDate, d.QuotedDate, d.UseConfirmedDate,
		d.BeingDraftedDate, d.OutForSignatureDate, d.PaymentReceivedDate, d.CompletedDate, d.NotUsedDate,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert deal: %w", err)
	}
	return nil
}

func (r *DealRepo) GetByID(ctx context.Context, userID, id string) (*entity.Deal, error) {
	row := r.q.QueryRow(ctx, `SELECT `+dealColumns+` FROM deals WHERE user_id = $1 AND id = $2`, userID, id)
	d, err := scanDeal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deal: %w", err)
	}
	return d, nil
}

// List filtra por etapa, canción o contacto; search busca en proyecto, tipo y territorio.
func (r *DealRepo) List(ctx context.Context, f repository.DealFilter) ([]*entity.Deal, int, error) {
	w := newWhere(f.UserID)
	w.eqIf("status", string(f.Status))
	w.eqIf("song_id", f.SongID)
	w.eqIf("contact_id", f.ContactID)
	w.search(f.Search, "project_name", "project_type", "territory")
	total, err := count(ctx, r.q, "deals", w)
	if err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + dealColumns + ` FROM deals` + w.String() + ` ORDER BY created_at DESC` + w.page(f.Limit, f.Offset)
	list, err := r.query(ctx, query, w.args...)
	return list, total, err
}

func (r *DealRepo) ListAll(ctx context.Context, userID string) ([]*entity.Deal, error) {
	return r.query(ctx, `SELECT `+dealColumns+` FROM deals WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *DealRepo) query(ctx context.Context, query string, args ...interface{}) ([]*entity.Deal, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Update reescribe el deal completo, incluidas las fechas por etapa.
func (r *DealRepo) Update(ctx context.Context, d *entity.Deal) error {
	query := `
		UPDATE deals SET project_name = $3, project_type = $4, song_id = $5, contact_id = $6, status = $7,
			territory = $8, exclusivity = $9, description = $10, term = $11, usage = $12, total_fee = $13,
			publishing_fee = $14, recording_fee = $15, ballpark_fee = $16, notes = $17, air_date = $18,
			pending_approval_date = $19, quoted_date = $20, use_confirmed_date = $21, being_drafted_date = $22,
			out_for_signature_date = $23, payment_received_date = $24, completed_date = $25, not_used_date = $26,
			updated_at = $27
		WHERE user_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		d.UserID, d.ID, d.ProjectName, d.ProjectType, d.SongID, d.ContactID, string(d.Status), d.Territory,
		d.Exclusivity, d.Description, d.Term, d.Usage, d.TotalFee, d.PublishingFee, d.RecordingFee,
		ballparkArg(d.BallparkFee), d.Notes, d.AirDate, d.PendingApprovalDate, d.QuotedDate, d.UseConfirmedDate,
		d.BeingDraftedDate, d.OutForSignatureDate, d.PaymentReceivedDate, d.CompletedDate, d.NotUsedDate,
		d.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update deal: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el deal; pagos y pitches caen en cascada.
func (r *DealRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM deals WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
