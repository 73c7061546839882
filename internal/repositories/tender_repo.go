package repositories

import (
	"context"
	"time"

	"tradeyard/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TenderRepository interface {
	Create(ctx context.Context, tender *models.Tender) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tender, error)
	Close(ctx context.Context, id uuid.UUID) error
	ListByCreator(ctx context.Context, createdBy uuid.UUID, limit, offset int) ([]*models.Tender, error)
	// ListActiveByCreators is the second leg of the partner-tender join:
	// active tenders created by any of the given companies.
	ListActiveByCreators(ctx context.Context, creatorIDs []uuid.UUID, limit, offset int) ([]*models.Tender, error)
	// CloseExpired closes active tenders whose deadline has passed.
	CloseExpired(ctx context.Context, now time.Time) (int64, error)
}

type tenderRepo struct {
	db Database
}

func NewTenderRepository(db Database) TenderRepository {
	return &tenderRepo{db: db}
}

const tenderColumns = `id, created_by, title, description, service_type, required_area, start_date, end_date, deadline, status, created_at, updated_at`

func scanTender(row pgx.Row) (*models.Tender, error) {
	t := &models.Tender{}
	err := row.Scan(&t.ID, &t.CreatedBy, &t.Title, &t.Description, &t.ServiceType, &t.RequiredArea, &t.StartDate, &t.EndDate, &t.Deadline, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *tenderRepo) Create(ctx context.Context, tender *models.Tender) error {
	query := `
		INSERT INTO tenders (id, created_by, title, description, service_type, required_area, start_date, end_date, deadline, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, tender.ID, tender.CreatedBy, tender.Title, tender.Description, tender.ServiceType, tender.RequiredArea, tender.StartDate, tender.EndDate, tender.Deadline, tender.Status)
	return err
}

func (r *tenderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tender, error) {
	query := `SELECT ` + tenderColumns + ` FROM tenders WHERE id = $1`
	return scanTender(r.db.QueryRow(ctx, query, id))
}

func (r *tenderRepo) Close(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE tenders SET status = 'closed', updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *tenderRepo) ListByCreator(ctx context.Context, createdBy uuid.UUID, limit, offset int) ([]*models.Tender, error) {
	query := `
		SELECT ` + tenderColumns + `
		FROM tenders
		WHERE created_by = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryTenders(ctx, query, createdBy, limit, offset)
}

func (r *tenderRepo) ListActiveByCreators(ctx context.Context, creatorIDs []uuid.UUID, limit, offset int) ([]*models.Tender, error) {
	if len(creatorIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + tenderColumns + `
		FROM tenders
		WHERE created_by = ANY($1) AND status = 'active'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryTenders(ctx, query, creatorIDs, limit, offset)
}

func (r *tenderRepo) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE tenders
		SET status = 'closed', updated_at = NOW()
		WHERE status = 'active' AND deadline IS NOT NULL AND deadline < $1
	`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *tenderRepo) queryTenders(ctx context.Context, query string, args ...interface{}) ([]*models.Tender, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenders []*models.Tender
	for rows.Next() {
		t, err := scanTender(rows)
		if err != nil {
			return nil, err
		}
		tenders = append(tenders, t)
	}
	return tenders, rows.Err()
}
