package repositories

import (
	"context"
	"errors"

	"tradeyard/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PartnershipRepository interface {
	Create(ctx context.Context, partnership *models.Partnership) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Partnership, error)
	GetByPair(ctx context.Context, dealerID, companyID uuid.UUID) (*models.Partnership, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, notes *string) error
	ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Partnership, error)
	ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Partnership, error)
	// ApprovedCompanyIDs returns the companies that approved this dealer.
	ApprovedCompanyIDs(ctx context.Context, dealerID uuid.UUID) ([]uuid.UUID, error)
	// ApprovedDealerIDs returns the dealers this company approved.
	ApprovedDealerIDs(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error)
}

type partnershipRepo struct {
	db Database
}

func NewPartnershipRepository(db Database) PartnershipRepository {
	return &partnershipRepo{db: db}
}

const partnershipColumns = `id, dealer_id, company_id, status, notes, reviewed_at, created_at, updated_at`

func scanPartnership(row pgx.Row) (*models.Partnership, error) {
	p := &models.Partnership{}
	err := row.Scan(&p.ID, &p.DealerID, &p.CompanyID, &p.Status, &p.Notes, &p.ReviewedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *partnershipRepo) Create(ctx context.Context, partnership *models.Partnership) error {
	query := `
		INSERT INTO partnerships (id, dealer_id, company_id, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, partnership.ID, partnership.DealerID, partnership.CompanyID, partnership.Status, partnership.Notes)
	return err
}

func (r *partnershipRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Partnership, error) {
	query := `SELECT ` + partnershipColumns + ` FROM partnerships WHERE id = $1`
	return scanPartnership(r.db.QueryRow(ctx, query, id))
}

func (r *partnershipRepo) GetByPair(ctx context.Context, dealerID, companyID uuid.UUID) (*models.Partnership, error) {
	query := `SELECT ` + partnershipColumns + ` FROM partnerships WHERE dealer_id = $1 AND company_id = $2`
	p, err := scanPartnership(r.db.QueryRow(ctx, query, dealerID, companyID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *partnershipRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, notes *string) error {
	query := `
		UPDATE partnerships
		SET status = $1, notes = COALESCE($2, notes), reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, status, notes, id)
	return err
}

func (r *partnershipRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Partnership, error) {
	query := `
		SELECT ` + partnershipColumns + `
		FROM partnerships
		WHERE company_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryPartnerships(ctx, query, companyID, limit, offset)
}

func (r *partnershipRepo) ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Partnership, error) {
	query := `
		SELECT ` + partnershipColumns + `
		FROM partnerships
		WHERE dealer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryPartnerships(ctx, query, dealerID, limit, offset)
}

func (r *partnershipRepo) ApprovedCompanyIDs(ctx context.Context, dealerID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT company_id FROM partnerships WHERE dealer_id = $1 AND status = 'approved'`
	return r.queryIDs(ctx, query, dealerID)
}

func (r *partnershipRepo) ApprovedDealerIDs(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT dealer_id FROM partnerships WHERE company_id = $1 AND status = 'approved'`
	return r.queryIDs(ctx, query, companyID)
}

func (r *partnershipRepo) queryPartnerships(ctx context.Context, query string, args ...interface{}) ([]*models.Partnership, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partnerships []*models.Partnership
	for rows.Next() {
		p, err := scanPartnership(rows)
		if err != nil {
			return nil, err
		}
		partnerships = append(partnerships, p)
	}
	return partnerships, rows.Err()
}

func (r *partnershipRepo) queryIDs(ctx context.Context, query string, args ...interface{}) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
