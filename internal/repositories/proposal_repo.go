package repositories

import (
	"context"

	"tradeyard/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProposalRepository interface {
	Create(ctx context.Context, proposal *models.Proposal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListByAgency(ctx context.Context, agencyID uuid.UUID, limit, offset int) ([]*models.Proposal, error)
	ListByCorporate(ctx context.Context, corporateID uuid.UUID, limit, offset int) ([]*models.Proposal, error)
}

type proposalRepo struct {
	db Database
}

func NewProposalRepository(db Database) ProposalRepository {
	return &proposalRepo{db: db}
}

const proposalColumns = `id, agency_id, corporate_id, title, description, budget, status, created_at, updated_at`

func scanProposal(row pgx.Row) (*models.Proposal, error) {
	p := &models.Proposal{}
	err := row.Scan(&p.ID, &p.AgencyID, &p.CorporateID, &p.Title, &p.Description, &p.Budget, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *proposalRepo) Create(ctx context.Context, proposal *models.Proposal) error {
	query := `
		INSERT INTO proposals (id, agency_id, corporate_id, title, description, budget, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, proposal.ID, proposal.AgencyID, proposal.CorporateID, proposal.Title, proposal.Description, proposal.Budget, proposal.Status)
	return err
}

func (r *proposalRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = $1`
	return scanProposal(r.db.QueryRow(ctx, query, id))
}

func (r *proposalRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE proposals SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *proposalRepo) ListByAgency(ctx context.Context, agencyID uuid.UUID, limit, offset int) ([]*models.Proposal, error) {
	query := `
		SELECT ` + proposalColumns + `
		FROM proposals
		WHERE agency_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryProposals(ctx, query, agencyID, limit, offset)
}

func (r *proposalRepo) ListByCorporate(ctx context.Context, corporateID uuid.UUID, limit, offset int) ([]*models.Proposal, error) {
	query := `
		SELECT ` + proposalColumns + `
		FROM proposals
		WHERE corporate_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryProposals(ctx, query, corporateID, limit, offset)
}

func (r *proposalRepo) queryProposals(ctx context.Context, query string, args ...interface{}) ([]*models.Proposal, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proposals []*models.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}
