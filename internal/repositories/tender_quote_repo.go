package repositories

import (
	"context"
	"errors"

	"tradeyard/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TenderQuoteRepository interface {
	Create(ctx context.Context, quote *models.TenderQuote) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.TenderQuote, error)
	GetByTenderAndDealer(ctx context.Context, tenderID, dealerID uuid.UUID) (*models.TenderQuote, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListByTender(ctx context.Context, tenderID uuid.UUID, limit, offset int) ([]*models.TenderQuote, error)
	ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.TenderQuote, error)
}

type tenderQuoteRepo struct {
	db Database
}

func NewTenderQuoteRepository(db Database) TenderQuoteRepository {
	return &tenderQuoteRepo{db: db}
}

const quoteColumns = `id, tender_id, dealer_id, amount, notes, status, created_at, updated_at`

func scanQuote(row pgx.Row) (*models.TenderQuote, error) {
	q := &models.TenderQuote{}
	err := row.Scan(&q.ID, &q.TenderID, &q.DealerID, &q.Amount, &q.Notes, &q.Status, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *tenderQuoteRepo) Create(ctx context.Context, quote *models.TenderQuote) error {
	query := `
		INSERT INTO tender_quotes (id, tender_id, dealer_id, amount, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, quote.ID, quote.TenderID, quote.DealerID, quote.Amount, quote.Notes, quote.Status)
	return err
}

func (r *tenderQuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.TenderQuote, error) {
	query := `SELECT ` + quoteColumns + ` FROM tender_quotes WHERE id = $1`
	return scanQuote(r.db.QueryRow(ctx, query, id))
}

func (r *tenderQuoteRepo) GetByTenderAndDealer(ctx context.Context, tenderID, dealerID uuid.UUID) (*models.TenderQuote, error) {
	query := `SELECT ` + quoteColumns + ` FROM tender_quotes WHERE tender_id = $1 AND dealer_id = $2`
	q, err := scanQuote(r.db.QueryRow(ctx, query, tenderID, dealerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return q, err
}

func (r *tenderQuoteRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE tender_quotes SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *tenderQuoteRepo) ListByTender(ctx context.Context, tenderID uuid.UUID, limit, offset int) ([]*models.TenderQuote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM tender_quotes
		WHERE tender_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryQuotes(ctx, query, tenderID, limit, offset)
}

func (r *tenderQuoteRepo) ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.TenderQuote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM tender_quotes
		WHERE dealer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryQuotes(ctx, query, dealerID, limit, offset)
}

func (r *tenderQuoteRepo) queryQuotes(ctx context.Context, query string, args ...interface{}) ([]*models.TenderQuote, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []*models.TenderQuote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}
