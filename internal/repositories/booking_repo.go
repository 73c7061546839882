package repositories

import (
	"context"
	"errors"
	"time"

	"tradeyard/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrInsufficientCapacity is returned by CreateIfAvailable when the requested
// area does not fit alongside the overlapping active bookings.
var ErrInsufficientCapacity = errors.New("insufficient warehouse capacity for requested period")

type BookingRepository interface {
	// CreateIfAvailable re-runs the overlap check and inserts the booking in a
	// single transaction, locking the warehouse row so two concurrent requests
	// cannot both pass the capacity check.
	CreateIfAvailable(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, dealerNotes *string) error
	SetAgreementKey(ctx context.Context, id uuid.UUID, key string) error
	ListByCorporate(ctx context.Context, corporateID uuid.UUID, limit, offset int) ([]*models.Booking, error)
	ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Booking, error)
	// SumOverlappingArea totals required_area over pending/confirmed bookings
	// whose date range intersects [start, end].
	SumOverlappingArea(ctx context.Context, warehouseID uuid.UUID, start, end time.Time) (float64, error)
	// CompleteExpired marks confirmed bookings whose end date has passed as
	// completed and returns the number of rows changed.
	CompleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type bookingRepo struct {
	db Database
}

func NewBookingRepository(db Database) BookingRepository {
	return &bookingRepo{db: db}
}

const bookingColumns = `id, warehouse_id, corporate_id, start_date, end_date, required_area, status, dealer_notes, agreement_key, created_at, updated_at`

const overlapSumQuery = `
		SELECT COALESCE(SUM(required_area), 0)
		FROM bookings
		WHERE warehouse_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND start_date <= $3
		  AND end_date >= $2
	`

func scanBooking(row pgx.Row) (*models.Booking, error) {
	b := &models.Booking{}
	err := row.Scan(&b.ID, &b.WarehouseID, &b.CorporateID, &b.StartDate, &b.EndDate, &b.RequiredArea, &b.Status, &b.DealerNotes, &b.AgreementKey, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepo) CreateIfAvailable(ctx context.Context, booking *models.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Lock the warehouse row for the duration of the check-then-insert.
	var availableArea float64
	err = tx.QueryRow(ctx, `SELECT available_area FROM warehouses WHERE id = $1 FOR UPDATE`, booking.WarehouseID).Scan(&availableArea)
	if err != nil {
		return err
	}

	var bookedArea float64
	err = tx.QueryRow(ctx, overlapSumQuery, booking.WarehouseID, booking.StartDate, booking.EndDate).Scan(&bookedArea)
	if err != nil {
		return err
	}

	if availableArea-bookedArea < booking.RequiredArea {
		return ErrInsufficientCapacity
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (id, warehouse_id, corporate_id, start_date, end_date, required_area, status, dealer_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`, booking.ID, booking.WarehouseID, booking.CorporateID, booking.StartDate, booking.EndDate, booking.RequiredArea, booking.Status, booking.DealerNotes)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *bookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.db.QueryRow(ctx, query, id))
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, dealerNotes *string) error {
	query := `
		UPDATE bookings
		SET status = $1, dealer_notes = COALESCE($2, dealer_notes), updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, status, dealerNotes, id)
	return err
}

func (r *bookingRepo) SetAgreementKey(ctx context.Context, id uuid.UUID, key string) error {
	query := `UPDATE bookings SET agreement_key = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, key, id)
	return err
}

func (r *bookingRepo) ListByCorporate(ctx context.Context, corporateID uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE corporate_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryBookings(ctx, query, corporateID, limit, offset)
}

func (r *bookingRepo) ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	query := `
		SELECT b.id, b.warehouse_id, b.corporate_id, b.start_date, b.end_date, b.required_area, b.status, b.dealer_notes, b.agreement_key, b.created_at, b.updated_at
		FROM bookings b
		JOIN warehouses w ON w.id = b.warehouse_id
		WHERE w.dealer_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryBookings(ctx, query, dealerID, limit, offset)
}

func (r *bookingRepo) SumOverlappingArea(ctx context.Context, warehouseID uuid.UUID, start, end time.Time) (float64, error) {
	var sum float64
	err := r.db.QueryRow(ctx, overlapSumQuery, warehouseID, start, end).Scan(&sum)
	return sum, err
}

func (r *bookingRepo) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET status = 'completed', updated_at = NOW()
		WHERE status = 'confirmed' AND end_date < $1
	`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *bookingRepo) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*models.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
