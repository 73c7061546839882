package repositories

import (
	"context"

	"tradeyard/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *models.Warehouse) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	Update(ctx context.Context, warehouse *models.Warehouse) error
	SetPhotoKey(ctx context.Context, id uuid.UUID, photoKey string) error
	ListActive(ctx context.Context, limit, offset int) ([]*models.Warehouse, error)
	ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Warehouse, error)
}

type warehouseRepo struct {
	db Database
}

func NewWarehouseRepository(db Database) WarehouseRepository {
	return &warehouseRepo{db: db}
}

const warehouseColumns = `id, dealer_id, name, location, total_area, available_area, daily_rate, min_booking_days, status, photo_key, created_at, updated_at`

func scanWarehouse(row pgx.Row) (*models.Warehouse, error) {
	w := &models.Warehouse{}
	err := row.Scan(&w.ID, &w.DealerID, &w.Name, &w.Location, &w.TotalArea, &w.AvailableArea, &w.DailyRate, &w.MinBookingDays, &w.Status, &w.PhotoKey, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *warehouseRepo) Create(ctx context.Context, warehouse *models.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, dealer_id, name, location, total_area, available_area, daily_rate, min_booking_days, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, warehouse.ID, warehouse.DealerID, warehouse.Name, warehouse.Location, warehouse.TotalArea, warehouse.AvailableArea, warehouse.DailyRate, warehouse.MinBookingDays, warehouse.Status)
	return err
}

func (r *warehouseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE id = $1`
	return scanWarehouse(r.db.QueryRow(ctx, query, id))
}

func (r *warehouseRepo) Update(ctx context.Context, warehouse *models.Warehouse) error {
	query := `
		UPDATE warehouses
		SET name = $1, location = $2, total_area = $3, available_area = $4, daily_rate = $5, min_booking_days = $6, status = $7, updated_at = NOW()
		WHERE id = $8
	`
	_, err := r.db.Exec(ctx, query, warehouse.Name, warehouse.Location, warehouse.TotalArea, warehouse.AvailableArea, warehouse.DailyRate, warehouse.MinBookingDays, warehouse.Status, warehouse.ID)
	return err
}

func (r *warehouseRepo) SetPhotoKey(ctx context.Context, id uuid.UUID, photoKey string) error {
	query := `UPDATE warehouses SET photo_key = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, photoKey, id)
	return err
}

func (r *warehouseRepo) ListActive(ctx context.Context, limit, offset int) ([]*models.Warehouse, error) {
	query := `
		SELECT ` + warehouseColumns + `
		FROM warehouses
		WHERE status = 'active'
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.queryWarehouses(ctx, query, limit, offset)
}

func (r *warehouseRepo) ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Warehouse, error) {
	query := `
		SELECT ` + warehouseColumns + `
		FROM warehouses
		WHERE dealer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryWarehouses(ctx, query, dealerID, limit, offset)
}

func (r *warehouseRepo) queryWarehouses(ctx context.Context, query string, args ...interface{}) ([]*models.Warehouse, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var warehouses []*models.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, err
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, rows.Err()
}
