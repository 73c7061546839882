package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"tradeyard/internal/caching"
	"tradeyard/internal/common"
	"tradeyard/internal/models"
	"tradeyard/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PhotoBucket holds uploaded warehouse photos.
const PhotoBucket = "warehouse-photos"

const warehouseCacheTTL = 10 * time.Minute

type WarehouseService interface {
	Create(ctx context.Context, dealerID uuid.UUID, warehouse *models.Warehouse) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	Update(ctx context.Context, dealerID uuid.UUID, warehouse *models.Warehouse) error
	ListActive(ctx context.Context, limit, offset int) ([]*models.Warehouse, error)
	ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Warehouse, error)
	// AttachPhoto uploads a photo to object storage and records its key.
	AttachPhoto(ctx context.Context, dealerID, warehouseID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) error
}

type warehouseService struct {
	warehouseRepo repositories.WarehouseRepository
	cache         caching.CacheService
	storage       StorageService
}

func NewWarehouseService(warehouseRepo repositories.WarehouseRepository, cache caching.CacheService, storage StorageService) WarehouseService {
	return &warehouseService{
		warehouseRepo: warehouseRepo,
		cache:         cache,
		storage:       storage,
	}
}

func validateWarehouse(warehouse *models.Warehouse) error {
	if err := common.ValidateRequiredString(warehouse.Name, "name"); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	if err := common.ValidateRequiredString(warehouse.Location, "location"); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	if err := common.ValidatePositiveArea(warehouse.TotalArea, "total area"); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	if err := common.ValidatePositiveArea(warehouse.AvailableArea, "available area"); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	if warehouse.AvailableArea > warehouse.TotalArea {
		return common.Invalidf("available area cannot exceed total area")
	}
	if warehouse.DailyRate <= 0 {
		return common.Invalidf("daily rate must be positive")
	}
	if warehouse.MinBookingDays < 1 {
		return common.Invalidf("minimum booking days must be at least 1")
	}
	return nil
}

func (s *warehouseService) Create(ctx context.Context, dealerID uuid.UUID, warehouse *models.Warehouse) error {
	if err := validateWarehouse(warehouse); err != nil {
		return err
	}

	warehouse.ID = uuid.New()
	warehouse.DealerID = dealerID
	if warehouse.Status == "" {
		warehouse.Status = models.WarehouseStatusActive
	}
	if warehouse.Status != models.WarehouseStatusActive && warehouse.Status != models.WarehouseStatusInactive {
		return common.Invalidf("status must be active or inactive")
	}

	if err := s.warehouseRepo.Create(ctx, warehouse); err != nil {
		return fmt.Errorf("create warehouse: %w", err)
	}
	return nil
}

func (s *warehouseService) GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	if cached, err := s.cache.GetWarehouse(ctx, id); err == nil && cached != nil {
		s.attachPhotoURL(ctx, cached)
		return cached, nil
	} else if err != nil {
		log.Printf("Warehouse cache read failed for %s: %v", id, err)
	}

	warehouse, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: warehouse", common.ErrNotFound)
		}
		return nil, fmt.Errorf("load warehouse: %w", err)
	}

	if err := s.cache.SetWarehouse(ctx, warehouse, warehouseCacheTTL); err != nil {
		log.Printf("Warehouse cache write failed for %s: %v", id, err)
	}
	s.attachPhotoURL(ctx, warehouse)
	return warehouse, nil
}

func (s *warehouseService) Update(ctx context.Context, dealerID uuid.UUID, warehouse *models.Warehouse) error {
	existing, err := s.warehouseRepo.GetByID(ctx, warehouse.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: warehouse", common.ErrNotFound)
		}
		return fmt.Errorf("load warehouse: %w", err)
	}
	if existing.DealerID != dealerID {
		return fmt.Errorf("%w: warehouse belongs to another dealer", common.ErrForbidden)
	}

	if err := validateWarehouse(warehouse); err != nil {
		return err
	}
	if warehouse.Status != models.WarehouseStatusActive && warehouse.Status != models.WarehouseStatusInactive {
		return common.Invalidf("status must be active or inactive")
	}

	if err := s.warehouseRepo.Update(ctx, warehouse); err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	if err := s.cache.DeleteWarehouse(ctx, warehouse.ID); err != nil {
		log.Printf("Warehouse cache invalidation failed for %s: %v", warehouse.ID, err)
	}
	return nil
}

func (s *warehouseService) ListActive(ctx context.Context, limit, offset int) ([]*models.Warehouse, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	warehouses, err := s.warehouseRepo.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, w := range warehouses {
		s.attachPhotoURL(ctx, w)
	}
	return warehouses, nil
}

func (s *warehouseService) ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Warehouse, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	warehouses, err := s.warehouseRepo.ListByDealer(ctx, dealerID, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, w := range warehouses {
		s.attachPhotoURL(ctx, w)
	}
	return warehouses, nil
}

func (s *warehouseService) AttachPhoto(ctx context.Context, dealerID, warehouseID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) error {
	warehouse, err := s.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: warehouse", common.ErrNotFound)
		}
		return fmt.Errorf("load warehouse: %w", err)
	}
	if warehouse.DealerID != dealerID {
		return fmt.Errorf("%w: warehouse belongs to another dealer", common.ErrForbidden)
	}

	ext := path.Ext(filename)
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return common.Invalidf("photo must be jpg, png or webp")
	}

	objectName := fmt.Sprintf("%s%s", warehouseID, ext)
	if err := s.storage.Upload(ctx, PhotoBucket, objectName, reader, size, contentType); err != nil {
		return fmt.Errorf("upload photo: %w", err)
	}
	if err := s.warehouseRepo.SetPhotoKey(ctx, warehouseID, objectName); err != nil {
		return fmt.Errorf("record photo key: %w", err)
	}

	// A re-upload with a different extension leaves the old object orphaned.
	if warehouse.PhotoKey != nil && *warehouse.PhotoKey != objectName {
		if err := s.storage.Delete(ctx, PhotoBucket, *warehouse.PhotoKey); err != nil {
			log.Printf("Failed to remove superseded photo %s: %v", *warehouse.PhotoKey, err)
		}
	}

	if err := s.cache.DeleteWarehouse(ctx, warehouseID); err != nil {
		log.Printf("Warehouse cache invalidation failed for %s: %v", warehouseID, err)
	}
	return nil
}

// attachPhotoURL resolves the stored photo key into a short-lived presigned
// URL. Failures are logged, not surfaced: a listing without photos is still
// useful.
func (s *warehouseService) attachPhotoURL(ctx context.Context, warehouse *models.Warehouse) {
	if warehouse.PhotoKey == nil || s.storage == nil {
		return
	}
	u, err := s.storage.PresignedGetURL(ctx, PhotoBucket, *warehouse.PhotoKey, 15*time.Minute)
	if err != nil {
		log.Printf("Failed to presign photo for warehouse %s: %v", warehouse.ID, err)
		return
	}
	warehouse.PhotoURL = u
}
