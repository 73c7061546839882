package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tradeyard/internal/common"
	"tradeyard/internal/models"
	"tradeyard/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AvailabilityService answers whether a warehouse has enough free area for a
// date range. It is a pure read: nothing is reserved, and a later booking
// request re-runs the same check inside a transaction.
type AvailabilityService interface {
	Check(ctx context.Context, warehouseID uuid.UUID, startDate, endDate time.Time, requiredArea float64) (*models.AvailabilityResult, error)
}

type availabilityService struct {
	warehouseRepo repositories.WarehouseRepository
	bookingRepo   repositories.BookingRepository
}

func NewAvailabilityService(warehouseRepo repositories.WarehouseRepository, bookingRepo repositories.BookingRepository) AvailabilityService {
	return &availabilityService{
		warehouseRepo: warehouseRepo,
		bookingRepo:   bookingRepo,
	}
}

// Check computes remaining capacity for [startDate, endDate] from the set of
// pending/confirmed bookings whose ranges intersect it. A missing warehouse is
// reported as unavailable, not as an error.
func (s *availabilityService) Check(ctx context.Context, warehouseID uuid.UUID, startDate, endDate time.Time, requiredArea float64) (*models.AvailabilityResult, error) {
	if requiredArea <= 0 {
		return nil, common.Invalidf("required area must be positive")
	}
	if endDate.Before(startDate) {
		return nil, common.Invalidf("end date cannot be before start date")
	}

	result := &models.AvailabilityResult{RequestedArea: requiredArea}

	warehouse, err := s.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			result.Reason = "warehouse not found"
			return result, nil
		}
		return nil, fmt.Errorf("load warehouse: %w", err)
	}

	result.AvailableArea = warehouse.AvailableArea

	// Static capacity check first: if the whole warehouse is too small there
	// is no point querying bookings.
	if warehouse.AvailableArea < requiredArea {
		result.Reason = fmt.Sprintf("warehouse has %.2f available, %.2f requested", warehouse.AvailableArea, requiredArea)
		return result, nil
	}

	bookedArea, err := s.bookingRepo.SumOverlappingArea(ctx, warehouseID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("sum overlapping bookings: %w", err)
	}
	result.BookedArea = bookedArea

	remaining := warehouse.AvailableArea - bookedArea
	if remaining < requiredArea {
		result.Reason = fmt.Sprintf("only %.2f remaining for the requested period, %.2f requested", remaining, requiredArea)
		return result, nil
	}

	result.Available = true
	return result, nil
}
