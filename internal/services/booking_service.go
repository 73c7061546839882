package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tradeyard/internal/common"
	"tradeyard/internal/jobs"
	"tradeyard/internal/models"
	"tradeyard/internal/repositories"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
)

// Enqueuer is the slice of asynq.Client the booking service uses to schedule
// background work.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type BookingService interface {
	Create(ctx context.Context, corporateID uuid.UUID, booking *models.Booking) error
	// Transition applies a lifecycle action on behalf of the dealer owning the
	// booked warehouse. Illegal (status, action) pairs are rejected.
	Transition(ctx context.Context, dealerID, bookingID uuid.UUID, action string, dealerNotes *string) (*models.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListByCorporate(ctx context.Context, corporateID uuid.UUID, limit, offset int) ([]*models.Booking, error)
	ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Booking, error)
}

type bookingService struct {
	bookingRepo   repositories.BookingRepository
	warehouseRepo repositories.WarehouseRepository
	enqueuer      Enqueuer
}

func NewBookingService(bookingRepo repositories.BookingRepository, warehouseRepo repositories.WarehouseRepository, enqueuer Enqueuer) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		warehouseRepo: warehouseRepo,
		enqueuer:      enqueuer,
	}
}

// Create validates the request and inserts the booking. The capacity check and
// insert run in one transaction (the repository locks the warehouse row), so
// two concurrent requests cannot both pass the check and over-book.
func (s *bookingService) Create(ctx context.Context, corporateID uuid.UUID, booking *models.Booking) error {
	if err := common.ValidatePositiveArea(booking.RequiredArea, "required area"); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	if err := common.ValidateDateRange(booking.StartDate, booking.EndDate); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}
	if err := common.ValidateOptionalString(booking.DealerNotes, "dealer notes", 1000); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}

	warehouse, err := s.warehouseRepo.GetByID(ctx, booking.WarehouseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: warehouse", common.ErrNotFound)
		}
		return fmt.Errorf("load warehouse: %w", err)
	}
	if warehouse.Status != models.WarehouseStatusActive {
		return common.Invalidf("warehouse is not accepting bookings")
	}

	days := int(booking.EndDate.Sub(booking.StartDate).Hours()/24) + 1
	if days < warehouse.MinBookingDays {
		return common.Invalidf("booking must be at least %d days", warehouse.MinBookingDays)
	}

	booking.ID = uuid.New()
	booking.CorporateID = corporateID
	booking.Status = models.BookingStatusPending

	if err := s.bookingRepo.CreateIfAvailable(ctx, booking); err != nil {
		if errors.Is(err, repositories.ErrInsufficientCapacity) {
			return fmt.Errorf("%w: %s", common.ErrConflict, err.Error())
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (s *bookingService) Transition(ctx context.Context, dealerID, bookingID uuid.UUID, action string, dealerNotes *string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: booking", common.ErrNotFound)
		}
		return nil, fmt.Errorf("load booking: %w", err)
	}

	warehouse, err := s.warehouseRepo.GetByID(ctx, booking.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("load warehouse: %w", err)
	}
	if warehouse.DealerID != dealerID {
		return nil, fmt.Errorf("%w: booking belongs to another dealer's warehouse", common.ErrForbidden)
	}

	next, ok := models.NextBookingStatus(booking.Status, action)
	if !ok {
		return nil, common.Invalidf("cannot %s a %s booking", action, booking.Status)
	}

	if err := common.ValidateOptionalString(dealerNotes, "dealer notes", 1000); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidInput, err.Error())
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, next, dealerNotes); err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	booking.Status = next
	if dealerNotes != nil {
		booking.DealerNotes = dealerNotes
	}
	booking.UpdatedAt = time.Now()

	// Agreement PDF generation is best-effort background work.
	if next == models.BookingStatusConfirmed && s.enqueuer != nil {
		task, err := jobs.NewBookingAgreementTask(booking.ID)
		if err == nil {
			_, err = s.enqueuer.Enqueue(task)
		}
		if err != nil {
			log.Printf("Failed to enqueue agreement task for booking %s: %v", booking.ID, err)
		}
	}

	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: booking", common.ErrNotFound)
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListByCorporate(ctx context.Context, corporateID uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.bookingRepo.ListByCorporate(ctx, corporateID, limit, offset)
}

func (s *bookingService) ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.bookingRepo.ListByDealer(ctx, dealerID, limit, offset)
}
