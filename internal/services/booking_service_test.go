package services

import (
	"context"
	"testing"
	"time"

	"tradeyard/internal/common"
	"tradeyard/internal/models"
	"tradeyard/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BookingServiceTestSuite struct {
	suite.Suite
	bookingRepo   *MockBookingRepository
	warehouseRepo *MockWarehouseRepository
	enqueuer      *MockEnqueuer
	service       BookingService
	dealerID      uuid.UUID
	corporateID   uuid.UUID
	warehouseID   uuid.UUID
	ctx           context.Context
}

func (suite *BookingServiceTestSuite) SetupTest() {
	suite.bookingRepo = new(MockBookingRepository)
	suite.warehouseRepo = new(MockWarehouseRepository)
	suite.enqueuer = new(MockEnqueuer)
	suite.service = NewBookingService(suite.bookingRepo, suite.warehouseRepo, suite.enqueuer)
	suite.dealerID = uuid.New()
	suite.corporateID = uuid.New()
	suite.warehouseID = uuid.New()
	suite.ctx = context.Background()
}

func TestBookingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}

func (suite *BookingServiceTestSuite) warehouse() *models.Warehouse {
	return &models.Warehouse{
		ID:             suite.warehouseID,
		DealerID:       suite.dealerID,
		Name:           "East Yard",
		AvailableArea:  500,
		DailyRate:      20,
		MinBookingDays: 3,
		Status:         models.WarehouseStatusActive,
	}
}

func (suite *BookingServiceTestSuite) booking(status string) *models.Booking {
	return &models.Booking{
		ID:           uuid.New(),
		WarehouseID:  suite.warehouseID,
		CorporateID:  suite.corporateID,
		StartDate:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC),
		RequiredArea: 120,
		Status:       status,
	}
}

func (suite *BookingServiceTestSuite) TestCreate_Success() {
	suite.warehouseRepo.On("GetByID", suite.ctx, suite.warehouseID).Return(suite.warehouse(), nil)
	suite.bookingRepo.On("CreateIfAvailable", suite.ctx, mock.AnythingOfType("*models.Booking")).Return(nil)

	booking := suite.booking("")
	booking.ID = uuid.Nil
	err := suite.service.Create(suite.ctx, suite.corporateID, booking)

	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, booking.ID)
	assert.Equal(suite.T(), models.BookingStatusPending, booking.Status)
	assert.Equal(suite.T(), suite.corporateID, booking.CorporateID)
}

func (suite *BookingServiceTestSuite) TestCreate_RejectsInvertedDates() {
	booking := suite.booking("")
	booking.StartDate, booking.EndDate = booking.EndDate, booking.StartDate

	err := suite.service.Create(suite.ctx, suite.corporateID, booking)
	assert.ErrorIs(suite.T(), err, common.ErrInvalidInput)
	suite.bookingRepo.AssertNotCalled(suite.T(), "CreateIfAvailable", mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestCreate_RejectsNonPositiveArea() {
	booking := suite.booking("")
	booking.RequiredArea = 0

	err := suite.service.Create(suite.ctx, suite.corporateID, booking)
	assert.ErrorIs(suite.T(), err, common.ErrInvalidInput)
}

func (suite *BookingServiceTestSuite) TestCreate_RejectsInactiveWarehouse() {
	warehouse := suite.warehouse()
	warehouse.Status = models.WarehouseStatusInactive
	suite.warehouseRepo.On("GetByID", suite.ctx, suite.warehouseID).Return(warehouse, nil)

	err := suite.service.Create(suite.ctx, suite.corporateID, suite.booking(""))
	assert.ErrorIs(suite.T(), err, common.ErrInvalidInput)
}

func (suite *BookingServiceTestSuite) TestCreate_RejectsTooShortBooking() {
	warehouse := suite.warehouse()
	warehouse.MinBookingDays = 30
	suite.warehouseRepo.On("GetByID", suite.ctx, suite.warehouseID).Return(warehouse, nil)

	err := suite.service.Create(suite.ctx, suite.corporateID, suite.booking(""))
	assert.ErrorIs(suite.T(), err, common.ErrInvalidInput)
}

func (suite *BookingServiceTestSuite) TestCreate_InsufficientCapacityBecomesConflict() {
	suite.warehouseRepo.On("GetByID", suite.ctx, suite.warehouseID).Return(suite.warehouse(), nil)
	suite.bookingRepo.On("CreateIfAvailable", suite.ctx, mock.AnythingOfType("*models.Booking")).Return(repositories.ErrInsufficientCapacity)

	err := suite.service.Create(suite.ctx, suite.corporateID, suite.booking(""))
	assert.ErrorIs(suite.T(), err, common.ErrConflict)
}

func (suite *BookingServiceTestSuite) TestTransition_ConfirmPendingEnqueuesAgreement() {
	booking := suite.booking(models.BookingStatusPending)
	suite.bookingRepo.On("GetByID", suite.ctx, booking.ID).Return(booking, nil)
	suite.warehouseRepo.On("GetByID", suite.ctx, suite.warehouseID).Return(suite.warehouse(), nil)
	suite.bookingRepo.On("UpdateStatus", suite.ctx, booking.ID, models.BookingStatusConfirmed, (*string)(nil)).Return(nil)
	suite.enqueuer.On("Enqueue", mock.AnythingOfType("*asynq.Task")).Return(nil, nil)

	updated, err := suite.service.Transition(suite.ctx, suite.dealerID, booking.ID, models.BookingActionConfirm, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.BookingStatusConfirmed, updated.Status)
	suite.enqueuer.AssertCalled(suite.T(), "Enqueue", mock.AnythingOfType("*asynq.Task"))
}

func (suite *BookingServiceTestSuite) TestTransition_RejectDoesNotEnqueue() {
	booking := suite.booking(models.BookingStatusPending)
	suite.bookingRepo.On("GetByID", suite.ctx, booking.ID).Return(booking, nil)
	suite.warehouseRepo.On("GetByID", suite.ctx, suite.warehouseID).Return(suite.warehouse(), nil)
	suite.bookingRepo.On("UpdateStatus", suite.ctx, booking.ID, models.BookingStatusRejected, (*string)(nil)).Return(nil)

	updated, err := suite.service.Transition(suite.ctx, suite.dealerID, booking.ID, models.BookingActionReject, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.BookingStatusRejected, updated.Status)
	suite.enqueuer.AssertNotCalled(suite.T(), "Enqueue", mock.Anything)
}

func (suite *BookingServiceTestSuite) TestTransition_NonOwnerForbidden() {
	booking := suite.booking(models.BookingStatusPending)
	suite.bookingRepo.On("GetByID", suite.ctx, booking.ID).Return(booking, nil)
	suite.warehouseRepo.On("GetByID", suite.ctx, suite.warehouseID).Return(suite.warehouse(), nil)

	otherDealer := uuid.New()
	_, err := suite.service.Transition(suite.ctx, otherDealer, booking.ID, models.BookingActionConfirm, nil)
	assert.ErrorIs(suite.T(), err, common.ErrForbidden)
	suite.bookingRepo.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestTransition_IllegalTransitionsRejected() {
	cases := []struct {
		status string
		action string
	}{
		{models.BookingStatusCompleted, models.BookingActionConfirm},
		{models.BookingStatusCompleted, models.BookingActionCancel},
		{models.BookingStatusRejected, models.BookingActionConfirm},
		{models.BookingStatusCancelled, models.BookingActionComplete},
		{models.BookingStatusPending, models.BookingActionComplete},
		{models.BookingStatusConfirmed, models.BookingActionReject},
		{models.BookingStatusConfirmed, models.BookingActionConfirm},
	}

	for _, tc := range cases {
		booking := suite.booking(tc.status)
		suite.bookingRepo.On("GetByID", suite.ctx, booking.ID).Return(booking, nil).Once()
		suite.warehouseRepo.On("GetByID", suite.ctx, suite.warehouseID).Return(suite.warehouse(), nil).Once()

		_, err := suite.service.Transition(suite.ctx, suite.dealerID, booking.ID, tc.action, nil)
		assert.ErrorIs(suite.T(), err, common.ErrInvalidInput, "%s on %s booking should be rejected", tc.action, tc.status)
	}
	suite.bookingRepo.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BookingServiceTestSuite) TestTransition_CancelConfirmed() {
	booking := suite.booking(models.BookingStatusConfirmed)
	notes := "corporate asked to release the space"
	suite.bookingRepo.On("GetByID", suite.ctx, booking.ID).Return(booking, nil)
	suite.warehouseRepo.On("GetByID", suite.ctx, suite.warehouseID).Return(suite.warehouse(), nil)
	suite.bookingRepo.On("UpdateStatus", suite.ctx, booking.ID, models.BookingStatusCancelled, &notes).Return(nil)

	updated, err := suite.service.Transition(suite.ctx, suite.dealerID, booking.ID, models.BookingActionCancel, &notes)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.BookingStatusCancelled, updated.Status)
	assert.Equal(suite.T(), &notes, updated.DealerNotes)
}
