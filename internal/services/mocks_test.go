package services

import (
	"context"
	"io"
	"time"

	"tradeyard/internal/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/mock"
)

// Mock repositories and collaborators shared across the service tests.

type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) Create(ctx context.Context, warehouse *models.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) Update(ctx context.Context, warehouse *models.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) SetPhotoKey(ctx context.Context, id uuid.UUID, photoKey string) error {
	args := m.Called(ctx, id, photoKey)
	return args.Error(0)
}

func (m *MockWarehouseRepository) ListActive(ctx context.Context, limit, offset int) ([]*models.Warehouse, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Warehouse, error) {
	args := m.Called(ctx, dealerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Warehouse), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateIfAvailable(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, dealerNotes *string) error {
	args := m.Called(ctx, id, status, dealerNotes)
	return args.Error(0)
}

func (m *MockBookingRepository) SetAgreementKey(ctx context.Context, id uuid.UUID, key string) error {
	args := m.Called(ctx, id, key)
	return args.Error(0)
}

func (m *MockBookingRepository) ListByCorporate(ctx context.Context, corporateID uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	args := m.Called(ctx, corporateID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	args := m.Called(ctx, dealerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) SumOverlappingArea(ctx context.Context, warehouseID uuid.UUID, start, end time.Time) (float64, error) {
	args := m.Called(ctx, warehouseID, start, end)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockBookingRepository) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	args := m.Called(ctx, id, verified)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, role string, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, role, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

type MockPartnershipRepository struct {
	mock.Mock
}

func (m *MockPartnershipRepository) Create(ctx context.Context, partnership *models.Partnership) error {
	args := m.Called(ctx, partnership)
	return args.Error(0)
}

func (m *MockPartnershipRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Partnership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Partnership), args.Error(1)
}

func (m *MockPartnershipRepository) GetByPair(ctx context.Context, dealerID, companyID uuid.UUID) (*models.Partnership, error) {
	args := m.Called(ctx, dealerID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Partnership), args.Error(1)
}

func (m *MockPartnershipRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, notes *string) error {
	args := m.Called(ctx, id, status, notes)
	return args.Error(0)
}

func (m *MockPartnershipRepository) ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*models.Partnership, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Partnership), args.Error(1)
}

func (m *MockPartnershipRepository) ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.Partnership, error) {
	args := m.Called(ctx, dealerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Partnership), args.Error(1)
}

func (m *MockPartnershipRepository) ApprovedCompanyIDs(ctx context.Context, dealerID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, dealerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockPartnershipRepository) ApprovedDealerIDs(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockTenderRepository struct {
	mock.Mock
}

func (m *MockTenderRepository) Create(ctx context.Context, tender *models.Tender) error {
	args := m.Called(ctx, tender)
	return args.Error(0)
}

func (m *MockTenderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tender, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tender), args.Error(1)
}

func (m *MockTenderRepository) Close(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenderRepository) ListByCreator(ctx context.Context, createdBy uuid.UUID, limit, offset int) ([]*models.Tender, error) {
	args := m.Called(ctx, createdBy, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tender), args.Error(1)
}

func (m *MockTenderRepository) ListActiveByCreators(ctx context.Context, creatorIDs []uuid.UUID, limit, offset int) ([]*models.Tender, error) {
	args := m.Called(ctx, creatorIDs, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tender), args.Error(1)
}

func (m *MockTenderRepository) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockTenderQuoteRepository struct {
	mock.Mock
}

func (m *MockTenderQuoteRepository) Create(ctx context.Context, quote *models.TenderQuote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockTenderQuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TenderQuote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TenderQuote), args.Error(1)
}

func (m *MockTenderQuoteRepository) GetByTenderAndDealer(ctx context.Context, tenderID, dealerID uuid.UUID) (*models.TenderQuote, error) {
	args := m.Called(ctx, tenderID, dealerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TenderQuote), args.Error(1)
}

func (m *MockTenderQuoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTenderQuoteRepository) ListByTender(ctx context.Context, tenderID uuid.UUID, limit, offset int) ([]*models.TenderQuote, error) {
	args := m.Called(ctx, tenderID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TenderQuote), args.Error(1)
}

func (m *MockTenderQuoteRepository) ListByDealer(ctx context.Context, dealerID uuid.UUID, limit, offset int) ([]*models.TenderQuote, error) {
	args := m.Called(ctx, dealerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TenderQuote), args.Error(1)
}

type MockProposalRepository struct {
	mock.Mock
}

func (m *MockProposalRepository) Create(ctx context.Context, proposal *models.Proposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}

func (m *MockProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Proposal), args.Error(1)
}

func (m *MockProposalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockProposalRepository) ListByAgency(ctx context.Context, agencyID uuid.UUID, limit, offset int) ([]*models.Proposal, error) {
	args := m.Called(ctx, agencyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Proposal), args.Error(1)
}

func (m *MockProposalRepository) ListByCorporate(ctx context.Context, corporateID uuid.UUID, limit, offset int) ([]*models.Proposal, error) {
	args := m.Called(ctx, corporateID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Proposal), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetWarehouse(ctx context.Context, warehouseID uuid.UUID) (*models.Warehouse, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

func (m *MockCacheService) SetWarehouse(ctx context.Context, warehouse *models.Warehouse, ttl time.Duration) error {
	args := m.Called(ctx, warehouse, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteWarehouse(ctx context.Context, warehouseID uuid.UUID) error {
	args := m.Called(ctx, warehouseID)
	return args.Error(0)
}

func (m *MockCacheService) SetSession(ctx context.Context, sessionID string, userID uuid.UUID, role string, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, userID, role, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetSession(ctx context.Context, sessionID string) (uuid.UUID, string, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}

func (m *MockCacheService) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockCacheService) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

func (m *MockStorageService) Upload(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, contentType)
	return args.Error(0)
}

func (m *MockStorageService) PresignedGetURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) Delete(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}
