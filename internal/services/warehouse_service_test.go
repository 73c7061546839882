package services

import (
	"context"
	"strings"
	"testing"

	"tradeyard/internal/common"
	"tradeyard/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WarehouseServiceTestSuite struct {
	suite.Suite
	warehouseRepo *MockWarehouseRepository
	cache         *MockCacheService
	storage       *MockStorageService
	service       WarehouseService
	dealerID      uuid.UUID
	ctx           context.Context
}

func (suite *WarehouseServiceTestSuite) SetupTest() {
	suite.warehouseRepo = new(MockWarehouseRepository)
	suite.cache = new(MockCacheService)
	suite.storage = new(MockStorageService)
	suite.service = NewWarehouseService(suite.warehouseRepo, suite.cache, suite.storage)
	suite.dealerID = uuid.New()
	suite.ctx = context.Background()
}

func TestWarehouseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WarehouseServiceTestSuite))
}

func (suite *WarehouseServiceTestSuite) warehouse() *models.Warehouse {
	return &models.Warehouse{
		ID:             uuid.New(),
		DealerID:       suite.dealerID,
		Name:           "Bhiwandi unit 4",
		Location:       "Bhiwandi, Thane",
		TotalArea:      1200,
		AvailableArea:  900,
		DailyRate:      18,
		MinBookingDays: 7,
		Status:         models.WarehouseStatusActive,
	}
}

func (suite *WarehouseServiceTestSuite) TestCreate_AvailableAreaCannotExceedTotal() {
	warehouse := suite.warehouse()
	warehouse.AvailableArea = warehouse.TotalArea + 1

	err := suite.service.Create(suite.ctx, suite.dealerID, warehouse)
	assert.ErrorIs(suite.T(), err, common.ErrInvalidInput)
	suite.warehouseRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *WarehouseServiceTestSuite) TestGetByID_CacheHitSkipsRepository() {
	warehouse := suite.warehouse()
	suite.cache.On("GetWarehouse", suite.ctx, warehouse.ID).Return(warehouse, nil)

	got, err := suite.service.GetByID(suite.ctx, warehouse.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), warehouse.ID, got.ID)
	suite.warehouseRepo.AssertNotCalled(suite.T(), "GetByID", mock.Anything, mock.Anything)
}

func (suite *WarehouseServiceTestSuite) TestUpdate_ForeignWarehouseForbidden() {
	warehouse := suite.warehouse()
	suite.warehouseRepo.On("GetByID", suite.ctx, warehouse.ID).Return(warehouse, nil)

	err := suite.service.Update(suite.ctx, uuid.New(), warehouse)
	assert.ErrorIs(suite.T(), err, common.ErrForbidden)
	suite.warehouseRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

func (suite *WarehouseServiceTestSuite) TestAttachPhoto_RejectsUnknownExtension() {
	warehouse := suite.warehouse()
	suite.warehouseRepo.On("GetByID", suite.ctx, warehouse.ID).Return(warehouse, nil)

	err := suite.service.AttachPhoto(suite.ctx, suite.dealerID, warehouse.ID, "floorplan.pdf", strings.NewReader("x"), 1, "application/pdf")
	assert.ErrorIs(suite.T(), err, common.ErrInvalidInput)
	suite.storage.AssertNotCalled(suite.T(), "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WarehouseServiceTestSuite) TestAttachPhoto_RemovesSupersededObject() {
	warehouse := suite.warehouse()
	oldKey := warehouse.ID.String() + ".png"
	warehouse.PhotoKey = &oldKey
	newKey := warehouse.ID.String() + ".jpg"

	suite.warehouseRepo.On("GetByID", suite.ctx, warehouse.ID).Return(warehouse, nil)
	suite.storage.On("Upload", suite.ctx, PhotoBucket, newKey, mock.Anything, int64(4), "image/jpeg").Return(nil)
	suite.warehouseRepo.On("SetPhotoKey", suite.ctx, warehouse.ID, newKey).Return(nil)
	suite.storage.On("Delete", suite.ctx, PhotoBucket, oldKey).Return(nil)
	suite.cache.On("DeleteWarehouse", suite.ctx, warehouse.ID).Return(nil)

	err := suite.service.AttachPhoto(suite.ctx, suite.dealerID, warehouse.ID, "front.jpg", strings.NewReader("abcd"), 4, "image/jpeg")
	assert.NoError(suite.T(), err)
	suite.storage.AssertCalled(suite.T(), "Delete", suite.ctx, PhotoBucket, oldKey)
}

func (suite *WarehouseServiceTestSuite) TestAttachPhoto_SameKeyNotDeleted() {
	warehouse := suite.warehouse()
	key := warehouse.ID.String() + ".jpg"
	warehouse.PhotoKey = &key

	suite.warehouseRepo.On("GetByID", suite.ctx, warehouse.ID).Return(warehouse, nil)
	suite.storage.On("Upload", suite.ctx, PhotoBucket, key, mock.Anything, int64(4), "image/jpeg").Return(nil)
	suite.warehouseRepo.On("SetPhotoKey", suite.ctx, warehouse.ID, key).Return(nil)
	suite.cache.On("DeleteWarehouse", suite.ctx, warehouse.ID).Return(nil)

	err := suite.service.AttachPhoto(suite.ctx, suite.dealerID, warehouse.ID, "front.jpg", strings.NewReader("abcd"), 4, "image/jpeg")
	assert.NoError(suite.T(), err)
	suite.storage.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything, mock.Anything)
}
