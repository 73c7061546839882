package handlers

import (
	"net/http"

	"tradeyard/internal/common"
	"tradeyard/internal/models"
	"tradeyard/internal/services"

	"github.com/labstack/echo/v4"
)

type WarehouseHandler struct {
	warehouseService    services.WarehouseService
	availabilityService services.AvailabilityService
}

func NewWarehouseHandler(warehouseService services.WarehouseService, availabilityService services.AvailabilityService) *WarehouseHandler {
	return &WarehouseHandler{
		warehouseService:    warehouseService,
		availabilityService: availabilityService,
	}
}

type WarehouseRequest struct {
	Name           string  `json:"name"`
	Location       string  `json:"location"`
	TotalArea      float64 `json:"total_area"`
	AvailableArea  float64 `json:"available_area"`
	DailyRate      float64 `json:"daily_rate"`
	MinBookingDays int     `json:"min_booking_days"`
	Status         string  `json:"status"`
}

func (h *WarehouseHandler) Create(c echo.Context) error {
	dealerID, err := callerID(c)
	if err != nil {
		return err
	}

	var req WarehouseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.MinBookingDays == 0 {
		req.MinBookingDays = 1
	}

	warehouse := &models.Warehouse{
		Name:           req.Name,
		Location:       req.Location,
		TotalArea:      req.TotalArea,
		AvailableArea:  req.AvailableArea,
		DailyRate:      req.DailyRate,
		MinBookingDays: req.MinBookingDays,
		Status:         req.Status,
	}
	if err := h.warehouseService.Create(c.Request().Context(), dealerID, warehouse); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, warehouse)
}

func (h *WarehouseHandler) Get(c echo.Context) error {
	id, err := pathID(c, "warehouse id")
	if err != nil {
		return err
	}

	warehouse, err := h.warehouseService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, warehouse)
}

func (h *WarehouseHandler) Update(c echo.Context) error {
	dealerID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "warehouse id")
	if err != nil {
		return err
	}

	var req WarehouseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	warehouse := &models.Warehouse{
		ID:             id,
		Name:           req.Name,
		Location:       req.Location,
		TotalArea:      req.TotalArea,
		AvailableArea:  req.AvailableArea,
		DailyRate:      req.DailyRate,
		MinBookingDays: req.MinBookingDays,
		Status:         req.Status,
	}
	if err := h.warehouseService.Update(c.Request().Context(), dealerID, warehouse); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, warehouse)
}

func (h *WarehouseHandler) ListActive(c echo.Context) error {
	limit, offset := paginationParams(c)
	warehouses, err := h.warehouseService.ListActive(c.Request().Context(), limit, offset)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, warehouses)
}

func (h *WarehouseHandler) ListMine(c echo.Context) error {
	dealerID, err := callerID(c)
	if err != nil {
		return err
	}

	limit, offset := paginationParams(c)
	warehouses, err := h.warehouseService.ListByDealer(c.Request().Context(), dealerID, limit, offset)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, warehouses)
}

const maxPhotoSize = 10 << 20 // 10 MiB

func (h *WarehouseHandler) UploadPhoto(c echo.Context) error {
	dealerID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "warehouse id")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "photo file is required")
	}
	if fileHeader.Size > maxPhotoSize {
		return echo.NewHTTPError(http.StatusBadRequest, "photo exceeds 10MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read photo")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.warehouseService.AttachPhoto(c.Request().Context(), dealerID, id, fileHeader.Filename, file, fileHeader.Size, contentType); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "photo uploaded"})
}

type AvailabilityRequest struct {
	WarehouseID  string  `json:"warehouse_id"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	RequiredArea float64 `json:"required_area"`
}

func (h *WarehouseHandler) CheckAvailability(c echo.Context) error {
	var req AvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	warehouseID, err := common.ValidateUUID(req.WarehouseID, "warehouse_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	startDate, err := common.ParseDate(req.StartDate, "start_date")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	endDate, err := common.ParseDate(req.EndDate, "end_date")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.availabilityService.Check(c.Request().Context(), warehouseID, startDate, endDate, req.RequiredArea)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, result)
}
