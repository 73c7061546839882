package handlers

import (
	"net/http"

	"tradeyard/internal/common"
	"tradeyard/internal/models"
	"tradeyard/internal/services"

	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

type CreateBookingRequest struct {
	WarehouseID  string  `json:"warehouse_id"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	RequiredArea float64 `json:"required_area"`
}

func (h *BookingHandler) Create(c echo.Context) error {
	corporateID, err := callerID(c)
	if err != nil {
		return err
	}

	var req CreateBookingRequest
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

	booking := &models.Booking{
		WarehouseID:  warehouseID,
		StartDate:    startDate,
		EndDate:      endDate,
		RequiredArea: req.RequiredArea,
	}
	if err := h.bookingService.Create(c.Request().Context(), corporateID, booking); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, booking)
}

type TransitionBookingRequest struct {
	Action      string  `json:"action"`
	DealerNotes *string `json:"dealer_notes"`
}

// Transition is the dealer-side lifecycle endpoint: confirm, reject, complete
// or cancel a booking against the dealer's own warehouse.
func (h *BookingHandler) Transition(c echo.Context) error {
	dealerID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "booking id")
	if err != nil {
		return err
	}

	var req TransitionBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Action == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "action is required")
	}

	booking, err := h.bookingService.Transition(c.Request().Context(), dealerID, id, req.Action, req.DealerNotes)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) Get(c echo.Context) error {
	id, err := pathID(c, "booking id")
	if err != nil {
		return err
	}

	booking, err := h.bookingService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) ListCorporate(c echo.Context) error {
	corporateID, err := callerID(c)
	if err != nil {
		return err
	}

	limit, offset := paginationParams(c)
	bookings, err := h.bookingService.ListByCorporate(c.Request().Context(), corporateID, limit, offset)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) ListDealer(c echo.Context) error {
	dealerID, err := callerID(c)
	if err != nil {
		return err
	}

	limit, offset := paginationParams(c)
	bookings, err := h.bookingService.ListByDealer(c.Request().Context(), dealerID, limit, offset)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, bookings)
}
