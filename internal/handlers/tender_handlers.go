package handlers

import (
	"net/http"
	"time"

	"tradeyard/internal/common"
	"tradeyard/internal/models"
	"tradeyard/internal/services"

	"github.com/labstack/echo/v4"
)

type TenderHandler struct {
	tenderService services.TenderService
}

func NewTenderHandler(tenderService services.TenderService) *TenderHandler {
	return &TenderHandler{tenderService: tenderService}
}

type CreateTenderRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	ServiceType  string  `json:"service_type"`
	RequiredArea float64 `json:"required_area"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Deadline     *string `json:"deadline"`
}

func (h *TenderHandler) Create(c echo.Context) error {
	corporateID, err := callerID(c)
	if err != nil {
		return err
	}

	var req CreateTenderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	startDate, err := common.ParseDate(req.StartDate, "start_date")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	endDate, err := common.ParseDate(req.EndDate, "end_date")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var deadline *time.Time
	if req.Deadline != nil && *req.Deadline != "" {
		d, err := common.ParseDate(*req.Deadline, "deadline")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		deadline = &d
	}

	tender := &models.Tender{
		Title:        req.Title,
		Description:  req.Description,
		ServiceType:  req.ServiceType,
		RequiredArea: req.RequiredArea,
		StartDate:    startDate,
		EndDate:      endDate,
		Deadline:     deadline,
	}
	if err := h.tenderService.Create(c.Request().Context(), corporateID, tender); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, tender)
}

func (h *TenderHandler) Get(c echo.Context) error {
	id, err := pathID(c, "tender id")
	if err != nil {
		return err
	}

	tender, err := h.tenderService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, tender)
}

func (h *TenderHandler) Close(c echo.Context) error {
	corporateID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "tender id")
	if err != nil {
		return err
	}

	if err := h.tenderService.Close(c.Request().Context(), corporateID, id); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "tender closed"})
}

func (h *TenderHandler) ListMine(c echo.Context) error {
	corporateID, err := callerID(c)
	if err != nil {
		return err
	}

	limit, offset := paginationParams(c)
	tenders, err := h.tenderService.ListByCreator(c.Request().Context(), corporateID, limit, offset)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, tenders)
}

// PartnerTenders lists active tenders from companies that approved the
// calling dealer.
func (h *TenderHandler) PartnerTenders(c echo.Context) error {
	dealerID, err := callerID(c)
	if err != nil {
		return err
	}

	limit, offset := paginationParams(c)
	tenders, err := h.tenderService.PartnerTenders(c.Request().Context(), dealerID, limit, offset)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, tenders)
}

type SubmitQuoteRequest struct {
	Amount float64 `json:"amount"`
	Notes  *string `json:"notes"`
}

func (h *TenderHandler) SubmitQuote(c echo.Context) error {
	dealerID, err := callerID(c)
	if err != nil {
		return err
	}
	tenderID, err := pathID(c, "tender id")
	if err != nil {
		return err
	}

	var req SubmitQuoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	quote := &models.TenderQuote{
		TenderID: tenderID,
		Amount:   req.Amount,
		Notes:    req.Notes,
	}
	if err := h.tenderService.SubmitQuote(c.Request().Context(), dealerID, quote); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, quote)
}

type ReviewQuoteRequest struct {
	Status string `json:"status"`
}

func (h *TenderHandler) ReviewQuote(c echo.Context) error {
	corporateID, err := callerID(c)
	if err != nil {
		return err
	}
	quoteID, err := pathID(c, "quote id")
	if err != nil {
		return err
	}

	var req ReviewQuoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	quote, err := h.tenderService.ReviewQuote(c.Request().Context(), corporateID, quoteID, req.Status)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, quote)
}

func (h *TenderHandler) ListQuotes(c echo.Context) error {
	corporateID, err := callerID(c)
	if err != nil {
		return err
	}
	tenderID, err := pathID(c, "tender id")
	if err != nil {
		return err
	}

	limit, offset := paginationParams(c)
	quotes, err := h.tenderService.ListQuotesByTender(c.Request().Context(), corporateID, tenderID, limit, offset)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, quotes)
}

func (h *TenderHandler) MyQuotes(c echo.Context) error {
	dealerID, err := callerID(c)
	if err != nil {
		return err
	}

	limit, offset := paginationParams(c)
	quotes, err := h.tenderService.ListQuotesByDealer(c.Request().Context(), dealerID, limit, offset)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, quotes)
}
