package handlers

import (
	"net/http"

	"tradeyard/internal/common"
	"tradeyard/internal/services"

	"github.com/labstack/echo/v4"
)

type PartnershipHandler struct {
	partnershipService services.PartnershipService
}

func NewPartnershipHandler(partnershipService services.PartnershipService) *PartnershipHandler {
	return &PartnershipHandler{partnershipService: partnershipService}
}

type PartnershipRequest struct {
	CompanyID string  `json:"company_id"`
	Notes     *string `json:"notes"`
}

func (h *PartnershipHandler) Request(c echo.Context) error {
	dealerID, err := callerID(c)
	if err != nil {
		return err
	}

	var req PartnershipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	companyID, err := common.ValidateUUID(req.CompanyID, "company_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	partnership, err := h.partnershipService.Request(c.Request().Context(), dealerID, companyID, req.Notes)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, partnership)
}

type ReviewPartnershipRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

func (h *PartnershipHandler) Review(c echo.Context) error {
	companyID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "partnership id")
	if err != nil {
		return err
	}

	var req ReviewPartnershipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	partnership, err := h.partnershipService.Review(c.Request().Context(), companyID, id, req.Status, req.Notes)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, partnership)
}

// CompanyRequests lists partnership requests received by the calling company.
func (h *PartnershipHandler) CompanyRequests(c echo.Context) error {
	companyID, err := callerID(c)
	if err != nil {
		return err
	}

	limit, offset := paginationParams(c)
	partnerships, err := h.partnershipService.ListByCompany(c.Request().Context(), companyID, limit, offset)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, partnerships)
}

// DealerRequests lists partnership requests sent by the calling dealer.
func (h *PartnershipHandler) DealerRequests(c echo.Context) error {
	dealerID, err := callerID(c)
	if err != nil {
		return err
	}

	limit, offset := paginationParams(c)
	partnerships, err := h.partnershipService.ListByDealer(c.Request().Context(), dealerID, limit, offset)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, partnerships)
}

func (h *PartnershipHandler) ApprovedDealers(c echo.Context) error {
	companyID, err := callerID(c)
	if err != nil {
		return err
	}

	dealers, err := h.partnershipService.ApprovedDealers(c.Request().Context(), companyID)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, dealers)
}
