package handlers

import (
	"net/http"

	"tradeyard/internal/common"
	"tradeyard/internal/models"
	"tradeyard/internal/services"

	"github.com/labstack/echo/v4"
)

type ProposalHandler struct {
	proposalService services.ProposalService
}

func NewProposalHandler(proposalService services.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposalService: proposalService}
}

type CreateProposalRequest struct {
	CorporateID string  `json:"corporate_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Budget      float64 `json:"budget"`
}

func (h *ProposalHandler) Create(c echo.Context) error {
	agencyID, err := callerID(c)
	if err != nil {
		return err
	}

	var req CreateProposalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	corporateID, err := common.ValidateUUID(req.CorporateID, "corporate_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	proposal := &models.Proposal{
		CorporateID: corporateID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
	}
	if err := h.proposalService.Create(c.Request().Context(), agencyID, proposal); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, proposal)
}

type RespondProposalRequest struct {
	Status string `json:"status"`
}

func (h *ProposalHandler) Respond(c echo.Context) error {
	corporateID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "proposal id")
	if err != nil {
		return err
	}

	var req RespondProposalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	proposal, err := h.proposalService.Respond(c.Request().Context(), corporateID, id, req.Status)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, proposal)
}

func (h *ProposalHandler) ListAgency(c echo.Context) error {
	agencyID, err := callerID(c)
	if err != nil {
		return err
	}

	limit, offset := paginationParams(c)
	proposals, err := h.proposalService.ListByAgency(c.Request().Context(), agencyID, limit, offset)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, proposals)
}

func (h *ProposalHandler) ListCorporate(c echo.Context) error {
	corporateID, err := callerID(c)
	if err != nil {
		return err
	}

	limit, offset := paginationParams(c)
	proposals, err := h.proposalService.ListByCorporate(c.Request().Context(), corporateID, limit, offset)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, proposals)
}
