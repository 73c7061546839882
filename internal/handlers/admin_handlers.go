package handlers

import (
	"net/http"

	"tradeyard/internal/common"
	"tradeyard/internal/services"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	authService services.AuthService
}

func NewAdminHandler(authService services.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	limit, offset := paginationParams(c)

	users, err := h.authService.ListUsers(c.Request().Context(), c.QueryParam("role"), limit, offset)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, users)
}

type VerifyUserRequest struct {
	Verified *bool `json:"verified"`
}

// VerifyUser marks an account as verified (or revokes verification when the
// body carries verified=false).
func (h *AdminHandler) VerifyUser(c echo.Context) error {
	userID, err := pathID(c, "user id")
	if err != nil {
		return err
	}

	var req VerifyUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	verified := true
	if req.Verified != nil {
		verified = *req.Verified
	}

	if err := h.authService.SetUserVerified(c.Request().Context(), userID, verified); err != nil {
		return common.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
