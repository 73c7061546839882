package handlers

import (
	"net/http"
	"strconv"

	"tradeyard/internal/common"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// callerID extracts the authenticated user from the request context. The auth
// middleware guarantees it is present on protected routes.
func callerID(c echo.Context) (uuid.UUID, error) {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
	}
	return userID, nil
}

func paginationParams(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return common.ValidatePaginationParams(limit, offset)
}

func pathID(c echo.Context, fieldName string) (uuid.UUID, error) {
	id, err := common.ValidateUUID(c.Param("id"), fieldName)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return id, nil
}
