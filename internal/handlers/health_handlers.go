package handlers

import (
	"context"
	"net/http"
	"time"

	"tradeyard/internal/repositories"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	db repositories.Database
}

func NewHealthHandler(db repositories.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	var one int
	if err := h.db.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"db":     err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
