package handlers

import (
	"net/http"

	"tradeyard/internal/common"
	"tradeyard/internal/repositories"

	"github.com/labstack/echo/v4"
)

type AuditLogHandler struct {
	auditLogs repositories.AuditLogRepository
}

func NewAuditLogHandler(auditLogs repositories.AuditLogRepository) *AuditLogHandler {
	return &AuditLogHandler{auditLogs: auditLogs}
}

// ListMine returns the caller's own audit trail, newest first.
func (h *AuditLogHandler) ListMine(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	limit, offset := paginationParams(c)

	entries, err := h.auditLogs.ListByUser(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, entries)
}
