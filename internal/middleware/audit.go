package middleware

import (
	"context"
	"fmt"
	"log"
	"strings"

	"tradeyard/internal/common"
	"tradeyard/internal/models"
	"tradeyard/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuditTrail records every successful mutating request. Writes happen after
// the response so a slow audit insert never delays the caller, and failures
// are logged rather than surfaced.
func AuditTrail(auditRepo repositories.AuditLogRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				return err
			}

			method := c.Request().Method
			if method == "GET" || method == "HEAD" || method == "OPTIONS" {
				return nil
			}

			userID, ok := common.GetUserIDFromContext(c.Request().Context())
			if !ok {
				return nil
			}

			entityID := c.Param("id")
			entry := &models.AuditLog{
				ID:         uuid.New(),
				UserID:     userID,
				Action:     fmt.Sprintf("%s %s", method, c.Path()),
				EntityType: entityTypeFromPath(c.Path()),
			}
			if entityID != "" {
				entry.EntityID = &entityID
			}

			go func() {
				if err := auditRepo.Create(context.Background(), entry); err != nil {
					log.Printf("Failed to write audit entry for %s: %v", entry.Action, err)
				}
			}()
			return nil
		}
	}
}

func entityTypeFromPath(path string) string {
	switch {
	case strings.Contains(path, "/warehouses"):
		return "warehouse"
	case strings.Contains(path, "/bookings"):
		return "booking"
	case strings.Contains(path, "/partnerships"):
		return "partnership"
	case strings.Contains(path, "/quotes"):
		return "tender_quote"
	case strings.Contains(path, "/tenders"):
		return "tender"
	case strings.Contains(path, "/proposals"):
		return "proposal"
	case strings.Contains(path, "/auth"):
		return "user"
	}
	return "unknown"
}
