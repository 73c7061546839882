package common

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateFormat is the wire format for booking and tender dates.
const DateFormat = "2006-01-02"

// ValidateUUID parses a path or payload ID, reporting the field on failure.
func ValidateUUID(idStr, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s has invalid UUID format", fieldName)
	}
	return id, nil
}

// ParseDate parses a YYYY-MM-DD date string with sanity bounds.
func ParseDate(dateStr, fieldName string) (time.Time, error) {
	date, err := time.Parse(DateFormat, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be in YYYY-MM-DD format", fieldName)
	}
	if date.After(time.Now().AddDate(10, 0, 0)) {
		return time.Time{}, fmt.Errorf("%s cannot be more than 10 years in the future", fieldName)
	}
	return date, nil
}

// ValidateDateRange rejects inverted or unreasonably long ranges.
func ValidateDateRange(startDate, endDate time.Time) error {
	if endDate.Before(startDate) {
		return fmt.Errorf("end date cannot be before start date")
	}
	if endDate.Sub(startDate) > time.Hour*24*365*5 {
		return fmt.Errorf("date range cannot exceed 5 years")
	}
	return nil
}

// ValidatePositiveArea validates an area in square units.
func ValidatePositiveArea(value float64, fieldName string) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	if value > 10000000 {
		return fmt.Errorf("%s cannot exceed 10,000,000", fieldName)
	}
	return nil
}

// ValidateRequiredString validates required string fields.
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateOptionalString trims and bounds optional string fields.
func ValidateOptionalString(value *string, fieldName string, maxLength int) error {
	if value != nil {
		if len(*value) > maxLength {
			return fmt.Errorf("%s cannot exceed %d characters", fieldName, maxLength)
		}
		*value = strings.TrimSpace(*value)
	}
	return nil
}

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[0-9A-Z]{1}Z[0-9A-Z]{1}$`)

// ValidateGSTIN validates the optional GST identification number on company
// profiles. Empty is allowed.
func ValidateGSTIN(gstin string) error {
	if strings.TrimSpace(gstin) == "" {
		return nil
	}
	if !gstinPattern.MatchString(gstin) {
		return fmt.Errorf("gstin has invalid format")
	}
	return nil
}

// ValidatePaginationParams clamps limit/offset to safe bounds.
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// SafeString safely dereferences optional string fields.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
