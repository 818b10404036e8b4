package utils

import (
	"fmt"
	"regexp"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateDate checks that a date string matches the YYYY-MM-DD pattern.
// Only the shape is validated; calendar validity (month 13, day 40) is
// intentionally not checked, matching the upstream API which accepts any
// well-formed booking-time window and simply returns no receipts for it.
func ValidateDate(date string) error {
	if !datePattern.MatchString(date) {
		return fmt.Errorf("invalid date format: %s", date)
	}
	return nil
}
