package dto

import (
	"strings"
	"time"

	"parish-portal-be/internal/pkg/apperror"
)

const DateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD or RFC 3339. Empty input yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	return nil, apperror.Validation("Invalid date format")
}

func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
