package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/travel-backoffice/internal/domain"
)

// ParseDate принимает YYYY-MM-DD или RFC3339
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(domain.DateFormat, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}
