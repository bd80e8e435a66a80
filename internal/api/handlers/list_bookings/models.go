package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/travel-backoffice/internal/service/bookings/models"
)

// ParseQuery собирает параметры списка из query string
// Некорректные page и limit заменяются значениями по умолчанию.
func ParseQuery(q url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		Status:    optional(q, "status"),
		StartDate: optional(q, "startDate"),
		EndDate:   optional(q, "endDate"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
	req.Page, _ = strconv.Atoi(q.Get("page"))
	req.Limit, _ = strconv.Atoi(q.Get("limit"))

	if v := optional(q, "importBatchId"); v != nil {
		id, err := strconv.ParseInt(*v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid importBatchId %q", *v)
		}
		req.ImportBatchID = &id
	}

	var err error
	if req.HasRemaining, err = optionalBool(q, "hasRemaining"); err != nil {
		return nil, err
	}
	if req.HasUmrahFee, err = optionalBool(q, "hasUmrahFee"); err != nil {
		return nil, err
	}

	return req, nil
}

func optional(q url.Values, key string) *string {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil
	}
	return &v
}

func optionalBool(q url.Values, key string) (*bool, error) {
	v := optional(q, key)
	if v == nil {
		return nil, nil
	}
	b, err := strconv.ParseBool(*v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", key, *v)
	}
	return &b, nil
}
