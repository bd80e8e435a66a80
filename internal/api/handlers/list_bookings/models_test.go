package list_bookings

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	q, err := url.ParseQuery("status=Confirmed&startDate=2025-01-01&importBatchId=4&hasRemaining=true&hasUmrahFee=false&search=smith&sortBy=remaining&sortOrder=asc&page=3&limit=20")
	require.NoError(t, err)

	req, err := ParseQuery(q)
	require.NoError(t, err)
	assert.Equal(t, "Confirmed", *req.Status)
	assert.Equal(t, "2025-01-01", *req.StartDate)
	assert.Nil(t, req.EndDate)
	assert.Equal(t, int64(4), *req.ImportBatchID)
	assert.True(t, *req.HasRemaining)
	assert.False(t, *req.HasUmrahFee)
	assert.Equal(t, "smith", req.Search)
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 20, req.Limit)
}

func TestParseQuery_Invalid(t *testing.T) {
	_, err := ParseQuery(url.Values{"importBatchId": {"abc"}})
	assert.Error(t, err)

	_, err = ParseQuery(url.Values{"hasRemaining": {"maybe"}})
	assert.Error(t, err)

	req, err := ParseQuery(url.Values{"page": {"x"}})
	require.NoError(t, err)
	assert.Equal(t, 0, req.Page)
}
