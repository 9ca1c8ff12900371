// internal/analytics/aggregator_test.go
package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udyamhq/udyam-backend/internal/domain"
)

func TestValidateRange(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateRange(start, end, domain.BucketMonth))
	assert.NoError(t, ValidateRange(start, start, domain.BucketDay))

	err := ValidateRange(end, start, domain.BucketMonth)
	var rangeErr *domain.InvalidRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.True(t, domain.IsClientError(err))

	err = ValidateRange(start, end, domain.Bucket("hourly"))
	require.ErrorAs(t, err, &rangeErr)
	assert.Contains(t, err.Error(), "hourly")
}

func TestSortedKeepsInputIntact(t *testing.T) {
	in := []domain.TimeSeriesPoint{
		{Period: "2025-03", Revenue: 3},
		{Period: "2025-01", Revenue: 1},
		{Period: "2025-02", Revenue: 2},
	}

	out := Sorted(in)
	assert.Equal(t, "2025-01", out[0].Period)
	assert.Equal(t, "2025-02", out[1].Period)
	assert.Equal(t, "2025-03", out[2].Period)
	assert.Equal(t, "2025-03", in[0].Period, "input must not be reordered")
}

func TestTotalRevenue(t *testing.T) {
	assert.Equal(t, 0.0, TotalRevenue(nil))
	assert.Equal(t, 600.0, TotalRevenue([]domain.TimeSeriesPoint{
		{Revenue: 100}, {Revenue: 200}, {Revenue: 300},
	}))
}
