// internal/analytics/aggregator.go
package analytics

import (
	"sort"
	"time"

	"github.com/udyamhq/udyam-backend/internal/domain"
)

// ValidateRange rejects an impossible date range or unknown granularity
// before any aggregation work is done.
func ValidateRange(start, end time.Time, bucket domain.Bucket) error {
	if !bucket.Valid() {
		return &domain.InvalidRangeError{
			Start:  start,
			End:    end,
			Bucket: bucket,
			Reason: "unknown period granularity " + string(bucket),
		}
	}
	if start.After(end) {
		return &domain.InvalidRangeError{Start: start, End: end, Bucket: bucket}
	}
	return nil
}

// RequireForecastable guards computations that need at least two aggregated
// periods to be meaningful.
func RequireForecastable(points []domain.TimeSeriesPoint) error {
	if len(points) < 2 {
		return domain.ErrInsufficientData
	}
	return nil
}

// Sorted returns the points in ascending period order. Period labels are
// zero-padded (2025-03, 2025-03-07, 2025-09) so lexicographic order is
// chronological order. Empty buckets are never synthesized.
func Sorted(points []domain.TimeSeriesPoint) []domain.TimeSeriesPoint {
	out := make([]domain.TimeSeriesPoint, len(points))
	copy(out, points)
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// TotalRevenue sums revenue across the series.
func TotalRevenue(points []domain.TimeSeriesPoint) float64 {
	var total float64
	for _, p := range points {
		total += p.Revenue
	}
	return total
}
