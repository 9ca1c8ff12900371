// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInsufficientData signals that too few aggregated periods exist for the
// requested computation. Surfaced to callers as a client error, not retried.
var ErrInsufficientData = errors.New("insufficient data for prediction, need at least 2 periods of sales data")

// InvalidRangeError rejects a date range or granularity before any
// aggregation runs.
type InvalidRangeError struct {
	Start  time.Time
	End    time.Time
	Bucket Bucket
	Reason string
}

func (e *InvalidRangeError) Error() string {
	if e.Reason != "" {
		return "invalid range: " + e.Reason
	}
	return fmt.Sprintf("invalid range: start %s is after end %s", e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

// UnknownReportTypeError rejects a report type identifier, listing the
// accepted values.
type UnknownReportTypeError struct {
	Got ReportType
}

func (e *UnknownReportTypeError) Error() string {
	valid := make([]string, 0, len(ValidReportTypes()))
	for _, t := range ValidReportTypes() {
		valid = append(valid, string(t))
	}
	return fmt.Sprintf("invalid report type %q, valid types: %s", e.Got, strings.Join(valid, ", "))
}

// IsClientError reports whether err should map to a 4xx response.
func IsClientError(err error) bool {
	var rangeErr *InvalidRangeError
	var reportErr *UnknownReportTypeError
	return errors.Is(err, ErrInsufficientData) || errors.As(err, &rangeErr) || errors.As(err, &reportErr)
}
