// internal/analytics/forecaster_test.go
package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udyamhq/udyam-backend/internal/config"
	"github.com/udyamhq/udyam-backend/internal/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sixMonthSeries() []domain.TimeSeriesPoint {
	return []domain.TimeSeriesPoint{
		{Period: "2025-01", Revenue: 65000},
		{Period: "2025-02", Revenue: 59000},
		{Period: "2025-03", Revenue: 80000},
		{Period: "2025-04", Revenue: 81000},
		{Period: "2025-05", Revenue: 56000},
		{Period: "2025-06", Revenue: 55000},
	}
}

func TestForecastRegressionClosedForm(t *testing.T) {
	f := NewForecaster(config.DefaultAnalytics()).
		WithClock(fixedClock(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))

	result, err := f.Forecast(sixMonthSeries(), nil, 3)
	require.NoError(t, err)
	require.Len(t, result.Predictions, 3)

	// slope = -174000/105, intercept = 491000/7. The raw prediction for
	// index 6 is exactly 60200, scaled by July's 1.2 multiplier.
	july := result.Predictions[0]
	assert.Equal(t, "2025-07", july.Period)
	assert.InDelta(t, 72240.0, july.PredictedRevenue, 0.01)
	assert.Equal(t, 100.0, july.Confidence)
	require.NotNil(t, july.GrowthRate)
	assert.InDelta(t, (72240.0-55000.0)/55000.0*100, *july.GrowthRate, 0.01)

	aug := result.Predictions[1]
	assert.Equal(t, "2025-08", aug.Period)
	assert.InDelta(t, 409800.0/7*1.1, aug.PredictedRevenue, 0.01)
	assert.Equal(t, 85.0, aug.Confidence)

	sep := result.Predictions[2]
	assert.Equal(t, "2025-09", sep.Period)
	assert.InDelta(t, 398200.0/7, sep.PredictedRevenue, 0.01)
	assert.Equal(t, 70.0, sep.Confidence)
}

func TestForecastConfidenceFloor(t *testing.T) {
	f := NewForecaster(config.DefaultAnalytics()).
		WithClock(fixedClock(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))

	result, err := f.Forecast(sixMonthSeries(), nil, 5)
	require.NoError(t, err)
	require.Len(t, result.Predictions, 5)

	got := make([]float64, 0, 5)
	for _, p := range result.Predictions {
		got = append(got, p.Confidence)
	}
	assert.Equal(t, []float64{100, 85, 70, 55, 50}, got)
}

func TestForecastDefaultHorizonIsOnePeriod(t *testing.T) {
	f := NewForecaster(config.DefaultAnalytics()).
		WithClock(fixedClock(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))

	result, err := f.Forecast(sixMonthSeries(), nil, 0)
	require.NoError(t, err)
	require.Len(t, result.Predictions, 1)
	assert.Equal(t, "2025-07", result.Predictions[0].Period)

	result, err = f.Forecast(sixMonthSeries(), nil, -2)
	require.NoError(t, err)
	assert.Len(t, result.Predictions, 1)
}

func TestForecastNeverNegative(t *testing.T) {
	f := NewForecaster(config.DefaultAnalytics()).
		WithClock(fixedClock(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))

	// Steep decline drives the raw fitted line below zero quickly.
	result, err := f.Forecast([]domain.TimeSeriesPoint{
		{Period: "2025-05", Revenue: 10000},
		{Period: "2025-06", Revenue: 100},
	}, nil, 4)
	require.NoError(t, err)

	for _, p := range result.Predictions {
		assert.GreaterOrEqual(t, p.PredictedRevenue, 0.0)
	}
}

func TestForecastGrowthRateNilOnZeroBase(t *testing.T) {
	f := NewForecaster(config.DefaultAnalytics()).
		WithClock(fixedClock(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))

	result, err := f.Forecast([]domain.TimeSeriesPoint{
		{Period: "2025-05", Revenue: 5000},
		{Period: "2025-06", Revenue: 0},
	}, nil, 1)
	require.NoError(t, err)
	require.Len(t, result.Predictions, 1)
	assert.Nil(t, result.Predictions[0].GrowthRate)
}

func TestForecastInsufficientData(t *testing.T) {
	f := NewForecaster(config.DefaultAnalytics())

	_, err := f.Forecast([]domain.TimeSeriesPoint{{Period: "2025-06", Revenue: 5000}}, nil, 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientData)

	_, err = f.Forecast(nil, nil, 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientData)
}

func TestForecastProductProjections(t *testing.T) {
	f := NewForecaster(config.DefaultAnalytics()).
		WithClock(fixedClock(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))

	top := []domain.ProductRevenue{
		{ProductID: 1, ProductName: "Widget A", ProductCode: "WA-01", Revenue: 20000},
		{ProductID: 2, ProductName: "Widget B", ProductCode: "WB-02", Revenue: 8000},
	}

	result, err := f.Forecast(sixMonthSeries(), top, 1)
	require.NoError(t, err)
	require.Len(t, result.ProductPredictions, 2)

	assert.InDelta(t, 21000.0, result.ProductPredictions[0].PredictedRevenue, 0.01)
	assert.Equal(t, "5%", result.ProductPredictions[0].PredictedGrowth)
	assert.InDelta(t, 8400.0, result.ProductPredictions[1].PredictedRevenue, 0.01)
	assert.NotEmpty(t, result.Assumptions)
}

func TestForecastSortsUnorderedInput(t *testing.T) {
	f := NewForecaster(config.DefaultAnalytics()).
		WithClock(fixedClock(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))

	series := sixMonthSeries()
	series[0], series[5] = series[5], series[0]

	result, err := f.Forecast(series, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-01", result.Historical[0].Period)
	assert.Equal(t, "2025-06", result.Historical[5].Period)
	assert.InDelta(t, 72240.0, result.Predictions[0].PredictedRevenue, 0.01)
}
