// internal/analytics/forecaster.go
package analytics

import (
	"fmt"
	"time"

	"github.com/udyamhq/udyam-backend/internal/config"
	"github.com/udyamhq/udyam-backend/internal/domain"
)

// Forecaster projects future revenue from an aggregated sales series using
// ordinary least squares over the zero-based period index, adjusted by the
// monthly seasonality table.
type Forecaster struct {
	cfg config.AnalyticsConfig
	now func() time.Time
}

// NewForecaster builds a forecaster with the given tuning block.
func NewForecaster(cfg config.AnalyticsConfig) *Forecaster {
	return &Forecaster{cfg: cfg, now: time.Now}
}

// WithClock overrides the clock used to anchor prediction periods.
func (f *Forecaster) WithClock(now func() time.Time) *Forecaster {
	f.now = now
	return f
}

// regression holds the fitted line y = slope*x + intercept.
type regression struct {
	slope     float64
	intercept float64
}

// fit computes the closed-form OLS coefficients over the revenue series,
// indexed 0..n-1. Callers guarantee n >= 2.
func fit(points []domain.TimeSeriesPoint) regression {
	n := float64(len(points))

	var sumX, sumY, sumXY, sumXX float64
	for i, p := range points {
		x := float64(i)
		sumX += x
		sumY += p.Revenue
		sumXY += x * p.Revenue
		sumXX += x * x
	}

	slope := (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / n

	return regression{slope: slope, intercept: intercept}
}

// Forecast produces the revenue projection for the next `months` periods,
// plus flat-growth projections for the supplied top sellers.
func (f *Forecaster) Forecast(historical []domain.TimeSeriesPoint, topProducts []domain.ProductRevenue, months int) (*domain.Forecast, error) {
	points := Sorted(historical)
	if err := RequireForecastable(points); err != nil {
		return nil, err
	}
	if months <= 0 {
		months = 1
	}

	line := fit(points)
	n := len(points)
	now := f.now()

	predictions := make([]domain.ForecastPoint, 0, months)
	prev := points[n-1].Revenue
	for i := 0; i < months; i++ {
		target := now.AddDate(0, i+1, 0)

		raw := line.slope*float64(n+i) + line.intercept
		if raw < 0 {
			raw = 0
		}
		predicted := raw * f.cfg.Seasonality[target.Month()-1]

		var growth *float64
		if prev != 0 {
			g := (predicted - prev) / prev * 100
			growth = &g
		}

		confidence := 100 - float64(i)*15
		if confidence < 50 {
			confidence = 50
		}

		predictions = append(predictions, domain.ForecastPoint{
			Period:           target.Format("2006-01"),
			PredictedRevenue: predicted,
			GrowthRate:       growth,
			Confidence:       confidence,
		})
		prev = predicted
	}

	return &domain.Forecast{
		Historical:         points,
		Predictions:        predictions,
		ProductPredictions: f.projectProducts(topProducts),
		Assumptions:        f.assumptions(n),
	}, nil
}

// projectProducts applies the flat growth multiplier to the top sellers.
// This is a deliberate simplification; per-product regression would need
// per-product series most tenants do not have yet.
func (f *Forecaster) projectProducts(top []domain.ProductRevenue) []domain.ProductForecast {
	growthPct := f.cfg.ProductGrowthRate * 100

	out := make([]domain.ProductForecast, 0, len(top))
	for _, p := range top {
		out = append(out, domain.ProductForecast{
			ProductID:        p.ProductID,
			ProductName:      p.ProductName,
			ProductCode:      p.ProductCode,
			CurrentRevenue:   p.Revenue,
			PredictedRevenue: p.Revenue * (1 + f.cfg.ProductGrowthRate),
			PredictedGrowth:  fmt.Sprintf("%.0f%%", growthPct),
			Recommendation:   "Maintain stock levels to meet projected demand",
		})
	}
	return out
}

func (f *Forecaster) assumptions(periods int) []string {
	return []string{
		fmt.Sprintf("Revenue predictions use linear regression over the last %d periods of sales", periods),
		"Monthly seasonality multipliers adjust each predicted period",
		fmt.Sprintf("Top product projections assume a flat %.0f%% growth, not a per-product regression", f.cfg.ProductGrowthRate*100),
		"Confidence decreases for periods further in the future",
	}
}
