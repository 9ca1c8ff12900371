// internal/domain/analytics.go
package domain

import "time"

// Bucket is the grouping granularity for time-series aggregation.
type Bucket string

const (
	BucketDay   Bucket = "daily"
	BucketWeek  Bucket = "weekly"
	BucketMonth Bucket = "monthly"
)

// Valid reports whether the bucket is one of the supported granularities.
func (b Bucket) Valid() bool {
	switch b {
	case BucketDay, BucketWeek, BucketMonth:
		return true
	}
	return false
}

// TimeSeriesPoint is one aggregated period of sales activity. Derived per
// request, never persisted.
type TimeSeriesPoint struct {
	Period   string  `json:"period" db:"period"`
	Revenue  float64 `json:"revenue" db:"revenue"`
	Quantity int     `json:"quantity" db:"quantity"`
}

// ForecastPoint is one projected future period.
type ForecastPoint struct {
	Period           string   `json:"period"`
	PredictedRevenue float64  `json:"predicted_revenue"`
	GrowthRate       *float64 `json:"growth_rate"`
	Confidence       float64  `json:"confidence"`
}

// ProductForecast is the simplified per-product projection applied to the
// top sellers. It is a flat growth assumption, not a regression.
type ProductForecast struct {
	ProductID        int64   `json:"product_id"`
	ProductName      string  `json:"product_name"`
	ProductCode      string  `json:"product_code"`
	CurrentRevenue   float64 `json:"current_revenue"`
	PredictedRevenue float64 `json:"predicted_revenue"`
	PredictedGrowth  string  `json:"predicted_growth"`
	Recommendation   string  `json:"recommendation"`
}

// Forecast is the full response of the forecasting endpoint.
type Forecast struct {
	Historical         []TimeSeriesPoint `json:"historical"`
	Predictions        []ForecastPoint   `json:"predictions"`
	ProductPredictions []ProductForecast `json:"product_predictions"`
	Assumptions        []string          `json:"assumptions"`
}

// Severity ranks an anomaly event.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// AnomalyEvent is one triggered detection rule.
type AnomalyEvent struct {
	Type            string   `json:"type"`
	Severity        Severity `json:"severity"`
	Description     string   `json:"description"`
	Impact          string   `json:"impact"`
	SuggestedAction string   `json:"suggested_action"`
}

// AnomalySummary counts events per severity.
type AnomalySummary struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// AnomalyReport is the full response of the anomaly endpoint.
type AnomalyReport struct {
	TotalAnomalies int            `json:"total_anomalies"`
	Anomalies      []AnomalyEvent `json:"anomalies"`
	RiskScore      string         `json:"risk_score"`
	Summary        AnomalySummary `json:"summary"`
}

// HealthFactor is one capped component of the composite health score.
type HealthFactor struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Max   float64 `json:"max"`
}

// HealthScore is the 0-100 composite business health result.
type HealthScore struct {
	OverallScore int            `json:"overall_score"`
	HealthStatus string         `json:"health_status"`
	Factors      []HealthFactor `json:"factors"`
	Timestamp    time.Time      `json:"timestamp"`
}

// ProductRevenue is an aggregated revenue/quantity row per product.
type ProductRevenue struct {
	ProductID   int64   `json:"product_id" db:"product_id"`
	ProductName string  `json:"product_name" db:"product_name"`
	ProductCode string  `json:"product_code" db:"product_code"`
	Revenue     float64 `json:"revenue" db:"revenue"`
	Quantity    int     `json:"quantity" db:"quantity"`
}

// SalesAnalytics is the bucketed trend plus top sellers.
type SalesAnalytics struct {
	SalesTrend  []TimeSeriesPoint `json:"sales_trend"`
	TopProducts []ProductRevenue  `json:"top_products"`
}

// ShiftOutput is the produced quantity for one shift.
type ShiftOutput struct {
	Shift    string `json:"shift" db:"shift"`
	Quantity int    `json:"total_production" db:"total_production"`
}

// ProductionAnalytics summarises efficiency and quality over a window.
type ProductionAnalytics struct {
	TotalPlanned    int           `json:"total_planned"`
	TotalActual     int           `json:"total_actual"`
	TotalRejected   int           `json:"total_rejected"`
	EfficiencyPct   float64       `json:"efficiency_percentage"`
	RejectionPct    float64       `json:"rejection_rate"`
	ShiftProduction []ShiftOutput `json:"shift_wise_production"`
}

// OverviewSummary is the headline card of the dashboard.
type OverviewSummary struct {
	TotalProducts    int     `json:"total_products"`
	TotalSales       float64 `json:"total_sales"`
	TotalProduction  int     `json:"total_production"`
	LowStockProducts int     `json:"low_stock_products"`
}

// DashboardOverview is the full dashboard response.
type DashboardOverview struct {
	Summary          OverviewSummary    `json:"summary"`
	RecentSales      []SaleRecord       `json:"recent_sales"`
	RecentProduction []ProductionRecord `json:"recent_production"`
}
