// internal/analytics/anomaly_test.go
package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udyamhq/udyam-backend/internal/config"
	"github.com/udyamhq/udyam-backend/internal/domain"
)

func TestDetectNoAnomalies(t *testing.T) {
	d := NewAnomalyDetector(config.DefaultAnalytics())

	report := d.Detect(DetectorInput{
		RecentAvgSale:     5000,
		HistoricalAvgSale: 5200,
		RejectionRatePct:  4,
		LowStockCount:     0,
	})

	assert.Equal(t, 0, report.TotalAnomalies)
	assert.Empty(t, report.Anomalies)
	assert.Equal(t, "LOW", report.RiskScore)
}

func TestDetectSalesDrop(t *testing.T) {
	d := NewAnomalyDetector(config.DefaultAnalytics())

	report := d.Detect(DetectorInput{RecentAvgSale: 3000, HistoricalAvgSale: 5000})
	require.Len(t, report.Anomalies, 1)
	assert.Equal(t, "SALES_DROP", report.Anomalies[0].Type)
	assert.Equal(t, domain.SeverityHigh, report.Anomalies[0].Severity)

	// Exactly at the 70% ratio does not fire, nor does a zero baseline.
	report = d.Detect(DetectorInput{RecentAvgSale: 3500, HistoricalAvgSale: 5000})
	assert.Empty(t, report.Anomalies)
	report = d.Detect(DetectorInput{RecentAvgSale: 0, HistoricalAvgSale: 0})
	assert.Empty(t, report.Anomalies)
}

func TestDetectRejectionRateBoundary(t *testing.T) {
	d := NewAnomalyDetector(config.DefaultAnalytics())

	report := d.Detect(DetectorInput{RejectionRatePct: 10.0})
	assert.Empty(t, report.Anomalies)

	report = d.Detect(DetectorInput{RejectionRatePct: 10.1})
	require.Len(t, report.Anomalies, 1)
	assert.Equal(t, "HIGH_REJECTION_RATE", report.Anomalies[0].Type)
	assert.Equal(t, domain.SeverityMedium, report.Anomalies[0].Severity)
}

func TestDetectLowStockEscalation(t *testing.T) {
	d := NewAnomalyDetector(config.DefaultAnalytics())

	report := d.Detect(DetectorInput{LowStockCount: 3})
	require.Len(t, report.Anomalies, 1)
	assert.Equal(t, domain.SeverityMedium, report.Anomalies[0].Severity)

	// Exactly 5 stays MEDIUM, above 5 escalates.
	report = d.Detect(DetectorInput{LowStockCount: 5})
	assert.Equal(t, domain.SeverityMedium, report.Anomalies[0].Severity)

	report = d.Detect(DetectorInput{LowStockCount: 6})
	assert.Equal(t, domain.SeverityHigh, report.Anomalies[0].Severity)
}

func TestDetectOverdueReceivables(t *testing.T) {
	d := NewAnomalyDetector(config.DefaultAnalytics())

	report := d.Detect(DetectorInput{OverdueReceivables: 10000})
	assert.Empty(t, report.Anomalies)

	report = d.Detect(DetectorInput{OverdueReceivables: 10000.01})
	require.Len(t, report.Anomalies, 1)
	assert.Equal(t, "OVERDUE_RECEIVABLES", report.Anomalies[0].Type)
	assert.Equal(t, domain.SeverityHigh, report.Anomalies[0].Severity)
}

func TestDetectMaterialCost(t *testing.T) {
	d := NewAnomalyDetector(config.DefaultAnalytics())

	report := d.Detect(DetectorInput{AvgMaterialCost: 1000})
	assert.Empty(t, report.Anomalies)

	report = d.Detect(DetectorInput{AvgMaterialCost: 1250})
	require.Len(t, report.Anomalies, 1)
	assert.Equal(t, "HIGH_MATERIAL_COST", report.Anomalies[0].Type)
}

func TestDetectRiskScoreLadder(t *testing.T) {
	d := NewAnomalyDetector(config.DefaultAnalytics())

	// One MEDIUM event scores 2 -> LOW.
	report := d.Detect(DetectorInput{LowStockCount: 2})
	assert.Equal(t, "LOW", report.RiskScore)

	// HIGH (3) alone -> MEDIUM.
	report = d.Detect(DetectorInput{RecentAvgSale: 100, HistoricalAvgSale: 5000})
	assert.Equal(t, "MEDIUM", report.RiskScore)

	// HIGH + HIGH (6) -> HIGH.
	report = d.Detect(DetectorInput{
		RecentAvgSale:      100,
		HistoricalAvgSale:  5000,
		OverdueReceivables: 25000,
	})
	assert.Equal(t, "HIGH", report.RiskScore)

	// All five rules: 3+2+3+3+2 = 13 -> CRITICAL.
	report = d.Detect(DetectorInput{
		RecentAvgSale:      100,
		HistoricalAvgSale:  5000,
		RejectionRatePct:   22,
		LowStockCount:      9,
		OverdueReceivables: 25000,
		AvgMaterialCost:    1800,
	})
	assert.Equal(t, 5, report.TotalAnomalies)
	assert.Equal(t, "CRITICAL", report.RiskScore)
	assert.Equal(t, domain.AnomalySummary{High: 3, Medium: 2, Low: 0}, report.Summary)
}
