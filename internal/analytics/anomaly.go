// internal/analytics/anomaly.go
package analytics

import (
	"fmt"

	"github.com/udyamhq/udyam-backend/internal/config"
	"github.com/udyamhq/udyam-backend/internal/domain"
)

// DetectorInput carries the pre-aggregated signals the detection rules run
// on. The service layer fills it from the ledger; the detector itself never
// touches storage.
type DetectorInput struct {
	// Average sale value over the trailing week vs the prior window.
	RecentAvgSale     float64
	HistoricalAvgSale float64

	// 30-day average rejection percentage over runs with output.
	RejectionRatePct float64

	// Active products at or below their minimum stock level.
	LowStockCount int

	// Pending sale value older than the overdue window.
	OverdueReceivables float64

	// Average raw material cost across active products.
	AvgMaterialCost float64
}

// AnomalyDetector evaluates the fixed rule set against a tenant snapshot.
type AnomalyDetector struct {
	cfg config.AnalyticsConfig
}

// NewAnomalyDetector builds a detector with the given thresholds.
func NewAnomalyDetector(cfg config.AnalyticsConfig) *AnomalyDetector {
	return &AnomalyDetector{cfg: cfg}
}

// Detect runs all rules and assembles the report. All thresholds are
// exclusive: a value exactly at the threshold does not fire.
func (d *AnomalyDetector) Detect(in DetectorInput) *domain.AnomalyReport {
	var events []domain.AnomalyEvent

	if in.HistoricalAvgSale > 0 && in.RecentAvgSale < d.cfg.SalesDropRatio*in.HistoricalAvgSale {
		dropPct := (1 - in.RecentAvgSale/in.HistoricalAvgSale) * 100
		events = append(events, domain.AnomalyEvent{
			Type:     "SALES_DROP",
			Severity: domain.SeverityHigh,
			Description: fmt.Sprintf("Average sale value dropped %.1f%% vs the previous weeks (%.2f vs %.2f)",
				dropPct, in.RecentAvgSale, in.HistoricalAvgSale),
			Impact:          "Revenue is trending well below the recent baseline",
			SuggestedAction: "Review pricing, promotions and top customer activity for the last week",
		})
	}

	if in.RejectionRatePct > d.cfg.RejectionRatePct {
		events = append(events, domain.AnomalyEvent{
			Type:            "HIGH_REJECTION_RATE",
			Severity:        domain.SeverityMedium,
			Description:     fmt.Sprintf("Production rejection rate is %.1f%% over the last 30 days", in.RejectionRatePct),
			Impact:          "Material and labor spent on rejected output is unrecoverable",
			SuggestedAction: "Inspect machines and raw material batches on the worst performing shifts",
		})
	}

	if in.LowStockCount > 0 {
		severity := domain.SeverityMedium
		if in.LowStockCount > d.cfg.LowStockHighCount {
			severity = domain.SeverityHigh
		}
		events = append(events, domain.AnomalyEvent{
			Type:            "LOW_STOCK",
			Severity:        severity,
			Description:     fmt.Sprintf("%d products are at or below their minimum stock level", in.LowStockCount),
			Impact:          "Orders for these products risk delay or cancellation",
			SuggestedAction: "Schedule production runs or purchase orders for the affected products",
		})
	}

	if in.OverdueReceivables > d.cfg.OverdueReceivables {
		events = append(events, domain.AnomalyEvent{
			Type:            "OVERDUE_RECEIVABLES",
			Severity:        domain.SeverityHigh,
			Description:     fmt.Sprintf("₹%.2f in sales are pending payment for more than %d days", in.OverdueReceivables, d.cfg.OverdueDays),
			Impact:          "Working capital is locked in unpaid invoices",
			SuggestedAction: "Follow up with customers holding the oldest pending invoices",
		})
	}

	if in.AvgMaterialCost > d.cfg.MaterialCostPerUnit {
		events = append(events, domain.AnomalyEvent{
			Type:            "HIGH_MATERIAL_COST",
			Severity:        domain.SeverityMedium,
			Description:     fmt.Sprintf("Average raw material cost per unit is ₹%.2f", in.AvgMaterialCost),
			Impact:          "Unit margins shrink as material cost rises",
			SuggestedAction: "Renegotiate supplier rates or source alternative materials",
		})
	}

	summary := domain.AnomalySummary{}
	score := 0
	for _, e := range events {
		switch e.Severity {
		case domain.SeverityHigh:
			summary.High++
			score += 3
		case domain.SeverityMedium:
			summary.Medium++
			score += 2
		default:
			summary.Low++
			score++
		}
	}

	return &domain.AnomalyReport{
		TotalAnomalies: len(events),
		Anomalies:      events,
		RiskScore:      riskLabel(score),
		Summary:        summary,
	}
}

func riskLabel(score int) string {
	switch {
	case score >= 10:
		return "CRITICAL"
	case score >= 6:
		return "HIGH"
	case score >= 3:
		return "MEDIUM"
	default:
		return "LOW"
	}
}
