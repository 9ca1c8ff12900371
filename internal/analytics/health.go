// internal/analytics/health.go
package analytics

import (
	"math"
	"time"

	"github.com/udyamhq/udyam-backend/internal/config"
	"github.com/udyamhq/udyam-backend/internal/domain"
)

// ScorerInput carries the tenant snapshot the health factors are computed
// from, pre-aggregated by the service layer.
type ScorerInput struct {
	ActiveProducts int
	LowStockCount  int

	// Average of actual/planned*100 over all runs with a plan. HasEfficiency
	// is false when no such run exists.
	AvgEfficiencyPct float64
	HasEfficiency    bool

	// Revenue over the trailing 30 days.
	Revenue30d float64

	// Average unit margin percentage across priced products. HasMargin is
	// false when no product has a positive selling price.
	AvgMarginPct float64
	HasMargin    bool
}

// HealthScorer composes four capped factors into a 0-100 business health
// score.
type HealthScorer struct {
	cfg config.AnalyticsConfig
	now func() time.Time
}

// NewHealthScorer builds a scorer with the given thresholds.
func NewHealthScorer(cfg config.AnalyticsConfig) *HealthScorer {
	return &HealthScorer{cfg: cfg, now: time.Now}
}

// WithClock overrides the timestamp clock.
func (s *HealthScorer) WithClock(now func() time.Time) *HealthScorer {
	s.now = now
	return s
}

// Score computes the composite score. Each factor is clamped to [0, 25] so
// the overall score stays within [0, 100] regardless of input.
func (s *HealthScorer) Score(in ScorerInput) *domain.HealthScore {
	factors := []domain.HealthFactor{
		{Name: "stock_availability", Score: s.stockFactor(in), Max: 25},
		{Name: "production_efficiency", Score: s.efficiencyFactor(in), Max: 25},
		{Name: "sales_performance", Score: s.salesFactor(in), Max: 25},
		{Name: "profit_margin", Score: s.marginFactor(in), Max: 25},
	}

	var total float64
	for _, f := range factors {
		total += f.Score
	}
	overall := int(math.Round(total))

	return &domain.HealthScore{
		OverallScore: overall,
		HealthStatus: healthStatus(overall),
		Factors:      factors,
		Timestamp:    s.now(),
	}
}

// stockFactor penalizes the share of products sitting at or below minimum
// stock. A tenant with no active products has nothing at risk and scores
// full marks.
func (s *HealthScorer) stockFactor(in ScorerInput) float64 {
	if in.ActiveProducts == 0 {
		return 25
	}
	score := 25 - float64(in.LowStockCount)/float64(in.ActiveProducts)*25
	return clampFactor(score)
}

func (s *HealthScorer) efficiencyFactor(in ScorerInput) float64 {
	if !in.HasEfficiency {
		return 15
	}
	return clampFactor(in.AvgEfficiencyPct / 100 * 25)
}

func (s *HealthScorer) salesFactor(in ScorerInput) float64 {
	if in.Revenue30d > s.cfg.SalesHealthyThreshold {
		return 20
	}
	return 15
}

func (s *HealthScorer) marginFactor(in ScorerInput) float64 {
	if !in.HasMargin {
		return 20
	}
	return clampFactor(in.AvgMarginPct / 100 * 25)
}

func clampFactor(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 25 {
		return 25
	}
	return score
}

func healthStatus(score int) string {
	switch {
	case score < 50:
		return "Critical"
	case score < 70:
		return "Warning"
	case score < 85:
		return "Good"
	default:
		return "Healthy"
	}
}
