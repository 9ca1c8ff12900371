// internal/service/analytics_service.go
package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/udyamhq/udyam-backend/internal/analytics"
	"github.com/udyamhq/udyam-backend/internal/cache"
	"github.com/udyamhq/udyam-backend/internal/config"
	"github.com/udyamhq/udyam-backend/internal/domain"
	"github.com/udyamhq/udyam-backend/internal/repository"
)

const recentRowLimit = 5

// AnalyticsService orchestrates ledger reads into engine computations, with
// a short-lived response cache in front of the expensive aggregations.
type AnalyticsService struct {
	ledger   repository.LedgerReader
	cache    cache.AnalyticsCache
	cfg      config.AnalyticsConfig
	forecast *analytics.Forecaster
	detector *analytics.AnomalyDetector
	scorer   *analytics.HealthScorer
	now      func() time.Time
}

// NewAnalyticsService wires the engine components around the ledger.
func NewAnalyticsService(ledger repository.LedgerReader, cacheImpl cache.AnalyticsCache, cfg config.AnalyticsConfig) *AnalyticsService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAnalyticsCache()
	}
	return &AnalyticsService{
		ledger:   ledger,
		cache:    cacheImpl,
		cfg:      cfg,
		forecast: analytics.NewForecaster(cfg),
		detector: analytics.NewAnomalyDetector(cfg),
		scorer:   analytics.NewHealthScorer(cfg),
		now:      time.Now,
	}
}

// WithClock overrides the clock used to anchor trailing windows.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	s.forecast.WithClock(now)
	s.scorer.WithClock(now)
	return s
}

// Forecast aggregates the trailing monthly revenue series and projects the
// next `months` periods.
func (s *AnalyticsService) Forecast(ctx context.Context, tenantID int64, months int) (*domain.Forecast, error) {
	key := cache.Key(tenantID, "forecast", map[string]string{"months": strconv.Itoa(months)})
	var cached domain.Forecast
	if s.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	now := s.now()
	f := repository.LedgerFilter{
		TenantID: tenantID,
		From:     now.AddDate(0, -s.cfg.HistoryMonths, 0),
		To:       now,
	}

	historical, err := s.ledger.SalesByPeriod(ctx, f, domain.BucketMonth)
	if err != nil {
		return nil, err
	}

	top, err := s.ledger.TopProductsByRevenue(ctx, f, s.cfg.TopProductCount)
	if err != nil {
		return nil, err
	}

	result, err := s.forecast.Forecast(historical, top, months)
	if err != nil {
		return nil, err
	}

	s.putCache(ctx, key, result)
	return result, nil
}

// Anomalies runs the detection rules against the tenant's current ledger
// snapshot.
func (s *AnalyticsService) Anomalies(ctx context.Context, tenantID int64) (*domain.AnomalyReport, error) {
	key := cache.Key(tenantID, "anomalies", nil)
	var cached domain.AnomalyReport
	if s.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	now := s.now()
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	var in analytics.DetectorInput
	var err error

	if in.RecentAvgSale, err = s.ledger.AverageSaleValue(ctx, repository.LedgerFilter{TenantID: tenantID, From: weekAgo, To: now}); err != nil {
		return nil, err
	}
	if in.HistoricalAvgSale, err = s.ledger.AverageSaleValue(ctx, repository.LedgerFilter{TenantID: tenantID, From: monthAgo, To: weekAgo}); err != nil {
		return nil, err
	}
	if in.RejectionRatePct, err = s.ledger.AverageRejectionRate(ctx, repository.LedgerFilter{TenantID: tenantID, From: monthAgo, To: now}); err != nil {
		return nil, err
	}
	if in.LowStockCount, err = s.ledger.LowStockCount(ctx, tenantID); err != nil {
		return nil, err
	}
	if in.OverdueReceivables, err = s.ledger.PendingReceivables(ctx, tenantID, now.AddDate(0, 0, -s.cfg.OverdueDays)); err != nil {
		return nil, err
	}
	if in.AvgMaterialCost, err = s.ledger.AverageMaterialCost(ctx, tenantID); err != nil {
		return nil, err
	}

	report := s.detector.Detect(in)
	s.putCache(ctx, key, report)
	return report, nil
}

// HealthScore composes the four-factor business health score.
func (s *AnalyticsService) HealthScore(ctx context.Context, tenantID int64) (*domain.HealthScore, error) {
	key := cache.Key(tenantID, "health", nil)
	var cached domain.HealthScore
	if s.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	now := s.now()
	var in analytics.ScorerInput
	var err error

	if in.ActiveProducts, err = s.ledger.ActiveProductCount(ctx, tenantID); err != nil {
		return nil, err
	}
	if in.LowStockCount, err = s.ledger.LowStockCount(ctx, tenantID); err != nil {
		return nil, err
	}
	if in.AvgEfficiencyPct, in.HasEfficiency, err = s.ledger.AverageEfficiency(ctx, tenantID); err != nil {
		return nil, err
	}

	totals, err := s.ledger.SalesTotals(ctx, repository.LedgerFilter{TenantID: tenantID, From: now.AddDate(0, 0, -30), To: now})
	if err != nil {
		return nil, err
	}
	in.Revenue30d = totals.TotalRevenue

	profiles, err := s.ledger.CostProfiles(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	in.AvgMarginPct, in.HasMargin = averageMargin(profiles)

	score := s.scorer.Score(in)
	s.putCache(ctx, key, score)
	return score, nil
}

// Sales returns the bucketed revenue trend and top sellers. The trailing
// window scales with the granularity.
func (s *AnalyticsService) Sales(ctx context.Context, tenantID int64, bucket domain.Bucket) (*domain.SalesAnalytics, error) {
	now := s.now()
	from := now.AddDate(0, 0, -30)
	switch bucket {
	case domain.BucketWeek:
		from = now.AddDate(0, 0, -84)
	case domain.BucketMonth:
		from = now.AddDate(-1, 0, 0)
	}

	if err := analytics.ValidateRange(from, now, bucket); err != nil {
		return nil, err
	}

	key := cache.Key(tenantID, "sales", map[string]string{"period": string(bucket)})
	var cached domain.SalesAnalytics
	if s.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	f := repository.LedgerFilter{TenantID: tenantID, From: from, To: now}

	trend, err := s.ledger.SalesByPeriod(ctx, f, bucket)
	if err != nil {
		return nil, err
	}

	top, err := s.ledger.TopProductsByRevenue(ctx, f, s.cfg.TopProductCount)
	if err != nil {
		return nil, err
	}

	result := &domain.SalesAnalytics{
		SalesTrend:  analytics.Sorted(trend),
		TopProducts: top,
	}
	s.putCache(ctx, key, result)
	return result, nil
}

// Production summarises the trailing 30 days of production runs.
func (s *AnalyticsService) Production(ctx context.Context, tenantID int64) (*domain.ProductionAnalytics, error) {
	key := cache.Key(tenantID, "production", nil)
	var cached domain.ProductionAnalytics
	if s.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	now := s.now()
	f := repository.LedgerFilter{TenantID: tenantID, From: now.AddDate(0, 0, -30), To: now}

	totals, err := s.ledger.ProductionTotals(ctx, f)
	if err != nil {
		return nil, err
	}

	shifts, err := s.ledger.ShiftProduction(ctx, f)
	if err != nil {
		return nil, err
	}

	result := &domain.ProductionAnalytics{
		TotalPlanned:    totals.TotalPlanned,
		TotalActual:     totals.TotalActual,
		TotalRejected:   totals.TotalRejected,
		EfficiencyPct:   totals.EfficiencyPct,
		RejectionPct:    totals.RejectionPct,
		ShiftProduction: shifts,
	}
	s.putCache(ctx, key, result)
	return result, nil
}

// Overview fans out the independent dashboard queries concurrently.
func (s *AnalyticsService) Overview(ctx context.Context, tenantID int64) (*domain.DashboardOverview, error) {
	key := cache.Key(tenantID, "overview", nil)
	var cached domain.DashboardOverview
	if s.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	now := s.now()
	f := repository.LedgerFilter{TenantID: tenantID, From: now.AddDate(0, 0, -30), To: now}

	var overview domain.DashboardOverview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.ledger.ActiveProductCount(gctx, tenantID)
		overview.Summary.TotalProducts = count
		return err
	})
	g.Go(func() error {
		totals, err := s.ledger.SalesTotals(gctx, f)
		overview.Summary.TotalSales = totals.TotalRevenue
		return err
	})
	g.Go(func() error {
		totals, err := s.ledger.ProductionTotals(gctx, f)
		overview.Summary.TotalProduction = totals.TotalActual
		return err
	})
	g.Go(func() error {
		count, err := s.ledger.LowStockCount(gctx, tenantID)
		overview.Summary.LowStockProducts = count
		return err
	})
	g.Go(func() error {
		sales, err := s.ledger.RecentSales(gctx, tenantID, recentRowLimit)
		overview.RecentSales = sales
		return err
	})
	g.Go(func() error {
		records, err := s.ledger.RecentProduction(gctx, tenantID, recentRowLimit)
		overview.RecentProduction = records
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if overview.RecentSales == nil {
		overview.RecentSales = make([]domain.SaleRecord, 0)
	}
	if overview.RecentProduction == nil {
		overview.RecentProduction = make([]domain.ProductionRecord, 0)
	}

	s.putCache(ctx, key, &overview)
	return &overview, nil
}

func (s *AnalyticsService) getCached(ctx context.Context, key string, v any) bool {
	payload, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("analytics: cache get failed")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(payload, v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("analytics: cache decode failed")
		return false
	}
	return true
}

func (s *AnalyticsService) putCache(ctx context.Context, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("analytics: cache encode failed")
		return
	}
	if err := s.cache.Set(ctx, key, payload); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("analytics: cache set failed")
	}
}

// averageMargin averages the unit margin over products with a positive
// selling price. The second return is false when none qualify.
func averageMargin(profiles []domain.ProductCostProfile) (float64, bool) {
	var sum float64
	var count int
	for _, p := range profiles {
		if m, ok := p.Margin(); ok {
			sum += m
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}
