// internal/repository/ledger.go
package repository

import (
	"context"
	"time"

	"github.com/udyamhq/udyam-backend/internal/domain"
)

// SalesTotals is the revenue/tax aggregate for a date range.
type SalesTotals struct {
	TotalRevenue float64 `db:"total_revenue"`
	TotalGST     float64 `db:"total_gst"`
}

// ProductSales is quantity and revenue sold per product, joined with the
// product's unit cost components so COGS can be derived without a second
// round trip.
type ProductSales struct {
	ProductID       int64   `db:"product_id"`
	ProductName     string  `db:"product_name"`
	ProductCode     string  `db:"product_code"`
	QuantitySold    int     `db:"quantity_sold"`
	Revenue         float64 `db:"revenue"`
	RawMaterialCost float64 `db:"raw_material_cost"`
	LaborCost       float64 `db:"labor_cost"`
	OverheadCost    float64 `db:"overhead_cost"`
}

// ProductionTotals sums planned/actual/rejected output for a date range.
// Efficiency and rejection averages are row-level averages, guarded against
// zero denominators in SQL.
type ProductionTotals struct {
	TotalPlanned  int     `db:"total_planned"`
	TotalActual   int     `db:"total_actual"`
	TotalRejected int     `db:"total_rejected"`
	EfficiencyPct float64 `db:"efficiency_percentage"`
	RejectionPct  float64 `db:"rejection_rate"`
	Runs          int     `db:"runs"`
}

// LedgerFilter scopes a ledger query to one tenant and date range.
type LedgerFilter struct {
	TenantID int64
	From     time.Time
	To       time.Time
}

// LedgerReader is the read-only boundary between the engine and the
// persisted sales/production/inventory records. Implementations own all
// storage concerns; the engine never sees raw tables or guesses field names.
type LedgerReader interface {
	// Sales aggregates.
	SalesByPeriod(ctx context.Context, f LedgerFilter, bucket domain.Bucket) ([]domain.TimeSeriesPoint, error)
	SalesTotals(ctx context.Context, f LedgerFilter) (SalesTotals, error)
	PaidSalesTotal(ctx context.Context, f LedgerFilter) (float64, error)
	PendingReceivables(ctx context.Context, tenantID int64, asOf time.Time) (float64, error)
	AverageSaleValue(ctx context.Context, f LedgerFilter) (float64, error)
	SalesByProduct(ctx context.Context, f LedgerFilter) ([]ProductSales, error)
	TopProductsByRevenue(ctx context.Context, f LedgerFilter, limit int) ([]domain.ProductRevenue, error)
	RecentSales(ctx context.Context, tenantID int64, limit int) ([]domain.SaleRecord, error)

	// Production aggregates.
	ProductionTotals(ctx context.Context, f LedgerFilter) (ProductionTotals, error)
	AverageEfficiency(ctx context.Context, tenantID int64) (float64, bool, error)
	AverageRejectionRate(ctx context.Context, f LedgerFilter) (float64, error)
	ShiftProduction(ctx context.Context, f LedgerFilter) ([]domain.ShiftOutput, error)
	RecentProduction(ctx context.Context, tenantID int64, limit int) ([]domain.ProductionRecord, error)

	// Product snapshot state.
	CostProfiles(ctx context.Context, tenantID int64) ([]domain.ProductCostProfile, error)
	ActiveProductCount(ctx context.Context, tenantID int64) (int, error)
	LowStockCount(ctx context.Context, tenantID int64) (int, error)
	AverageMaterialCost(ctx context.Context, tenantID int64) (float64, error)

	// Inventory transaction aggregates.
	TransactionValueByType(ctx context.Context, f LedgerFilter, types []domain.TransactionType) (float64, error)
}
