// internal/repository/postgres/ledger_repository.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/udyamhq/udyam-backend/internal/domain"
	"github.com/udyamhq/udyam-backend/internal/repository"
)

type ledgerRepository struct {
	db *DB
}

// NewLedgerRepository returns the postgres-backed LedgerReader.
func NewLedgerRepository(db *DB) repository.LedgerReader {
	return &ledgerRepository{db: db}
}

// withSlot bounds the grouped scan queries with the pool semaphore so a
// dashboard fan-out cannot starve the point lookups.
func (r *ledgerRepository) withSlot(ctx context.Context, fn func() error) error {
	if err := r.db.Acquire(ctx); err != nil {
		return err
	}
	defer r.db.Release()
	return fn()
}

// periodExpr maps a bucket to the date_trunc unit and period label format.
func periodExpr(bucket domain.Bucket) (string, string) {
	switch bucket {
	case domain.BucketDay:
		return "day", "YYYY-MM-DD"
	case domain.BucketWeek:
		return "week", "IYYY-IW"
	default:
		return "month", "YYYY-MM"
	}
}

func (r *ledgerRepository) SalesByPeriod(ctx context.Context, f repository.LedgerFilter, bucket domain.Bucket) ([]domain.TimeSeriesPoint, error) {
	unit, format := periodExpr(bucket)

	query := fmt.Sprintf(`
        SELECT
            to_char(date_trunc('%s', sale_date), '%s') AS period,
            COALESCE(SUM(quantity * unit_price), 0) AS revenue,
            COALESCE(SUM(quantity), 0) AS quantity
        FROM sales
        WHERE tenant_id = $1 AND sale_date >= $2 AND sale_date <= $3
        GROUP BY 1
        ORDER BY 1 ASC
    `, unit, format)

	var points []domain.TimeSeriesPoint
	err := r.withSlot(ctx, func() error {
		return r.db.SelectContext(ctx, &points, query, f.TenantID, f.From, f.To)
	})
	if err != nil {
		return nil, fmt.Errorf("error getting sales by period: %w", err)
	}

	return points, nil
}

func (r *ledgerRepository) SalesTotals(ctx context.Context, f repository.LedgerFilter) (repository.SalesTotals, error) {
	query := `
        SELECT
            COALESCE(SUM(quantity * unit_price), 0) AS total_revenue,
            COALESCE(SUM(quantity * unit_price * tax_rate / 100), 0) AS total_gst
        FROM sales
        WHERE tenant_id = $1 AND sale_date >= $2 AND sale_date <= $3
    `

	var totals repository.SalesTotals
	if err := r.db.GetContext(ctx, &totals, query, f.TenantID, f.From, f.To); err != nil {
		return repository.SalesTotals{}, fmt.Errorf("error getting sales totals: %w", err)
	}

	return totals, nil
}

func (r *ledgerRepository) PaidSalesTotal(ctx context.Context, f repository.LedgerFilter) (float64, error) {
	query := `
        SELECT COALESCE(SUM(quantity * unit_price), 0)
        FROM sales
        WHERE tenant_id = $1 AND payment_status = 'Paid'
          AND sale_date >= $2 AND sale_date <= $3
    `

	var total float64
	if err := r.db.GetContext(ctx, &total, query, f.TenantID, f.From, f.To); err != nil {
		return 0, fmt.Errorf("error getting paid sales total: %w", err)
	}

	return total, nil
}

func (r *ledgerRepository) PendingReceivables(ctx context.Context, tenantID int64, asOf time.Time) (float64, error) {
	query := `
        SELECT COALESCE(SUM(quantity * unit_price), 0)
        FROM sales
        WHERE tenant_id = $1 AND payment_status = 'Pending' AND sale_date <= $2
    `

	var total float64
	if err := r.db.GetContext(ctx, &total, query, tenantID, asOf); err != nil {
		return 0, fmt.Errorf("error getting pending receivables: %w", err)
	}

	return total, nil
}

// AverageSaleValue averages per-row sale value. The upper bound is
// exclusive so adjacent comparison windows never share a row.
func (r *ledgerRepository) AverageSaleValue(ctx context.Context, f repository.LedgerFilter) (float64, error) {
	query := `
        SELECT COALESCE(AVG(quantity * unit_price), 0)
        FROM sales
        WHERE tenant_id = $1 AND sale_date >= $2 AND sale_date < $3
    `

	var avg float64
	if err := r.db.GetContext(ctx, &avg, query, f.TenantID, f.From, f.To); err != nil {
		return 0, fmt.Errorf("error getting average sale value: %w", err)
	}

	return avg, nil
}

func (r *ledgerRepository) SalesByProduct(ctx context.Context, f repository.LedgerFilter) ([]repository.ProductSales, error) {
	query := `
        SELECT
            s.product_id,
            p.product_name,
            p.product_code,
            COALESCE(SUM(s.quantity), 0) AS quantity_sold,
            COALESCE(SUM(s.quantity * s.unit_price), 0) AS revenue,
            p.raw_material_cost,
            p.labor_cost,
            p.overhead_cost
        FROM sales s
        JOIN products p ON p.id = s.product_id
        WHERE s.tenant_id = $1 AND s.sale_date >= $2 AND s.sale_date <= $3
        GROUP BY s.product_id, p.product_name, p.product_code,
                 p.raw_material_cost, p.labor_cost, p.overhead_cost
        ORDER BY revenue DESC
    `

	var rows []repository.ProductSales
	err := r.withSlot(ctx, func() error {
		return r.db.SelectContext(ctx, &rows, query, f.TenantID, f.From, f.To)
	})
	if err != nil {
		return nil, fmt.Errorf("error getting sales by product: %w", err)
	}

	return rows, nil
}

func (r *ledgerRepository) TopProductsByRevenue(ctx context.Context, f repository.LedgerFilter, limit int) ([]domain.ProductRevenue, error) {
	if limit <= 0 {
		limit = 5
	}

	query := `
        SELECT
            s.product_id,
            p.product_name,
            p.product_code,
            COALESCE(SUM(s.quantity * s.unit_price), 0) AS revenue,
            COALESCE(SUM(s.quantity), 0) AS quantity
        FROM sales s
        JOIN products p ON p.id = s.product_id
        WHERE s.tenant_id = $1 AND s.sale_date >= $2 AND s.sale_date <= $3
        GROUP BY s.product_id, p.product_name, p.product_code
        ORDER BY revenue DESC
        LIMIT $4
    `

	var rows []domain.ProductRevenue
	err := r.withSlot(ctx, func() error {
		return r.db.SelectContext(ctx, &rows, query, f.TenantID, f.From, f.To, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("error getting top products: %w", err)
	}

	return rows, nil
}

func (r *ledgerRepository) RecentSales(ctx context.Context, tenantID int64, limit int) ([]domain.SaleRecord, error) {
	if limit <= 0 {
		limit = 5
	}

	query := `
        SELECT
            s.id, s.tenant_id, s.product_id, p.product_name, p.product_code,
            s.quantity, s.unit_price, s.tax_rate, s.payment_status, s.sale_date
        FROM sales s
        JOIN products p ON p.id = s.product_id
        WHERE s.tenant_id = $1
        ORDER BY s.sale_date DESC
        LIMIT $2
    `

	var sales []domain.SaleRecord
	if err := r.db.SelectContext(ctx, &sales, query, tenantID, limit); err != nil {
		return nil, fmt.Errorf("error getting recent sales: %w", err)
	}

	return sales, nil
}

func (r *ledgerRepository) ProductionTotals(ctx context.Context, f repository.LedgerFilter) (repository.ProductionTotals, error) {
	query := `
        SELECT
            COALESCE(SUM(planned_quantity), 0) AS total_planned,
            COALESCE(SUM(actual_quantity), 0) AS total_actual,
            COALESCE(SUM(rejected_quantity), 0) AS total_rejected,
            COALESCE(AVG(actual_quantity::float / planned_quantity * 100)
                FILTER (WHERE planned_quantity > 0), 0) AS efficiency_percentage,
            COALESCE(AVG(rejected_quantity::float / actual_quantity * 100)
                FILTER (WHERE actual_quantity > 0), 0) AS rejection_rate,
            COUNT(*) AS runs
        FROM production_records
        WHERE tenant_id = $1 AND production_date >= $2 AND production_date <= $3
    `

	var totals repository.ProductionTotals
	err := r.withSlot(ctx, func() error {
		return r.db.GetContext(ctx, &totals, query, f.TenantID, f.From, f.To)
	})
	if err != nil {
		return repository.ProductionTotals{}, fmt.Errorf("error getting production totals: %w", err)
	}

	return totals, nil
}

func (r *ledgerRepository) AverageEfficiency(ctx context.Context, tenantID int64) (float64, bool, error) {
	query := `
        SELECT
            COALESCE(AVG(actual_quantity::float / planned_quantity * 100), 0) AS efficiency,
            COUNT(*) AS runs
        FROM production_records
        WHERE tenant_id = $1 AND planned_quantity > 0
    `

	var row struct {
		Efficiency float64 `db:"efficiency"`
		Runs       int     `db:"runs"`
	}
	if err := r.db.GetContext(ctx, &row, query, tenantID); err != nil {
		return 0, false, fmt.Errorf("error getting average efficiency: %w", err)
	}

	return row.Efficiency, row.Runs > 0, nil
}

func (r *ledgerRepository) AverageRejectionRate(ctx context.Context, f repository.LedgerFilter) (float64, error) {
	query := `
        SELECT COALESCE(AVG(rejected_quantity::float / actual_quantity * 100), 0)
        FROM production_records
        WHERE tenant_id = $1 AND actual_quantity > 0
          AND production_date >= $2 AND production_date <= $3
    `

	var rate float64
	if err := r.db.GetContext(ctx, &rate, query, f.TenantID, f.From, f.To); err != nil {
		return 0, fmt.Errorf("error getting average rejection rate: %w", err)
	}

	return rate, nil
}

func (r *ledgerRepository) ShiftProduction(ctx context.Context, f repository.LedgerFilter) ([]domain.ShiftOutput, error) {
	query := `
        SELECT shift, COALESCE(SUM(actual_quantity), 0) AS total_production
        FROM production_records
        WHERE tenant_id = $1 AND production_date >= $2 AND production_date <= $3
        GROUP BY shift
        ORDER BY shift
    `

	var shifts []domain.ShiftOutput
	err := r.withSlot(ctx, func() error {
		return r.db.SelectContext(ctx, &shifts, query, f.TenantID, f.From, f.To)
	})
	if err != nil {
		return nil, fmt.Errorf("error getting shift production: %w", err)
	}

	return shifts, nil
}

func (r *ledgerRepository) RecentProduction(ctx context.Context, tenantID int64, limit int) ([]domain.ProductionRecord, error) {
	if limit <= 0 {
		limit = 5
	}

	query := `
        SELECT
            pr.id, pr.tenant_id, pr.product_id, p.product_name, p.product_code,
            pr.production_date, pr.shift, pr.planned_quantity, pr.actual_quantity,
            pr.good_quantity, pr.rejected_quantity, pr.machine_id
        FROM production_records pr
        JOIN products p ON p.id = pr.product_id
        WHERE pr.tenant_id = $1
        ORDER BY pr.production_date DESC
        LIMIT $2
    `

	var records []domain.ProductionRecord
	if err := r.db.SelectContext(ctx, &records, query, tenantID, limit); err != nil {
		return nil, fmt.Errorf("error getting recent production: %w", err)
	}

	return records, nil
}

func (r *ledgerRepository) CostProfiles(ctx context.Context, tenantID int64) ([]domain.ProductCostProfile, error) {
	query := `
        SELECT
            id AS product_id, product_name, product_code,
            raw_material_cost, labor_cost, overhead_cost,
            selling_price, current_stock, min_stock_level
        FROM products
        WHERE tenant_id = $1 AND is_active = true
        ORDER BY id
    `

	var profiles []domain.ProductCostProfile
	if err := r.db.SelectContext(ctx, &profiles, query, tenantID); err != nil {
		return nil, fmt.Errorf("error getting cost profiles: %w", err)
	}

	return profiles, nil
}

func (r *ledgerRepository) ActiveProductCount(ctx context.Context, tenantID int64) (int, error) {
	query := `SELECT COUNT(*) FROM products WHERE tenant_id = $1 AND is_active = true`

	var count int
	if err := r.db.GetContext(ctx, &count, query, tenantID); err != nil {
		return 0, fmt.Errorf("error counting active products: %w", err)
	}

	return count, nil
}

func (r *ledgerRepository) LowStockCount(ctx context.Context, tenantID int64) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM products
        WHERE tenant_id = $1 AND is_active = true
          AND current_stock <= min_stock_level
    `

	var count int
	if err := r.db.GetContext(ctx, &count, query, tenantID); err != nil {
		return 0, fmt.Errorf("error counting low stock products: %w", err)
	}

	return count, nil
}

func (r *ledgerRepository) AverageMaterialCost(ctx context.Context, tenantID int64) (float64, error) {
	query := `
        SELECT COALESCE(AVG(raw_material_cost), 0)
        FROM products
        WHERE tenant_id = $1 AND is_active = true
    `

	var avg float64
	if err := r.db.GetContext(ctx, &avg, query, tenantID); err != nil {
		return 0, fmt.Errorf("error getting average material cost: %w", err)
	}

	return avg, nil
}

func (r *ledgerRepository) TransactionValueByType(ctx context.Context, f repository.LedgerFilter, types []domain.TransactionType) (float64, error) {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}

	query := `
        SELECT COALESCE(SUM(total_value), 0)
        FROM inventory_transactions
        WHERE tenant_id = $1 AND transaction_type = ANY($2)
          AND transaction_date >= $3 AND transaction_date <= $4
    `

	var total float64
	if err := r.db.GetContext(ctx, &total, query, f.TenantID, pq.Array(names), f.From, f.To); err != nil {
		return 0, fmt.Errorf("error getting transaction value by type: %w", err)
	}

	return total, nil
}
