// internal/finance/statements.go
package finance

import (
	"time"

	"github.com/udyamhq/udyam-backend/internal/domain"
	"github.com/udyamhq/udyam-backend/internal/repository"
)

// StatementBuilder derives financial statements from aggregated ledger rows.
// It is pure: all inputs are fetched by the service layer, and every derived
// figure follows arithmetically from them.
type StatementBuilder struct{}

// NewStatementBuilder returns a statement builder.
func NewStatementBuilder() *StatementBuilder {
	return &StatementBuilder{}
}

// ProfitLossInput carries the ledger aggregates the P&L is derived from.
type ProfitLossInput struct {
	Start time.Time
	End   time.Time

	Totals            repository.SalesTotals
	ProductSales      []repository.ProductSales
	AverageOrderValue float64

	// Operating expense components from inventory movements.
	Wastage     float64
	Adjustments float64

	// Detailed includes the per-product COGS lines in the response.
	Detailed bool
}

// ProfitLoss builds the income statement with product-level analysis.
// Margins are expressed as a percentage of total revenue, zero when there is
// no revenue.
func (b *StatementBuilder) ProfitLoss(in ProfitLossInput) *domain.ProfitLossStatement {
	revenue := domain.RevenueSection{
		TotalSales:   in.Totals.TotalRevenue,
		GSTCollected: in.Totals.TotalGST,
		NetRevenue:   in.Totals.TotalRevenue - in.Totals.TotalGST,
	}

	cogs := domain.COGSSection{}
	products := make([]domain.ProductProfit, 0, len(in.ProductSales))
	for _, ps := range in.ProductSales {
		unitCost := ps.RawMaterialCost + ps.LaborCost + ps.OverheadCost
		totalCost := unitCost * float64(ps.QuantitySold)
		cogs.TotalCOGS += totalCost

		if in.Detailed {
			cogs.Details = append(cogs.Details, domain.COGSLine{
				ProductID:    ps.ProductID,
				QuantitySold: ps.QuantitySold,
				UnitCost:     unitCost,
				TotalCost:    totalCost,
			})
		}

		profit := ps.Revenue - totalCost
		products = append(products, domain.ProductProfit{
			ProductID:    ps.ProductID,
			ProductName:  ps.ProductName,
			ProductCode:  ps.ProductCode,
			QuantitySold: ps.QuantitySold,
			Revenue:      ps.Revenue,
			Cost:         totalCost,
			Profit:       profit,
			MarginPct:    pctOf(profit, ps.Revenue),
		})
	}

	grossProfit := revenue.NetRevenue - cogs.TotalCOGS
	expenses := domain.ExpenseSection{
		Total:       in.Wastage + in.Adjustments,
		Wastage:     in.Wastage,
		Adjustments: in.Adjustments,
	}
	netProfit := grossProfit - expenses.Total

	return &domain.ProfitLossStatement{
		Period: periodOf(in.Start, in.End),
		IncomeStatement: domain.IncomeStatement{
			Revenue:           revenue,
			CostOfGoodsSold:   cogs,
			GrossProfit:       domain.ProfitLine{Amount: grossProfit, MarginPct: pctOf(grossProfit, revenue.TotalSales)},
			OperatingExpenses: expenses,
			NetProfit:         domain.ProfitLine{Amount: netProfit, MarginPct: pctOf(netProfit, revenue.TotalSales)},
		},
		ProductAnalysis: products,
		KeyMetrics:      keyMetrics(products, netProfit, in.AverageOrderValue),
	}
}

func keyMetrics(products []domain.ProductProfit, netProfit, avgOrderValue float64) domain.ProfitLossKeyMetrics {
	metrics := domain.ProfitLossKeyMetrics{AverageOrderValue: avgOrderValue}
	if len(products) == 0 {
		return metrics
	}

	metrics.ProfitPerProduct = netProfit / float64(len(products))

	best := products[0]
	worst := products[0]
	for _, p := range products[1:] {
		if p.Revenue > best.Revenue {
			best = p
		}
		if p.MarginPct < worst.MarginPct {
			worst = p
		}
	}
	metrics.BestSellingProduct = &best
	metrics.WorstMarginProduct = &worst

	return metrics
}

// BalanceSheet values inventory at unit total cost and books pending sales
// as receivables. Equity is the residual of assets over liabilities, so the
// balance check is structural rather than a reconciliation.
func (b *StatementBuilder) BalanceSheet(asOf time.Time, profiles []domain.ProductCostProfile, receivables float64) *domain.BalanceSheet {
	var inventory float64
	for _, p := range profiles {
		inventory += p.CurrentStock * p.TotalCost()
	}

	current := domain.CurrentAssets{
		Inventory:          inventory,
		AccountsReceivable: receivables,
		TotalCurrentAssets: inventory + receivables,
	}
	assets := domain.Assets{
		CurrentAssets: current,
		FixedAssets:   0,
		TotalAssets:   current.TotalCurrentAssets,
	}

	// No payables ledger exists yet, so liabilities are zero and all value
	// accrues to equity.
	liabilities := domain.Liabilities{
		CurrentLiabilities: domain.CurrentLiabilities{},
		TotalLiabilities:   0,
	}
	equity := assets.TotalAssets - liabilities.TotalLiabilities

	return &domain.BalanceSheet{
		AsOfDate:     asOf,
		Assets:       assets,
		Liabilities:  liabilities,
		Equity:       domain.Equity{OwnersEquity: equity, TotalEquity: equity},
		BalanceCheck: "balanced",
	}
}

// CashFlow derives operating cash from paid sales against purchase spend.
// Investing and financing stay zero until asset and financing ledgers exist.
func (b *StatementBuilder) CashFlow(start, end time.Time, paidSales, purchases float64) *domain.CashFlowStatement {
	operating := domain.OperatingActivities{
		CashReceivedFromCustomers: paidSales,
		CashPaidForInventory:      purchases,
		NetCashFromOperations:     paidSales - purchases,
	}

	return &domain.CashFlowStatement{
		Period:               periodOf(start, end),
		OperatingActivities:  operating,
		NetCashFromInvesting: 0,
		NetCashFromFinancing: 0,
		NetIncreaseInCash:    operating.NetCashFromOperations,
	}
}

// InventoryValuation values each product's stock at its unit total cost.
func (b *StatementBuilder) InventoryValuation(profiles []domain.ProductCostProfile) *domain.InventoryValuation {
	valuation := &domain.InventoryValuation{
		Items: make([]domain.ValuationLine, 0, len(profiles)),
	}
	for _, p := range profiles {
		value := p.CurrentStock * p.TotalCost()
		valuation.Items = append(valuation.Items, domain.ValuationLine{
			ProductID:    p.ProductID,
			ProductName:  p.ProductName,
			ProductCode:  p.ProductCode,
			CurrentStock: p.CurrentStock,
			UnitCost:     p.TotalCost(),
			TotalValue:   value,
		})
		valuation.TotalValue += value
	}
	valuation.TotalItems = len(valuation.Items)

	return valuation
}

func periodOf(start, end time.Time) domain.Period {
	return domain.Period{
		Start: start,
		End:   end,
		Days:  int(end.Sub(start).Hours()/24) + 1,
	}
}

func pctOf(amount, base float64) float64 {
	if base == 0 {
		return 0
	}
	return amount / base * 100
}
