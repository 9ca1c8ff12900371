// internal/finance/statements_test.go
package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udyamhq/udyam-backend/internal/domain"
	"github.com/udyamhq/udyam-backend/internal/repository"
)

var (
	plStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	plEnd   = time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
)

func sampleProfitLossInput() ProfitLossInput {
	return ProfitLossInput{
		Start: plStart,
		End:   plEnd,
		Totals: repository.SalesTotals{
			TotalRevenue: 118000,
			TotalGST:     18000,
		},
		ProductSales: []repository.ProductSales{
			{
				ProductID: 1, ProductName: "Widget A", ProductCode: "WA-01",
				QuantitySold: 100, Revenue: 80000,
				RawMaterialCost: 200, LaborCost: 100, OverheadCost: 50,
			},
			{
				ProductID: 2, ProductName: "Widget B", ProductCode: "WB-02",
				QuantitySold: 40, Revenue: 38000,
				RawMaterialCost: 400, LaborCost: 150, OverheadCost: 100,
			},
		},
		AverageOrderValue: 843.5,
		Wastage:           2000,
		Adjustments:       500,
	}
}

func TestProfitLossArithmetic(t *testing.T) {
	b := NewStatementBuilder()

	pl := b.ProfitLoss(sampleProfitLossInput())
	is := pl.IncomeStatement

	assert.Equal(t, 100000.0, is.Revenue.NetRevenue)

	// COGS: 100*350 + 40*650 = 61000.
	assert.Equal(t, 61000.0, is.CostOfGoodsSold.TotalCOGS)
	assert.Empty(t, is.CostOfGoodsSold.Details, "details only in detailed format")

	// Invariants: gross = net revenue - COGS, net = gross - opex.
	assert.Equal(t, is.Revenue.NetRevenue-is.CostOfGoodsSold.TotalCOGS, is.GrossProfit.Amount)
	assert.Equal(t, is.GrossProfit.Amount-is.OperatingExpenses.Total, is.NetProfit.Amount)
	assert.Equal(t, 2500.0, is.OperatingExpenses.Total)

	// Margins are percentages of total revenue.
	assert.InDelta(t, 39000.0/118000*100, is.GrossProfit.MarginPct, 1e-9)
	assert.InDelta(t, 36500.0/118000*100, is.NetProfit.MarginPct, 1e-9)

	assert.Equal(t, 31, pl.Period.Days)
}

func TestProfitLossProductAnalysis(t *testing.T) {
	b := NewStatementBuilder()

	pl := b.ProfitLoss(sampleProfitLossInput())
	require.Len(t, pl.ProductAnalysis, 2)

	a := pl.ProductAnalysis[0]
	assert.Equal(t, 80000.0, a.Revenue)
	assert.Equal(t, 35000.0, a.Cost)
	assert.Equal(t, 45000.0, a.Profit)
	assert.InDelta(t, 56.25, a.MarginPct, 1e-9)

	require.NotNil(t, pl.KeyMetrics.BestSellingProduct)
	assert.Equal(t, int64(1), pl.KeyMetrics.BestSellingProduct.ProductID)
	require.NotNil(t, pl.KeyMetrics.WorstMarginProduct)
	assert.Equal(t, int64(2), pl.KeyMetrics.WorstMarginProduct.ProductID)
	assert.Equal(t, 843.5, pl.KeyMetrics.AverageOrderValue)
	assert.InDelta(t, pl.IncomeStatement.NetProfit.Amount/2, pl.KeyMetrics.ProfitPerProduct, 1e-9)
}

func TestProfitLossDetailedFormat(t *testing.T) {
	b := NewStatementBuilder()

	in := sampleProfitLossInput()
	in.Detailed = true
	pl := b.ProfitLoss(in)

	require.Len(t, pl.IncomeStatement.CostOfGoodsSold.Details, 2)
	assert.Equal(t, 350.0, pl.IncomeStatement.CostOfGoodsSold.Details[0].UnitCost)
}

func TestProfitLossZeroRevenue(t *testing.T) {
	b := NewStatementBuilder()

	pl := b.ProfitLoss(ProfitLossInput{Start: plStart, End: plEnd})

	assert.Equal(t, 0.0, pl.IncomeStatement.GrossProfit.MarginPct)
	assert.Equal(t, 0.0, pl.IncomeStatement.NetProfit.MarginPct)
	assert.Nil(t, pl.KeyMetrics.BestSellingProduct)
	assert.Nil(t, pl.KeyMetrics.WorstMarginProduct)
	assert.Equal(t, 0.0, pl.KeyMetrics.ProfitPerProduct)
}

func TestBalanceSheetIdentity(t *testing.T) {
	b := NewStatementBuilder()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	profiles := []domain.ProductCostProfile{
		{ProductID: 1, CurrentStock: 100, RawMaterialCost: 200, LaborCost: 100, OverheadCost: 50},
		{ProductID: 2, CurrentStock: 10, RawMaterialCost: 400, LaborCost: 150, OverheadCost: 100},
	}

	bs := b.BalanceSheet(asOf, profiles, 12500)

	// Inventory: 100*350 + 10*650 = 41500.
	assert.Equal(t, 41500.0, bs.Assets.CurrentAssets.Inventory)
	assert.Equal(t, 12500.0, bs.Assets.CurrentAssets.AccountsReceivable)
	assert.Equal(t, 54000.0, bs.Assets.TotalAssets)

	assert.Equal(t, bs.Assets.TotalAssets, bs.Liabilities.TotalLiabilities+bs.Equity.TotalEquity)
	assert.Equal(t, "balanced", bs.BalanceCheck)
}

func TestBalanceSheetEmptyTenant(t *testing.T) {
	b := NewStatementBuilder()

	bs := b.BalanceSheet(time.Now(), nil, 0)
	assert.Equal(t, 0.0, bs.Assets.TotalAssets)
	assert.Equal(t, 0.0, bs.Equity.TotalEquity)
	assert.Equal(t, "balanced", bs.BalanceCheck)
}

func TestCashFlow(t *testing.T) {
	b := NewStatementBuilder()

	cf := b.CashFlow(plStart, plEnd, 90000, 40000)

	assert.Equal(t, 50000.0, cf.OperatingActivities.NetCashFromOperations)
	assert.Equal(t, 0.0, cf.NetCashFromInvesting)
	assert.Equal(t, 0.0, cf.NetCashFromFinancing)
	assert.Equal(t, cf.OperatingActivities.NetCashFromOperations, cf.NetIncreaseInCash)

	// Spend exceeding collections goes negative, not clamped.
	cf = b.CashFlow(plStart, plEnd, 10000, 40000)
	assert.Equal(t, -30000.0, cf.NetIncreaseInCash)
}

func TestInventoryValuation(t *testing.T) {
	b := NewStatementBuilder()

	valuation := b.InventoryValuation([]domain.ProductCostProfile{
		{ProductID: 1, ProductName: "Widget A", CurrentStock: 100, RawMaterialCost: 200, LaborCost: 100, OverheadCost: 50},
		{ProductID: 2, ProductName: "Widget B", CurrentStock: 0, RawMaterialCost: 400},
	})

	assert.Equal(t, 2, valuation.TotalItems)
	assert.Equal(t, 35000.0, valuation.TotalValue)
	assert.Equal(t, 350.0, valuation.Items[0].UnitCost)
	assert.Equal(t, 0.0, valuation.Items[1].TotalValue)
}
