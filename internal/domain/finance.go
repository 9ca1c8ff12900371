// internal/domain/finance.go
package domain

import "time"

// ReportType identifies a generatable financial report.
type ReportType string

const (
	ReportProfitLoss         ReportType = "profit_loss"
	ReportBalanceSheet       ReportType = "balance_sheet"
	ReportCashFlow           ReportType = "cash_flow"
	ReportInventoryValuation ReportType = "inventory_valuation"
)

// ValidReportTypes lists the accepted report type identifiers.
func ValidReportTypes() []ReportType {
	return []ReportType{ReportProfitLoss, ReportBalanceSheet, ReportCashFlow, ReportInventoryValuation}
}

// Valid reports whether the report type is supported.
func (r ReportType) Valid() bool {
	for _, t := range ValidReportTypes() {
		if r == t {
			return true
		}
	}
	return false
}

// Period is the inclusive date range a statement covers.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  int       `json:"days"`
}

// RevenueSection is the top block of the income statement.
type RevenueSection struct {
	TotalSales   float64 `json:"total_sales"`
	GSTCollected float64 `json:"gst_collected"`
	NetRevenue   float64 `json:"net_revenue"`
}

// COGSLine is the cost of goods sold for one product.
type COGSLine struct {
	ProductID    int64   `json:"product_id"`
	QuantitySold int     `json:"quantity_sold"`
	UnitCost     float64 `json:"unit_cost"`
	TotalCost    float64 `json:"total_cost"`
}

// COGSSection totals the cost of goods sold, optionally itemised.
type COGSSection struct {
	TotalCOGS float64    `json:"total_cogs"`
	Details   []COGSLine `json:"details,omitempty"`
}

// ProfitLine is an amount with its margin as a percentage of total revenue.
type ProfitLine struct {
	Amount    float64 `json:"amount"`
	MarginPct float64 `json:"margin_percentage"`
}

// ExpenseSection totals operating expenses derived from inventory movements.
type ExpenseSection struct {
	Total       float64 `json:"total"`
	Wastage     float64 `json:"wastage"`
	Adjustments float64 `json:"adjustments"`
}

// ProductProfit is the per-product profitability row of the P&L response.
type ProductProfit struct {
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductCode  string  `json:"product_code"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
	Cost         float64 `json:"cost"`
	Profit       float64 `json:"profit"`
	MarginPct    float64 `json:"margin"`
}

// ProfitLossKeyMetrics carries the headline figures of the P&L response.
type ProfitLossKeyMetrics struct {
	AverageOrderValue  float64        `json:"average_order_value"`
	ProfitPerProduct   float64        `json:"profit_per_product"`
	BestSellingProduct *ProductProfit `json:"best_selling_product"`
	WorstMarginProduct *ProductProfit `json:"worst_margin_product"`
}

// IncomeStatement is the nested P&L body.
type IncomeStatement struct {
	Revenue           RevenueSection `json:"revenue"`
	CostOfGoodsSold   COGSSection    `json:"cost_of_goods_sold"`
	GrossProfit       ProfitLine     `json:"gross_profit"`
	OperatingExpenses ExpenseSection `json:"operating_expenses"`
	NetProfit         ProfitLine     `json:"net_profit"`
}

// ProfitLossStatement is the full P&L response.
type ProfitLossStatement struct {
	Period          Period               `json:"period"`
	IncomeStatement IncomeStatement      `json:"income_statement"`
	ProductAnalysis []ProductProfit      `json:"product_analysis"`
	KeyMetrics      ProfitLossKeyMetrics `json:"key_metrics"`
}

// CurrentAssets groups the liquid asset lines.
type CurrentAssets struct {
	Inventory          float64 `json:"inventory"`
	AccountsReceivable float64 `json:"accounts_receivable"`
	TotalCurrentAssets float64 `json:"total_current_assets"`
}

// Assets is the asset side of the balance sheet.
type Assets struct {
	CurrentAssets CurrentAssets `json:"current_assets"`
	FixedAssets   float64       `json:"fixed_assets"`
	TotalAssets   float64       `json:"total_assets"`
}

// CurrentLiabilities groups the short-term liability lines.
type CurrentLiabilities struct {
	AccountsPayable         float64 `json:"accounts_payable"`
	TotalCurrentLiabilities float64 `json:"total_current_liabilities"`
}

// Liabilities is the liability side of the balance sheet.
type Liabilities struct {
	CurrentLiabilities CurrentLiabilities `json:"current_liabilities"`
	TotalLiabilities   float64            `json:"total_liabilities"`
}

// Equity is the residual claim. It is derived as assets minus liabilities,
// not tracked in an independent ledger, so the balance check is structural.
type Equity struct {
	OwnersEquity float64 `json:"owners_equity"`
	TotalEquity  float64 `json:"total_equity"`
}

// BalanceSheet is the full balance sheet response.
type BalanceSheet struct {
	AsOfDate     time.Time   `json:"as_of_date"`
	Assets       Assets      `json:"assets"`
	Liabilities  Liabilities `json:"liabilities"`
	Equity       Equity      `json:"equity"`
	BalanceCheck string      `json:"balance_check"`
}

// OperatingActivities is the operating block of the cash flow statement.
type OperatingActivities struct {
	CashReceivedFromCustomers float64 `json:"cash_received_from_customers"`
	CashPaidForInventory      float64 `json:"cash_paid_for_inventory"`
	NetCashFromOperations     float64 `json:"net_cash_from_operations"`
}

// CashFlowStatement is the full cash flow response. Investing and financing
// are zero until an asset/financing ledger exists.
type CashFlowStatement struct {
	Period               Period              `json:"period"`
	OperatingActivities  OperatingActivities `json:"operating_activities"`
	NetCashFromInvesting float64             `json:"net_cash_from_investing"`
	NetCashFromFinancing float64             `json:"net_cash_from_financing"`
	NetIncreaseInCash    float64             `json:"net_increase_in_cash"`
}

// ValuationLine is one product's stock valued at unit total cost.
type ValuationLine struct {
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductCode  string  `json:"product_code"`
	CurrentStock float64 `json:"current_stock"`
	UnitCost     float64 `json:"unit_cost"`
	TotalValue   float64 `json:"total_value"`
}

// InventoryValuation is the valuation report body.
type InventoryValuation struct {
	TotalItems int             `json:"total_items"`
	TotalValue float64         `json:"total_value"`
	Items      []ValuationLine `json:"items"`
}

// ReportMetadata describes a generated and archived report.
type ReportMetadata struct {
	ReportID    string     `json:"report_id"`
	ReportType  ReportType `json:"report_type"`
	TenantID    int64      `json:"tenant_id"`
	GeneratedAt time.Time  `json:"generated_at"`
	Period      Period     `json:"period"`
	DownloadKey string     `json:"download_key"`
}

// Report wraps report metadata and its payload for archival.
type Report struct {
	Metadata ReportMetadata `json:"metadata"`
	Data     any            `json:"data"`
}
