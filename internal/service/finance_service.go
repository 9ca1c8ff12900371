// internal/service/finance_service.go
package service

import (
	"context"
	"time"

	"github.com/udyamhq/udyam-backend/internal/analytics"
	"github.com/udyamhq/udyam-backend/internal/domain"
	"github.com/udyamhq/udyam-backend/internal/finance"
	"github.com/udyamhq/udyam-backend/internal/repository"
)

// FinanceService derives financial statements from the ledger.
type FinanceService struct {
	ledger  repository.LedgerReader
	builder *finance.StatementBuilder
}

// NewFinanceService wires the statement builder to the ledger.
func NewFinanceService(ledger repository.LedgerReader) *FinanceService {
	return &FinanceService{
		ledger:  ledger,
		builder: finance.NewStatementBuilder(),
	}
}

// ProfitLoss builds the income statement for the inclusive date range.
func (s *FinanceService) ProfitLoss(ctx context.Context, tenantID int64, start, end time.Time, detailed bool) (*domain.ProfitLossStatement, error) {
	if err := analytics.ValidateRange(start, end, domain.BucketDay); err != nil {
		return nil, err
	}

	f := repository.LedgerFilter{TenantID: tenantID, From: start, To: end}

	totals, err := s.ledger.SalesTotals(ctx, f)
	if err != nil {
		return nil, err
	}

	productSales, err := s.ledger.SalesByProduct(ctx, f)
	if err != nil {
		return nil, err
	}

	avgOrderValue, err := s.ledger.AverageSaleValue(ctx, f)
	if err != nil {
		return nil, err
	}

	wastage, err := s.ledger.TransactionValueByType(ctx, f, []domain.TransactionType{domain.TxnWastage})
	if err != nil {
		return nil, err
	}

	adjustments, err := s.ledger.TransactionValueByType(ctx, f, []domain.TransactionType{domain.TxnAdjustment})
	if err != nil {
		return nil, err
	}

	return s.builder.ProfitLoss(finance.ProfitLossInput{
		Start:             start,
		End:               end,
		Totals:            totals,
		ProductSales:      productSales,
		AverageOrderValue: avgOrderValue,
		Wastage:           wastage,
		Adjustments:       adjustments,
		Detailed:          detailed,
	}), nil
}

// BalanceSheet builds the position statement as of the given date.
func (s *FinanceService) BalanceSheet(ctx context.Context, tenantID int64, asOf time.Time) (*domain.BalanceSheet, error) {
	profiles, err := s.ledger.CostProfiles(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	receivables, err := s.ledger.PendingReceivables(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}

	return s.builder.BalanceSheet(asOf, profiles, receivables), nil
}

// CashFlow builds the cash flow statement for the inclusive date range.
func (s *FinanceService) CashFlow(ctx context.Context, tenantID int64, start, end time.Time) (*domain.CashFlowStatement, error) {
	if err := analytics.ValidateRange(start, end, domain.BucketDay); err != nil {
		return nil, err
	}

	f := repository.LedgerFilter{TenantID: tenantID, From: start, To: end}

	paidSales, err := s.ledger.PaidSalesTotal(ctx, f)
	if err != nil {
		return nil, err
	}

	purchases, err := s.ledger.TransactionValueByType(ctx, f, []domain.TransactionType{domain.TxnPurchase})
	if err != nil {
		return nil, err
	}

	return s.builder.CashFlow(start, end, paidSales, purchases), nil
}

// InventoryValuation values the tenant's current stock at unit total cost.
func (s *FinanceService) InventoryValuation(ctx context.Context, tenantID int64) (*domain.InventoryValuation, error) {
	profiles, err := s.ledger.CostProfiles(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return s.builder.InventoryValuation(profiles), nil
}
