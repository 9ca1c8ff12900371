// internal/domain/models.go
package domain

import "time"

// PaymentStatus is the settlement state of a sale.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
	PaymentPartial PaymentStatus = "Partial"
)

// TransactionType classifies an inventory movement.
type TransactionType string

const (
	TxnPurchase   TransactionType = "Purchase"
	TxnSale       TransactionType = "Sale"
	TxnReturn     TransactionType = "Return"
	TxnAdjustment TransactionType = "Adjustment"
	TxnWastage    TransactionType = "Wastage"
	TxnProduction TransactionType = "Production"
)

// SaleRecord is a single sale row as read from the ledger.
type SaleRecord struct {
	ID            int64         `json:"id" db:"id"`
	TenantID      int64         `json:"tenant_id" db:"tenant_id"`
	ProductID     int64         `json:"product_id" db:"product_id"`
	ProductName   string        `json:"product_name" db:"product_name"`
	ProductCode   string        `json:"product_code" db:"product_code"`
	Quantity      int           `json:"quantity" db:"quantity"`
	UnitPrice     float64       `json:"unit_price" db:"unit_price"`
	TaxRate       float64       `json:"tax_rate" db:"tax_rate"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	SaleDate      time.Time     `json:"sale_date" db:"sale_date"`
}

// ProductionRecord is a single production run. good + rejected = actual is
// enforced at creation by the persistence layer.
type ProductionRecord struct {
	ID             int64     `json:"id" db:"id"`
	TenantID       int64     `json:"tenant_id" db:"tenant_id"`
	ProductID      int64     `json:"product_id" db:"product_id"`
	ProductName    string    `json:"product_name" db:"product_name"`
	ProductCode    string    `json:"product_code" db:"product_code"`
	ProductionDate time.Time `json:"production_date" db:"production_date"`
	Shift          string    `json:"shift" db:"shift"`
	PlannedQty     int       `json:"planned_quantity" db:"planned_quantity"`
	ActualQty      int       `json:"actual_quantity" db:"actual_quantity"`
	GoodQty        int       `json:"good_quantity" db:"good_quantity"`
	RejectedQty    int       `json:"rejected_quantity" db:"rejected_quantity"`
	MachineID      string    `json:"machine_id" db:"machine_id"`
}

// InventoryTransaction is a signed stock movement with its monetary value.
type InventoryTransaction struct {
	ID              int64           `json:"id" db:"id"`
	TenantID        int64           `json:"tenant_id" db:"tenant_id"`
	ProductID       int64           `json:"product_id" db:"product_id"`
	TransactionType TransactionType `json:"transaction_type" db:"transaction_type"`
	Quantity        int             `json:"quantity" db:"quantity"`
	UnitPrice       float64         `json:"unit_price" db:"unit_price"`
	TotalValue      float64         `json:"total_value" db:"total_value"`
	TransactionDate time.Time       `json:"transaction_date" db:"transaction_date"`
}

// ProductCostProfile carries the per-product cost structure and stock
// position consumed by the engine.
type ProductCostProfile struct {
	ProductID       int64   `json:"product_id" db:"product_id"`
	ProductName     string  `json:"product_name" db:"product_name"`
	ProductCode     string  `json:"product_code" db:"product_code"`
	RawMaterialCost float64 `json:"raw_material_cost" db:"raw_material_cost"`
	LaborCost       float64 `json:"labor_cost" db:"labor_cost"`
	OverheadCost    float64 `json:"overhead_cost" db:"overhead_cost"`
	SellingPrice    float64 `json:"selling_price" db:"selling_price"`
	CurrentStock    float64 `json:"current_stock" db:"current_stock"`
	MinStockLevel   float64 `json:"min_stock_level" db:"min_stock_level"`
}

// TotalCost is the all-in unit cost of the product.
func (p ProductCostProfile) TotalCost() float64 {
	return p.RawMaterialCost + p.LaborCost + p.OverheadCost
}

// Margin returns the unit margin percentage. The second return is false when
// the selling price is zero and the margin is undefined.
func (p ProductCostProfile) Margin() (float64, bool) {
	if p.SellingPrice <= 0 {
		return 0, false
	}
	return (p.SellingPrice - p.TotalCost()) / p.SellingPrice * 100, true
}
