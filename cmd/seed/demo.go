// cmd/seed/demo.go
package main

import (
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/urfave/cli/v2"
)

type demoProduct struct {
	name         string
	code         string
	material     float64
	labor        float64
	overhead     float64
	sellingPrice float64
	stock        float64
	minStock     float64
}

var demoProducts = []demoProduct{
	{"Steel Bracket", "SB-100", 120, 40, 25, 320, 450, 100},
	{"Aluminium Frame", "AF-200", 310, 80, 55, 780, 120, 80},
	{"Copper Coil", "CC-300", 540, 60, 45, 1050, 60, 75},
	{"Rubber Gasket", "RG-400", 18, 8, 6, 55, 2200, 500},
	{"Bearing Assembly", "BA-500", 260, 95, 70, 720, 95, 60},
	{"Drive Shaft", "DS-600", 410, 130, 90, 1150, 40, 50},
}

var demoShifts = []string{"Morning", "Afternoon", "Night"}

// runDemo inserts deterministic pseudo-random ledger history so repeated
// runs against a fresh database produce the same analytics.
func runDemo(c *cli.Context) error {
	db := dbFrom(c)
	tenants := c.Int("tenants")
	months := c.Int("months")
	rng := rand.New(rand.NewSource(42))

	for tenantID := int64(1); tenantID <= int64(tenants); tenantID++ {
		productIDs, err := seedProducts(c, db, tenantID)
		if err != nil {
			return err
		}
		if err := seedSales(c, db, rng, tenantID, productIDs, months); err != nil {
			return err
		}
		if err := seedProduction(c, db, rng, tenantID, productIDs, months); err != nil {
			return err
		}
		if err := seedTransactions(c, db, rng, tenantID, productIDs, months); err != nil {
			return err
		}
		log.Printf("tenant %d seeded", tenantID)
	}

	return nil
}

func seedProducts(c *cli.Context, db *sql.DB, tenantID int64) ([]int64, error) {
	ids := make([]int64, 0, len(demoProducts))
	for _, p := range demoProducts {
		var id int64
		err := db.QueryRowContext(c.Context, `
            INSERT INTO products (
                tenant_id, product_name, product_code, raw_material_cost,
                labor_cost, overhead_cost, selling_price, current_stock,
                min_stock_level, is_active
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true)
            ON CONFLICT (tenant_id, product_code) DO UPDATE
                SET product_name = EXCLUDED.product_name
            RETURNING id
        `, tenantID, p.name, p.code, p.material, p.labor, p.overhead,
			p.sellingPrice, p.stock, p.minStock).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to seed product %s: %w", p.code, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedSales(c *cli.Context, db *sql.DB, rng *rand.Rand, tenantID int64, productIDs []int64, months int) error {
	start := time.Now().AddDate(0, -months, 0)
	statuses := []string{"Paid", "Paid", "Paid", "Pending", "Partial"}

	for day := start; day.Before(time.Now()); day = day.AddDate(0, 0, 1) {
		salesToday := rng.Intn(4) + 1
		for i := 0; i < salesToday; i++ {
			idx := rng.Intn(len(productIDs))
			p := demoProducts[idx]
			qty := rng.Intn(20) + 1

			_, err := db.ExecContext(c.Context, `
                INSERT INTO sales (
                    tenant_id, product_id, quantity, unit_price, tax_rate,
                    payment_status, sale_date
                ) VALUES ($1, $2, $3, $4, $5, $6, $7)
            `, tenantID, productIDs[idx], qty, p.sellingPrice, 18.0,
				statuses[rng.Intn(len(statuses))], day)
			if err != nil {
				return fmt.Errorf("failed to seed sale: %w", err)
			}
		}
	}
	return nil
}

func seedProduction(c *cli.Context, db *sql.DB, rng *rand.Rand, tenantID int64, productIDs []int64, months int) error {
	start := time.Now().AddDate(0, -months, 0)

	for day := start; day.Before(time.Now()); day = day.AddDate(0, 0, 1) {
		// Weekdays only.
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}

		idx := rng.Intn(len(productIDs))
		planned := rng.Intn(150) + 50
		actual := planned - rng.Intn(planned/5+1)
		rejected := rng.Intn(actual/20 + 1)

		_, err := db.ExecContext(c.Context, `
            INSERT INTO production_records (
                tenant_id, product_id, production_date, shift,
                planned_quantity, actual_quantity, good_quantity,
                rejected_quantity, machine_id
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        `, tenantID, productIDs[idx], day, demoShifts[rng.Intn(len(demoShifts))],
			planned, actual, actual-rejected, rejected,
			fmt.Sprintf("M-%02d", rng.Intn(8)+1))
		if err != nil {
			return fmt.Errorf("failed to seed production record: %w", err)
		}
	}
	return nil
}

func seedTransactions(c *cli.Context, db *sql.DB, rng *rand.Rand, tenantID int64, productIDs []int64, months int) error {
	start := time.Now().AddDate(0, -months, 0)
	types := []string{"Purchase", "Purchase", "Purchase", "Wastage", "Adjustment"}

	for week := start; week.Before(time.Now()); week = week.AddDate(0, 0, 7) {
		for i := 0; i < 3; i++ {
			idx := rng.Intn(len(productIDs))
			p := demoProducts[idx]
			txnType := types[rng.Intn(len(types))]
			qty := rng.Intn(100) + 10
			unitPrice := p.material
			if txnType != "Purchase" {
				qty = rng.Intn(10) + 1
			}

			_, err := db.ExecContext(c.Context, `
                INSERT INTO inventory_transactions (
                    tenant_id, product_id, transaction_type, quantity,
                    unit_price, total_value, transaction_date
                ) VALUES ($1, $2, $3, $4, $5, $6, $7)
            `, tenantID, productIDs[idx], txnType, qty, unitPrice,
				float64(qty)*unitPrice, week.AddDate(0, 0, rng.Intn(7)))
			if err != nil {
				return fmt.Errorf("failed to seed inventory transaction: %w", err)
			}
		}
	}
	return nil
}
