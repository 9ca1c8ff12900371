// cmd/seed/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) *sql.DB {
	db, _ := c.Context.Value(dbKey).(*sql.DB)
	return db
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with schema and demo manufacturing data",
		Flags: []cli.Flag{
			newDBURLFlag(),
		},
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Create the ledger tables if they do not exist",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runSchema,
			},
			{
				Name:  "demo",
				Usage: "Insert demo tenants with six months of ledger history",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.IntFlag{
						Name:  "tenants",
						Usage: "Number of demo tenants to create",
						Value: 2,
					},
					&cli.IntFlag{
						Name:  "months",
						Usage: "Months of ledger history per tenant",
						Value: 6,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runDemo,
			},
			{
				Name:  "all",
				Usage: "Create the schema, then insert demo data",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.IntFlag{Name: "tenants", Value: 2},
					&cli.IntFlag{Name: "months", Value: 6},
				},
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					if err := runSchema(c); err != nil {
						return err
					}
					return runDemo(c)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSchema(c *cli.Context) error {
	db := dbFrom(c)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id BIGSERIAL PRIMARY KEY,
            tenant_id BIGINT NOT NULL,
            product_name TEXT NOT NULL,
            product_code TEXT NOT NULL,
            raw_material_cost NUMERIC NOT NULL DEFAULT 0,
            labor_cost NUMERIC NOT NULL DEFAULT 0,
            overhead_cost NUMERIC NOT NULL DEFAULT 0,
            selling_price NUMERIC NOT NULL DEFAULT 0,
            current_stock NUMERIC NOT NULL DEFAULT 0,
            min_stock_level NUMERIC NOT NULL DEFAULT 0,
            is_active BOOLEAN NOT NULL DEFAULT true,
            UNIQUE (tenant_id, product_code)
        )`,
		`CREATE TABLE IF NOT EXISTS sales (
            id BIGSERIAL PRIMARY KEY,
            tenant_id BIGINT NOT NULL,
            product_id BIGINT NOT NULL REFERENCES products(id),
            quantity INTEGER NOT NULL,
            unit_price NUMERIC NOT NULL,
            tax_rate NUMERIC NOT NULL DEFAULT 0,
            payment_status TEXT NOT NULL DEFAULT 'Pending',
            sale_date TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS production_records (
            id BIGSERIAL PRIMARY KEY,
            tenant_id BIGINT NOT NULL,
            product_id BIGINT NOT NULL REFERENCES products(id),
            production_date TIMESTAMPTZ NOT NULL,
            shift TEXT NOT NULL,
            planned_quantity INTEGER NOT NULL,
            actual_quantity INTEGER NOT NULL,
            good_quantity INTEGER NOT NULL,
            rejected_quantity INTEGER NOT NULL,
            machine_id TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS inventory_transactions (
            id BIGSERIAL PRIMARY KEY,
            tenant_id BIGINT NOT NULL,
            product_id BIGINT NOT NULL REFERENCES products(id),
            transaction_type TEXT NOT NULL,
            quantity INTEGER NOT NULL,
            unit_price NUMERIC NOT NULL DEFAULT 0,
            total_value NUMERIC NOT NULL DEFAULT 0,
            transaction_date TIMESTAMPTZ NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_sales_tenant_date ON sales (tenant_id, sale_date)`,
		`CREATE INDEX IF NOT EXISTS idx_production_tenant_date ON production_records (tenant_id, production_date)`,
		`CREATE INDEX IF NOT EXISTS idx_inventory_tenant_date ON inventory_transactions (tenant_id, transaction_date)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(c.Context, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}

	log.Println("schema ready")
	return nil
}
