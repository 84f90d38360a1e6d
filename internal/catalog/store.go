// Package catalog owns the product database and guarded read access to it.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Product is one row of the product table.
type Product struct {
	ProductLink  string
	Title        string
	Brand        string
	Price        int64
	Discount     float64
	AvgRating    float64
	TotalRatings int64
}

// Store provides guarded read access to the product catalog.
type Store struct {
	db *sql.DB
}

// Open creates a new database connection and initializes the schema.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	// Enable WAL mode for better concurrency and set busy timeout
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't support multiple writers well
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS product (
		product_link  TEXT,
		title         TEXT NOT NULL,
		brand         TEXT NOT NULL,
		price         INTEGER NOT NULL,
		discount      REAL NOT NULL DEFAULT 0,
		avg_rating    REAL NOT NULL DEFAULT 0,
		total_ratings INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_product_brand ON product(brand);
	CREATE INDEX IF NOT EXISTS idx_product_price ON product(price);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Seed inserts products in one transaction. Intended for catalog loading
// and tests.
func (s *Store) Seed(ctx context.Context, products []Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO product (product_link, title, brand, price, discount, avg_rating, total_ratings)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.ExecContext(ctx, p.ProductLink, p.Title, p.Brand, p.Price, p.Discount, p.AvgRating, p.TotalRatings); err != nil {
			return fmt.Errorf("failed to insert product %q: %w", p.Title, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of products in the catalog.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM product").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// Query validates the statement against the guard rules, caps the result
// size, executes it, and returns generic rows plus column names.
func (s *Store) Query(ctx context.Context, query string) ([]map[string]any, []string, error) {
	if err := ValidateQuery(query); err != nil {
		return nil, nil, err
	}
	limited := EnsureLimit(query)

	rows, err := s.db.QueryContext(ctx, limited)
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read columns: %w", err)
	}

	records := make([]map[string]any, 0)
	values := make([]any, len(columns))
	scanArgs := make([]any, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row: %w", err)
		}
		record := make(map[string]any, len(columns))
		for i, col := range columns {
			record[col] = normalizeValue(values[i])
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("row iteration failed: %w", err)
	}

	return records, columns, nil
}

// normalizeValue makes driver values JSON-friendly.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
