package step

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
	_ "github.com/lib/pq"

	"github.com/vinetool/vine/internal/config"
	"github.com/vinetool/vine/internal/fault"
)

// DB provides steps that seed and verify application state directly in a
// postgres database. Registered only when TEST_DB_URL is configured. The
// pool is shared across scenarios; sql.DB is safe for concurrent use.
type DB struct {
	cfg *config.Config
	db  *sql.DB
}

// NewDB creates the database step handler.
func NewDB(cfg *config.Config) *DB {
	return &DB{cfg: cfg}
}

// Open connects to the configured database. Called once before the suite.
func (h *DB) Open() error {
	db, err := sql.Open("postgres", h.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	h.db = db
	return nil
}

// Close releases the database connection.
func (h *DB) Close() error {
	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}

// Steps returns the database step definitions.
func (h *DB) Steps() Category {
	return Category{
		Name:        "Database",
		Description: "Steps for seeding and checking postgres state",
		Steps: []Def{
			{
				Group:       "Seed",
				Pattern:     `^the table "([^"]*)" is empty$`,
				Description: "Delete all rows from a table",
				Example:     `the table "users" is empty`,
				Handler:     h.truncateTable,
			},
			{
				Group:       "Seed",
				Pattern:     `^the table "([^"]*)" contains:$`,
				Description: "Insert rows described by a Gherkin table",
				Example:     `the table "users" contains:`,
				Handler:     h.insertRows,
			},
			{
				Group:       "Check",
				Pattern:     `^the table "([^"]*)" should have (\d+) rows?$`,
				Description: "Assert the row count of a table",
				Example:     `the table "users" should have 3 rows`,
				Handler:     h.rowCountShouldBe,
			},
		},
	}
}

func (h *DB) truncateTable(table string) error {
	if err := validIdent(table); err != nil {
		return err
	}
	if _, err := h.db.Exec(fmt.Sprintf("DELETE FROM %q", table)); err != nil {
		return fmt.Errorf("emptying table %s: %w", table, err)
	}
	return nil
}

func (h *DB) insertRows(table string, data *godog.Table) error {
	if err := validIdent(table); err != nil {
		return err
	}
	if len(data.Rows) < 2 {
		return fmt.Errorf("table %s: need a header row and at least one data row", table)
	}

	header := data.Rows[0]
	cols := make([]string, len(header.Cells))
	for i, c := range header.Cells {
		if err := validIdent(c.Value); err != nil {
			return err
		}
		cols[i] = fmt.Sprintf("%q", c.Value)
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %q (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	for _, row := range data.Rows[1:] {
		if len(row.Cells) != len(cols) {
			return fmt.Errorf("table %s: row has %d cells, header has %d", table, len(row.Cells), len(cols))
		}
		vals := make([]interface{}, len(row.Cells))
		for i, c := range row.Cells {
			vals[i] = c.Value
		}
		if _, err := h.db.Exec(query, vals...); err != nil {
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
	}
	return nil
}

func (h *DB) rowCountShouldBe(table string, expected int) error {
	if err := validIdent(table); err != nil {
		return err
	}
	var count int
	if err := h.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %q", table)).Scan(&count); err != nil {
		return fmt.Errorf("counting rows in %s: %w", table, err)
	}
	if count != expected {
		return &fault.AssertionError{
			Description: fmt.Sprintf("row count of %s", table),
			Expected:    fmt.Sprintf("%d", expected),
			Actual:      fmt.Sprintf("%d", count),
		}
	}
	return nil
}

func validIdent(s string) error {
	if s == "" {
		return fmt.Errorf("empty identifier")
	}
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
			continue
		}
		return fmt.Errorf("identifier %q contains invalid character %q", s, r)
	}
	return nil
}
