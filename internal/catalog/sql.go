package catalog

import (
	"context"
	"database/sql"
	"embed"
	"strings"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// SQLDirectory reads the catalog from a SQLite database.
type SQLDirectory struct {
	db *sql.DB
}

func NewSQLDirectory(dbPath string) (*SQLDirectory, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &SQLDirectory{db: db}, nil
}

// RunMigrations creates and seeds the catalog tables.
func (r *SQLDirectory) RunMigrations() error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return errors.Wrap(err, "could not open migration source")
	}

	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return errors.Wrap(err, "could not create migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return errors.Wrap(err, "could not create migrate instance")
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "could not run migrations")
	}

	return nil
}

const productColumns = `id, name, description, price, original_price, image, category, colors, sizes, stock`

func (r *SQLDirectory) GetProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query products")
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return products, nil
}

func (r *SQLDirectory) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLDirectory) GetPromoCodes(ctx context.Context) ([]domain.PromotionDefinition, error) {
	query := `
		SELECT code, type, value, min_amount, max_uses, used_count, start_date, end_date, active
		FROM promo_codes
		ORDER BY code
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query promo codes")
	}
	defer rows.Close()

	var promos []domain.PromotionDefinition
	for rows.Next() {
		var (
			p          domain.PromotionDefinition
			kind       string
			minAmount  sql.NullFloat64
			start, end string
		)
		if err := rows.Scan(&p.Code, &kind, &p.Value, &minAmount, &p.MaxUses, &p.UsedCount, &start, &end, &p.Active); err != nil {
			return nil, errors.Wrap(err, "failed to scan promo code")
		}
		p.Code = domain.NormalizeCode(p.Code)
		p.Type = domain.PromotionType(kind)
		if minAmount.Valid {
			v := minAmount.Float64
			p.MinAmount = &v
		}
		if p.StartDate, err = parseDate(start); err != nil {
			return nil, errors.Wrapf(err, "promo %s start date", p.Code)
		}
		if p.EndDate, err = parseDate(end); err != nil {
			return nil, errors.Wrapf(err, "promo %s end date", p.Code)
		}
		promos = append(promos, p)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return promos, nil
}

func (r *SQLDirectory) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (domain.Product, error) {
	var (
		p             domain.Product
		colors, sizes string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OriginalPrice, &p.Image, &p.Category, &colors, &sizes, &p.Stock)
	if errors.Is(err, sql.ErrNoRows) {
		return p, err
	}
	if err != nil {
		return p, errors.Wrap(err, "failed to scan product")
	}
	p.Colors = splitList(colors)
	p.Sizes = splitList(sizes)
	return p, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
