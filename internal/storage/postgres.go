package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/Tanz2024/Zuschat-Rag-API-sub001/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

// effectivePrice mirrors models.Product.EffectivePrice for SQL filters and
// ordering, so both backends agree on what a price bound means.
const effectivePrice = "(CASE WHEN on_promotion AND sale_price > 0 AND sale_price < price THEN sale_price ELSE price END)"

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	storage := &PostgresStorage{db: db}

	// Initialize database schema
	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}

	// Load the fixture catalog on a fresh database
	if err := storage.seedCatalog(); err != nil {
		return nil, fmt.Errorf("error seeding catalog: %v", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	// Read migrations file
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	// Execute migrations
	_, err = s.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}

	return nil
}

func (s *PostgresStorage) seedCatalog() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("error counting products: %v", err)
	}
	if count == 0 {
		for _, p := range DefaultProducts() {
			_, err := s.db.Exec(`
				INSERT INTO products (name, category, collection, price, sale_price, on_promotion, material, capacity, colors)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				p.Name, p.Category, p.Collection, p.Price, p.SalePrice, p.OnPromotion,
				p.Material, p.Capacity, pq.Array(p.Colors))
			if err != nil {
				return fmt.Errorf("error seeding product %q: %v", p.Name, err)
			}
		}
	}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM outlets`).Scan(&count); err != nil {
		return fmt.Errorf("error counting outlets: %v", err)
	}
	if count == 0 {
		for _, o := range DefaultOutlets() {
			_, err := s.db.Exec(`
				INSERT INTO outlets (name, address, opening_hours, services)
				VALUES ($1, $2, $3, $4)`,
				o.Name, o.Address, o.OpeningHours, pq.Array(o.Services))
			if err != nil {
				return fmt.Errorf("error seeding outlet %q: %v", o.Name, err)
			}
		}
	}

	return nil
}

func (s *PostgresStorage) SearchProducts(ctx context.Context, query ProductQuery) ([]models.Product, error) {
	var conditions []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if query.Category != "" {
		conditions = append(conditions, "LOWER(category) = LOWER("+arg(query.Category)+")")
	}
	if query.Material != "" {
		conditions = append(conditions, "LOWER(material) = LOWER("+arg(query.Material)+")")
	}
	if query.Collection != "" {
		conditions = append(conditions, "LOWER(collection) = LOWER("+arg(query.Collection)+")")
	}
	if query.OnPromotion {
		conditions = append(conditions, "on_promotion = TRUE")
	}
	if query.MinPrice != nil {
		conditions = append(conditions, effectivePrice+" >= "+arg(*query.MinPrice))
	}
	if query.MaxPrice != nil {
		conditions = append(conditions, effectivePrice+" <= "+arg(*query.MaxPrice))
	}

	q := `
		SELECT id, name, category, collection, price, sale_price, on_promotion, material, capacity, colors
		FROM products`
	if len(conditions) > 0 {
		q += " WHERE " + strings.Join(conditions, " AND ")
	}
	if query.SortByPrice {
		q += " ORDER BY " + effectivePrice + " ASC, name ASC"
	} else {
		q += " ORDER BY name ASC"
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying products: %v", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Category,
			&p.Collection,
			&p.Price,
			&p.SalePrice,
			&p.OnPromotion,
			&p.Material,
			&p.Capacity,
			pq.Array(&p.Colors),
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning product: %v", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading products: %v", err)
	}

	return products, nil
}

// outletFilterSQL builds the WHERE conditions for an outlet search, one
// per required service. Services match case-insensitively so both
// backends agree on what a service filter means.
func outletFilterSQL(query OutletQuery) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if query.Location != "" {
		conditions = append(conditions, "(name || ' ' || address) ILIKE "+arg("%"+query.Location+"%"))
	}
	for _, svc := range query.Services {
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM unnest(services) AS s WHERE LOWER(s) = LOWER("+arg(svc)+"))")
	}

	return conditions, args
}

func (s *PostgresStorage) SearchOutlets(ctx context.Context, query OutletQuery) ([]models.Outlet, error) {
	conditions, args := outletFilterSQL(query)

	q := `
		SELECT id, name, address, opening_hours, services
		FROM outlets`
	if len(conditions) > 0 {
		q += " WHERE " + strings.Join(conditions, " AND ")
	}
	q += " ORDER BY name ASC"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying outlets: %v", err)
	}
	defer rows.Close()

	var outlets []models.Outlet
	for rows.Next() {
		var o models.Outlet
		err := rows.Scan(
			&o.ID,
			&o.Name,
			&o.Address,
			&o.OpeningHours,
			pq.Array(&o.Services),
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning outlet: %v", err)
		}
		outlets = append(outlets, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading outlets: %v", err)
	}

	return outlets, nil
}

func (s *PostgresStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
