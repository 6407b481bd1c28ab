package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dinein-preorder/preorder-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresStore keeps restaurants, menu items and orders. A nil DB means the
// store was never configured; every call then fails with ErrStoreNotConfigured.
type PostgresStore struct {
	DB    *sql.DB
	NewID func() string
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db, NewID: uuid.NewString}
}

func (s *PostgresStore) ready() error {
	if s == nil || s.DB == nil {
		return domain.ErrStoreNotConfigured
	}
	return nil
}

func (s *PostgresStore) InsertRestaurant(ctx context.Context, rest *domain.Restaurant) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	id := s.NewID()
	var createdAt time.Time
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO restaurants (id, name, address, cuisine, image, avg_prep_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		id, rest.Name, rest.Address, rest.Cuisine, rest.Image, rest.AvgPrepMinutes,
	).Scan(&createdAt)
	if err != nil {
		return "", fmt.Errorf("insert restaurant: %w", err)
	}
	rest.ID, rest.CreatedAt = id, createdAt
	return id, nil
}

func (s *PostgresStore) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, name, address, cuisine, image, avg_prep_minutes, created_at
		FROM restaurants
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Cuisine, &rest.Image, &rest.AvgPrepMinutes, &rest.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

// FindRestaurantByID returns nil, nil when no restaurant has the id.
func (s *PostgresStore) FindRestaurantByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var rest domain.Restaurant
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, name, address, cuisine, image, avg_prep_minutes, created_at
		FROM restaurants
		WHERE id = $1`, id).
		Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Cuisine, &rest.Image, &rest.AvgPrepMinutes, &rest.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find restaurant %s: %w", id, err)
	}
	return &rest, nil
}

func (s *PostgresStore) HasRestaurants(ctx context.Context) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	var exists bool
	if err := s.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM restaurants)`).Scan(&exists); err != nil {
		return false, fmt.Errorf("check restaurants: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) InsertMenuItem(ctx context.Context, item *domain.MenuItem) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	id := s.NewID()
	var createdAt time.Time
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO menu_items (id, restaurant_id, name, description, price, category, image, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		id, item.RestaurantID, item.Name, item.Description, item.PriceValue(), item.Category, item.Image, item.IsAvailable,
	).Scan(&createdAt)
	if err != nil {
		return "", fmt.Errorf("insert menu item: %w", err)
	}
	item.ID, item.CreatedAt = id, createdAt
	return id, nil
}

func (s *PostgresStore) ListMenuItems(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, menuItemSelect+`
		WHERE restaurant_id = $1
		ORDER BY created_at, id`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return scanMenuItems(rows)
}

// FindMenuItemsByIDs fetches every requested item in one round trip. Unknown
// ids are simply absent from the result.
func (s *PostgresStore) FindMenuItemsByIDs(ctx context.Context, ids []string) ([]domain.MenuItem, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.MenuItem{}, nil
	}
	rows, err := s.DB.QueryContext(ctx, menuItemSelect+`
		WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("find menu items: %w", err)
	}
	return scanMenuItems(rows)
}

const menuItemSelect = `
		SELECT id, restaurant_id, name, description, price, category, image, is_available, created_at
		FROM menu_items`

func scanMenuItems(rows *sql.Rows) ([]domain.MenuItem, error) {
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var (
			item  domain.MenuItem
			price float64
		)
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description, &price,
			&item.Category, &item.Image, &item.IsAvailable, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		item.Price = &price
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PostgresStore) InsertOrder(ctx context.Context, order *domain.Order) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	items, err := json.Marshal(order.Items)
	if err != nil {
		return "", fmt.Errorf("encode order items: %w", err)
	}
	id := s.NewID()
	var createdAt time.Time
	err = s.DB.QueryRowContext(ctx, `
		INSERT INTO orders (id, restaurant_id, customer_name, customer_phone, dine_in_time, items, special_requests, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		id, order.RestaurantID, order.CustomerName, order.CustomerPhone, order.DineInTime,
		string(items), order.SpecialRequests, order.Total,
	).Scan(&createdAt)
	if err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}
	order.ID, order.CreatedAt = id, createdAt
	return id, nil
}

// ListOrders returns orders in insertion order, optionally filtered by restaurant.
func (s *PostgresStore) ListOrders(ctx context.Context, restaurantID string, limit int) ([]domain.Order, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, orderSelect+`
		WHERE ($1 = '' OR restaurant_id = $1)
		ORDER BY seq
		LIMIT $2`, restaurantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (s *PostgresStore) FindOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	order, err := scanOrder(s.DB.QueryRowContext(ctx, orderSelect+`
		WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return order, err
}

const orderSelect = `
		SELECT id, restaurant_id, customer_name, customer_phone, dine_in_time, items, special_requests, total, created_at
		FROM orders`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order domain.Order
		items []byte
	)
	if err := row.Scan(&order.ID, &order.RestaurantID, &order.CustomerName, &order.CustomerPhone,
		&order.DineInTime, &items, &order.SpecialRequests, &order.Total, &order.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	order.Items = []domain.OrderItem{}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, fmt.Errorf("decode order %s items: %w", order.ID, err)
		}
	}
	return &order, nil
}

// Status reports connectivity and up to ten table names for the health endpoint.
func (s *PostgresStore) Status(ctx context.Context) domain.StoreStatus {
	if s.ready() != nil {
		return domain.StoreStatus{}
	}
	status := domain.StoreStatus{Configured: true, Collections: []string{}}
	if err := s.DB.PingContext(ctx); err != nil {
		status.Err = err
		return status
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name
		LIMIT 10`)
	if err != nil {
		status.Err = err
		return status
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			status.Err = err
			return status
		}
		status.Collections = append(status.Collections, name)
	}
	if err := rows.Err(); err != nil {
		status.Err = err
	}
	return status
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	statements := []string{
		`CREATE TABLE IF NOT EXISTS restaurants (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			cuisine TEXT NOT NULL,
			image TEXT,
			avg_prep_minutes INTEGER NOT NULL DEFAULT 20,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id TEXT PRIMARY KEY,
			restaurant_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			price DOUBLE PRECISION NOT NULL,
			category TEXT,
			image TEXT,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		"CREATE INDEX IF NOT EXISTS menu_items_restaurant_idx ON menu_items (restaurant_id)",
		`CREATE TABLE IF NOT EXISTS orders (
			seq BIGSERIAL,
			id TEXT PRIMARY KEY,
			restaurant_id TEXT NOT NULL,
			customer_name TEXT NOT NULL,
			customer_phone TEXT NOT NULL,
			dine_in_time TEXT NOT NULL,
			items JSONB NOT NULL,
			special_requests TEXT,
			total DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		"CREATE INDEX IF NOT EXISTS orders_restaurant_seq_idx ON orders (restaurant_id, seq)",
	}
	for _, stmt := range statements {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
