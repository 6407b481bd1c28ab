package service

import (
	"context"

	"dinein-preorder/preorder-svc/internal/domain"
)

type RestaurantRepository interface {
	InsertRestaurant(ctx context.Context, rest *domain.Restaurant) (string, error)
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	FindRestaurantByID(ctx context.Context, id string) (*domain.Restaurant, error)
	HasRestaurants(ctx context.Context) (bool, error)
}

type MenuRepository interface {
	InsertMenuItem(ctx context.Context, item *domain.MenuItem) (string, error)
	ListMenuItems(ctx context.Context, restaurantID string) ([]domain.MenuItem, error)
	FindMenuItemsByIDs(ctx context.Context, ids []string) ([]domain.MenuItem, error)
}

type OrderRepository interface {
	InsertOrder(ctx context.Context, order *domain.Order) (string, error)
	ListOrders(ctx context.Context, restaurantID string, limit int) ([]domain.Order, error)
	FindOrderByID(ctx context.Context, id string) (*domain.Order, error)
}

type StatusReporter interface {
	Status(ctx context.Context) domain.StoreStatus
}

type OrderPublisher interface {
	PublishOrder(ctx context.Context, event domain.OrderEvent) error
}

type CatalogServiceInterface interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) (string, error)
	ListMenu(ctx context.Context, restaurantID string) ([]domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, restaurantID string, item *domain.MenuItem) (string, error)
	Seed(ctx context.Context) (*SeedResult, error)
	Status(ctx context.Context) domain.StoreStatus
}

type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, req *domain.PlaceOrderRequest) (*domain.PlaceOrderResult, error)
	ListOrders(ctx context.Context, restaurantID string, limit int) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	QRCode(ctx context.Context, id string) ([]byte, error)
}

var (
	_ CatalogServiceInterface = (*CatalogService)(nil)
	_ OrderServiceInterface   = (*OrderService)(nil)
)
