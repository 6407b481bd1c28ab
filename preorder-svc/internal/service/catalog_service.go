package service

import (
	"context"
	"fmt"
	"log/slog"

	"dinein-preorder/logger"
	"dinein-preorder/preorder-svc/internal/domain"
)

type CatalogService struct {
	restaurants RestaurantRepository
	menu        MenuRepository
	status      StatusReporter
	log         *slog.Logger
}

func NewCatalogService(restaurants RestaurantRepository, menu MenuRepository, status StatusReporter, log *slog.Logger) *CatalogService {
	if log == nil {
		log = logger.Discard()
	}
	return &CatalogService{restaurants: restaurants, menu: menu, status: status, log: log}
}

func (s *CatalogService) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return s.restaurants.ListRestaurants(ctx)
}

func (s *CatalogService) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) (string, error) {
	return s.restaurants.InsertRestaurant(ctx, rest)
}

func (s *CatalogService) ListMenu(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	return s.menu.ListMenuItems(ctx, restaurantID)
}

// CreateMenuItem always files the item under restaurantID, whatever the body said.
func (s *CatalogService) CreateMenuItem(ctx context.Context, restaurantID string, item *domain.MenuItem) (string, error) {
	item.RestaurantID = restaurantID
	return s.menu.InsertMenuItem(ctx, item)
}

func (s *CatalogService) Status(ctx context.Context) domain.StoreStatus {
	if s.status == nil {
		return domain.StoreStatus{}
	}
	return s.status.Status(ctx)
}

type SeedResult struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	RestaurantID string `json:"restaurant_id,omitempty"`
}

// Seed creates the demo restaurant and menu unless any restaurant exists.
func (s *CatalogService) Seed(ctx context.Context) (*SeedResult, error) {
	exists, err := s.restaurants.HasRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return &SeedResult{Status: "ok", Message: "Data already seeded"}, nil
	}

	image := "https://images.unsplash.com/photo-1541542684-4a7a2e4b6c56?w=1200&q=80&auto=format&fit=crop"
	rest := &domain.Restaurant{
		Name:           "Blue Flame Bistro",
		Address:        "123 Flavor Street",
		Cuisine:        "Fusion",
		Image:          &image,
		AvgPrepMinutes: domain.DefaultPrepMinutes,
	}
	restaurantID, err := s.restaurants.InsertRestaurant(ctx, rest)
	if err != nil {
		return nil, err
	}

	for _, item := range demoMenu() {
		item.RestaurantID = restaurantID
		if _, err := s.menu.InsertMenuItem(ctx, &item); err != nil {
			return nil, fmt.Errorf("seed menu item %q: %w", item.Name, err)
		}
	}

	s.log.Info("seeded demo catalog", "restaurant_id", restaurantID)
	return &SeedResult{Status: "ok", RestaurantID: restaurantID}, nil
}

func demoMenu() []domain.MenuItem {
	entry := func(name, description string, price float64, category string) domain.MenuItem {
		return domain.MenuItem{
			Name:        name,
			Description: &description,
			Price:       &price,
			Category:    &category,
			IsAvailable: true,
		}
	}
	return []domain.MenuItem{
		entry("Smoky Paneer Tacos", "Cilantro crema, pickled onions", 8.5, "Starters"),
		entry("Fire-Grilled Chicken", "Herb butter, charred lemon", 14.0, "Mains"),
		entry("Truffle Mushroom Pasta", "Parmesan, garlic crumbs", 13.5, "Mains"),
		entry("Molten Lava Cake", "Vanilla gelato", 6.0, "Desserts"),
		entry("Iced Hibiscus Tea", "Fresh brewed", 3.5, "Drinks"),
	}
}
