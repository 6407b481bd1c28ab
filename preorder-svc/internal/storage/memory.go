package storage

import (
	"context"
	"sync"
	"time"

	"dinein-preorder/preorder-svc/internal/domain"

	"github.com/google/uuid"
)

// MemoryStore is a process-local store with the same contract as PostgresStore.
type MemoryStore struct {
	mu          sync.RWMutex
	restaurants []domain.Restaurant
	menu        []domain.MenuItem
	orders      []domain.Order

	// Inserts counts InsertOrder calls.
	Inserts int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) InsertRestaurant(_ context.Context, rest *domain.Restaurant) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rest.ID = uuid.NewString()
	rest.CreatedAt = time.Now().UTC()
	s.restaurants = append(s.restaurants, *rest)
	return rest.ID, nil
}

func (s *MemoryStore) ListRestaurants(_ context.Context) ([]domain.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Restaurant{}, s.restaurants...), nil
}

func (s *MemoryStore) FindRestaurantByID(_ context.Context, id string) (*domain.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rest := range s.restaurants {
		if rest.ID == id {
			found := rest
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) HasRestaurants(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.restaurants) > 0, nil
}

func (s *MemoryStore) InsertMenuItem(_ context.Context, item *domain.MenuItem) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now().UTC()
	s.menu = append(s.menu, *item)
	return item.ID, nil
}

func (s *MemoryStore) ListMenuItems(_ context.Context, restaurantID string) ([]domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := []domain.MenuItem{}
	for _, item := range s.menu {
		if item.RestaurantID == restaurantID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *MemoryStore) FindMenuItemsByIDs(_ context.Context, ids []string) ([]domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	items := []domain.MenuItem{}
	for _, item := range s.menu {
		if wanted[item.ID] {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *MemoryStore) InsertOrder(_ context.Context, order *domain.Order) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = uuid.NewString()
	order.CreatedAt = time.Now().UTC()
	stored := *order
	stored.Items = append([]domain.OrderItem{}, order.Items...)
	s.orders = append(s.orders, stored)
	s.Inserts++
	return order.ID, nil
}

func (s *MemoryStore) ListOrders(_ context.Context, restaurantID string, limit int) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := []domain.Order{}
	for _, order := range s.orders {
		if len(orders) == limit {
			break
		}
		if restaurantID == "" || order.RestaurantID == restaurantID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (s *MemoryStore) FindOrderByID(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, order := range s.orders {
		if order.ID == id {
			found := order
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryStore) Status(_ context.Context) domain.StoreStatus {
	return domain.StoreStatus{Configured: true, Collections: []string{"menu_items", "orders", "restaurants"}}
}
