package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"dinein-preorder/logger"
	"dinein-preorder/preorder-svc/internal/domain"
)

var ErrQRDisabled = errors.New("qr codes are not enabled")

// PublishTimeout bounds how long an order request waits on the event broker.
const PublishTimeout = 500 * time.Millisecond

type OrderService struct {
	menu        MenuRepository
	orders      OrderRepository
	restaurants RestaurantRepository
	publisher   OrderPublisher
	qrEncoder   QRGenerator
	log         *slog.Logger
}

// NewOrderService wires the pricing engine. publisher and qr may be nil.
func NewOrderService(menu MenuRepository, orders OrderRepository, restaurants RestaurantRepository,
	publisher OrderPublisher, qr QRGenerator, log *slog.Logger) *OrderService {
	if log == nil {
		log = logger.Discard()
	}
	return &OrderService{
		menu:        menu,
		orders:      orders,
		restaurants: restaurants,
		publisher:   publisher,
		qrEncoder:   qr,
		log:         log,
	}
}

// PlaceOrder prices the request from the current catalog, persists exactly one
// order and returns the restaurant's static prep estimate. Unknown menu items
// cost 0 and an unknown restaurant yields DefaultPrepMinutes; both are reported
// on the result rather than failing the call.
func (s *OrderService) PlaceOrder(ctx context.Context, req *domain.PlaceOrderRequest) (*domain.PlaceOrderResult, error) {
	ids := distinctMenuItemIDs(req.Items)

	catalog, err := s.menu.FindMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	prices := make(map[string]float64, len(catalog))
	for _, item := range catalog {
		prices[item.ID] = item.PriceValue()
	}

	total, unpriced := priceItems(req.Items, prices)

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{MenuItemID: it.MenuItemID, Quantity: it.Quantity})
	}

	order := &domain.Order{
		RestaurantID:    req.RestaurantID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DineInTime:      req.DineInTime,
		Items:           items,
		SpecialRequests: req.SpecialRequests,
		Total:           roundCents(total),
	}

	orderID, err := s.orders.InsertOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	order.ID = orderID

	rest, err := s.restaurants.FindRestaurantByID(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	prep := domain.DefaultPrepMinutes
	if rest != nil {
		prep = rest.AvgPrepMinutes
	} else {
		s.log.Warn("restaurant not found, using default prep estimate",
			"order_id", orderID, "restaurant_id", req.RestaurantID, "prep_minutes", prep)
	}
	if len(unpriced) > 0 {
		s.log.Warn("menu items not found, priced at zero",
			"order_id", orderID, "menu_item_ids", unpriced)
	}

	s.log.Info("order placed", "order_id", orderID, "restaurant_id", req.RestaurantID,
		"items", len(items), "total", order.Total)
	s.publish(ctx, order)

	return &domain.PlaceOrderResult{
		ID:                   orderID,
		Total:                order.Total,
		EstimatedPrepMinutes: prep,
		UnpricedItemIDs:      unpriced,
		RestaurantFound:      rest != nil,
	}, nil
}

func (s *OrderService) publish(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, PublishTimeout)
	defer cancel()
	err := s.publisher.PublishOrder(ctx, domain.OrderEvent{
		Type:         domain.EventOrderPlaced,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		Items:        order.Items,
		Total:        order.Total,
		Timestamp:    time.Now().UTC(),
	})
	if err != nil {
		s.log.Error("publish order event", "order_id", order.ID, "error", err)
	}
}

func (s *OrderService) ListOrders(ctx context.Context, restaurantID string, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = domain.DefaultOrderLimit
	}
	if limit > domain.MaxOrderLimit {
		limit = domain.MaxOrderLimit
	}
	return s.orders.ListOrders(ctx, restaurantID, limit)
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.FindOrderByID(ctx, id)
}

func (s *OrderService) QRCode(ctx context.Context, id string) ([]byte, error) {
	if s.qrEncoder == nil {
		return nil, ErrQRDisabled
	}
	if _, err := s.orders.FindOrderByID(ctx, id); err != nil {
		return nil, err
	}
	return s.qrEncoder.Generate(id)
}

func distinctMenuItemIDs(items []domain.OrderItem) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.MenuItemID]; ok {
			continue
		}
		seen[it.MenuItemID] = struct{}{}
		ids = append(ids, it.MenuItemID)
	}
	return ids
}

// priceItems sums price × quantity. Ids missing from prices contribute 0 and
// are returned once each, in request order.
func priceItems(items []domain.OrderItem, prices map[string]float64) (float64, []string) {
	var (
		total    float64
		unpriced []string
		reported = map[string]bool{}
	)
	for _, it := range items {
		price, ok := prices[it.MenuItemID]
		if !ok && !reported[it.MenuItemID] {
			reported[it.MenuItemID] = true
			unpriced = append(unpriced, it.MenuItemID)
		}
		total += price * float64(it.Quantity)
	}
	return total, unpriced
}

// roundCents rounds half away from zero to two decimals.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
