package domain

import "time"

const EventOrderPlaced = "order_placed"

type OrderItem struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// OrderEvent is published by preorder-svc after an order is stored.
type OrderEvent struct {
	Type         string      `json:"type"`
	OrderID      string      `json:"order_id"`
	RestaurantID string      `json:"restaurant_id"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
	Timestamp    time.Time   `json:"timestamp"`
}

type PopularItem struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int64  `json:"quantity"`
}

type RestaurantStats struct {
	RestaurantID string        `json:"restaurant_id"`
	Orders       int64         `json:"orders"`
	Revenue      float64       `json:"revenue"`
	OrdersToday  int64         `json:"orders_today"`
	PopularItems []PopularItem `json:"popular_items"`
}
