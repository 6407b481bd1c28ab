package domain

import (
	"encoding/json"
	"errors"
	"time"
)

const (
	DefaultPrepMinutes = 20
	DefaultOrderLimit  = 50
	MaxOrderLimit      = 500
)

var (
	ErrStoreNotConfigured = errors.New("database not configured")
	ErrNotFound           = errors.New("record not found")
)

type Restaurant struct {
	ID             string    `json:"id"`
	Name           string    `json:"name" validate:"required"`
	Address        string    `json:"address" validate:"required"`
	Cuisine        string    `json:"cuisine" validate:"required"`
	Image          *string   `json:"image,omitempty" validate:"omitempty,url"`
	AvgPrepMinutes int       `json:"avg_prep_minutes" validate:"min=1,max=180"`
	CreatedAt      time.Time `json:"created_at"`
}

type MenuItem struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name" validate:"required"`
	Description  *string   `json:"description,omitempty"`
	Price        *float64  `json:"price" validate:"required,gte=0"`
	Category     *string   `json:"category,omitempty"`
	Image        *string   `json:"image,omitempty" validate:"omitempty,url"`
	IsAvailable  bool      `json:"is_available"`
	CreatedAt    time.Time `json:"created_at"`
}

// PriceValue treats a missing price as zero.
func (m MenuItem) PriceValue() float64 {
	if m.Price == nil {
		return 0
	}
	return *m.Price
}

type OrderItem struct {
	MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity" validate:"gte=1"`
}

// UnmarshalJSON defaults quantity to 1 and drops any other client fields.
func (i *OrderItem) UnmarshalJSON(data []byte) error {
	type plain OrderItem
	item := plain{Quantity: 1}
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*i = OrderItem(item)
	return nil
}

type Order struct {
	ID              string      `json:"id"`
	RestaurantID    string      `json:"restaurant_id"`
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone"`
	DineInTime      string      `json:"dine_in_time"`
	Items           []OrderItem `json:"items"`
	SpecialRequests *string     `json:"special_requests"`
	Total           float64     `json:"total"`
	CreatedAt       time.Time   `json:"created_at"`
}

type PlaceOrderRequest struct {
	RestaurantID    string      `json:"restaurant_id" validate:"required,uuid"`
	CustomerName    string      `json:"customer_name" validate:"required"`
	CustomerPhone   string      `json:"customer_phone" validate:"required"`
	DineInTime      string      `json:"dine_in_time" validate:"required"`
	Items           []OrderItem `json:"items" validate:"required,dive"`
	SpecialRequests *string     `json:"special_requests"`
}

type PlaceOrderResult struct {
	ID                   string   `json:"id"`
	Total                float64  `json:"total"`
	EstimatedPrepMinutes int      `json:"estimated_prep_minutes"`
	UnpricedItemIDs      []string `json:"unpriced_item_ids,omitempty"`
	RestaurantFound      bool     `json:"restaurant_found"`
}

type OrderEvent struct {
	Type         string      `json:"type"`
	OrderID      string      `json:"order_id"`
	RestaurantID string      `json:"restaurant_id"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
	Timestamp    time.Time   `json:"timestamp"`
}

const EventOrderPlaced = "order_placed"

type StoreStatus struct {
	Configured  bool
	Err         error
	Collections []string
}
