package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusActive    OrderStatus = "active"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is owned by the order-management side; this service only reads it.
type Order struct {
	ID           string
	OrderNumber  string
	CustomerRef  string
	Status       OrderStatus
	Priority     int
	PickupDate   *time.Time
	DeliveryDate *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
