package orders

import (
	"github.com/google/uuid"

	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
)

// CreateOrderItemInput is one checkout line as the client submitted it.
type CreateOrderItemInput struct {
	ProductID      *uuid.UUID
	Title          string
	UnitPriceCents int64
	Qty            int
}

// CreateOrderInput carries everything needed to persist a new order.
// TotalCents is the client's claimed total and is checked against the
// server-side recomputation.
type CreateOrderInput struct {
	UserID        uuid.UUID
	Name          string
	Address       string
	Phone         string
	PaymentMethod enums.PaymentMethod
	TotalCents    int64
	Items         []CreateOrderItemInput
}

// DeliveryStatusInput identifies a courier-driven status transition.
type DeliveryStatusInput struct {
	OrderID uuid.UUID
	AgentID uuid.UUID
	Target  enums.OrderStatus
}

// OrderList is a cursor-paginated page of orders.
type OrderList struct {
	Orders     []models.Order
	NextCursor string
}

// AdminOrderFilters narrows the admin all-orders listing.
type AdminOrderFilters struct {
	Status *enums.OrderStatus
}
