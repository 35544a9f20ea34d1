package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nabeel-mp/foodish-backend/pkg/enums"
)

// Order is the central order entity. Name, Address and Phone are a delivery
// contact snapshot captured at checkout, not a live reference to the profile.
type Order struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID           `gorm:"column:user_id;type:uuid;not null"`
	Name             string              `gorm:"column:name;not null"`
	Address          string              `gorm:"column:address;not null"`
	Phone            string              `gorm:"column:phone;not null"`
	PaymentMethod    enums.PaymentMethod `gorm:"column:payment_method;type:text;not null;default:'cod'"`
	PaymentStatus    bool                `gorm:"column:payment_status;not null;default:false"`
	PaymentSessionID *string             `gorm:"column:payment_session_id"`
	DeliveryBoyID    *uuid.UUID          `gorm:"column:delivery_boy_id;type:uuid"`
	Status           enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	TotalCents       int64               `gorm:"column:total_cents;not null"`
	DeliveredAt      *time.Time          `gorm:"column:delivered_at"`
	Items            []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem captures a priced line of an order at checkout time.
type OrderItem struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID  `gorm:"column:order_id;type:uuid;not null"`
	ProductID      *uuid.UUID `gorm:"column:product_id;type:uuid"`
	Title          string     `gorm:"column:title;not null"`
	UnitPriceCents int64      `gorm:"column:unit_price_cents;not null"`
	Qty            int        `gorm:"column:qty;not null"`
	TotalCents     int64      `gorm:"column:total_cents;not null"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
}
