package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nabeel-mp/foodish-backend/pkg/enums"
)

// Expense is a manual operating cost entry. Admins create and delete
// expenses; entries are never updated in place.
type Expense struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title           string                `gorm:"column:title;not null"`
	Category        enums.ExpenseCategory `gorm:"column:category;type:text;not null;default:'other'"`
	AmountCents     int64                 `gorm:"column:amount_cents;not null"`
	Notes           *string               `gorm:"column:notes"`
	ExpenseDate     time.Time             `gorm:"column:expense_date;not null"`
	CreatedByUserID uuid.UUID             `gorm:"column:created_by_user_id;type:uuid;not null"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
}
