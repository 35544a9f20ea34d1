package models

import (
	"time"

	"github.com/google/uuid"
)

// WagePayment records a manual wage disbursement to a delivery agent.
// Rows are append-only; there is no update path.
type WagePayment struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AgentUserID     uuid.UUID `gorm:"column:agent_user_id;type:uuid;not null"`
	AmountCents     int64     `gorm:"column:amount_cents;not null"`
	Notes           *string   `gorm:"column:notes"`
	PaidAt          time.Time `gorm:"column:paid_at;not null"`
	CreatedByUserID uuid.UUID `gorm:"column:created_by_user_id;type:uuid;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}
