package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nabeel-mp/foodish-backend/pkg/enums"
)

// DeliveryAgent is the delivery-role variant record layered on a User.
// IsPresent is tri-state: nil means the on-shift flag was never recorded and
// the agent is treated as present for assignment eligibility.
//
// IsAvailable carries no gorm default tag on purpose: gorm omits zero-value
// fields that have one, which would turn an insert of an unavailable agent
// into is_available=true. The column default lives in the migration.
type DeliveryAgent struct {
	UserID      uuid.UUID         `gorm:"column:user_id;type:uuid;primaryKey"`
	IsAvailable bool              `gorm:"column:is_available;not null"`
	IsPresent   *bool             `gorm:"column:is_present"`
	Status      enums.AgentStatus `gorm:"column:status;type:text;not null;default:'active'"`
	User        *User             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
