package agents

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
)

// Repository defines persistence operations for delivery agent administration.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	EmailTaken(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	CreateAgent(ctx context.Context, agent *models.DeliveryAgent) error
	FindAgent(ctx context.Context, agentID uuid.UUID) (*models.DeliveryAgent, error)
	ListAgents(ctx context.Context) ([]models.DeliveryAgent, error)
	UpdateStatus(ctx context.Context, agentID uuid.UUID, status enums.AgentStatus) (bool, error)
	UpdatePresence(ctx context.Context, agentID uuid.UUID, present bool) (bool, error)
	UpdateAvailability(ctx context.Context, agentID uuid.UUID, available bool) (bool, error)
}
