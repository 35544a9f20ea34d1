package assignment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
)

// AgentLoad pairs an eligible agent with their count of in-flight orders.
type AgentLoad struct {
	AgentID      uuid.UUID
	ActiveOrders int
}

// Repository defines the persistence operations the engine needs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListPendingPayableOrders(ctx context.Context) ([]models.Order, error)
	ListEligibleAgentLoads(ctx context.Context) ([]AgentLoad, error)
	ClaimAgent(ctx context.Context, agentID uuid.UUID) (bool, error)
	AssignOrder(ctx context.Context, orderID, agentID uuid.UUID) (bool, error)
	ReleaseAgent(ctx context.Context, agentID uuid.UUID) error
}
