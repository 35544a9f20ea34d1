package wages

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
)

// Repository defines persistence operations for the wage ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	AgentExists(ctx context.Context, agentID uuid.UUID) (bool, error)
	CountDelivered(ctx context.Context, agentID uuid.UUID) (int64, error)
	CountDeliveredBetween(ctx context.Context, agentID uuid.UUID, from, to time.Time) (int64, error)
	SumPayments(ctx context.Context, agentID uuid.UUID) (int64, error)
	InsertPayment(ctx context.Context, payment *models.WagePayment) error
	ListPayments(ctx context.Context, agentID uuid.UUID) ([]models.WagePayment, error)
	ListAgentIDs(ctx context.Context) ([]uuid.UUID, error)
}
