package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
	"github.com/nabeel-mp/foodish-backend/pkg/pagination"
)

// Repository defines persistence operations for orders and the agent
// availability writes that order transitions imply.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	ListAll(ctx context.Context, params pagination.Params, filters AdminOrderFilters) (*OrderList, error)
	ListActiveByAgent(ctx context.Context, agentID uuid.UUID) ([]models.Order, error)
	ListDeliveredByAgent(ctx context.Context, agentID uuid.UUID) ([]models.Order, error)
	TransitionStatus(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus, markDelivered bool) (bool, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID) (bool, error)
	UpdatePaymentSession(ctx context.Context, orderID uuid.UUID, sessionID string) error
	MarkPaid(ctx context.Context, orderID uuid.UUID) error
	HardDelete(ctx context.Context, orderID uuid.UUID) error
	ReleaseAgentIfIdle(ctx context.Context, agentID uuid.UUID) error
}
