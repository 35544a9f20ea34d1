package assignment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an assignment repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListPendingPayableOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("status = ? AND delivery_boy_id IS NULL", enums.OrderStatusPending).
		Where("payment_method <> ? OR payment_status = ?", enums.PaymentMethodStripe, true).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListEligibleAgentLoads returns claimable agents ordered by how many orders
// they currently carry, ties broken by seniority. A NULL is_present counts as
// present.
func (r *repository) ListEligibleAgentLoads(ctx context.Context) ([]AgentLoad, error) {
	var loads []AgentLoad
	err := r.db.WithContext(ctx).Raw(`
		SELECT da.user_id AS agent_id, COUNT(o.id) AS active_orders
		FROM delivery_agents da
		LEFT JOIN orders o
			ON o.delivery_boy_id = da.user_id
			AND o.status IN (?, ?)
		WHERE da.status = ?
			AND da.is_available = ?
			AND (da.is_present IS NULL OR da.is_present = ?)
		GROUP BY da.user_id, da.created_at
		ORDER BY active_orders ASC, da.created_at ASC
	`, enums.OrderStatusAssigned, enums.OrderStatusShipped, enums.AgentStatusActive, true, true).
		Scan(&loads).Error
	if err != nil {
		return nil, err
	}
	return loads, nil
}

// ClaimAgent flips the availability flag only when the agent is still
// claimable. The conditional write is the concurrency guard: two concurrent
// claims on the same agent cannot both see RowsAffected == 1.
func (r *repository) ClaimAgent(ctx context.Context, agentID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE delivery_agents
		SET is_available = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?
			AND status = ?
			AND is_available = ?
			AND (is_present IS NULL OR is_present = ?)
	`, false, agentID, enums.AgentStatusActive, true, true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// AssignOrder attaches the agent only when the order is still pending and
// unassigned.
func (r *repository) AssignOrder(ctx context.Context, orderID, agentID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE orders
		SET delivery_boy_id = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ? AND delivery_boy_id IS NULL
	`, agentID, enums.OrderStatusAssigned, orderID, enums.OrderStatusPending)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) ReleaseAgent(ctx context.Context, agentID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE delivery_agents
		SET is_available = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?
	`, true, agentID).Error
}
