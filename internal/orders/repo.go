package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
	pkgerrors "github.com/nabeel-mp/foodish-backend/pkg/errors"
	"github.com/nabeel-mp/foodish-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) ListAll(ctx context.Context, params pagination.Params, filters AdminOrderFilters) (*OrderList, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	query := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}

	next := ""
	if len(orders) > limit {
		orders = orders[:limit]
		last := orders[limit-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	return &OrderList{Orders: orders, NextCursor: next}, nil
}

func (r *repository) ListActiveByAgent(ctx context.Context, agentID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("delivery_boy_id = ? AND status IN (?, ?)", agentID, enums.OrderStatusAssigned, enums.OrderStatusShipped).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) ListDeliveredByAgent(ctx context.Context, agentID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("delivery_boy_id = ? AND status = ?", agentID, enums.OrderStatusDelivered).
		Order("delivered_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// TransitionStatus applies from→to only when the row is still in the expected
// state. RowsAffected is the arbiter under concurrent writers.
func (r *repository) TransitionStatus(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus, markDelivered bool) (bool, error) {
	updates := map[string]any{
		"status":     to,
		"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
	}
	if markDelivered {
		updates["delivered_at"] = gorm.Expr("CURRENT_TIMESTAMP")
	}

	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CancelOrder cancels only while the order has not shipped.
func (r *repository) CancelOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status IN (?, ?)", orderID, enums.OrderStatusPending, enums.OrderStatusAssigned).
		Updates(map[string]any{
			"status":          enums.OrderStatusCancelled,
			"delivery_boy_id": nil,
			"updated_at":      gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) UpdatePaymentSession(ctx context.Context, orderID uuid.UUID, sessionID string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("payment_session_id", sessionID).Error
}

func (r *repository) MarkPaid(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("payment_status", true).Error
}

func (r *repository) HardDelete(ctx context.Context, orderID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("id = ?", orderID).
		Delete(&models.Order{}).Error
}

// ReleaseAgentIfIdle restores availability only when the agent carries no
// other in-flight orders.
func (r *repository) ReleaseAgentIfIdle(ctx context.Context, agentID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE delivery_agents
		SET is_available = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?
			AND NOT EXISTS (
				SELECT 1 FROM orders
				WHERE delivery_boy_id = ? AND status IN (?, ?)
			)
	`, true, agentID, agentID, enums.OrderStatusAssigned, enums.OrderStatusShipped).Error
}
