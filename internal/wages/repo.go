package wages

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a wage ledger repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) AgentExists(ctx context.Context, agentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.DeliveryAgent{}).
		Where("user_id = ?", agentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) CountDelivered(ctx context.Context, agentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("delivery_boy_id = ? AND status = ?", agentID, enums.OrderStatusDelivered).
		Count(&count).Error
	return count, err
}

func (r *repository) CountDeliveredBetween(ctx context.Context, agentID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("delivery_boy_id = ? AND status = ? AND delivered_at >= ? AND delivered_at <= ?",
			agentID, enums.OrderStatusDelivered, from, to).
		Count(&count).Error
	return count, err
}

func (r *repository) SumPayments(ctx context.Context, agentID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.WagePayment{}).
		Where("agent_user_id = ?", agentID).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&total).Error
	return total, err
}

func (r *repository) InsertPayment(ctx context.Context, payment *models.WagePayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) ListPayments(ctx context.Context, agentID uuid.UUID) ([]models.WagePayment, error) {
	var payments []models.WagePayment
	err := r.db.WithContext(ctx).
		Where("agent_user_id = ?", agentID).
		Order("paid_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *repository) ListAgentIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.DeliveryAgent{}).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}
