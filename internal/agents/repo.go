package agents

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an agents repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) CreateAgent(ctx context.Context, agent *models.DeliveryAgent) error {
	return r.db.WithContext(ctx).Create(agent).Error
}

func (r *repository) FindAgent(ctx context.Context, agentID uuid.UUID) (*models.DeliveryAgent, error) {
	var agent models.DeliveryAgent
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", agentID).
		First(&agent).Error
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *repository) ListAgents(ctx context.Context) ([]models.DeliveryAgent, error) {
	var agents []models.DeliveryAgent
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at ASC").
		Find(&agents).Error
	return agents, err
}

func (r *repository) UpdateStatus(ctx context.Context, agentID uuid.UUID, status enums.AgentStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.DeliveryAgent{}).
		Where("user_id = ?", agentID).
		Updates(map[string]any{
			"status":     status,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) UpdatePresence(ctx context.Context, agentID uuid.UUID, present bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.DeliveryAgent{}).
		Where("user_id = ?", agentID).
		Updates(map[string]any{
			"is_present": present,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) UpdateAvailability(ctx context.Context, agentID uuid.UUID, available bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.DeliveryAgent{}).
		Where("user_id = ?", agentID).
		Updates(map[string]any{
			"is_available": available,
			"updated_at":   gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
