package accounts

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

// NewRepository builds an accounting repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// SumRevenue counts every non-cancelled order. Unpaid and undelivered orders
// are included; cancellation is the only exit from revenue.
func (r *repository) SumRevenue(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("status <> ?", enums.OrderStatusCancelled).
		Select("COALESCE(SUM(total_cents), 0)").
		Scan(&total).Error
	return total, err
}

func (r *repository) SumExpenses(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Expense{}).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&total).Error
	return total, err
}

func (r *repository) ExpensesByCategory(ctx context.Context) ([]CategoryTotal, error) {
	var totals []CategoryTotal
	err := r.db.WithContext(ctx).Model(&models.Expense{}).
		Select("category, COUNT(*) AS count, COALESCE(SUM(amount_cents), 0) AS total_cents").
		Group("category").
		Order("category ASC").
		Scan(&totals).Error
	return totals, err
}

func (r *repository) SumWagesPaid(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.WagePayment{}).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&total).Error
	return total, err
}

func (r *repository) InsertExpense(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *repository) DeleteExpense(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Expense{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Order("expense_date DESC, created_at DESC").
		Find(&expenses).Error
	return expenses, err
}
