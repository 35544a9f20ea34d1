package accounts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
)

// CategoryTotal aggregates expenses under one category.
type CategoryTotal struct {
	Category   enums.ExpenseCategory `json:"category"`
	Count      int64                 `json:"count"`
	TotalCents int64                 `json:"total_cents"`
}

// Repository defines the read aggregates and expense writes for accounting.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	SumRevenue(ctx context.Context) (int64, error)
	SumExpenses(ctx context.Context) (int64, error)
	ExpensesByCategory(ctx context.Context) ([]CategoryTotal, error)
	SumWagesPaid(ctx context.Context) (int64, error)
	InsertExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, id uuid.UUID) (bool, error)
	ListExpenses(ctx context.Context) ([]models.Expense, error)
}
