package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
	pkgerrors "github.com/nabeel-mp/foodish-backend/pkg/errors"
	"github.com/nabeel-mp/foodish-backend/pkg/logger"
)

// Summary is the business-wide profit and loss view. Revenue covers every
// non-cancelled order; expenses and wages are lifetime totals.
type Summary struct {
	RevenueCents   int64           `json:"revenue_cents"`
	ExpensesCents  int64           `json:"expenses_cents"`
	WagesPaidCents int64           `json:"wages_paid_cents"`
	ProfitCents    int64           `json:"profit_cents"`
	Revenue        decimal.Decimal `json:"revenue"`
	Expenses       decimal.Decimal `json:"expenses"`
	WagesPaid      decimal.Decimal `json:"wages_paid"`
	Profit         decimal.Decimal `json:"profit"`
	ByCategory     []CategoryTotal `json:"expenses_by_category"`
}

// CreateExpenseInput captures a manual operating cost entry.
type CreateExpenseInput struct {
	Title           string
	Category        enums.ExpenseCategory
	AmountCents     int64
	Notes           *string
	ExpenseDate     time.Time
	CreatedByUserID uuid.UUID
}

// Service exposes the accounting aggregates and expense bookkeeping.
type Service interface {
	Summarize(ctx context.Context) (*Summary, error)
	CreateExpense(ctx context.Context, input CreateExpenseInput) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
	ListExpenses(ctx context.Context) ([]models.Expense, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds an accounting service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("accounts repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Summarize(ctx context.Context) (*Summary, error) {
	revenue, err := s.repo.SumRevenue(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum revenue")
	}
	expenses, err := s.repo.SumExpenses(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum expenses")
	}
	wages, err := s.repo.SumWagesPaid(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum wages")
	}
	byCategory, err := s.repo.ExpensesByCategory(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "group expenses")
	}

	profit := revenue - (expenses + wages)
	return &Summary{
		RevenueCents:   revenue,
		ExpensesCents:  expenses,
		WagesPaidCents: wages,
		ProfitCents:    profit,
		Revenue:        centsToDecimal(revenue),
		Expenses:       centsToDecimal(expenses),
		WagesPaid:      centsToDecimal(wages),
		Profit:         centsToDecimal(profit),
		ByCategory:     byCategory,
	}, nil
}

func (s *service) CreateExpense(ctx context.Context, input CreateExpenseInput) (*models.Expense, error) {
	if input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense title required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid expense category")
	}
	if input.AmountCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense amount cannot be negative")
	}
	if input.CreatedByUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity missing")
	}

	expenseDate := input.ExpenseDate
	if expenseDate.IsZero() {
		expenseDate = time.Now().UTC()
	}

	expense := &models.Expense{
		ID:              uuid.New(),
		Title:           input.Title,
		Category:        input.Category,
		AmountCents:     input.AmountCents,
		Notes:           input.Notes,
		ExpenseDate:     expenseDate,
		CreatedByUserID: input.CreatedByUserID,
	}
	if err := s.repo.InsertExpense(ctx, expense); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record expense")
	}
	return expense, nil
}

func (s *service) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "expense id required")
	}
	deleted, err := s.repo.DeleteExpense(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete expense")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "expense not found")
	}
	return nil
}

func (s *service) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	expenses, err := s.repo.ListExpenses(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list expenses")
	}
	return expenses, nil
}

func centsToDecimal(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}
