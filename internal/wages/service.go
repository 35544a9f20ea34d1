package wages

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nabeel-mp/foodish-backend/pkg/config"
	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
	pkgerrors "github.com/nabeel-mp/foodish-backend/pkg/errors"
	"github.com/nabeel-mp/foodish-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// AgentWageSummary is the settlement position for one agent. A negative
// payable means the agent has been paid ahead of accrual.
type AgentWageSummary struct {
	AgentID        uuid.UUID       `json:"agent_id"`
	DeliveredCount int64           `json:"delivered_count"`
	AccruedCents   int64           `json:"accrued_cents"`
	PaidCents      int64           `json:"paid_cents"`
	PayableCents   int64           `json:"payable_cents"`
	Payable        decimal.Decimal `json:"payable"`
	Overpaid       bool            `json:"overpaid"`
}

// MonthlyWageSummary is the accrual view for the current calendar month.
type MonthlyWageSummary struct {
	AgentID        uuid.UUID       `json:"agent_id"`
	MonthStart     time.Time       `json:"month_start"`
	MonthEnd       time.Time       `json:"month_end"`
	DeliveredCount int64           `json:"delivered_count"`
	AccruedCents   int64           `json:"accrued_cents"`
	Accrued        decimal.Decimal `json:"accrued"`
}

// RecordPaymentInput captures a manual wage disbursement.
type RecordPaymentInput struct {
	AgentID         uuid.UUID
	AmountCents     int64
	Notes           *string
	CreatedByUserID uuid.UUID
}

// Service exposes wage accrual and settlement operations.
type Service interface {
	Summary(ctx context.Context, agentID uuid.UUID) (*AgentWageSummary, error)
	MonthlySummary(ctx context.Context, agentID uuid.UUID, anchor time.Time) (*MonthlyWageSummary, error)
	SummaryAll(ctx context.Context) ([]AgentWageSummary, error)
	RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.WagePayment, error)
	ListPayments(ctx context.Context, agentID uuid.UUID) ([]models.WagePayment, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	perRate int64
	logg    *logger.Logger
}

// NewService builds a wage service with the configured per-delivery rate.
func NewService(repo Repository, tx txRunner, cfg config.WagesConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wages repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if cfg.PerDeliveryCents <= 0 {
		return nil, fmt.Errorf("per-delivery wage rate must be positive")
	}
	return &service{repo: repo, tx: tx, perRate: cfg.PerDeliveryCents, logg: logg}, nil
}

func (s *service) Summary(ctx context.Context, agentID uuid.UUID) (*AgentWageSummary, error) {
	if agentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "agent identity missing")
	}

	delivered, err := s.repo.CountDelivered(ctx, agentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count deliveries")
	}
	paid, err := s.repo.SumPayments(ctx, agentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum payments")
	}

	accrued := delivered * s.perRate
	payable := accrued - paid
	return &AgentWageSummary{
		AgentID:        agentID,
		DeliveredCount: delivered,
		AccruedCents:   accrued,
		PaidCents:      paid,
		PayableCents:   payable,
		Payable:        centsToDecimal(payable),
		Overpaid:       payable < 0,
	}, nil
}

// MonthlySummary computes accrual inside the calendar month containing
// anchor. A zero anchor means the current month.
func (s *service) MonthlySummary(ctx context.Context, agentID uuid.UUID, anchor time.Time) (*MonthlyWageSummary, error) {
	if agentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "agent identity missing")
	}

	if anchor.IsZero() {
		anchor = time.Now()
	}
	month := now.New(anchor)
	monthStart := month.BeginningOfMonth()
	monthEnd := month.EndOfMonth()
	delivered, err := s.repo.CountDeliveredBetween(ctx, agentID, monthStart, monthEnd)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count monthly deliveries")
	}

	accrued := delivered * s.perRate
	return &MonthlyWageSummary{
		AgentID:        agentID,
		MonthStart:     monthStart,
		MonthEnd:       monthEnd,
		DeliveredCount: delivered,
		AccruedCents:   accrued,
		Accrued:        centsToDecimal(accrued),
	}, nil
}

func (s *service) SummaryAll(ctx context.Context) ([]AgentWageSummary, error) {
	ids, err := s.repo.ListAgentIDs(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list agents")
	}

	summaries := make([]AgentWageSummary, 0, len(ids))
	for _, id := range ids {
		summary, err := s.Summary(ctx, id)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

func (s *service) RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.WagePayment, error) {
	if input.AgentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "agent id required")
	}
	if input.AmountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment amount must be positive")
	}
	if input.CreatedByUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity missing")
	}

	payment := &models.WagePayment{
		ID:              uuid.New(),
		AgentUserID:     input.AgentID,
		AmountCents:     input.AmountCents,
		Notes:           input.Notes,
		PaidAt:          time.Now().UTC(),
		CreatedByUserID: input.CreatedByUserID,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		exists, err := repo.AgentExists(ctx, input.AgentID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check agent")
		}
		if !exists {
			return pkgerrors.New(pkgerrors.CodeNotFound, "delivery agent not found")
		}

		if err := repo.InsertPayment(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record payment")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *service) ListPayments(ctx context.Context, agentID uuid.UUID) ([]models.WagePayment, error) {
	if agentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "agent id required")
	}
	payments, err := s.repo.ListPayments(ctx, agentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return payments, nil
}

func centsToDecimal(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}
