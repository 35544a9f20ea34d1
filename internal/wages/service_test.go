package wages

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabeel-mp/foodish-backend/pkg/config"
	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
	pkgerrors "github.com/nabeel-mp/foodish-backend/pkg/errors"
)

type stubWagesRepo struct {
	agentExists    bool
	delivered      int64
	monthDelivered int64
	paid           int64
	inserted       *models.WagePayment
}

func (s *stubWagesRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubWagesRepo) AgentExists(ctx context.Context, agentID uuid.UUID) (bool, error) {
	return s.agentExists, nil
}

func (s *stubWagesRepo) CountDelivered(ctx context.Context, agentID uuid.UUID) (int64, error) {
	return s.delivered, nil
}

func (s *stubWagesRepo) CountDeliveredBetween(ctx context.Context, agentID uuid.UUID, from, to time.Time) (int64, error) {
	return s.monthDelivered, nil
}

func (s *stubWagesRepo) SumPayments(ctx context.Context, agentID uuid.UUID) (int64, error) {
	return s.paid, nil
}

func (s *stubWagesRepo) InsertPayment(ctx context.Context, payment *models.WagePayment) error {
	s.inserted = payment
	return nil
}

func (s *stubWagesRepo) ListPayments(ctx context.Context, agentID uuid.UUID) ([]models.WagePayment, error) {
	return nil, nil
}

func (s *stubWagesRepo) ListAgentIDs(ctx context.Context) ([]uuid.UUID, error) {
	return []uuid.UUID{uuid.New()}, nil
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newWageService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, stubTx{}, config.WagesConfig{PerDeliveryCents: 2500}, nil)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestSummaryWageMath(t *testing.T) {
	repo := &stubWagesRepo{delivered: 4, paid: 6000}
	svc := newWageService(t, repo)

	summary, err := svc.Summary(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.AccruedCents != 10000 {
		t.Fatalf("accrued = %d, want 10000", summary.AccruedCents)
	}
	if summary.PayableCents != 4000 {
		t.Fatalf("payable = %d, want 4000", summary.PayableCents)
	}
	if summary.Overpaid {
		t.Fatal("positive payable is not an overpayment")
	}
	if summary.Payable.String() != "40" {
		t.Fatalf("payable decimal = %s, want 40", summary.Payable)
	}
}

func TestSummarySurfacesOverpayment(t *testing.T) {
	repo := &stubWagesRepo{delivered: 1, paid: 5000}
	svc := newWageService(t, repo)

	summary, err := svc.Summary(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.PayableCents != -2500 || !summary.Overpaid {
		t.Fatalf("expected overpayment of 2500 cents, got %+v", summary)
	}
}

func TestMonthlySummaryUsesMonthWindow(t *testing.T) {
	repo := &stubWagesRepo{monthDelivered: 3}
	svc := newWageService(t, repo)

	summary, err := svc.MonthlySummary(context.Background(), uuid.New(), time.Time{})
	if err != nil {
		t.Fatalf("monthly summary: %v", err)
	}
	if summary.AccruedCents != 7500 {
		t.Fatalf("accrued = %d, want 7500", summary.AccruedCents)
	}
	if summary.MonthStart.Day() != 1 {
		t.Fatalf("month window must start on day 1, got %s", summary.MonthStart)
	}
	if !summary.MonthEnd.After(summary.MonthStart) {
		t.Fatal("month window must be non-empty")
	}

	anchor := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	anchored, err := svc.MonthlySummary(context.Background(), uuid.New(), anchor)
	if err != nil {
		t.Fatalf("anchored monthly summary: %v", err)
	}
	if anchored.MonthStart.Month() != time.March || anchored.MonthStart.Day() != 1 {
		t.Fatalf("anchored window must start March 1, got %s", anchored.MonthStart)
	}
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	svc := newWageService(t, &stubWagesRepo{agentExists: true})

	_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		AgentID:         uuid.New(),
		AmountCents:     0,
		CreatedByUserID: uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRecordPaymentRejectsUnknownAgent(t *testing.T) {
	svc := newWageService(t, &stubWagesRepo{agentExists: false})

	_, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		AgentID:         uuid.New(),
		AmountCents:     2500,
		CreatedByUserID: uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRecordPaymentInsertsLedgerRow(t *testing.T) {
	repo := &stubWagesRepo{agentExists: true}
	svc := newWageService(t, repo)

	agentID := uuid.New()
	payment, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		AgentID:         agentID,
		AmountCents:     2500,
		CreatedByUserID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if repo.inserted == nil || repo.inserted.AgentUserID != agentID || repo.inserted.AmountCents != 2500 {
		t.Fatalf("unexpected ledger row %+v", repo.inserted)
	}
	if payment.PaidAt.IsZero() {
		t.Fatal("paid_at must be stamped")
	}
}
