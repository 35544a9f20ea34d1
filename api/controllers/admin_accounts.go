package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nabeel-mp/foodish-backend/api/responses"
	"github.com/nabeel-mp/foodish-backend/api/validators"
	"github.com/nabeel-mp/foodish-backend/internal/accounts"
	"github.com/nabeel-mp/foodish-backend/internal/wages"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
	pkgerrors "github.com/nabeel-mp/foodish-backend/pkg/errors"
	"github.com/nabeel-mp/foodish-backend/pkg/logger"
)

type createExpenseRequest struct {
	Title       string  `json:"title" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	AmountCents int64   `json:"amount_cents" validate:"min=0"`
	Notes       *string `json:"notes"`
	ExpenseDate string  `json:"expense_date"`
}

type payWageRequest struct {
	AgentID     uuid.UUID `json:"agent_id" validate:"required"`
	AmountCents int64     `json:"amount_cents" validate:"gt=0"`
	Notes       *string   `json:"notes"`
}

// AccountsSummary returns the profit and loss aggregate.
func AccountsSummary(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Summarize(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// ListExpenses returns all recorded expenses, newest first.
func ListExpenses(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expenses, err := svc.ListExpenses(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, expenses)
	}
}

// CreateExpense records a manual operating cost entry.
func CreateExpense(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createExpenseRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseExpenseCategory(req.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid expense category"))
			return
		}

		var expenseDate time.Time
		if raw := strings.TrimSpace(req.ExpenseDate); raw != "" {
			expenseDate, err = time.Parse("2006-01-02", raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "expense date must be YYYY-MM-DD"))
				return
			}
		}

		expense, err := svc.CreateExpense(r.Context(), accounts.CreateExpenseInput{
			Title:           req.Title,
			Category:        category,
			AmountCents:     req.AmountCents,
			Notes:           req.Notes,
			ExpenseDate:     expenseDate,
			CreatedByUserID: actorID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, expense)
	}
}

// DeleteExpense removes an expense entry by id.
func DeleteExpense(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(chi.URLParam(r, "expenseId"))
		expenseID, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid expense id"))
			return
		}

		if err := svc.DeleteExpense(r.Context(), expenseID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ListWages returns the settlement position of every agent.
func ListWages(svc wages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := svc.SummaryAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summaries)
	}
}

// ListWagePayments returns the disbursement history for one agent.
func ListWagePayments(svc wages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(chi.URLParam(r, "agentId"))
		agentID, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid agent id"))
			return
		}

		payments, err := svc.ListPayments(r.Context(), agentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payments)
	}
}

// PayWage records a manual wage disbursement.
func PayWage(svc wages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req payWageRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.RecordPayment(r.Context(), wages.RecordPaymentInput{
			AgentID:         req.AgentID,
			AmountCents:     req.AmountCents,
			Notes:           req.Notes,
			CreatedByUserID: actorID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}
