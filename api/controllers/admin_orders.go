package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/nabeel-mp/foodish-backend/api/responses"
	"github.com/nabeel-mp/foodish-backend/api/validators"
	"github.com/nabeel-mp/foodish-backend/internal/orders"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
	pkgerrors "github.com/nabeel-mp/foodish-backend/pkg/errors"
	"github.com/nabeel-mp/foodish-backend/pkg/logger"
	"github.com/nabeel-mp/foodish-backend/pkg/pagination"
)

type sweepRunner interface {
	SweepPending(ctx context.Context) (int, error)
}

// AdminListOrders returns a paginated view over every order.
func AdminListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cursor := strings.TrimSpace(r.URL.Query().Get("cursor"))

		filters := orders.AdminOrderFilters{}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			filters.Status = &status
		}

		list, err := svc.ListAll(r.Context(), pagination.Params{Limit: limit, Cursor: cursor}, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AdminTriggerSweep runs the pending-order sweep on demand.
func AdminTriggerSweep(engine sweepRunner, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignment engine unavailable"))
			return
		}

		assigned, err := engine.SweepPending(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sweep pending orders"))
			return
		}
		responses.WriteSuccess(w, map[string]int{"assigned": assigned})
	}
}
