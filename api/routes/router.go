package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nabeel-mp/foodish-backend/api/controllers"
	"github.com/nabeel-mp/foodish-backend/api/middleware"
	"github.com/nabeel-mp/foodish-backend/internal/accounts"
	"github.com/nabeel-mp/foodish-backend/internal/agents"
	"github.com/nabeel-mp/foodish-backend/internal/orders"
	"github.com/nabeel-mp/foodish-backend/internal/payments"
	"github.com/nabeel-mp/foodish-backend/internal/wages"
	"github.com/nabeel-mp/foodish-backend/pkg/config"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
	"github.com/nabeel-mp/foodish-backend/pkg/logger"
	pkgredis "github.com/nabeel-mp/foodish-backend/pkg/redis"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type sweepRunner interface {
	SweepPending(ctx context.Context) (int, error)
}

// RouterParams carry everything the HTTP surface depends on.
type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          pinger
	Redis       *pkgredis.Client
	Orders      orders.Service
	Payments    payments.Service
	Wages       wages.Service
	Accounts    accounts.Service
	Agents      agents.Service
	SweepEngine sweepRunner
}

// NewRouter builds the chi route tree with the full middleware stack.
func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, params.DB, params.Redis, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(params.Redis, logg))

		r.Route("/v1/orders", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleCustomer), logg))
			r.Post("/", controllers.CreateOrder(params.Orders, logg))
			r.Get("/", controllers.ListMyOrders(params.Orders, logg))
			r.Post("/place-stripe", controllers.PlaceStripeOrder(params.Payments, logg))
			r.Post("/verify", controllers.VerifyPayment(params.Payments, logg))
			r.Get("/{orderId}", controllers.GetMyOrder(params.Orders, logg))
			r.Put("/{orderId}/cancel", controllers.CancelOrder(params.Orders, logg))
		})

		r.Route("/v1/delivery", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleDelivery), logg))
			r.Get("/assigned-orders", controllers.AssignedOrders(params.Orders, logg))
			r.Get("/my-order", controllers.MyOrder(params.Orders, logg))
			r.Get("/order-history", controllers.OrderHistory(params.Orders, logg))
			r.Get("/salary-summary", controllers.SalarySummary(params.Wages, logg))
			r.Put("/order/{orderId}/status", controllers.UpdateDeliveryStatus(params.Orders, logg))
			r.Put("/presence", controllers.UpdateAgentPresence(params.Agents, logg))
			r.Put("/availability", controllers.UpdateAgentAvailability(params.Agents, logg))
		})

		r.Route("/admin/v1", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminListOrders(params.Orders, logg))
				r.Post("/sweep", controllers.AdminTriggerSweep(params.SweepEngine, logg))
			})

			r.Route("/accounts", func(r chi.Router) {
				r.Get("/summary", controllers.AccountsSummary(params.Accounts, logg))
				r.Get("/expenses", controllers.ListExpenses(params.Accounts, logg))
				r.Post("/expenses", controllers.CreateExpense(params.Accounts, logg))
				r.Delete("/expenses/{expenseId}", controllers.DeleteExpense(params.Accounts, logg))
				r.Get("/wages", controllers.ListWages(params.Wages, logg))
				r.Get("/wages/{agentId}/payments", controllers.ListWagePayments(params.Wages, logg))
				r.Post("/wages/pay", controllers.PayWage(params.Wages, logg))
			})

			r.Route("/agents", func(r chi.Router) {
				r.Post("/", controllers.CreateAgent(params.Agents, logg))
				r.Get("/", controllers.ListAgents(params.Agents, logg))
				r.Patch("/{agentId}/status", controllers.UpdateAgentStatus(params.Agents, logg))
			})
		})
	})

	return r
}
