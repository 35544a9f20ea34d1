package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabeel-mp/foodish-backend/internal/orders"
	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
	pkgerrors "github.com/nabeel-mp/foodish-backend/pkg/errors"
	"github.com/nabeel-mp/foodish-backend/pkg/logger"
	pkgstripe "github.com/nabeel-mp/foodish-backend/pkg/stripe"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type assigner interface {
	AssignOne(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) (bool, error)
}

type checkoutClient interface {
	CreateCheckoutSession(ctx context.Context, orderID string, items []pkgstripe.CheckoutItem) (*pkgstripe.CheckoutSession, error)
}

// VerifyInput reports the outcome of a hosted checkout back to the order.
// SessionID is optional; when present it must match the session stored at
// placement time.
type VerifyInput struct {
	OrderID     uuid.UUID
	SessionID   string
	Success     bool
	ActorUserID uuid.UUID
}

// PlacedOrder pairs a persisted order with its checkout session handles.
type PlacedOrder struct {
	Order       *models.Order
	SessionID   string
	CheckoutURL string
}

// Service drives the Stripe order placement and verification flow.
type Service interface {
	PlaceStripeOrder(ctx context.Context, input orders.CreateOrderInput) (*PlacedOrder, error)
	Verify(ctx context.Context, input VerifyInput) (*models.Order, error)
}

type service struct {
	ordersSvc orders.Service
	repo      orders.Repository
	tx        txRunner
	engine    assigner
	stripe    checkoutClient
	logg      *logger.Logger
}

// NewService builds a payments service with the required dependencies.
func NewService(ordersSvc orders.Service, repo orders.Repository, tx txRunner, engine assigner, stripe checkoutClient, logg *logger.Logger) (Service, error) {
	if ordersSvc == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if engine == nil {
		return nil, fmt.Errorf("assignment engine required")
	}
	if stripe == nil {
		return nil, fmt.Errorf("stripe client required")
	}
	return &service{ordersSvc: ordersSvc, repo: repo, tx: tx, engine: engine, stripe: stripe, logg: logg}, nil
}

// PlaceStripeOrder persists an unpaid order and opens a checkout session for
// it. The order stays pending and unassigned until Verify confirms payment.
func (s *service) PlaceStripeOrder(ctx context.Context, input orders.CreateOrderInput) (*PlacedOrder, error) {
	input.PaymentMethod = enums.PaymentMethodStripe

	order, err := s.ordersSvc.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	items := make([]pkgstripe.CheckoutItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, pkgstripe.CheckoutItem{
			Title:          item.Title,
			UnitPriceCents: item.UnitPriceCents,
			Qty:            item.Qty,
		})
	}

	session, err := s.stripe.CreateCheckoutSession(ctx, order.ID.String(), items)
	if err != nil {
		// Without a session the order can never be paid. Remove it so the
		// customer can retry cleanly.
		if delErr := s.repo.HardDelete(ctx, order.ID); delErr != nil && s.logg != nil {
			s.logg.Error(ctx, "rollback order after checkout failure", delErr)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open checkout session")
	}

	if err := s.repo.UpdatePaymentSession(ctx, order.ID, session.ID); err != nil {
		// An order without its session reference can never be verified.
		// Remove it like the session-creation failure above.
		if delErr := s.repo.HardDelete(ctx, order.ID); delErr != nil && s.logg != nil {
			s.logg.Error(ctx, "rollback order after session store failure", delErr)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store checkout session")
	}

	return &PlacedOrder{Order: order, SessionID: session.ID, CheckoutURL: session.URL}, nil
}

// Verify settles a Stripe order. Success marks it paid and tries to hand it
// to an agent; failure removes the order and frees any agent it held.
func (s *service) Verify(ctx context.Context, input VerifyInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var deleted bool
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.UserID != input.ActorUserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to user")
		}
		if order.PaymentMethod != enums.PaymentMethodStripe {
			return pkgerrors.New(pkgerrors.CodeValidation, "order is not a stripe order")
		}
		if input.SessionID != "" && order.PaymentSessionID != nil && *order.PaymentSessionID != input.SessionID {
			return pkgerrors.New(pkgerrors.CodeValidation, "session does not match order")
		}

		if !input.Success {
			// Delete before releasing: while the order still exists it counts
			// as in-flight work and ReleaseAgentIfIdle would refuse to free
			// the agent.
			if err := repo.HardDelete(ctx, order.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove unpaid order")
			}
			if order.DeliveryBoyID != nil {
				if err := repo.ReleaseAgentIfIdle(ctx, *order.DeliveryBoyID); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release agent")
				}
			}
			deleted = true
			return nil
		}

		// Re-verifying a paid order is a no-op so retries stay safe.
		if !order.PaymentStatus {
			if err := repo.MarkPaid(ctx, order.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark order paid")
			}
		}
		if order.DeliveryBoyID == nil {
			if _, err := s.engine.AssignOne(ctx, tx, order.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if deleted {
		return nil, nil
	}

	order, err := s.repo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}
