package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
	pkgerrors "github.com/nabeel-mp/foodish-backend/pkg/errors"
	"github.com/nabeel-mp/foodish-backend/pkg/logger"
	"github.com/nabeel-mp/foodish-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type assigner interface {
	AssignOne(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) (bool, error)
	SweepPending(ctx context.Context) (int, error)
}

// Service defines the order lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	Cancel(ctx context.Context, orderID, actorUserID uuid.UUID) error
	UpdateDeliveryStatus(ctx context.Context, input DeliveryStatusInput) (*models.Order, error)
	GetForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	ListAssigned(ctx context.Context, agentID uuid.UUID) ([]models.Order, error)
	CurrentForAgent(ctx context.Context, agentID uuid.UUID) (*models.Order, error)
	HistoryForAgent(ctx context.Context, agentID uuid.UUID) ([]models.Order, error)
	ListAll(ctx context.Context, params pagination.Params, filters AdminOrderFilters) (*OrderList, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	engine assigner
	logg   *logger.Logger
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner, engine assigner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if engine == nil {
		return nil, fmt.Errorf("assignment engine required")
	}
	return &service{repo: repo, tx: tx, engine: engine, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one item")
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	var computedTotal int64
	for _, item := range input.Items {
		if item.Qty < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1").
				WithDetails(map[string]any{"title": item.Title})
		}
		if item.UnitPriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item price cannot be negative").
				WithDetails(map[string]any{"title": item.Title})
		}
		lineTotal := item.UnitPriceCents * int64(item.Qty)
		computedTotal += lineTotal
		items = append(items, models.OrderItem{
			ID:             uuid.New(),
			ProductID:      item.ProductID,
			Title:          item.Title,
			UnitPriceCents: item.UnitPriceCents,
			Qty:            item.Qty,
			TotalCents:     lineTotal,
		})
	}

	// Totals are authoritative server-side. A client total that disagrees is
	// rejected rather than silently corrected.
	if input.TotalCents != computedTotal {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order total does not match items").
			WithDetails(map[string]any{"expected_cents": computedTotal, "received_cents": input.TotalCents})
	}

	order := &models.Order{
		ID:            uuid.New(),
		UserID:        input.UserID,
		Name:          input.Name,
		Address:       input.Address,
		Phone:         input.Phone,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: false,
		Status:        enums.OrderStatusPending,
		TotalCents:    computedTotal,
		Items:         items,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
		}
		if !input.PaymentMethod.RequiresConfirmation() {
			if _, err := s.engine.AssignOne(ctx, tx, order.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadOrder(ctx, order.ID)
}

func (s *service) Cancel(ctx context.Context, orderID, actorUserID uuid.UUID) error {
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if actorUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.UserID != actorUserID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to user")
		}
		if order.Status != enums.OrderStatusPending && order.Status != enums.OrderStatusAssigned {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order can no longer be cancelled").
				WithDetails(map[string]any{"status": order.Status})
		}

		cancelled, err := repo.CancelOrder(ctx, orderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel order")
		}
		if !cancelled {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order can no longer be cancelled")
		}

		if order.DeliveryBoyID != nil {
			if err := repo.ReleaseAgentIfIdle(ctx, *order.DeliveryBoyID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release agent")
			}
		}
		return nil
	})
}

func (s *service) UpdateDeliveryStatus(ctx context.Context, input DeliveryStatusInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.AgentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "agent identity missing")
	}

	var from enums.OrderStatus
	var markDelivered bool
	switch input.Target {
	case enums.OrderStatusShipped:
		from = enums.OrderStatusAssigned
	case enums.OrderStatusDelivered:
		from = enums.OrderStatusShipped
		markDelivered = true
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be shipped or delivered")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.DeliveryBoyID == nil || *order.DeliveryBoyID != input.AgentID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order is not assigned to this agent")
		}
		if order.Status != from {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "transition not allowed from current state").
				WithDetails(map[string]any{"status": order.Status, "target": input.Target})
		}

		moved, err := repo.TransitionStatus(ctx, input.OrderID, from, input.Target, markDelivered)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		if !moved {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "transition not allowed from current state")
		}

		if markDelivered {
			if err := repo.ReleaseAgentIfIdle(ctx, input.AgentID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release agent")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// A freed agent may unblock queued orders. Failures here never fail the
	// delivery confirmation.
	if markDelivered {
		if _, sweepErr := s.engine.SweepPending(ctx); sweepErr != nil && s.logg != nil {
			s.logg.Error(ctx, "post-delivery sweep failed", sweepErr)
		}
	}

	return s.loadOrder(ctx, input.OrderID)
}

func (s *service) GetForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to user")
	}
	return order, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}

func (s *service) ListAssigned(ctx context.Context, agentID uuid.UUID) ([]models.Order, error) {
	if agentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "agent identity missing")
	}
	orders, err := s.repo.ListActiveByAgent(ctx, agentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assigned orders")
	}
	return orders, nil
}

func (s *service) CurrentForAgent(ctx context.Context, agentID uuid.UUID) (*models.Order, error) {
	orders, err := s.ListAssigned(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active order")
	}
	return &orders[0], nil
}

func (s *service) HistoryForAgent(ctx context.Context, agentID uuid.UUID) ([]models.Order, error) {
	if agentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "agent identity missing")
	}
	orders, err := s.repo.ListDeliveredByAgent(ctx, agentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list delivered orders")
	}
	return orders, nil
}

func (s *service) ListAll(ctx context.Context, params pagination.Params, filters AdminOrderFilters) (*OrderList, error) {
	list, err := s.repo.ListAll(ctx, params, filters)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

func (s *service) loadOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}
