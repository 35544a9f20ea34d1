package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nabeel-mp/foodish-backend/api/middleware"
	internalorders "github.com/nabeel-mp/foodish-backend/internal/orders"
	"github.com/nabeel-mp/foodish-backend/pkg/db/models"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
	pkgerrors "github.com/nabeel-mp/foodish-backend/pkg/errors"
	"github.com/nabeel-mp/foodish-backend/pkg/pagination"
)

type stubOrderService struct {
	createFn func(ctx context.Context, input internalorders.CreateOrderInput) (*models.Order, error)
	cancelFn func(ctx context.Context, orderID, actorUserID uuid.UUID) error
	listFn   func(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

func (s stubOrderService) Create(ctx context.Context, input internalorders.CreateOrderInput) (*models.Order, error) {
	if s.createFn != nil {
		return s.createFn(ctx, input)
	}
	return &models.Order{ID: uuid.New()}, nil
}

func (s stubOrderService) Cancel(ctx context.Context, orderID, actorUserID uuid.UUID) error {
	if s.cancelFn != nil {
		return s.cancelFn(ctx, orderID, actorUserID)
	}
	return nil
}

func (s stubOrderService) UpdateDeliveryStatus(ctx context.Context, input internalorders.DeliveryStatusInput) (*models.Order, error) {
	panic("not implemented")
}

func (s stubOrderService) GetForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	panic("not implemented")
}

func (s stubOrderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	if s.listFn != nil {
		return s.listFn(ctx, userID)
	}
	return nil, nil
}

func (s stubOrderService) ListAssigned(ctx context.Context, agentID uuid.UUID) ([]models.Order, error) {
	panic("not implemented")
}

func (s stubOrderService) CurrentForAgent(ctx context.Context, agentID uuid.UUID) (*models.Order, error) {
	panic("not implemented")
}

func (s stubOrderService) HistoryForAgent(ctx context.Context, agentID uuid.UUID) ([]models.Order, error) {
	panic("not implemented")
}

func (s stubOrderService) ListAll(ctx context.Context, params pagination.Params, filters internalorders.AdminOrderFilters) (*internalorders.OrderList, error) {
	panic("not implemented")
}

func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
}

func withOrderID(req *http.Request, orderID uuid.UUID) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderId", orderID.String())
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCreateOrderReturnsCreated(t *testing.T) {
	userID := uuid.New()
	svc := stubOrderService{
		createFn: func(ctx context.Context, input internalorders.CreateOrderInput) (*models.Order, error) {
			if input.UserID != userID {
				t.Fatalf("unexpected user id %s", input.UserID)
			}
			if input.PaymentMethod != enums.PaymentMethodCOD {
				t.Fatalf("unexpected payment method %s", input.PaymentMethod)
			}
			return &models.Order{ID: uuid.New(), UserID: userID, TotalCents: input.TotalCents}, nil
		},
	}

	payload, _ := json.Marshal(map[string]any{
		"name":           "Asha",
		"address":        "4 Market Road",
		"phone":          "9876543210",
		"payment_method": "cod",
		"total_cents":    3000,
		"items": []map[string]any{
			{"title": "Biriyani", "unit_price_cents": 1500, "qty": 2},
		},
	})

	handler := CreateOrder(svc, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/", payload, userID))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateOrderRequiresAuth(t *testing.T) {
	handler := CreateOrder(stubOrderService{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{}")))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCreateOrderRejectsStripeMethod(t *testing.T) {
	payload, _ := json.Marshal(map[string]any{
		"name":           "Asha",
		"address":        "4 Market Road",
		"phone":          "9876543210",
		"payment_method": "stripe",
		"total_cents":    3000,
		"items": []map[string]any{
			{"title": "Biriyani", "unit_price_cents": 1500, "qty": 2},
		},
	})

	handler := CreateOrder(stubOrderService{}, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/", payload, uuid.New()))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("stripe orders must use the place-stripe route, got %d", resp.Code)
	}
}

func TestCancelOrderMapsStateConflict(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	svc := stubOrderService{
		cancelFn: func(ctx context.Context, id, actor uuid.UUID) error {
			if id != orderID || actor != userID {
				t.Fatalf("unexpected args %s %s", id, actor)
			}
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order can no longer be cancelled")
		},
	}

	handler := CancelOrder(svc, nil)
	resp := httptest.NewRecorder()
	req := withOrderID(authedRequest(http.MethodPut, "/", nil, userID), orderID)
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestListMyOrdersReturnsEnvelope(t *testing.T) {
	userID := uuid.New()
	svc := stubOrderService{
		listFn: func(ctx context.Context, id uuid.UUID) ([]models.Order, error) {
			return []models.Order{{ID: uuid.New(), UserID: id}}, nil
		},
	}

	handler := ListMyOrders(svc, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/", nil, userID))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data []models.Order `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected one order, got %d", len(envelope.Data))
	}
}
