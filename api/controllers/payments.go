package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nabeel-mp/foodish-backend/api/responses"
	"github.com/nabeel-mp/foodish-backend/api/validators"
	"github.com/nabeel-mp/foodish-backend/internal/payments"
	"github.com/nabeel-mp/foodish-backend/pkg/enums"
	"github.com/nabeel-mp/foodish-backend/pkg/logger"
)

type placeStripeOrderRequest struct {
	Name       string             `json:"name" validate:"required"`
	Address    string             `json:"address" validate:"required"`
	Phone      string             `json:"phone" validate:"required"`
	TotalCents int64              `json:"total_cents" validate:"min=0"`
	Items      []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type verifyPaymentRequest struct {
	OrderID   uuid.UUID `json:"order_id" validate:"required"`
	SessionID string    `json:"session_id"`
	Success   bool      `json:"success"`
}

// PlaceStripeOrder creates an unpaid order and opens a checkout session.
func PlaceStripeOrder(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req placeStripeOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		placed, err := svc.PlaceStripeOrder(r.Context(), buildCreateInput(userID, createOrderRequest{
			Name:       req.Name,
			Address:    req.Address,
			Phone:      req.Phone,
			TotalCents: req.TotalCents,
			Items:      req.Items,
		}, enums.PaymentMethodStripe))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"order":        placed.Order,
			"session_id":   placed.SessionID,
			"checkout_url": placed.CheckoutURL,
		})
	}
}

// VerifyPayment settles the checkout outcome for a stripe order.
func VerifyPayment(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req verifyPaymentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Verify(r.Context(), payments.VerifyInput{
			OrderID:     req.OrderID,
			SessionID:   req.SessionID,
			Success:     req.Success,
			ActorUserID: userID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if order == nil {
			responses.WriteSuccess(w, map[string]string{"status": "payment_failed_order_removed"})
			return
		}
		responses.WriteSuccess(w, order)
	}
}
