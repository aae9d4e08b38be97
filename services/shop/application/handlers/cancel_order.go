package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/storefront/pkg/errhttp"
	"github.com/ghuser/storefront/pkg/httpx"
	appsvcs "github.com/ghuser/storefront/services/shop/application/services"
)

// CancelOrderHandler handles POST /orders/{id}/cancel requests.
type CancelOrderHandler struct {
	svc *appsvcs.Services
}

// NewCancelOrderHandler returns a CancelOrderHandler backed by the given services.
func NewCancelOrderHandler(svc *appsvcs.Services) *CancelOrderHandler {
	return &CancelOrderHandler{svc: svc}
}

// Execute cancels an order and restores its lines' stock.
//
//	@Summary		Cancel order
//	@Description	Cancels an order unless its delivery already completed
//	@Tags			orders
//	@Produce		json
//	@Param			id	path		string	true	"Order ID"
//	@Success		200	{object}	OrderResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/orders/{id}/cancel [post]
func (h *CancelOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := h.svc.Order.Cancel(r.Context(), id); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	order, err := h.svc.Order.FindOne(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orderToResponse(order))
}
