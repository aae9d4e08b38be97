package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/storefront/pkg/errhttp"
	"github.com/ghuser/storefront/pkg/httpx"
	appsvcs "github.com/ghuser/storefront/services/shop/application/services"
	"github.com/ghuser/storefront/services/shop/domain/models"
)

// GetOrdersHandler handles GET /orders and GET /orders/{id}.
type GetOrdersHandler struct {
	svc *appsvcs.Services
}

// NewGetOrdersHandler returns a GetOrdersHandler backed by the given services.
func NewGetOrdersHandler(svc *appsvcs.Services) *GetOrdersHandler {
	return &GetOrdersHandler{svc: svc}
}

// Search lists orders matching the optional filters.
//
//	@Summary		Search orders
//	@Description	Filters by order status and member-name substring; results cap at 1000
//	@Tags			orders
//	@Produce		json
//	@Param			status		query		string	false	"Order status"	Enums(ORDER, CANCEL)
//	@Param			member_name	query		string	false	"Member name substring (case sensitive)"
//	@Success		200			{array}		OrderResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/orders [get]
func (h *GetOrdersHandler) Search(w http.ResponseWriter, r *http.Request) {
	var search models.OrderSearch

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.OrderStatus(raw)
		if status != models.OrderStatusOrder && status != models.OrderStatusCancel {
			httpx.JSONError(w, http.StatusBadRequest, "status must be ORDER or CANCEL")
			return
		}
		search.Status = &status
	}
	search.MemberName = r.URL.Query().Get("member_name")

	orders, err := h.svc.Order.Search(r.Context(), search)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := make([]OrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = orderToResponse(o)
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Get returns one order aggregate by ID.
//
//	@Summary	Get order
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	OrderResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/orders/{id} [get]
func (h *GetOrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.svc.Order.FindOne(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orderToResponse(order))
}
