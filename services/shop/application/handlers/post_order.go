package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/storefront/pkg/errhttp"
	"github.com/ghuser/storefront/pkg/httpx"
	pkgvalidator "github.com/ghuser/storefront/pkg/validator"
	appsvcs "github.com/ghuser/storefront/services/shop/application/services"
	"github.com/ghuser/storefront/services/shop/domain/models"
)

// CreateOrderRequest is the request body for POST /orders. One item line
// per order through this endpoint.
type CreateOrderRequest struct {
	MemberID uuid.UUID `json:"member_id" validate:"required" example:"123e4567-e89b-12d3-a456-426614174000"`
	ItemID   uuid.UUID `json:"item_id"   validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Count    int       `json:"count"     validate:"required,gte=1" example:"3"`
} // @name CreateOrderRequest

// CreateOrderResponse is returned on successful order placement.
type CreateOrderResponse struct {
	ID uuid.UUID `json:"id"`
} // @name CreateOrderResponse

// OrderLineResponse is the API shape of one order line.
type OrderLineResponse struct {
	ItemID     uuid.UUID `json:"item_id"`
	ItemName   string    `json:"item_name,omitempty"`
	OrderPrice int64     `json:"order_price"`
	Count      int       `json:"count"`
	TotalPrice int64     `json:"total_price"`
} // @name OrderLineResponse

// OrderResponse is the API shape of one order aggregate.
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	MemberID       uuid.UUID           `json:"member_id"`
	Status         string              `json:"status"`
	OrderedAt      time.Time           `json:"ordered_at"`
	TotalPrice     int64               `json:"total_price"`
	DeliveryStatus string              `json:"delivery_status"`
	City           string              `json:"city"`
	Street         string              `json:"street"`
	Zipcode        string              `json:"zipcode"`
	Items          []OrderLineResponse `json:"items"`
} // @name OrderResponse

// PostOrderHandler handles POST /orders requests.
type PostOrderHandler struct {
	svc *appsvcs.Services
}

// NewPostOrderHandler returns a PostOrderHandler backed by the given services.
func NewPostOrderHandler(svc *appsvcs.Services) *PostOrderHandler {
	return &PostOrderHandler{svc: svc}
}

// Execute places an order.
//
//	@Summary		Place order
//	@Description	Orders count units of one item for a member, decrementing stock
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"Order placement request"
//	@Success		201		{object}	CreateOrderResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/orders [post]
func (h *PostOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateOrderRequest](w, r)
	if !ok {
		return
	}

	id, err := h.svc.Order.Place(r.Context(), req.MemberID, req.ItemID, req.Count)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, CreateOrderResponse{ID: id})
}

func orderToResponse(o *models.Order) OrderResponse {
	items := make([]OrderLineResponse, len(o.Items))
	for i, oi := range o.Items {
		line := OrderLineResponse{
			ItemID:     oi.ItemID,
			OrderPrice: oi.OrderPrice,
			Count:      oi.Count,
			TotalPrice: oi.TotalPrice(),
		}
		if oi.Item != nil {
			line.ItemName = oi.Item.Name.String()
		}
		items[i] = line
	}
	return OrderResponse{
		ID:             o.ID,
		MemberID:       o.MemberID,
		Status:         string(o.Status),
		OrderedAt:      o.OrderedAt,
		TotalPrice:     o.TotalPrice(),
		DeliveryStatus: string(o.Delivery.Status),
		City:           o.Delivery.Address.City,
		Street:         o.Delivery.Address.Street,
		Zipcode:        o.Delivery.Address.Zipcode,
		Items:          items,
	}
}
