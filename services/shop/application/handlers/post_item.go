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

// CreateItemRequest is the request body for POST /items. Kind selects the
// product variant; only the attrs for that kind are read.
type CreateItemRequest struct {
	Kind  string `json:"kind"  validate:"required,oneof=book album movie" example:"book"`
	Name  string `json:"name"  validate:"required,min=1,max=255"          example:"JPA Programming"`
	Price int64  `json:"price" validate:"gte=0"                           example:"10000"`
	Stock int    `json:"stock" validate:"gte=0"                           example:"100"`

	Author   string `json:"author,omitempty"   example:"kim"`
	ISBN     string `json:"isbn,omitempty"     example:"9788960777330"`
	Artist   string `json:"artist,omitempty"`
	Label    string `json:"label,omitempty"`
	Director string `json:"director,omitempty"`
	Actor    string `json:"actor,omitempty"`
} // @name CreateItemRequest

// ItemResponse is the API shape of one catalog item.
type ItemResponse struct {
	ID            uuid.UUID        `json:"id"`
	Kind          string           `json:"kind"`
	Name          string           `json:"name"`
	Price         int64            `json:"price"`
	StockQuantity int              `json:"stock_quantity"`
	Attrs         models.ItemAttrs `json:"attrs"`
	CreatedAt     time.Time        `json:"created_at"`
} // @name ItemResponse

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute creates a new catalog item.
//
//	@Summary		Create item
//	@Description	Creates a new catalog item of the given kind
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item creation request"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Item.Create(r.Context(), appsvcs.CreateParams{
		Kind:  models.ItemKind(req.Kind),
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
		Attrs: models.ItemAttrs{
			Author:   req.Author,
			ISBN:     req.ISBN,
			Artist:   req.Artist,
			Label:    req.Label,
			Director: req.Director,
			Actor:    req.Actor,
		},
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, itemToResponse(item))
}

func itemToResponse(it *models.Item) ItemResponse {
	return ItemResponse{
		ID:            it.ID,
		Kind:          string(it.Kind),
		Name:          it.Name.String(),
		Price:         it.Price,
		StockQuantity: it.StockQuantity,
		Attrs:         it.Attrs,
		CreatedAt:     it.CreatedAt,
	}
}
