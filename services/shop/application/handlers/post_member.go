package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/storefront/pkg/errhttp"
	"github.com/ghuser/storefront/pkg/httpx"
	pkgvalidator "github.com/ghuser/storefront/pkg/validator"
	appsvcs "github.com/ghuser/storefront/services/shop/application/services"
	"github.com/ghuser/storefront/services/shop/domain/models"
)

// CreateMemberRequest is the request body for POST /members.
// All fields are required; the domain assumes well-formed non-empty strings.
type CreateMemberRequest struct {
	Name    string `json:"name"    validate:"required,max=255" example:"kim"`
	City    string `json:"city"    validate:"required,max=255" example:"Seoul"`
	Street  string `json:"street"  validate:"required,max=255" example:"Gangnam-daero 1"`
	Zipcode string `json:"zipcode" validate:"required,max=32"  example:"06000"`
} // @name CreateMemberRequest

// CreateMemberResponse is returned on successful registration.
type CreateMemberResponse struct {
	ID uuid.UUID `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
} // @name CreateMemberResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"member name already taken"`
} // @name ErrorResponse

// PostMemberHandler handles POST /members requests.
type PostMemberHandler struct {
	svc *appsvcs.Services
}

// NewPostMemberHandler returns a PostMemberHandler backed by the given services.
func NewPostMemberHandler(svc *appsvcs.Services) *PostMemberHandler {
	return &PostMemberHandler{svc: svc}
}

// Execute registers a new member.
//
//	@Summary		Join member
//	@Description	Registers a new member with a unique name
//	@Tags			members
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateMemberRequest	true	"Member registration request"
//	@Success		201		{object}	CreateMemberResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/members [post]
func (h *PostMemberHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateMemberRequest](w, r)
	if !ok {
		return
	}

	address, err := models.NewAddress(req.City, req.Street, req.Zipcode)
	if err != nil {
		httpx.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := h.svc.Member.Join(r.Context(), req.Name, address)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, CreateMemberResponse{ID: id})
}
