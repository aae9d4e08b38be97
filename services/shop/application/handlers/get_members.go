package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/storefront/pkg/errhttp"
	"github.com/ghuser/storefront/pkg/httpx"
	appsvcs "github.com/ghuser/storefront/services/shop/application/services"
	"github.com/ghuser/storefront/services/shop/domain/models"
)

// MemberResponse is the API shape of one member.
type MemberResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Street    string    `json:"street"`
	Zipcode   string    `json:"zipcode"`
	CreatedAt time.Time `json:"created_at"`
} // @name MemberResponse

// GetMembersHandler handles GET /members requests.
type GetMembersHandler struct {
	svc *appsvcs.Services
}

// NewGetMembersHandler returns a GetMembersHandler backed by the given services.
func NewGetMembersHandler(svc *appsvcs.Services) *GetMembersHandler {
	return &GetMembersHandler{svc: svc}
}

// Execute lists every member.
//
//	@Summary	List members
//	@Tags		members
//	@Produce	json
//	@Success	200	{array}		MemberResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/members [get]
func (h *GetMembersHandler) Execute(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.Member.FindMembers(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := make([]MemberResponse, len(members))
	for i, m := range members {
		resp[i] = memberToResponse(m)
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func memberToResponse(m *models.Member) MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		Name:      m.Name,
		City:      m.Address.City,
		Street:    m.Address.Street,
		Zipcode:   m.Address.Zipcode,
		CreatedAt: m.CreatedAt,
	}
}
