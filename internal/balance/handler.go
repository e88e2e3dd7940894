package balance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dritonsh/cimerat/pkg/middleware"
	"github.com/dritonsh/cimerat/pkg/response"
)

// Handler handles HTTP requests for balance queries.
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ForMember)

	return r
}

// ForMember handles GET /balances
// @Summary      Get balances for the current member
// @Description  Outstanding amounts owed by and owed to the current member within the current flat
// @Tags         balances
// @Produce      json
// @Param        X-User-Name header string true "Current member"
// @Param        X-Flat-ID header string true "Current flat ID"
// @Success      200 {object} response.APIResponse{data=Result}
// @Router       /balances [get]
func (h *Handler) ForMember(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())
	flatID, _ := middleware.CurrentFlat(r.Context())

	response.JSON(w, http.StatusOK, h.service.ForMember(flatID, user))
}
