package activity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dritonsh/cimerat/pkg/middleware"
	"github.com/dritonsh/cimerat/pkg/response"
)

// Handler handles HTTP requests for the activity feed.
type Handler struct {
	service *Service
}

// NewHandler creates a new activity handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for activity endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	return r
}

// List handles GET /activity
// @Summary      List activity events
// @Description  Get the activity feed for the current flat, most recent first
// @Tags         activity
// @Produce      json
// @Param        X-Flat-ID header string true "Current flat ID"
// @Success      200 {object} response.APIResponse{data=[]EventResponse}
// @Router       /activity [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	flatID, ok := middleware.CurrentFlat(r.Context())
	if !ok {
		response.JSON(w, http.StatusOK, []EventResponse{})
		return
	}

	events := h.service.List(flatID)

	responses := make([]EventResponse, len(events))
	for i, event := range events {
		responses[i] = event.ToResponse()
	}

	response.JSON(w, http.StatusOK, responses)
}
