package flat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dritonsh/cimerat/pkg/response"
)

// Handler handles HTTP requests for flat operations.
type Handler struct {
	service *Service
}

// NewHandler creates a new flat handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for flat endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Post("/join", h.Join)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)

	return r
}

// Create handles POST /flats
// @Summary      Create a flat
// @Description  Create a flat with a fixed member list and a fresh join code
// @Tags         flats
// @Accept       json
// @Produce      json
// @Param        request body CreateFlatRequest true "Flat creation request"
// @Success      201 {object} response.APIResponse{data=FlatResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /flats [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFlatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	f, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w, "Failed to create flat")
		return
	}

	response.JSON(w, http.StatusCreated, f.ToResponse())
}

// Join handles POST /flats/join
// @Summary      Join a flat by code
// @Description  Look up a flat by its join code (case-insensitive)
// @Tags         flats
// @Accept       json
// @Produce      json
// @Param        request body JoinFlatRequest true "Join request"
// @Success      200 {object} response.APIResponse{data=FlatResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /flats/join [post]
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	var req JoinFlatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	f, err := h.service.Join(req.Code)
	if err != nil {
		if errors.Is(err, ErrFlatNotFound) {
			response.NotFound(w, "No flat with that code")
			return
		}
		response.InternalError(w, "Failed to join flat")
		return
	}

	response.JSON(w, http.StatusOK, f.ToResponse())
}

// List handles GET /flats
// @Summary      List flats
// @Description  Get all flats, most recent first
// @Tags         flats
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]FlatResponse}
// @Router       /flats [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	flats := h.service.List()

	responses := make([]*FlatResponse, len(flats))
	for i, f := range flats {
		responses[i] = f.ToResponse()
	}

	response.JSON(w, http.StatusOK, responses)
}

// GetByID handles GET /flats/{id}
// @Summary      Get flat by ID
// @Tags         flats
// @Produce      json
// @Param        id path string true "Flat ID"
// @Success      200 {object} response.APIResponse{data=FlatResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /flats/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	f := h.service.Get(chi.URLParam(r, "id"))
	if f == nil {
		response.NotFound(w, "Flat not found")
		return
	}

	response.JSON(w, http.StatusOK, f.ToResponse())
}
