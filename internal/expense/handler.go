package expense

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dritonsh/cimerat/pkg/middleware"
	"github.com/dritonsh/cimerat/pkg/response"
)

// Handler handles HTTP requests for expense operations.
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)

	// Share lifecycle
	r.Post("/{id}/claim", h.ClaimPaid)
	r.Post("/{id}/confirm", h.ConfirmPayments)

	return r
}

// Create handles POST /expenses
// @Summary      Create an expense
// @Description  Split an amount evenly among the included members; the payer absorbs the rounding remainder
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        X-User-Name header string true "Current member (the payer)"
// @Param        X-Flat-ID header string true "Current flat ID"
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())
	flatID, _ := middleware.CurrentFlat(r.Context())

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	exp, err := h.service.Create(r.Context(), flatID, user, &req)
	if err != nil {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			response.ValidationFailed(w, verrs.Fields())
			return
		}
		response.InternalError(w, "Failed to create expense")
		return
	}

	response.JSON(w, http.StatusCreated, exp.ToResponse())
}

// List handles GET /expenses
// @Summary      List expenses
// @Description  Get the expenses of the current flat, most recent first
// @Tags         expenses
// @Produce      json
// @Param        X-Flat-ID header string true "Current flat ID"
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Router       /expenses [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	flatID, ok := middleware.CurrentFlat(r.Context())
	if !ok {
		response.JSON(w, http.StatusOK, []*ExpenseResponse{})
		return
	}

	expenses := h.service.List(flatID)

	responses := make([]*ExpenseResponse, len(expenses))
	for i, exp := range expenses {
		responses[i] = exp.ToResponse()
	}

	response.JSON(w, http.StatusOK, responses)
}

// GetByID handles GET /expenses/{id}
// @Summary      Get expense by ID
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	exp, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w, "Expense not found")
		return
	}

	response.JSON(w, http.StatusOK, exp.ToResponse())
}

// ClaimPaid handles POST /expenses/{id}/claim
// @Summary      Claim a share as paid
// @Description  The current member self-reports having paid their pending share; safe to call redundantly
// @Tags         expenses
// @Produce      json
// @Param        X-User-Name header string true "Current member"
// @Param        id path string true "Expense ID"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id}/claim [post]
func (h *Handler) ClaimPaid(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())

	exp, err := h.service.ClaimPaid(r.Context(), chi.URLParam(r, "id"), user)
	if err != nil {
		response.NotFound(w, "Expense not found")
		return
	}

	response.JSON(w, http.StatusOK, exp.ToResponse())
}

// ConfirmPayments handles POST /expenses/{id}/confirm
// @Summary      Confirm claimed payments
// @Description  The payer confirms every claimed share on the expense in one batch
// @Tags         expenses
// @Produce      json
// @Param        X-User-Name header string true "Current member (must be the payer)"
// @Param        id path string true "Expense ID"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id}/confirm [post]
func (h *Handler) ConfirmPayments(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r.Context())

	exp, err := h.service.ConfirmPayments(r.Context(), chi.URLParam(r, "id"), user)
	if err != nil {
		if errors.Is(err, ErrNotPayer) {
			response.Forbidden(w, err.Error())
			return
		}
		response.NotFound(w, "Expense not found")
		return
	}

	response.JSON(w, http.StatusOK, exp.ToResponse())
}
