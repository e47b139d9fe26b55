package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/conkccc/studio-sub000/internal/expense/split"
	"github.com/conkccc/studio-sub000/pkg/response"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Get("/meetings/{meetingId}", h.ListByMeeting)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /expenses
// @Summary      Record a new expense
// @Description  Record an expense with an EQUAL or CUSTOM split; the split must reconcile before anything is stored
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Router       /expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.TotalAmount <= 0 {
		response.BadRequest(w, "Total amount must be positive")
		return
	}

	result, err := h.service.CreateExpense(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidID):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrUnknownParticipant),
			errors.Is(err, split.ErrNoParticipants),
			errors.Is(err, split.ErrInvalidCustomAmounts),
			errors.Is(err, split.ErrMissingCustomAmount),
			errors.Is(err, split.ErrNegativeAmount):
			response.UnprocessableEntity(w, err.Error())
		default:
			response.InternalError(w, "Failed to create expense")
		}
		return
	}

	resp := result.Expense.ToResponse()
	resp.Shares = make([]*ShareResponse, len(result.Shares))
	for i, s := range result.Shares {
		resp.Shares[i] = s.ToResponse()
	}

	response.JSON(w, http.StatusCreated, resp)
}

// GetByID handles GET /expenses/{id}
// @Summary      Get expense by ID
// @Description  Get an expense together with its split rows
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	result, err := h.service.GetExpenseByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get expense")
		return
	}

	resp := result.Expense.ToResponse()
	resp.Shares = make([]*ShareResponse, len(result.Shares))
	for i, s := range result.Shares {
		resp.Shares[i] = s.ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}

// ListByMeeting handles GET /expenses/meetings/{meetingId}
// @Summary      List expenses for a meeting
// @Tags         expenses
// @Produce      json
// @Param        meetingId path string true "Meeting ID"
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /expenses/meetings/{meetingId} [get]
func (h *Handler) ListByMeeting(w http.ResponseWriter, r *http.Request) {
	meetingID, err := uuid.Parse(chi.URLParam(r, "meetingId"))
	if err != nil {
		response.BadRequest(w, "Invalid meeting ID")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	expenses, total, err := h.service.ListExpensesByMeetingID(r.Context(), meetingID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list expenses")
		return
	}

	responses := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = e.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	response.JSONWithMeta(w, http.StatusOK, responses, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	})
}

// Delete handles DELETE /expenses/{id}
// @Summary      Delete an expense
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID"
// @Success      200 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	if err := h.service.DeleteExpense(r.Context(), id); err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete expense")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
}
