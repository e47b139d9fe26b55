package fund

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/conkccc/studio-sub000/pkg/middleware"
	"github.com/conkccc/studio-sub000/pkg/response"
)

// Handler handles HTTP requests for reserve-fund operations
type Handler struct {
	service *Service
}

// NewHandler creates a new fund handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for fund endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/transactions", h.CreateTransaction)
	r.Get("/transactions", h.ListTransactions)
	r.Get("/balance", h.GetBalance)

	return r
}

// CreateTransaction handles POST /fund/transactions
// @Summary      Record a fund transaction
// @Description  Record a deposit or withdrawal on the shared reserve
// @Tags         fund
// @Accept       json
// @Produce      json
// @Param        request body CreateTransactionRequest true "Fund transaction request"
// @Success      201 {object} response.APIResponse{data=TransactionResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Router       /fund/transactions [post]
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	var createdBy *uuid.UUID
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		createdBy = &userID
	}

	tx, err := h.service.CreateTransaction(r.Context(), createdBy, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTransactionType),
			errors.Is(err, ErrInvalidAmount),
			errors.Is(err, ErrInvalidMeetingID):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrInsufficientFunds):
			response.UnprocessableEntity(w, err.Error())
		default:
			response.InternalError(w, "Failed to create fund transaction")
		}
		return
	}

	response.JSON(w, http.StatusCreated, tx.ToResponse())
}

// ListTransactions handles GET /fund/transactions
// @Summary      List fund transactions
// @Tags         fund
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]TransactionResponse}
// @Router       /fund/transactions [get]
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	transactions, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list fund transactions")
		return
	}

	responses := make([]*TransactionResponse, len(transactions))
	for i, tx := range transactions {
		responses[i] = tx.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	response.JSONWithMeta(w, http.StatusOK, responses, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	})
}

// GetBalance handles GET /fund/balance
// @Summary      Get the reserve balance
// @Description  Get the current shared-fund balance (deposits minus withdrawals)
// @Tags         fund
// @Produce      json
// @Success      200 {object} response.APIResponse{data=BalanceResponse}
// @Router       /fund/balance [get]
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.service.Balance(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to get fund balance")
		return
	}

	response.JSON(w, http.StatusOK, &BalanceResponse{Balance: balance.StringFixed(2)})
}
