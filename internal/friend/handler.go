package friend

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/conkccc/studio-sub000/pkg/response"
)

// Handler handles HTTP requests for friend operations
type Handler struct {
	service *Service
}

// NewHandler creates a new friend handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for friend endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /friends
// @Summary      Register a new friend
// @Description  Register a person who can participate in meetings
// @Tags         friends
// @Accept       json
// @Produce      json
// @Param        request body CreateFriendRequest true "Friend registration request"
// @Success      201 {object} response.APIResponse{data=FriendResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /friends [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.Name == "" {
		response.BadRequest(w, "Name is required")
		return
	}

	friend, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w, "Failed to create friend")
		return
	}

	response.JSON(w, http.StatusCreated, friend.ToResponse())
}

// GetByID handles GET /friends/{id}
// @Summary      Get friend by ID
// @Tags         friends
// @Produce      json
// @Param        id path string true "Friend ID"
// @Success      200 {object} response.APIResponse{data=FriendResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /friends/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid friend ID")
		return
	}

	friend, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrFriendNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get friend")
		return
	}

	response.JSON(w, http.StatusOK, friend.ToResponse())
}

// List handles GET /friends
// @Summary      List all friends
// @Description  Get a paginated list of registered friends
// @Tags         friends
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]FriendResponse}
// @Router       /friends [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	friends, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list friends")
		return
	}

	responses := make([]*FriendResponse, len(friends))
	for i, f := range friends {
		responses[i] = f.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	response.JSONWithMeta(w, http.StatusOK, responses, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	})
}

// Update handles PUT /friends/{id}
// @Summary      Update a friend
// @Tags         friends
// @Accept       json
// @Produce      json
// @Param        id path string true "Friend ID"
// @Param        request body UpdateFriendRequest true "Friend update request"
// @Success      200 {object} response.APIResponse{data=FriendResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /friends/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid friend ID")
		return
	}

	var req UpdateFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	friend, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrFriendNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update friend")
		return
	}

	response.JSON(w, http.StatusOK, friend.ToResponse())
}

// Delete handles DELETE /friends/{id}
// @Summary      Delete a friend
// @Description  Delete a friend who is not referenced by any meeting
// @Tags         friends
// @Produce      json
// @Param        id path string true "Friend ID"
// @Success      200 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /friends/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid friend ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrFriendNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrFriendReferenced):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to delete friend")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Friend deleted successfully"})
}
