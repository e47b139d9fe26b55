package event

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/conkccc/studio-sub000/pkg/response"
)

// Handler serves the recent-activity feed
type Handler struct {
	repo *Repository
}

// NewHandler creates a new event handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Routes returns the router for event endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListRecent)

	return r
}

// ListRecent handles GET /events
// @Summary      List recent activity
// @Description  Get the most recent domain events, newest first
// @Tags         events
// @Produce      json
// @Param        limit query int false "Maximum events to return" default(50)
// @Success      200 {object} response.APIResponse{data=[]Event}
// @Router       /events [get]
func (h *Handler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	events, err := h.repo.ListRecent(r.Context(), limit)
	if err != nil {
		response.InternalError(w, "Failed to list events")
		return
	}

	response.JSON(w, http.StatusOK, events)
}
