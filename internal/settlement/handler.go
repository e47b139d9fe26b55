package settlement

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/conkccc/studio-sub000/pkg/response"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/meetings/{meetingId}", h.ComputeForMeeting)

	return r
}

// ComputeForMeeting handles GET /settlements/meetings/{meetingId}
// @Summary      Compute a meeting's settlement
// @Description  Compute per-participant balances, fund payouts, and the peer transfers that bring every balance to zero. Always computed fresh from the current snapshot.
// @Tags         settlements
// @Produce      json
// @Param        meetingId path string true "Meeting ID"
// @Success      200 {object} response.APIResponse{data=SettlementResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Router       /settlements/meetings/{meetingId} [get]
func (h *Handler) ComputeForMeeting(w http.ResponseWriter, r *http.Request) {
	meetingID, err := uuid.Parse(chi.URLParam(r, "meetingId"))
	if err != nil {
		response.BadRequest(w, "Invalid meeting ID")
		return
	}

	result, roster, err := h.service.ComputeForMeeting(r.Context(), meetingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrMeetingNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrUnknownParticipant),
			errors.Is(err, ErrEmptyEqualSplit),
			errors.Is(err, ErrCustomSplitSum),
			errors.Is(err, ErrInvalidAmount):
			// A rejected computation means an expense needs correcting at
			// the source; the settlement is unavailable until then.
			response.UnprocessableEntity(w, err.Error())
		default:
			response.InternalError(w, "Failed to compute settlement")
		}
		return
	}

	response.JSON(w, http.StatusOK, ToResponse(meetingID.String(), result, roster))
}
