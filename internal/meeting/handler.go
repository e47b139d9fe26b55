package meeting

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/conkccc/studio-sub000/internal/friend"
	"github.com/conkccc/studio-sub000/pkg/response"
)

// Handler handles HTTP requests for meeting operations
type Handler struct {
	service *Service
}

// NewHandler creates a new meeting handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for meeting endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Put("/{id}/fund", h.UpdateFundConfig)
	r.Post("/{id}/participants", h.AddParticipant)
	r.Delete("/{id}/participants/{participantId}", h.RemoveParticipant)

	return r
}

// Create handles POST /meetings
// @Summary      Create a new meeting
// @Description  Create a meeting with an optional shared-fund configuration
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        request body CreateMeetingRequest true "Meeting creation request"
// @Success      201 {object} response.APIResponse{data=MeetingResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /meetings [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.Name == "" {
		response.BadRequest(w, "Name is required")
		return
	}

	meeting, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidMeetingDate), errors.Is(err, ErrNegativeFundCap):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to create meeting")
		}
		return
	}

	response.JSON(w, http.StatusCreated, meeting.ToResponse())
}

// GetByID handles GET /meetings/{id}
// @Summary      Get meeting by ID
// @Description  Get a meeting together with its participant roster
// @Tags         meetings
// @Produce      json
// @Param        id path string true "Meeting ID"
// @Success      200 {object} response.APIResponse{data=MeetingResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /meetings/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid meeting ID")
		return
	}

	meeting, participants, err := h.service.GetByIDWithParticipants(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrMeetingNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get meeting")
		return
	}

	resp := meeting.ToResponse()
	resp.Participants = make([]*ParticipantResponse, len(participants))
	for i, p := range participants {
		resp.Participants[i] = p.ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}

// List handles GET /meetings
// @Summary      List meetings
// @Tags         meetings
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]MeetingResponse}
// @Router       /meetings [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	meetings, total, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list meetings")
		return
	}

	responses := make([]*MeetingResponse, len(meetings))
	for i, m := range meetings {
		responses[i] = m.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	response.JSONWithMeta(w, http.StatusOK, responses, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	})
}

// Update handles PUT /meetings/{id}
// @Summary      Update a meeting
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        id path string true "Meeting ID"
// @Param        request body UpdateMeetingRequest true "Meeting update request"
// @Success      200 {object} response.APIResponse{data=MeetingResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /meetings/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid meeting ID")
		return
	}

	var req UpdateMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	meeting, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMeetingNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrInvalidMeetingDate):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to update meeting")
		}
		return
	}

	response.JSON(w, http.StatusOK, meeting.ToResponse())
}

// UpdateFundConfig handles PUT /meetings/{id}/fund
// @Summary      Update a meeting's fund configuration
// @Description  Enable or disable fund use and set the per-meeting cap
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        id path string true "Meeting ID"
// @Param        request body UpdateFundConfigRequest true "Fund config request"
// @Success      200 {object} response.APIResponse{data=MeetingResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /meetings/{id}/fund [put]
func (h *Handler) UpdateFundConfig(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid meeting ID")
		return
	}

	var req UpdateFundConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	meeting, err := h.service.UpdateFundConfig(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMeetingNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNegativeFundCap):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to update fund config")
		}
		return
	}

	response.JSON(w, http.StatusOK, meeting.ToResponse())
}

// Delete handles DELETE /meetings/{id}
// @Summary      Delete a meeting
// @Tags         meetings
// @Produce      json
// @Param        id path string true "Meeting ID"
// @Success      200 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /meetings/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid meeting ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrMeetingNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete meeting")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Meeting deleted successfully"})
}

// AddParticipant handles POST /meetings/{id}/participants
// @Summary      Add a participant to a meeting
// @Description  Add a registered friend (by id) or an ephemeral attendee (by display name)
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        id path string true "Meeting ID"
// @Param        request body AddParticipantRequest true "Participant request"
// @Success      201 {object} response.APIResponse{data=ParticipantResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /meetings/{id}/participants [post]
func (h *Handler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid meeting ID")
		return
	}

	var req AddParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	participant, err := h.service.AddParticipant(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMeetingNotFound), errors.Is(err, friend.ErrFriendNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrInvalidParticipant):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to add participant")
		}
		return
	}

	response.JSON(w, http.StatusCreated, participant.ToResponse())
}

// RemoveParticipant handles DELETE /meetings/{id}/participants/{participantId}
// @Summary      Remove a participant from a meeting
// @Description  Remove a roster entry that no expense references
// @Tags         meetings
// @Produce      json
// @Param        id path string true "Meeting ID"
// @Param        participantId path string true "Participant ID"
// @Success      200 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /meetings/{id}/participants/{participantId} [delete]
func (h *Handler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid meeting ID")
		return
	}

	participantID, err := uuid.Parse(chi.URLParam(r, "participantId"))
	if err != nil {
		response.BadRequest(w, "Invalid participant ID")
		return
	}

	if err := h.service.RemoveParticipant(r.Context(), id, participantID); err != nil {
		switch {
		case errors.Is(err, ErrParticipantNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrParticipantReferenced):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to remove participant")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Participant removed successfully"})
}
