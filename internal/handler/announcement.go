package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/starwave-dev/starboard/internal/api"
	internal_errors "github.com/starwave-dev/starboard/internal/errors"
	"github.com/starwave-dev/starboard/internal/logger"
	"github.com/starwave-dev/starboard/internal/utils"
)

// FeedHandler serves the public JSON feed. Same filters as the board,
// pinned-first ordering, always 200 with an empty list on no matches.
func (h *Handler) FeedHandler(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.announcement.List(filterFromQuery(r))
	if err != nil {
		logger.Log.Error("failed to list announcements", "error", err)
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.FeedResponse{Announcements: api.NewAnnouncementResponses(announcements)})
}

// CreateAnnouncementHandler accepts a JSON or form-encoded body,
// negotiated by Content-Type. published_at is always server-stamped.
func (h *Handler) CreateAnnouncementHandler(w http.ResponseWriter, r *http.Request) {
	var req api.CreateAnnouncementRequest
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		if err := utils.Decode(r.Body, &req); err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		req = createRequestFromForm(r)
	}

	created, err := h.announcement.Create(req)
	if err != nil {
		var validationErr *internal_errors.ValidationError
		if errors.As(err, &validationErr) {
			writeJSON(w, http.StatusBadRequest, api.CreateAnnouncementResponse{
				Success: false,
				Errors:  validationErr.Fields,
			})
			return
		}
		logger.Log.Error("failed to create announcement", "error", err)
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	response := api.NewAnnouncementResponse(*created)
	writeJSON(w, http.StatusOK, api.CreateAnnouncementResponse{
		Success:      true,
		Announcement: &response,
	})
}
