package handler

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/starwave-dev/starboard/internal/api"
	"github.com/starwave-dev/starboard/internal/domain"
	internal_errors "github.com/starwave-dev/starboard/internal/errors"
	"github.com/starwave-dev/starboard/internal/logger"
	mw "github.com/starwave-dev/starboard/internal/middleware"
	"github.com/starwave-dev/starboard/internal/utils"
)

// boardPage is the full template context for the announcement board.
type boardPage struct {
	Pinned           []announcementView
	Regular          []announcementView
	Metrics          domain.Metrics
	Categories       []domain.CategoryChoice
	SearchTerm       string
	SelectedCategory string
	Form             boardForm
	InitialPayload   template.JS
}

// boardForm carries submitted values and field errors back into the
// creation form after a failed POST.
type boardForm struct {
	Values api.CreateAnnouncementRequest
	Errors map[string][]string
}

func filterFromQuery(r *http.Request) domain.Filter {
	return domain.Filter{
		Search:   r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}
}

// buildBoardPage assembles the read-side context: filtered list split
// into pinned and regular regions, with metrics over the filtered set.
func (h *Handler) buildBoardPage(r *http.Request, form boardForm) (boardPage, error) {
	filter := filterFromQuery(r)
	announcements, err := h.announcement.List(filter)
	if err != nil {
		return boardPage{}, err
	}

	page := boardPage{
		Categories:       domain.CategoryChoices,
		SearchTerm:       filter.Search,
		SelectedCategory: filter.Category,
		Form:             form,
	}
	for _, a := range announcements {
		view := h.renderAnnouncement(a)
		if a.IsPinned {
			page.Pinned = append(page.Pinned, view)
			page.Metrics.Pinned++
		} else {
			page.Regular = append(page.Regular, view)
		}
	}
	page.Metrics.Total = len(announcements)

	// Same DTO the feed serves, embedded for client-side rendering
	payload, err := json.Marshal(api.FeedResponse{Announcements: api.NewAnnouncementResponses(announcements)})
	if err != nil {
		return boardPage{}, err
	}
	page.InitialPayload = template.JS(payload)

	return page, nil
}

func (h *Handler) BoardGetHandler(w http.ResponseWriter, r *http.Request) {
	page, err := h.buildBoardPage(r, boardForm{})
	if err != nil {
		logger.Log.Error("failed to build board page", "error", err)
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	h.renderTemplate(w, r, "board.html", page)
}

// BoardPostHandler handles the board creation form. Requires an
// authenticated session (enforced by middleware). Success flashes and
// redirects so a refresh cannot re-submit; validation failure re-renders
// the page with the submitted values, field errors, and the read-side
// context for the attempted filters.
func (h *Handler) BoardPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, "/", mw.FlashCookieError, "Invalid form data.")
		return
	}

	req := createRequestFromForm(r)
	_, err := h.announcement.Create(req)
	if err == nil {
		h.redirectWithFlash(w, r, "/", mw.FlashCookieSuccess, "Announcement published to the board.")
		return
	}

	var validationErr *internal_errors.ValidationError
	if !errors.As(err, &validationErr) {
		logger.Log.Error("failed to create announcement", "error", err)
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	page, pageErr := h.buildBoardPage(r, boardForm{Values: req, Errors: validationErr.Fields})
	if pageErr != nil {
		logger.Log.Error("failed to rebuild board page", "error", pageErr)
		utils.WriteErrorAndStatusCode(w, pageErr)
		return
	}
	w.WriteHeader(http.StatusBadRequest)
	h.renderTemplate(w, r, "board.html", page)
}
