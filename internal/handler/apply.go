package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/starwave-dev/starboard/internal/api"
	"github.com/starwave-dev/starboard/internal/domain"
	internal_errors "github.com/starwave-dev/starboard/internal/errors"
	mw "github.com/starwave-dev/starboard/internal/middleware"
)

type applyPage struct {
	FocusChoices []domain.CategoryChoice
	Values       api.ModeratorApplicationRequest
	Errors       map[string][]string
}

func (h *Handler) ApplyGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "apply.html", applyPage{FocusChoices: domain.ContributionFocusChoices})
}

func (h *Handler) ApplyPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, "/apply", mw.FlashCookieError, "Invalid form data.")
		return
	}

	req := api.ModeratorApplicationRequest{
		DisplayName:       r.FormValue("display_name"),
		ChannelHandle:     r.FormValue("channel_handle"),
		Timezone:          r.FormValue("timezone"),
		ContributionFocus: r.FormValue("contribution_focus"),
		Message:           r.FormValue("message"),
	}

	reference, err := h.application.Submit(req)
	if err != nil {
		var validationErr *internal_errors.ValidationError
		if errors.As(err, &validationErr) {
			h.renderTemplate(w, r, "apply.html", applyPage{
				FocusChoices: domain.ContributionFocusChoices,
				Values:       req,
				Errors:       validationErr.Fields,
			})
			return
		}
		h.redirectWithFlash(w, r, "/apply", mw.FlashCookieError, "Could not submit application. Please try again.")
		return
	}

	h.redirectWithFlash(w, r, "/apply", mw.FlashCookieSuccess,
		fmt.Sprintf("Application received! We'll reach out via Discord once reviewed. Reference: %s", reference))
}
