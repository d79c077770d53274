package handler

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/starwave-dev/starboard/internal/api"
	"github.com/starwave-dev/starboard/internal/domain"
	mw "github.com/starwave-dev/starboard/internal/middleware"
	"github.com/starwave-dev/starboard/internal/utils"
)

// createRequestFromForm maps the board form into the shared create
// request. Tags arrive comma separated here; the JSON endpoint may send
// either form and FlexibleTags resolves it there.
func createRequestFromForm(r *http.Request) api.CreateAnnouncementRequest {
	return api.CreateAnnouncementRequest{
		Title:         strings.TrimSpace(r.FormValue("title")),
		Summary:       strings.TrimSpace(r.FormValue("summary")),
		Content:       r.FormValue("content"),
		AuthorDisplay: strings.TrimSpace(r.FormValue("author_display")),
		Category:      r.FormValue("category"),
		Tags:          api.FlexibleTags(utils.SplitAndTrim(r.FormValue("tags"))),
		IsPinned:      parseCheckbox(r.FormValue("is_pinned")),
	}
}

func parseCheckbox(value string) bool {
	switch strings.ToLower(value) {
	case "on", "true", "1":
		return true
	}
	return false
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, targetURL, cookieName, message string) {
	mw.SetFlash(w, cookieName, message, h.cfg.Public.SecureCookies)
	http.Redirect(w, r, targetURL, http.StatusSeeOther)
}

// announcementView is the template-facing shape of one announcement.
type announcementView struct {
	domain.Announcement
	CategoryLabel string
	ContentHTML   template.HTML
	PublishedAt   string
}

func (h *Handler) renderAnnouncement(a domain.Announcement) announcementView {
	return announcementView{
		Announcement:  a,
		CategoryLabel: a.CategoryLabel(),
		ContentHTML:   h.renderer.Render(a.Content),
		PublishedAt:   a.PublishedAt.Format("Jan 2, 2006 15:04 MST"),
	}
}

func (h *Handler) renderAnnouncements(announcements []domain.Announcement) []announcementView {
	views := make([]announcementView, len(announcements))
	for i, a := range announcements {
		views[i] = h.renderAnnouncement(a)
	}
	return views
}
