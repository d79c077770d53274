package handler

import (
	"net/http"

	"github.com/starwave-dev/starboard/internal/domain"
	"github.com/starwave-dev/starboard/internal/logger"
	"github.com/starwave-dev/starboard/internal/utils"
)

type dashboardPage struct {
	Metrics domain.Metrics
	Recent  []announcementView
}

// DashboardHandler shows moderators whole-collection totals and the
// most recent announcements. Login required (enforced by middleware).
func (h *Handler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	metrics, recent, err := h.announcement.Dashboard()
	if err != nil {
		logger.Log.Error("failed to load dashboard stats", "error", err)
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.renderTemplate(w, r, "dashboard.html", dashboardPage{
		Metrics: metrics,
		Recent:  h.renderAnnouncements(recent),
	})
}
