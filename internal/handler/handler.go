package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/starwave-dev/starboard/internal/config"
	"github.com/starwave-dev/starboard/internal/domain"
	"github.com/starwave-dev/starboard/internal/logger"
	"github.com/starwave-dev/starboard/internal/markdown"
	mw "github.com/starwave-dev/starboard/internal/middleware"
	"github.com/starwave-dev/starboard/internal/service"
)

type Handler struct {
	Templates    map[string]*template.Template
	announcement service.AnnouncementService
	auth         service.AuthService
	application  service.ApplicationService
	renderer     *markdown.Renderer
	cfg          *config.Config
}

func New(announcement service.AnnouncementService, auth service.AuthService, application service.ApplicationService, renderer *markdown.Renderer, templates map[string]*template.Template, cfg *config.Config) *Handler {
	return &Handler{
		Templates:    templates,
		announcement: announcement,
		auth:         auth,
		application:  application,
		renderer:     renderer,
		cfg:          cfg,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// CommonTemplateData is available to every page via .Common.
type CommonTemplateData struct {
	User         *domain.User
	FlashError   string
	FlashSuccess string
}

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common CommonTemplateData
}

func (h *Handler) initCommonTemplateData(w http.ResponseWriter, r *http.Request) CommonTemplateData {
	secure := h.cfg.Public.SecureCookies
	return CommonTemplateData{
		User:         mw.GetUserFromContext(r),
		FlashError:   mw.PopFlash(w, r, mw.FlashCookieError, secure),
		FlashSuccess: mw.PopFlash(w, r, mw.FlashCookieSuccess, secure),
	}
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	tmpl, ok := h.Templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	wrapped := TemplateData{
		Data:   data,
		Common: h.initCommonTemplateData(w, r),
	}

	// Render to a buffer first so template failures don't produce a
	// half-written page
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	_, _ = buf.WriteTo(w)
}
