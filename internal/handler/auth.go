package handler

import (
	"errors"
	"net/http"

	"github.com/starwave-dev/starboard/internal/api"
	internal_errors "github.com/starwave-dev/starboard/internal/errors"
	mw "github.com/starwave-dev/starboard/internal/middleware"
)

// authPage feeds the login and signup templates.
type authPage struct {
	Values api.RegisterRequest
	Errors map[string][]string
}

func (h *Handler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "login.html", authPage{})
}

func (h *Handler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, "/login", mw.FlashCookieError, "Invalid form data.")
		return
	}

	token, err := h.auth.Login(api.LoginRequest{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	})
	if err != nil {
		h.redirectWithFlash(w, r, "/login", mw.FlashCookieError, "Wrong email or password.")
		return
	}

	mw.SetAccessToken(w, token, h.cfg.JwtTTL(), h.cfg.Public.SecureCookies)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	mw.ClearAccessToken(w, h.cfg.Public.SecureCookies)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) RegisterGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "signup.html", authPage{})
}

func (h *Handler) RegisterPostHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectWithFlash(w, r, "/signup", mw.FlashCookieError, "Invalid form data.")
		return
	}

	req := api.RegisterRequest{
		DisplayName: r.FormValue("display_name"),
		Email:       r.FormValue("email"),
		Password:    r.FormValue("password"),
	}
	if err := h.auth.Register(req); err != nil {
		var validationErr *internal_errors.ValidationError
		if errors.As(err, &validationErr) {
			req.Password = ""
			h.renderTemplate(w, r, "signup.html", authPage{Values: req, Errors: validationErr.Fields})
			return
		}
		h.redirectWithFlash(w, r, "/signup", mw.FlashCookieError, err.Error())
		return
	}

	h.redirectWithFlash(w, r, "/login", mw.FlashCookieSuccess,
		"Crew access requested. You can now log in and join the broadcast team.")
}
