package middleware

import (
	"encoding/base64"
	"net/http"
)

const (
	FlashCookieError   = "flash_error"
	FlashCookieSuccess = "flash_success"
)

// RedirectToLogin wraps auth middleware so browser-facing routes get a
// redirect to the login page instead of a bare 401/403 payload.
func (a *Auth) RedirectToLogin(authMiddleware func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapper := &authRedirectWriter{
				ResponseWriter: w,
				request:        r,
				secureCookies:  a.secureCookies,
			}
			authMiddleware(next).ServeHTTP(wrapper, r)
		})
	}
}

// authRedirectWriter intercepts 401/403 errors and redirects to login
type authRedirectWriter struct {
	http.ResponseWriter
	request       *http.Request
	secureCookies bool
	redirected    bool
}

func (w *authRedirectWriter) WriteHeader(statusCode int) {
	if w.redirected {
		return
	}

	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		w.redirected = true
		SetFlash(w.ResponseWriter, FlashCookieError, "Please log in to continue", w.secureCookies)
		http.Redirect(w.ResponseWriter, w.request, "/login", http.StatusSeeOther)
		return
	}

	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *authRedirectWriter) Write(data []byte) (int, error) {
	if w.redirected {
		return len(data), nil // Discard body after redirect
	}
	return w.ResponseWriter.Write(data)
}

// SetFlash stores a one-shot notification cookie. Base64 keeps special
// characters cookie-safe. The reader clears it after a single read.
func SetFlash(w http.ResponseWriter, name, message string, secureCookies bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    base64.StdEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		MaxAge:   300, // enough time for the follow-up GET
		HttpOnly: true,
		Secure:   secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash reads and clears a flash cookie.
func PopFlash(w http.ResponseWriter, r *http.Request, name string, secureCookies bool) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	decoded, err := base64.StdEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}
