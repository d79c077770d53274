package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/starwave-dev/starboard/internal/domain"
	jwt_internal "github.com/starwave-dev/starboard/internal/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashRoundtrip(t *testing.T) {
	t.Run("set then pop returns the message once", func(t *testing.T) {
		rr := httptest.NewRecorder()
		SetFlash(rr, FlashCookieSuccess, "Announcement published to the board.", false)

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookies[0])
		rr2 := httptest.NewRecorder()

		msg := PopFlash(rr2, req, FlashCookieSuccess, false)
		assert.Equal(t, "Announcement published to the board.", msg)

		// Pop must clear the cookie
		cleared := rr2.Result().Cookies()
		require.Len(t, cleared, 1)
		assert.Equal(t, -1, cleared[0].MaxAge)
	})

	t.Run("pop without cookie is empty", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Equal(t, "", PopFlash(rr, req, FlashCookieError, false))
	})

	t.Run("garbage cookie value ignored", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: FlashCookieError, Value: "%%%not-base64%%%"})
		assert.Equal(t, "", PopFlash(rr, req, FlashCookieError, false))
	})
}

func TestRedirectToLogin(t *testing.T) {
	auth := NewAuth(jwt_internal.New(testSecret, time.Hour), false)

	protected := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("secret page"))
	})

	t.Run("anonymous browser gets redirected to login", func(t *testing.T) {
		handler := auth.RedirectToLogin(auth.NeedAuth())(protected)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
		// The 401 body must not leak through
		assert.NotContains(t, rr.Body.String(), "Please sign-in")

		var flash *http.Cookie
		for _, c := range rr.Result().Cookies() {
			if c.Name == FlashCookieError {
				flash = c
			}
		}
		require.NotNil(t, flash)
	})

	t.Run("authenticated request passes through untouched", func(t *testing.T) {
		handler := auth.RedirectToLogin(auth.NeedAuth())(protected)

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: testToken(t, domain.User{Id: 1, DisplayName: "Mod"})})
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "secret page", rr.Body.String())
	})
}
