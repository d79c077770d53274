package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/starwave-dev/starboard/internal/api"
	"github.com/starwave-dev/starboard/internal/config"
	"github.com/starwave-dev/starboard/internal/domain"
	"github.com/starwave-dev/starboard/internal/markdown"
)

// Func-field mocks so each test overrides only what it needs.

type MockAnnouncementService struct {
	MockCreate    func(req api.CreateAnnouncementRequest) (*domain.Announcement, error)
	MockList      func(filter domain.Filter) ([]domain.Announcement, error)
	MockDashboard func() (domain.Metrics, []domain.Announcement, error)
}

func (m *MockAnnouncementService) Create(req api.CreateAnnouncementRequest) (*domain.Announcement, error) {
	if m.MockCreate != nil {
		return m.MockCreate(req)
	}
	return &domain.Announcement{Id: 1}, nil // Default behavior
}

func (m *MockAnnouncementService) List(filter domain.Filter) ([]domain.Announcement, error) {
	if m.MockList != nil {
		return m.MockList(filter)
	}
	return nil, nil
}

func (m *MockAnnouncementService) Dashboard() (domain.Metrics, []domain.Announcement, error) {
	if m.MockDashboard != nil {
		return m.MockDashboard()
	}
	return domain.Metrics{}, nil, nil
}

type MockAuthService struct {
	MockRegister func(req api.RegisterRequest) error
	MockLogin    func(req api.LoginRequest) (string, error)
}

func (m *MockAuthService) Register(req api.RegisterRequest) error {
	if m.MockRegister != nil {
		return m.MockRegister(req)
	}
	return nil
}

func (m *MockAuthService) Login(req api.LoginRequest) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(req)
	}
	return "", nil
}

type MockApplicationService struct {
	MockSubmit func(req api.ModeratorApplicationRequest) (string, error)
}

func (m *MockApplicationService) Submit(req api.ModeratorApplicationRequest) (string, error) {
	if m.MockSubmit != nil {
		return m.MockSubmit(req)
	}
	return "ref", nil
}

func testConfig() *config.Config {
	return &config.Config{Public: config.Public{JwtTTL: time.Hour, SlugMaxLen: 180}}
}

// testTemplates gives every page a tiny stand-in so render paths can be
// exercised without the real template tree.
func testTemplates(t *testing.T) map[string]*template.Template {
	t.Helper()
	templates := make(map[string]*template.Template)
	for name, body := range map[string]string{
		"board.html":     `board:{{.Data.Metrics.Total}}/{{.Data.Metrics.Pinned}} pinned:{{len .Data.Pinned}} regular:{{len .Data.Regular}} errors:{{len .Data.Form.Errors}}`,
		"login.html":     `login`,
		"signup.html":    `signup errors:{{len .Data.Errors}}`,
		"apply.html":     `apply errors:{{len .Data.Errors}}`,
		"dashboard.html": `dashboard:{{.Data.Metrics.Total}}`,
	} {
		templates[name] = template.Must(template.New(name).Parse(body))
	}
	return templates
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return New(
		&MockAnnouncementService{},
		&MockAuthService{},
		&MockApplicationService{},
		markdown.New(),
		testTemplates(t),
		testConfig(),
	)
}

func createRequest(t *testing.T, method, target string, body []byte, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}
