package setup

import (
	"html/template"
	"os"
	"path"
	"path/filepath"

	"github.com/starwave-dev/starboard/internal/config"
	"github.com/starwave-dev/starboard/internal/handler"
	"github.com/starwave-dev/starboard/internal/jwt"
	"github.com/starwave-dev/starboard/internal/logger"
	"github.com/starwave-dev/starboard/internal/markdown"
	"github.com/starwave-dev/starboard/internal/middleware"
	"github.com/starwave-dev/starboard/internal/service"
	"github.com/starwave-dev/starboard/internal/storage/pg"
)

const (
	baseTemplate = "base.html"
	tmplPath     = "templates"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Config         *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	jwtSvc := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	announcement := service.NewAnnouncement(storage, &cfg.Public)
	auth := service.NewAuth(storage, jwtSvc)
	application := service.NewApplication(storage)

	templates, err := loadTemplates(tmplPath)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	h := handler.New(announcement, auth, application, markdown.New(), templates, cfg)
	authMw := middleware.NewAuth(jwtSvc, cfg.Public.SecureCookies)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: authMw,
		Config:         cfg,
	}, nil
}

// loadTemplates parses every page template against the shared base.
func loadTemplates(tmplPath string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)
	files, err := os.ReadDir(tmplPath)
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		if filepath.Ext(f.Name()) != ".html" || f.Name() == baseTemplate {
			continue
		}
		tmpl, err := template.New(baseTemplate).ParseFiles(
			path.Join(tmplPath, baseTemplate),
			path.Join(tmplPath, f.Name()),
		)
		if err != nil {
			return nil, err
		}
		templates[f.Name()] = tmpl
		logger.Log.Debug("template loaded", "name", f.Name())
	}
	return templates, nil
}
