package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"purchase-manager/internal/api"
	"purchase-manager/internal/handlers"
	"purchase-manager/internal/metrics"
	"purchase-manager/internal/middleware"
	"purchase-manager/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// NewAPIRouter — REST API под /api и /health.
func NewAPIRouter(h *api.Handler, log *slog.Logger, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(log, m), gin.Recovery())

	// HEALTHCHECK
	r.GET("/health", h.Health)

	h.Register(r.Group("/api"))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ресурс не найден"})
	})

	return r
}

// NewWebRouter — HTML-интерфейс; сообщения между страницами живут в cookie-сессии.
func NewWebRouter(h *handlers.Handler, sessionSecret string, log *slog.Logger, m *metrics.Metrics) (*gin.Engine, error) {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(log, m), gin.Recovery())

	tmpl, err := web.Templates(handlers.FuncMap())
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", web.Static())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("pm_session", store))

	h.Register(r)
	r.NoRoute(handlers.NotFound)

	return r, nil
}
