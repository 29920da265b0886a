package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kokoro-dev/wellness-backend/internal/ai"
	"github.com/kokoro-dev/wellness-backend/internal/config"
	"github.com/kokoro-dev/wellness-backend/internal/handler"
	appmw "github.com/kokoro-dev/wellness-backend/internal/middleware"
	"github.com/kokoro-dev/wellness-backend/internal/repository"
	"github.com/kokoro-dev/wellness-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	e     *echo.Echo
	store repository.Store
	sha   string
	build string
}

func New(store repository.Store, cfg *config.Config, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Debug-UID"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			host := u.Hostname()
			if strings.HasSuffix(host, "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	wellnessSvc := service.NewWellnessService(store, time.Now)
	goalSvc := service.NewGoalService(store, time.Now)
	achSvc := service.NewAchievementService(store)

	var suggester service.FocusSuggester
	if cfg.GeminiAPIKey != "" {
		suggester = ai.NewFocusClient(nil)
	}
	tipSvc := service.NewTipService(store, suggester, time.Now)

	metricHandler := handler.NewMetricHandler(wellnessSvc, time.Now)
	goalHandler := handler.NewGoalHandler(goalSvc)
	achHandler := handler.NewAchievementHandler(achSvc)
	profileHandler := handler.NewProfileHandler(wellnessSvc)
	tipHandler := handler.NewTipHandler(tipSvc)

	authMw, err := appmw.NewAuthMiddleware(context.Background(), cfg.FirebaseProjectID)
	if err != nil {
		e.Logger.Fatalf("failed to init firebase auth: %v", err)
	}
	requireAuth := appmw.DevAuth
	if authMw != nil {
		requireAuth = authMw.RequireAuth
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")

	me := api.Group("/me", requireAuth)
	me.PUT("/goals", goalHandler.Set)
	me.GET("/goals", goalHandler.Get)
	me.POST("/metrics", metricHandler.Record)
	me.PATCH("/metrics", metricHandler.UpdateSingle)
	me.GET("/metrics", metricHandler.Get)
	me.GET("/profile", profileHandler.Get)
	me.GET("/achievements", achHandler.ListMine)
	me.GET("/achievements/:id", achHandler.CheckMine)
	me.GET("/tip", tipHandler.Get)

	api.GET("/achievements/:id", achHandler.GetCatalogEntry)

	admin := api.Group("/admin", appmw.RequireAdminToken(cfg.AdminToken))
	admin.POST("/achievements/init", achHandler.InitCatalog)

	return &Server{e: e, store: store, sha: sha, build: buildTime}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}
