// Package api exposes the application over HTTP with gin.
package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/abdulachik/descricoes/internal/app"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with every route registered.
func NewRouter(a *app.App) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.Use(cors.New(corsConfig(a.Config.CORSOrigins)))

	h := NewHandler(a)

	router.GET("/healthz", h.Health)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)

		api.GET("/catalog", h.Catalog)
		api.POST("/prompt/preview", h.Preview)

		protected := api.Group("/")
		protected.Use(authenticate(a))
		protected.POST("/descriptions", h.Generate)
		protected.GET("/descriptions", h.ListDescriptions)
		protected.DELETE("/descriptions", h.ClearDescriptions)
		protected.GET("/descriptions/export.csv", h.ExportCSV)
		protected.GET("/descriptions/:id", h.GetDescription)
		protected.GET("/descriptions/:id/page", h.DescriptionPage)
		protected.GET("/quota", h.Quota)
		protected.GET("/analytics", h.Analytics)
		protected.PUT("/account/plan", h.ChangePlan)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{requestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// NewServer creates the HTTP server for addr.
func NewServer(a *app.App, addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(a),
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      3 * time.Minute,
	}
}
