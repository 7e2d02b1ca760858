// Package router wires handlers onto the gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/coad-fablab/printlab-api/internal/handler"
	"github.com/coad-fablab/printlab-api/internal/middleware"
	"github.com/coad-fablab/printlab-api/internal/service"
	"github.com/coad-fablab/printlab-api/pkg/config"
	"github.com/coad-fablab/printlab-api/pkg/logger"
	corsmiddleware "github.com/coad-fablab/printlab-api/pkg/middleware/cors"
	reqidmiddleware "github.com/coad-fablab/printlab-api/pkg/middleware/requestid"
)

// Handlers collects everything the router mounts.
type Handlers struct {
	Auth   *handler.AuthHandler
	Submit *handler.SubmitHandler
	Jobs   *handler.JobHandler
	Staff  *handler.StaffHandler
	Admin  *handler.AdminHandler
	Diag   *handler.DiagHandler
}

// New builds the gin engine with middleware and every route mounted
// under the API prefix.
func New(cfg *config.Config, logr *zap.Logger, auth *service.AuthService, metrics *service.MetricsService, h Handlers) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", h.Diag.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	// public surface: login, the submission form, and the emailed
	// confirmation link
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/submit", h.Submit.Submit)
	api.GET("/submit/options", h.Submit.Options)
	api.POST("/submit/confirm/:token", h.Submit.Confirm)

	protected := api.Group("")
	protected.Use(middleware.Auth(auth))

	jobs := protected.Group("/jobs")
	jobs.GET("", h.Jobs.List)
	jobs.GET("/counts", h.Jobs.Counts)
	jobs.GET("/:id", h.Jobs.Get)
	jobs.DELETE("/:id", h.Jobs.Delete)
	jobs.GET("/:id/events", h.Jobs.Events)
	jobs.GET("/:id/candidate-files", h.Jobs.CandidateFiles)
	jobs.POST("/:id/review", h.Jobs.Review)
	jobs.POST("/:id/approve", h.Jobs.Approve)
	jobs.POST("/:id/reject", h.Jobs.Reject)
	jobs.POST("/:id/mark-printing", h.Jobs.MarkPrinting)
	jobs.POST("/:id/mark-complete", h.Jobs.MarkComplete)
	jobs.POST("/:id/payment", h.Jobs.Payment)
	jobs.PATCH("/:id/notes", h.Jobs.Notes)

	staff := protected.Group("/staff")
	staff.GET("", h.Staff.List)
	staff.POST("", h.Staff.Create)
	staff.PATCH("/:name", h.Staff.SetActive)

	admin := protected.Group("/admin")
	admin.POST("/override", h.Admin.Override)
	admin.GET("/audit/report", h.Admin.Audit)
	admin.DELETE("/audit/orphaned-file", h.Admin.AuditDeleteFile)
	admin.DELETE("/audit/stale-file", h.Admin.AuditDeleteFile)
	admin.POST("/audit/mark-reviewed", h.Admin.AuditMarkReviewed)
	admin.POST("/archive", h.Admin.Archive)
	admin.GET("/export", h.Admin.Export)

	protected.GET("/analytics/events", h.Admin.RecentEvents)
	protected.GET("/_diag", h.Diag.Diag)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "route not found"}})
	})

	return r
}
