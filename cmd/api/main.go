package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	_ "github.com/coad-fablab/printlab-api/api/swagger"
	"github.com/coad-fablab/printlab-api/internal/handler"
	"github.com/coad-fablab/printlab-api/internal/mail"
	"github.com/coad-fablab/printlab-api/internal/repository"
	"github.com/coad-fablab/printlab-api/internal/router"
	"github.com/coad-fablab/printlab-api/internal/service"
	"github.com/coad-fablab/printlab-api/pkg/cache"
	"github.com/coad-fablab/printlab-api/pkg/config"
	"github.com/coad-fablab/printlab-api/pkg/database"
	"github.com/coad-fablab/printlab-api/pkg/logger"
	"github.com/coad-fablab/printlab-api/pkg/storage"
)

// @title FabLab Print Intake API
// @version 1.0.0
// @description 3D print job intake, review, and fulfillment for the COAD FabLab.
// @BasePath /api/v1
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck
	sugar := logr.Sugar()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		sugar.Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		sugar.Warnw("redis unavailable, dashboard counts uncached", "error", err)
		redisClient = nil
	}

	files, err := storage.NewFileStore(cfg.Storage.RootDir)
	if err != nil {
		sugar.Fatalw("failed to init file store", "error", err)
	}

	signer := storage.NewConfirmationSigner(cfg.JWT.Secret, cfg.JWT.ConfirmTokenSalt, cfg.JWT.ConfirmTokenTTL)
	mailer := mail.NewMailer(cfg.Mail, logr)
	validate := validator.New()

	jobRepo := repository.NewJobRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	eventRepo := repository.NewEventRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	workstationRepo := repository.NewWorkstationRepository(db)

	notifier := service.NewMailNotifier(mailer, cfg.Mailer, logr)
	rootCtx, stopNotifier := context.WithCancel(context.Background())
	notifier.Start(rootCtx)
	defer func() {
		stopNotifier()
		notifier.Stop()
	}()

	metrics := service.NewMetricsService()
	authSvc := service.NewAuthService(workstationRepo, cfg.JWT, validate, logr)
	submissionSvc := service.NewSubmissionService(jobRepo, eventRepo, files, notifier, cfg.Storage, logr)
	jobSvc := service.NewJobService(jobRepo, staffRepo, eventRepo, paymentRepo, files, signer, notifier, cfg.PublicURL, validate, logr)
	staffSvc := service.NewStaffService(staffRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(jobRepo, redisClient, cfg.Dashboard.CountsCacheTTL, metrics, logr)
	auditSvc := service.NewAuditService(jobRepo, staffRepo, eventRepo, files, 0, validate, logr)
	exportSvc := service.NewExportService(jobRepo, logr)
	diagSvc := service.NewDiagService(db, redisClient, files, mailer, jobRepo, cfg)

	engine := router.New(cfg, logr, authSvc, metrics, router.Handlers{
		Auth:   handler.NewAuthHandler(authSvc),
		Submit: handler.NewSubmitHandler(submissionSvc, jobSvc, metrics),
		Jobs:   handler.NewJobHandler(jobSvc, dashboardSvc, metrics),
		Staff:  handler.NewStaffHandler(staffSvc),
		Admin:  handler.NewAdminHandler(jobSvc, auditSvc, exportSvc),
		Diag:   handler.NewDiagHandler(diagSvc),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugar.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("graceful shutdown failed", "error", err)
	}
}
