package main

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/crucial707/fleet-pm/internal/config"
	"github.com/crucial707/fleet-pm/internal/handlers"
	"github.com/crucial707/fleet-pm/internal/middleware"
	"github.com/crucial707/fleet-pm/internal/notify"
	"github.com/crucial707/fleet-pm/internal/repo"
	"github.com/crucial707/fleet-pm/internal/runner"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodyBytes = 1 << 20 // 1 MiB request body cap

// newRouter wires repositories, handlers and middleware into the full API.
func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	scheduleRepo := repo.NewScheduleRepo(database)
	assetRepo := repo.NewAssetRepo(database)
	readingRepo := repo.NewReadingRepo(database)
	workOrderRepo := repo.NewWorkOrderRepo(database)
	cycleRepo := repo.NewCycleRepo(database)
	auditRepo := repo.NewAuditRepo(database)
	userRepo := repo.NewUserRepo(database)

	run := &runner.Runner{
		Schedules:  scheduleRepo,
		Readings:   readingRepo,
		WorkOrders: workOrderRepo,
		Ledger:     cycleRepo,
		Notifier:   notify.LogNotifier{},
	}

	auth := &handlers.AuthHandler{UserRepo: userRepo, Secret: []byte(cfg.JWTSecret), ExpireHours: cfg.JWTExpireHours}
	schedules := &handlers.ScheduleHandler{Repo: scheduleRepo, Cycles: cycleRepo, Audit: auditRepo}
	assets := &handlers.AssetHandler{Repo: assetRepo, Audit: auditRepo}
	readings := &handlers.ReadingHandler{Repo: readingRepo, Assets: assetRepo}
	workOrders := &handlers.WorkOrderHandler{Repo: workOrderRepo}
	passes := &handlers.PassHandler{Runner: run}
	audit := &handlers.AuditHandler{Repo: auditRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders(cfg.Env == "prod"))
	r.Use(middleware.Prometheus)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.MaxBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := database.PingContext(r.Context()); err != nil {
			handlers.JSONError(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintln(w, "ready")
	})
	r.Handle("/metrics", promhttp.Handler())

	authLimiter := middleware.AuthRateLimiter()
	r.Route("/auth", func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/register", auth.Register)
		r.Post("/login", auth.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTMiddleware([]byte(cfg.JWTSecret)))

		r.Route("/assets", func(r chi.Router) {
			r.Get("/", assets.ListAssets)
			r.Post("/", assets.CreateAsset)
			r.Get("/{id}", assets.GetAsset)
			r.Delete("/{id}", assets.DeleteAsset)
			r.Post("/{id}/readings", readings.RecordReading)
			r.Get("/{id}/readings/latest", readings.LatestReading)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", schedules.ListSchedules)
			r.Post("/", schedules.CreateSchedule)
			r.Get("/{id}", schedules.GetSchedule)
			r.Put("/{id}", schedules.UpdateSchedule)
			r.Delete("/{id}", schedules.DeleteSchedule)
			r.Patch("/{id}/active", schedules.SetScheduleActive)
			r.Get("/{id}/occurrences", schedules.PreviewOccurrences)
			r.Get("/{id}/cycles", schedules.ListCycles)
		})

		r.Route("/work-orders", func(r chi.Router) {
			r.Get("/", workOrders.ListWorkOrders)
			r.Get("/{id}", workOrders.GetWorkOrder)
		})

		r.Post("/passes/run", passes.RunPass)
		r.Get("/audit", audit.ListAudit)
	})

	return r
}
