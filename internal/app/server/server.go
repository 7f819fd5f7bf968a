package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartpro/internal/domain/assignment"
	"smartpro/internal/domain/audit"
	authdomain "smartpro/internal/domain/auth"
	"smartpro/internal/domain/core"
	"smartpro/internal/domain/daterequest"
	"smartpro/internal/domain/notifications"
	"smartpro/internal/domain/project"
	"smartpro/internal/domain/reminders"
	"smartpro/internal/domain/reports"
	"smartpro/internal/domain/settings"
	"smartpro/internal/domain/task"
	"smartpro/internal/domain/timesheet"
	"smartpro/internal/platform/config"
	"smartpro/internal/platform/db"
	"smartpro/internal/platform/email"
	"smartpro/internal/platform/jobs"
	"smartpro/internal/platform/metrics"
	"smartpro/internal/transport/http/api"
	"smartpro/internal/transport/http/handlers/assignments"
	"smartpro/internal/transport/http/handlers/auditapi"
	authhandler "smartpro/internal/transport/http/handlers/auth"
	"smartpro/internal/transport/http/handlers/daterequests"
	"smartpro/internal/transport/http/handlers/employees"
	"smartpro/internal/transport/http/handlers/notificationsapi"
	"smartpro/internal/transport/http/handlers/projects"
	"smartpro/internal/transport/http/handlers/reportsapi"
	"smartpro/internal/transport/http/handlers/settingsapi"
	"smartpro/internal/transport/http/handlers/tasks"
	"smartpro/internal/transport/http/handlers/timesheets"
	"smartpro/internal/transport/http/middleware"
)

type App struct {
	cfg     config.Config
	pool    *pgxpool.Pool
	router  chi.Router
	jobs    *jobs.Service
	metrics *metrics.Collector
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			pool.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed database: %w", err)
		}
	}

	app := &App{
		cfg:     cfg,
		pool:    pool,
		metrics: metrics.New(),
	}
	app.wire()
	return app, nil
}

func (a *App) wire() {
	mailer := email.New(a.cfg)
	settingsStore := settings.NewStore(a.pool)
	employeeStore := core.NewStore(a.pool)
	auditor := audit.NewRecorder(a.pool)

	notificationSvc := notifications.NewService(notifications.NewStore(a.pool), mailer, settingsStore)
	requestSvc := daterequest.NewService(daterequest.NewStore(a.pool), notificationSvc)
	assignmentSvc := assignment.NewService(a.pool, requestSvc)
	projectSvc := project.NewService(a.pool)
	taskSvc := task.NewService(a.pool, notificationSvc)
	timesheetSvc := timesheet.NewService(a.pool)
	authSvc := authdomain.NewService(a.pool, a.cfg.JWTSecret)
	reminderSvc := reminders.NewService(a.pool, notificationSvc, settingsStore)
	reportSvc := reports.NewService(a.pool, notificationSvc, a.cfg.ReportDir)

	a.jobs = jobs.New(a.pool)
	a.jobs.Register(jobs.JobReminderSweep, reminderSvc.Sweep)
	a.jobs.Register(jobs.JobWeeklyReport, reportSvc.WeeklyManagerReports)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(a.metrics))
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.BodyLimit(a.cfg.MaxBodyBytes))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := a.pool.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	authH := authhandler.New(authSvc)
	employeesH := employees.New(employeeStore)
	projectsH := projects.New(projectSvc, employeeStore, authSvc)
	assignmentsH := assignments.New(assignmentSvc, authSvc)
	requestsH := daterequests.New(requestSvc, employeeStore, auditor)
	tasksH := tasks.New(taskSvc, authSvc)
	timesheetsH := timesheets.New(timesheetSvc, employeeStore, authSvc)
	notificationsH := notificationsapi.New(notificationSvc)
	reportsH := reportsapi.New(reportSvc, employeeStore, func(jobType string) {
		a.jobs.Enqueue(jobs.Job{Type: jobType})
	})
	settingsH := settingsapi.New(settingsStore)
	auditH := auditapi.New(auditor)

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authH.Routes())

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(a.cfg.JWTSecret))

			perm := func(p string) func(http.Handler) http.Handler {
				return middleware.RequirePermission(authSvc, p)
			}

			r.Mount("/projects", projectsH.Routes())
			r.Mount("/assignments", assignmentsH.Routes())
			r.With(perm(authdomain.PermRequestsRead)).Mount("/date-requests", requestsH.Routes())
			r.Mount("/tasks", tasksH.Routes())
			r.With(perm(authdomain.PermTimesheetsRead)).Mount("/timesheets", timesheetsH.Routes())
			r.With(perm(authdomain.PermNotificationsRead)).Mount("/notifications", notificationsH.Routes())
			r.With(perm(authdomain.PermReportsRead)).Mount("/reports", reportsH.Routes())
			r.With(perm(authdomain.PermSettingsRead)).Mount("/settings", settingsH.ReadRoutes())
			r.With(perm(authdomain.PermAuditRead)).Mount("/audit", auditH.Routes())

			r.Route("/admin", func(r chi.Router) {
				r.With(perm(authdomain.PermSettingsWrite)).Mount("/settings", settingsH.WriteRoutes())
				r.Group(func(r chi.Router) {
					r.Use(perm(authdomain.PermSystemAdmin))
					r.Mount("/employees", employeesH.Routes())
					r.Mount("/users", authH.AdminRoutes())
					r.Mount("/jobs", reportsH.AdminRoutes(jobs.JobReminderSweep, jobs.JobWeeklyReport))
				})
			})

			r.With(perm(authdomain.PermReportsRead)).Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
				writeMetrics(w, req, a.metrics)
			})
		})
	})

	a.router = r
}

// Run starts the HTTP server and the job scheduler and blocks until the
// process receives a shutdown signal.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.jobs.Start(ctx, a.cfg.ReminderInterval, a.cfg.WeeklyReportInterval)

	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", a.cfg.Addr, "env", a.cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}

	a.jobs.Stop()
	a.pool.Close()
	return nil
}

// Router exposes the HTTP handler for tests.
func (a *App) Router() http.Handler {
	return a.router
}

func writeMetrics(w http.ResponseWriter, r *http.Request, collector *metrics.Collector) {
	api.Success(w, r, collector.Snapshot())
}
