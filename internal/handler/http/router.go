package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/taplog/attendance-backend-go/internal/handler/http/middleware"
	"github.com/taplog/attendance-backend-go/internal/pkg/jwt"
)

type RouterDeps struct {
	JWTService      jwt.Service
	AuthHandler     AuthHandler
	ScanHandler     ScanHandler
	EmployeeHandler EmployeeHandler
	ReportHandler   ReportHandler
	SettingsHandler SettingsHandler
	OverrideHandler OverrideHandler

	AllowedOrigins []string
	Env            string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", deps.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Public: the kiosk readers carry no credentials.
		r.Post("/scan", deps.ScanHandler.Scan)
		r.Post("/break/start", deps.ScanHandler.BreakStart)
		r.Post("/break/end", deps.ScanHandler.BreakEnd)
		r.Get("/health", deps.ReportHandler.Status)
		r.Get("/attendance/today", deps.ReportHandler.TodayFeed)
		r.Get("/attendance/live-stats", deps.ReportHandler.LiveStats)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", deps.AuthHandler.Login)
			r.Post("/refresh", deps.AuthHandler.Refresh)
			r.Post("/logout", deps.AuthHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", deps.EmployeeHandler.List)
				r.Get("/{id}", deps.EmployeeHandler.Get)
				r.Get("/{id}/analytics", deps.ReportHandler.EmployeeAnalytics)
				r.Get("/{id}/absence", deps.ReportHandler.EmployeeAbsence)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", deps.EmployeeHandler.Create)
					r.Put("/{id}", deps.EmployeeHandler.Update)
					r.Delete("/{id}", deps.EmployeeHandler.Deactivate)
					r.Delete("/{id}/attendance", deps.EmployeeHandler.PurgeAttendance)
				})
			})

			r.Get("/status", deps.ReportHandler.Status)

			r.Route("/reports", func(r chi.Router) {
				r.Get("/daily", deps.ReportHandler.Daily)
				r.Get("/monthly", deps.ReportHandler.Monthly)
				r.Get("/trends", deps.ReportHandler.Trends)
				r.Get("/absence", deps.ReportHandler.Absence)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/settings", func(r chi.Router) {
					r.Get("/", deps.SettingsHandler.Get)
					r.Put("/", deps.SettingsHandler.Update)
				})

				r.Route("/absence-overrides", func(r chi.Router) {
					r.Get("/", deps.OverrideHandler.List)
					r.Post("/", deps.OverrideHandler.Upsert)
					r.Delete("/{id}", deps.OverrideHandler.Delete)
				})
			})
		})
	})
	return r
}
