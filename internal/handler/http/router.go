package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/workforcehq/hr-workflow-go/internal/config"
	"github.com/workforcehq/hr-workflow-go/internal/handler/http/middleware"
	"github.com/workforcehq/hr-workflow-go/internal/pkg/jwt"
)

func NewRouter(
	cfg config.AppConfig,
	jwtService jwt.Service,
	requestHandler RequestHandler,
	timesheetHandler TimesheetHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-workflow"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/requests", func(r chi.Router) {
				r.Post("/check-in", requestHandler.CreateCheckIn)
				r.Post("/check-out", requestHandler.CreateCheckOut)
				r.Post("/leave", requestHandler.CreateLeave)
				r.Post("/wfh", requestHandler.CreateWFH)
				r.Post("/timesheet-correction", requestHandler.CreateTimesheetUpdate)

				r.Get("/", requestHandler.List)
				r.Get("/my", requestHandler.ListMine)
				r.Post("/bulk-approve", requestHandler.BulkApprove)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", requestHandler.Get)
					r.Post("/approve", requestHandler.Approve)
					r.Post("/reject", requestHandler.Reject)
					r.Post("/delegate", requestHandler.Delegate)
				})
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Get("/my", timesheetHandler.ListMine)
				r.Get("/my/{date}", timesheetHandler.GetByDate)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Post("/mark-read", notificationHandler.MarkAsRead)
				r.Post("/mark-all-read", notificationHandler.MarkAllAsRead)
				r.Get("/stream", notificationHandler.Stream)
			})
		})
	})
	return r
}
