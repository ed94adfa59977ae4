package http

import (
	"log/slog"
	"os"

	"github.com/facilops/payroll-backend-go/internal/handler/http/middleware"
	"github.com/facilops/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	env string,
	payrollHandler PayrollHandler,
	attendanceHandler AttendanceHandler,
	assignmentHandler AssignmentHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/payrolls", func(r chi.Router) {
				r.Post("/calculate", payrollHandler.Calculate)
				r.Get("/", payrollHandler.List)
				r.Get("/overview", payrollHandler.Overview)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", payrollHandler.Get)
					r.Post("/recalculate", payrollHandler.Recalculate)
					r.Post("/payments", payrollHandler.RecordPayment)
					r.Get("/payments", payrollHandler.PaymentHistory)
				})
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/{id}", attendanceHandler.Get)
				r.Put("/{id}", attendanceHandler.Update)
			})

			r.Route("/assignments", func(r chi.Router) {
				r.Get("/{id}", assignmentHandler.Get)
				r.Put("/{id}", assignmentHandler.Update)
			})

			r.Route("/employees/{employeeID}", func(r chi.Router) {
				r.Get("/attendances", attendanceHandler.ListByEmployee)
				r.Get("/assignments", assignmentHandler.ListByEmployee)
			})
		})
	})
	return r
}
