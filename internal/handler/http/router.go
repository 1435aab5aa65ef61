package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Env            string
	Version        string
	AllowedOrigins []string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	payrollHandler PayrollHandler,
	contractHandler ContractHandler,
	leaveHandler LeaveHandler,
	alertHandler AlertHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-engine"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

		r.Route("/payroll", func(r chi.Router) {
			// dry runs are open to every role; persisting is checked in the handler
			r.Post("/compute", payrollHandler.Compute)
			r.Get("/results/{year}/{month}", payrollHandler.ListResults)
			r.Get("/results/{employeeID}/{year}/{month}", payrollHandler.GetResult)
			r.Get("/snapshot", payrollHandler.GetSnapshot)

			r.With(middleware.RequireMutator).Post("/run", payrollHandler.Run)
		})

		r.Route("/contracts/{id}", func(r chi.Router) {
			r.Use(middleware.RequireMutator)
			r.Post("/renew-trial", contractHandler.RenewTrial)
			r.Post("/convert-cdd", contractHandler.ConvertToCDD)
			r.Post("/convert-cdi", contractHandler.ConvertToCDI)
			r.Post("/terminate", contractHandler.Terminate)
		})

		r.Route("/leave", func(r chi.Router) {
			r.Get("/balances/{employeeID}", leaveHandler.GetBalances)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireMutator)
				r.Post("/carryover", leaveHandler.Carryover)
				r.Post("/accrue", leaveHandler.Accrue)
			})
		})

		r.Route("/alerts", func(r chi.Router) {
			r.Get("/{employeeID}", alertHandler.ListAlerts)
			r.Get("/{employeeID}/stream", alertHandler.Stream)
			r.With(middleware.RequireMutator).Get("/stream", alertHandler.Stream)
		})
	})
	return r
}
