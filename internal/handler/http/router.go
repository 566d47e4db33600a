package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/training-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/training-backend-go/internal/pkg/metrics"
)

// RouterConfig carries the cross-cutting pieces of the router. Metrics and
// Gatherer are optional; without a Gatherer there is no /metrics route.
type RouterConfig struct {
	Logger      *slog.Logger
	LogLevel    slog.Level
	CORSOrigins []string
	Metrics     *metrics.HTTP
	Gatherer    prometheus.Gatherer
}

type Handlers struct {
	Auth      AuthHandler
	Users     UserHandler
	Employees EmployeeHandler
	Programs  ProgramHandler
	Sessions  SessionHandler
	Results   ResultHandler
	NewHire   NewHireHandler
	Dashboard DashboardHandler
	ChangeLog ChangeLogHandler
	Events    EventHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(cfg.Gatherer))
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Get("/login/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Authenticated by the short-lived token in ?token=
		r.Get("/events", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Get("/auth/me", h.Auth.Me)
			r.Get("/auth/sse-token", h.Auth.SSEToken)

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionViewEmployees)).Group(func(r chi.Router) {
					r.Get("/", h.Employees.List)
					r.Get("/{id}", h.Employees.Get)
				})
				r.With(middleware.RequirePermission(user.PermissionViewResults)).Get("/{id}/history", h.Employees.History)
				r.With(middleware.RequirePermission(user.PermissionEditEmployees)).Group(func(r chi.Router) {
					r.Post("/", h.Employees.Create)
					r.Put("/{id}", h.Employees.Update)
					r.Delete("/{id}", h.Employees.Deactivate)
				})
			})

			r.Route("/programs", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionViewPrograms)).Group(func(r chi.Router) {
					r.Get("/", h.Programs.List)
					r.Get("/{id}", h.Programs.Get)
				})
				r.With(middleware.RequirePermission(user.PermissionEditPrograms)).Group(func(r chi.Router) {
					r.Post("/", h.Programs.Create)
					r.Put("/{id}", h.Programs.Update)
					r.Delete("/{id}", h.Programs.Delete)
				})
			})

			r.Route("/sessions", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionViewSessions)).Group(func(r chi.Router) {
					r.Get("/", h.Sessions.List)
					r.Get("/{id}", h.Sessions.Get)
				})
				r.With(middleware.RequirePermission(user.PermissionEditSessions)).Group(func(r chi.Router) {
					r.Post("/", h.Sessions.Create)
					r.Put("/{id}", h.Sessions.Update)
					r.Delete("/{id}", h.Sessions.Cancel)
				})
			})

			// No DELETE route: results are corrected, never removed.
			r.Route("/results", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionViewResults)).Group(func(r chi.Router) {
					r.Get("/", h.Results.List)
					r.Get("/{id}", h.Results.Get)
				})
				r.With(middleware.RequirePermission(user.PermissionEditResults)).Group(func(r chi.Router) {
					r.Post("/", h.Results.Create)
					r.Put("/{id}", h.Results.Update)
				})
			})

			r.Route("/newhire", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionViewNewHire)).Group(func(r chi.Router) {
					r.Get("/teams", h.NewHire.ListTeams)
					r.Get("/trainees", h.NewHire.ListTrainees)
					r.Get("/trainees/{id}", h.NewHire.GetTrainee)
					r.Get("/resignations", h.NewHire.ListResignations)
					r.Get("/meetings", h.NewHire.ListMeetings)
				})
				r.With(middleware.RequirePermission(user.PermissionEditNewHire)).Group(func(r chi.Router) {
					r.Post("/teams", h.NewHire.CreateTeam)
					r.Put("/teams/{id}", h.NewHire.UpdateTeam)
					r.Delete("/teams/{id}", h.NewHire.DeleteTeam)
					r.Post("/trainees", h.NewHire.CreateTrainee)
					r.Put("/trainees/{id}", h.NewHire.UpdateTrainee)
					r.Post("/trainees/{id}/resign", h.NewHire.ResignTrainee)
					r.Post("/meetings", h.NewHire.CreateMeeting)
					r.Put("/meetings/{id}", h.NewHire.UpdateMeeting)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionViewDashboard))
				r.Get("/", h.Dashboard.Overview)
				r.Get("/stats", h.Dashboard.Stats)
				r.Get("/monthly", h.Dashboard.Monthly)
				r.Get("/grades", h.Dashboard.Grades)
				r.Get("/retraining", h.Dashboard.Retraining)
				r.Get("/expiring", h.Dashboard.Expiring)
				r.Get("/matrix", h.Dashboard.Matrix)
			})

			r.With(middleware.RequirePermission(user.PermissionViewDashboard)).Get("/changelog", h.ChangeLog.List)

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionManageUsers))
				r.Get("/", h.Users.List)
				r.Post("/", h.Users.Create)
				r.Put("/{id}/role", h.Users.UpdateRole)
			})
		})
	})
	return r
}
