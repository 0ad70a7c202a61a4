package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"clinic-records/internal/config"
	"clinic-records/internal/handler"
	"clinic-records/internal/middleware"
	"clinic-records/internal/model"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Patient *handler.PatientHandler
	Health  *handler.HealthHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Logging)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", h.Health.Live)
	r.Get("/health/ready", h.Health.Ready)

	requireAuth := authMiddleware.RequireAuth
	adminOnly := authMiddleware.RequireRoles(model.RoleAdmin)
	clinicianOnly := authMiddleware.RequireRoles(model.RoleClinician)
	staff := authMiddleware.RequireRoles(model.RoleAdmin, model.RoleClinician)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.Auth.Login)
			auth.With(requireAuth).Get("/me", h.Auth.Me)
		})

		api.Route("/patients", func(patients chi.Router) {
			patients.Use(requireAuth)

			patients.Get("/", h.Patient.List)
			patients.With(staff).Post("/", h.Patient.Create)
			patients.Get("/{patient_id}", h.Patient.Get)
			patients.With(adminOnly).Delete("/{patient_id}", h.Patient.Delete)
			patients.With(staff).Get("/{patient_id}/notes", h.Patient.ListNotes)
			patients.With(clinicianOnly).Post("/{patient_id}/notes", h.Patient.AddNote)
		})

		api.Route("/users", func(users chi.Router) {
			users.Use(requireAuth, adminOnly)

			users.Get("/", h.User.List)
			users.Post("/", h.User.Create)
			users.Delete("/{username}", h.User.Delete)
		})
	})

	return r
}
