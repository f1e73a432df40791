/*
server.go - HTTP server and routing

PURPOSE:
  Builds the chi router: middleware stack, CORS, and the full route tree
  for the platform, tenant-admin and employee surfaces.

MIDDLEWARE STACK (in order):
  1. RequestID - tags each request for log correlation
  2. RealIP    - honors X-Forwarded-For behind proxies
  3. Recoverer - turns panics into 500s
  4. requestLogger - zerolog per-request line (method, path, status, duration)
  5. CORS      - permissive; this service runs behind a trusted gateway

SEE ALSO:
  - handlers.go: Request handlers
  - ../cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// NewRouter assembles the middleware stack and route tree.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"}, "")
	})

	r.Route("/api/companies", func(r chi.Router) {
		r.Get("/", h.ListCompanies)
		r.Post("/", h.CreateCompany)

		r.Route("/{companyID}", func(r chi.Router) {
			r.Get("/", h.GetCompany)
			r.Patch("/", h.UpdateCompany)
			r.Delete("/", h.DeleteCompany)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.ListEmployees)
				r.Post("/", h.CreateEmployee)

				r.Route("/{employeeID}", func(r chi.Router) {
					r.Get("/", h.GetEmployee)
					r.Patch("/", h.UpdateEmployee)
					r.Delete("/", h.DeleteEmployee)

					r.Route("/time-entries", func(r chi.Router) {
						r.Get("/", h.ListEmployeeTimeEntries)
						r.Post("/", h.CreateTimeEntry)
						r.Patch("/{entryID}", h.UpdateTimeEntry)
						r.Delete("/{entryID}", h.DeleteTimeEntry)
					})

					r.Get("/calendar/{year}/{month}", h.GetCalendar)
				})
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.ListProjects)
				r.Post("/", h.CreateProject)
				r.Patch("/{projectID}", h.UpdateProject)
				r.Delete("/{projectID}", h.DeleteProject)
			})

			r.Route("/workplaces", func(r chi.Router) {
				r.Get("/", h.ListWorkplaces)
				r.Post("/", h.CreateWorkplace)
				r.Patch("/{workplaceID}", h.UpdateWorkplace)
				r.Delete("/{workplaceID}", h.DeleteWorkplace)
			})

			r.Get("/working-hours", h.GetWorkingHours)
			r.Put("/working-hours", h.UpdateWorkingHours)

			r.Route("/time-entries", func(r chi.Router) {
				r.Get("/", h.ListCompanyTimeEntries)
				r.Patch("/{entryID}/approve", h.ApproveTimeEntry)
				r.Get("/{entryID}/audit-log", h.GetAuditLog)
			})

			r.Post("/reports/generate", h.GenerateReport)
		})
	})

	return r
}

// requestLogger emits one structured line per request.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
