package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/redmonkez12/daily-diet-api/internal/config"
	"github.com/redmonkez12/daily-diet-api/internal/httputil"
	"github.com/redmonkez12/daily-diet-api/internal/logging"
	"github.com/redmonkez12/daily-diet-api/internal/meal"
	"github.com/redmonkez12/daily-diet-api/internal/metrics"
	"github.com/redmonkez12/daily-diet-api/internal/session"
	"github.com/redmonkez12/daily-diet-api/internal/user"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	userHandler *user.Handler,
	mealHandler *meal.Handler,
	sessionMiddleware *session.Middleware,
	logger *logging.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	// Global middleware
	r.Use(SecurityHeaders)               // Security headers on all responses
	r.Use(middleware.Recoverer)          // Recover from panics
	r.Use(middleware.RequestID)          // Add request ID
	r.Use(middleware.RealIP)             // Set RemoteAddr to real IP
	r.Use(logging.RequestLogger(logger)) // Structured logging with request context
	r.Use(metrics.Middleware)            // Prometheus request instrumentation
	r.Use(middleware.Compress(5))        // Compress responses

	// Public routes
	r.Get("/health", handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Swagger UI - only in development
	// Production builds will not have this route at all
	if cfg.Server.IsDevelopment() {
		log.Println("Swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	} else {
		log.Println("Swagger UI disabled (production mode)")
	}

	// Registration is the only public user route; the session cookie it sets
	// is the credential for everything below.
	r.Post("/users", userHandler.Register)

	// Protected routes (require a resolvable session)
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware.RequireSession)

		r.Get("/users/me", userHandler.Me)

		r.Route("/meals", func(r chi.Router) {
			r.Post("/", mealHandler.Create)
			r.Get("/", mealHandler.List)
			r.Get("/metrics", mealHandler.Metrics)
			r.Get("/{mealID}", mealHandler.Get)
			r.Put("/{mealID}", mealHandler.Update)
			r.Delete("/{mealID}", mealHandler.Delete)
		})
	})

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}
