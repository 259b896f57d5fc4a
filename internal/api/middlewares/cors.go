package middlewares

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/pegkeeper/dollar-protocol-service/internal/config"
)

const maxAge = 300

// CorsMiddleware allows the configured origins to read the views and to
// trigger an advance.
func CorsMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{traceIdHeader},
		MaxAge:         maxAge,
	})
	return c.Handler
}
