package middlewares

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/unrolled/secure"
)

// The swagger UI pulls its assets from public CDNs. Everything else only
// ever serves JSON, so it gets a policy that loads nothing.
const (
	apiContentSecurityPolicy     = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'"
	swaggerContentSecurityPolicy = "default-src 'self'; " +
		"script-src 'self' 'unsafe-inline' https://cdnjs.cloudflare.com; " +
		"style-src 'self' 'unsafe-inline' https://cdnjs.cloudflare.com; " +
		"img-src 'self' data: https://cdnjs.cloudflare.com; " +
		"font-src 'self' https://cdnjs.cloudflare.com; " +
		"object-src 'none'; frame-ancestors 'self'; base-uri 'self'"
)

func newSecure(csp string) *secure.Secure {
	return secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ContentSecurityPolicy: csp,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	})
}

// SecurityHeadersMiddleware sets the security headers of every response.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	api := newSecure(apiContentSecurityPolicy)
	docs := newSecure(swaggerContentSecurityPolicy)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sec := api
			if strings.HasPrefix(r.URL.Path, "/swagger/") {
				sec = docs
			}
			if err := sec.Process(w, r); err != nil {
				log.Error().Err(err).Msg("error while applying security headers")
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
