package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureHeaders applies standard security headers.
func SecureHeaders(isDevelopment bool) func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		IsDevelopment:         isDevelopment,
	})
	return secureMiddleware.Handler
}
