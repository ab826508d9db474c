package middleware

import "net/http"

// NewMaxBodySizeHandler returns a middleware that limits incoming request
// bodies to limit bytes. A request advertising a Content-Length above the
// limit is rejected with 413 before any body bytes are read; bodies without a
// Content-Length are wrapped in http.MaxBytesReader so the downstream JSON
// decode fails once the limit is crossed.
//
// Share-token imports are the reason this exists: a token is a whole trip, so
// the import body is the largest legitimate payload the API accepts, and
// anything far beyond that is garbage or abuse.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
