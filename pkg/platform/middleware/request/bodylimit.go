package request

import "net/http"

// BodyLimit caps the request body at maxBytes using http.MaxBytesReader.
// Oversized bodies fail at read time with a 413 from the http package.
// The worker endpoint carries two file uploads, so the limit is sized for
// multipart payloads, not bare JSON.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
