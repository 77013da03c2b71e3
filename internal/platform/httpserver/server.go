// Package httpserver wraps http.Server with the timeouts every listener
// in this service should carry.
package httpserver

import (
	"net/http"
	"time"
)

// New returns an http.Server for the given address and handler.
// ReadTimeout is sized for multipart uploads, not bare JSON.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
