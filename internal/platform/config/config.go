package config

import (
	"net/netip"
	"os"
	"strconv"
	"strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string
	MetricsAddr    string
	Environment    string
	MaxUploadBytes int64
	TrustedProxies []netip.Prefix
}

// DefaultMaxUploadBytes bounds the worker registration multipart body
// (two file parts plus the form fields).
const DefaultMaxUploadBytes = 10 << 20

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("MERIDIDI_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	metricsAddr := os.Getenv("MERIDIDI_METRICS_ADDR")
	if metricsAddr == "" {
		metricsAddr = ":9090"
	}
	environment := os.Getenv("MERIDIDI_ENV")
	if environment == "" {
		environment = "development"
	}

	maxUpload := int64(DefaultMaxUploadBytes)
	if raw := os.Getenv("MERIDIDI_MAX_UPLOAD_BYTES"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			maxUpload = n
		}
	}

	return Server{
		Addr:           addr,
		MetricsAddr:    metricsAddr,
		Environment:    environment,
		MaxUploadBytes: maxUpload,
		TrustedProxies: parseProxies(os.Getenv("MERIDIDI_TRUSTED_PROXIES")),
	}
}

// parseProxies reads a comma-separated CIDR list. Entries that do not
// parse are skipped rather than failing startup.
func parseProxies(raw string) []netip.Prefix {
	if raw == "" {
		return nil
	}
	var prefixes []netip.Prefix
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, prefix)
		}
	}
	return prefixes
}
