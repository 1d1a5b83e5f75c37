package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const defaultHTTPAddr = ":8080"
const defaultRefreshInterval = 6 * time.Hour
const defaultFetchTimeout = 20 * time.Second

type Config struct {
	HTTPAddr        string
	RatesURL        string
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
	DatabaseDSN     string
}

func Load() (Config, error) {
	addr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if addr == "" {
		addr = defaultHTTPAddr
	}

	refresh := defaultRefreshInterval
	if raw := strings.TrimSpace(os.Getenv("RATES_REFRESH_INTERVAL")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse RATES_REFRESH_INTERVAL: %w", err)
		}
		refresh = parsed
	}

	fetchTimeout := defaultFetchTimeout
	if raw := strings.TrimSpace(os.Getenv("RATES_FETCH_TIMEOUT")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse RATES_FETCH_TIMEOUT: %w", err)
		}
		fetchTimeout = parsed
	}

	dsn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if dsn != "" {
		dsn = normalizeConnectionString(dsn)
	}

	return Config{
		HTTPAddr:        addr,
		RatesURL:        strings.TrimSpace(os.Getenv("RATES_URL")),
		RefreshInterval: refresh,
		FetchTimeout:    fetchTimeout,
		DatabaseDSN:     dsn,
	}, nil
}

// normalizeConnectionString accepts both the lib/pq keyword form and the
// semicolon-separated form (Host=...;Port=...;Database=...) used by our
// deployment tooling, and always emits the lib/pq keyword form.
func normalizeConnectionString(raw string) string {
	if !strings.Contains(raw, ";") && !strings.Contains(raw, "=") {
		return raw
	}

	sep := " "
	if strings.Contains(raw, ";") {
		sep = ";"
	}

	parts := strings.Split(raw, sep)
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
