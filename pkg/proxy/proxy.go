// Package proxy implements a whitelisting forwarder for the weather and
// currency APIs the frontend calls. It checks the target hostname against a
// fixed allow list, conditionally injects the Open-Meteo API key, and relays
// the upstream response with permissive CORS headers.
package proxy

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
)

// openMeteoHost is the only upstream that gets the API key injected.
const openMeteoHost = "api.open-meteo.com"

// DefaultAllowedHosts mirrors the allow list of the Cloudflare worker this
// replaces.
var DefaultAllowedHosts = []string{
	"api.open-meteo.com",
	"openexchangerates.org",
	"api.frankfurter.app",
	"api.exchangerate-api.com",
}

// Config holds the forwarder's settings.
type Config struct {
	AllowedHosts    []string
	OpenMeteoAPIKey string
	Timeout         time.Duration
}

// Handler forwards GET requests to the whitelisted upstream named in the
// url query parameter. One attempt per request with a hard timeout; any
// transport failure surfaces as a generic error.
type Handler struct {
	allowed map[string]bool
	apiKey  string
	client  *http.Client
}

// NewHandler builds a Handler from config, applying defaults for an empty
// allow list and timeout.
func NewHandler(cfg Config) *Handler {
	hosts := cfg.AllowedHosts
	if len(hosts) == 0 {
		hosts = DefaultAllowedHosts
	}
	allowed := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		allowed[h] = true
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Handler{
		allowed: allowed,
		apiKey:  cfg.OpenMeteoAPIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		sendProxyError(w, http.StatusBadRequest, "Missing url parameter")
		return
	}

	parsed, err := url.Parse(target)
	if err != nil || parsed.Hostname() == "" {
		sendProxyError(w, http.StatusBadRequest, "Invalid target URL format")
		return
	}

	if !h.allowed[parsed.Hostname()] {
		sendProxyError(w, http.StatusForbidden, "Domain not allowed")
		return
	}

	if parsed.Hostname() == openMeteoHost {
		if h.apiKey != "" {
			injectAPIKey(parsed, h.apiKey)
			log.Debug("Using API key for authenticated Open-Meteo request")
		} else {
			log.Debug("No API key found; proceeding with non-authenticated Open-Meteo call")
		}
	}

	resp, err := h.client.Get(parsed.String())
	if err != nil {
		log.Errorf("Proxy fetch failed: %v", err)
		sendProxyError(w, http.StatusInternalServerError, "Proxy error")
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Warnf("Failed to relay upstream body: %v", err)
	}
}

// injectAPIKey sets (or overwrites) the apikey query parameter.
func injectAPIKey(u *url.URL, key string) {
	q := u.Query()
	q.Set("apikey", key)
	u.RawQuery = q.Encode()
}

func sendProxyError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
