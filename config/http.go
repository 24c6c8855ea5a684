package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":3001"`

	// CORSAllowedOrigins is the list of origins allowed to call the API.
	// The legacy backend answered any origin; "*" preserves that.
	CORSAllowedOrigins []string `env:"HTTP_CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.Addr == "" {
		h.Addr = ":3001"
	}
	if len(h.CORSAllowedOrigins) == 0 {
		h.CORSAllowedOrigins = []string{"*"}
	}
}
