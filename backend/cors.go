package backend

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	AllowOriginHeader      = "Access-Control-Allow-Origin"
	AllowHeadersHeader     = "Access-Control-Allow-Headers"
	AllowMethodsHeader     = "Access-Control-Allow-Methods"
	AllowCredentialsHeader = "Access-Control-Allow-Credentials"
	MaxAgeHeader           = "Access-Control-Max-Age"
)

// defaultAllowHeaders is used when AllowHeaders is "*"
var defaultAllowHeaders = []string{"Content-Type", "Accept", "Last-Event-ID", "Mcp-Session-Id"}

// Cors is the cross origin policy of the JSON-RPC endpoints; a browser viewer is usually served from another origin
// than the inference host.
type Cors struct {
	AllowOrigins     []string `yaml:"AllowOrigins,omitempty"`
	AllowHeaders     []string `yaml:"AllowHeaders,omitempty"`
	AllowCredentials bool     `yaml:"AllowCredentials,omitempty"`
	MaxAge           int      `yaml:"MaxAge,omitempty"`
}

func (c *Cors) allows(origin string) bool {
	for _, candidate := range c.AllowOrigins {
		if candidate == "*" || candidate == origin {
			return true
		}
	}
	return false
}

func (c *Cors) allowHeaders() string {
	if len(c.AllowHeaders) == 1 && c.AllowHeaders[0] == "*" {
		return strings.Join(defaultAllowHeaders, ",")
	}
	return strings.Join(c.AllowHeaders, ",")
}

// Handler applies the policy: requests from other origins are rejected, preflight requests are answered directly.
func (c *Cors) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}
		if !c.allows(origin) {
			http.Error(w, "origin not allowed", http.StatusForbidden)
			return
		}
		header := w.Header()
		header.Set(AllowOriginHeader, origin)
		header.Add("Vary", "Origin")
		if c.AllowCredentials {
			header.Set(AllowCredentialsHeader, "true")
		}
		if r.Method != http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		methods := r.Header.Get("Access-Control-Request-Method")
		if methods == "" {
			methods = "GET,POST,DELETE"
		}
		header.Set(AllowMethodsHeader, methods)
		if headers := c.allowHeaders(); headers != "" {
			header.Set(AllowHeadersHeader, headers)
		}
		if c.MaxAge > 0 {
			header.Set(MaxAgeHeader, strconv.Itoa(c.MaxAge))
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// DefaultCors allows any origin
func DefaultCors() *Cors {
	return &Cors{AllowOrigins: []string{"*"}, AllowHeaders: []string{"*"}}
}
