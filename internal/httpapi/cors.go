package httpapi

import (
	"net/http"
	"strconv"

	"demo/foodorders/internal/config"
)

// CORS stamps the JSON content type and the cross-origin headers on every
// response. Preflight answers come from Handler.Preflight.
func CORS(cfg config.CORS) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Content-Type", "application/json")
			h.Set("Access-Control-Allow-Origin", cfg.AllowOrigin)
			h.Set("Access-Control-Allow-Headers", cfg.AllowHeaders)
			h.Set("Access-Control-Allow-Methods", cfg.AllowMethods)
			if cfg.AllowOrigin != "*" {
				h.Add("Vary", "Origin")
			}
			next.ServeHTTP(w, r)
		})
	}
}

func maxAge(cfg config.CORS) string { return strconv.Itoa(cfg.MaxAge) }
