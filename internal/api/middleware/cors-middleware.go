package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSHandler はCORS設定を適用するミドルウェアを返します。
// 埋め込み先 (Notion など) から画像として読まれるだけなので GET のみ許可します。
func CORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "If-None-Match"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         600,
	})
	return c.Handler
}
