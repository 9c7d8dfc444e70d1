package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Pinger is satisfied by the snapshot store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the liveness endpoint.
type HealthHandler struct {
	DB     Pinger
	logger *zap.Logger
}

// NewHealthHandler creates a new instance of HealthHandler. db may be nil when
// no snapshot store is configured.
func NewHealthHandler(db Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{DB: db, logger: logger}
}

// GetHealthHandler reports whether the server and its store are usable.
// GET /healthz
func (h *HealthHandler) GetHealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.Ping(ctx); err != nil {
			h.logger.Warn("ヘルスチェック: データベースに接続できません", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintln(w, "database unavailable")
			return
		}
	}
	fmt.Fprintln(w, "ok")
}
