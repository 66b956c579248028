package handlers

import (
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/applianceiq/consumables-engine/pkg/config"
)

// StaticHandler serves on-disk static content: contractor photos and other
// assets under /assets/, and an optional built frontend at the root.
type StaticHandler struct {
	cfg    *config.HTTPConfig
	logger *zap.Logger
}

// NewStaticHandler creates a new static content handler.
func NewStaticHandler(cfg *config.HTTPConfig, logger *zap.Logger) *StaticHandler {
	return &StaticHandler{cfg: cfg, logger: logger}
}

// RegisterRoutes registers static routes for each configured directory that
// exists. A configured but missing directory is logged and skipped rather
// than failing startup.
func (h *StaticHandler) RegisterRoutes(mux *http.ServeMux) {
	if dir := h.cfg.AssetsDir; dir != "" {
		if dirExists(dir) {
			mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(dir))))
			h.logger.Info("Serving assets", zap.String("dir", dir))
		} else {
			h.logger.Warn("Assets directory not found, skipping", zap.String("dir", dir))
		}
	}

	if dir := h.cfg.FrontendDir; dir != "" {
		if dirExists(dir) {
			mux.Handle("GET /", http.FileServer(http.Dir(dir)))
			h.logger.Info("Serving frontend", zap.String("dir", dir))
		} else {
			h.logger.Warn("Frontend directory not found, skipping", zap.String("dir", dir))
		}
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
