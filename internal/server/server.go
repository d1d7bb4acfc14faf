// Package server exposes the dashboard state over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/visitor-stats/internal/config"
	"github.com/iwvelando/visitor-stats/internal/dashboard"
	"github.com/iwvelando/visitor-stats/internal/export"
	"github.com/iwvelando/visitor-stats/internal/insight"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type handler struct {
	ctx     context.Context
	logger  *zap.Logger
	store   *dashboard.Store
	conf    *config.Configuration
	version string
}

// NewHandler constructs the HTTP handler that serves the dashboard API. Load
// cycles started through the API run under ctx rather than the request, so a
// client that disconnects does not abort them.
func NewHandler(ctx context.Context, logger *zap.Logger, store *dashboard.Store, conf *config.Configuration, version string) http.Handler {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{ctx: ctx, logger: logger, store: store, conf: conf, version: trimmedVersion}

	mux := http.NewServeMux()

	// Latest load cycle, complete
	mux.HandleFunc("/api/dashboard", h.handleDashboard)

	// Derived views
	mux.HandleFunc("/api/insights", h.handleInsights)

	// Rerun a load cycle
	mux.HandleFunc("/api/refresh", h.handleRefresh)

	// Workbook download
	mux.HandleFunc("/api/export", h.handleExport)

	// Effective configuration, secrets redacted
	mux.HandleFunc("/api/config", h.handleConfig)

	mux.HandleFunc("/api/version", h.handleVersion)
	mux.HandleFunc("/healthz", h.handleHealth)

	return mux
}

func (h *handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, h.store.Current())
}

func (h *handler) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	st, err := h.store.Loaded()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable, unavailableMessage(st), "server.handleInsights")
		return
	}
	h.writeJSON(w, http.StatusOK, insight.Build(st, h.conf.Dashboard))
}

func (h *handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	st, err := h.store.Refresh(h.ctx)
	switch {
	case errors.Is(err, dashboard.ErrLoadInProgress):
		h.respondErrorWithOp(w, http.StatusConflict, err.Error(), "server.handleRefresh")
		return
	case err != nil:
		msg := err.Error()
		if st != nil && st.Error != "" {
			msg = st.Error
		}
		h.respondErrorWithOp(w, http.StatusInternalServerError, msg, "server.handleRefresh")
		return
	}

	h.logger.Info("dashboard refreshed",
		zap.String("op", "server.handleRefresh"),
		zap.String("cycle", st.CycleID),
		zap.Duration("duration", time.Since(start)),
	)
	h.writeJSON(w, http.StatusOK, st)
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	st, err := h.store.Loaded()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable, unavailableMessage(st), "server.handleExport")
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, st); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to build workbook: %v", err), "server.handleExport")
		return
	}

	name := "visitor-stats.xlsx"
	if st.ReportingMonth != "" {
		name = fmt.Sprintf("visitor-stats-%s.xlsx", st.ReportingMonth)
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to write workbook",
			zap.String("op", "server.handleExport"),
			zap.Error(err),
		)
	}
}

func (h *handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	redacted := *h.conf
	if redacted.Source.APIKey != "" {
		redacted.Source.APIKey = "REDACTED"
	}

	data, err := yaml.Marshal(&redacted)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode configuration: %v", err), "server.handleConfig")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"yaml":     string(data),
		"warnings": h.conf.ValidateConfiguration(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	st := h.store.Current()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  st.Status,
		"loading": h.store.Loading(),
	})
}

func unavailableMessage(st *dashboard.State) string {
	if st != nil && st.Error != "" {
		return st.Error
	}
	return dashboard.ErrNotLoaded.Error()
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("dashboard request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// Serve runs srv on ln until ctx is cancelled, then shuts it down, waiting
// at most shutdownTimeout for in-flight requests.
func Serve(ctx context.Context, logger *zap.Logger, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	logger.Info("server listening",
		zap.String("op", "server.Serve"),
		zap.String("address", ln.Addr().String()),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server", zap.String("op", "server.Serve"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
