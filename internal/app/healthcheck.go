package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/needle-mirror/com.unity.platforms.web/internal/devsession"
)

// HealthStatus is the body served on /health.
type HealthStatus struct {
	Status  string            `json:"status"`
	Session devsession.Status `json:"session"`
	// Proxy is the result of a handshake against a running proxy.
	Proxy string `json:"proxy,omitempty"`
}

// probeProxy is replaced in tests.
var probeProxy = devsession.ProbeProxy

func (a *App) healthStatus(ctx context.Context) HealthStatus {
	st := HealthStatus{Status: "ok", Session: a.session.Status()}
	if st.Session.Proxy == devsession.Running {
		if err := probeProxy(ctx, st.Session.ProxyPort); err != nil {
			st.Status = "degraded"
			st.Proxy = err.Error()
		} else {
			st.Proxy = "ok"
		}
	}
	return st
}

// healthHandler serves the dev session status as JSON.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	st := a.healthStatus(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if st.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if err := json.NewEncoder(w).Encode(st); err != nil {
		a.logger.Debug("Failed to write health response.", "error", err)
	}
}

// startHealthCheckServer listens on port and serves /health in the
// background. It returns once the listener is bound.
func (a *App) startHealthCheckServer(port int) error {
	a.logger.Debug("Configuring health check server.")

	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)

	addr := fmt.Sprintf(":%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to start health check server: %w", err)
	}

	a.healthAddr = ln.Addr().String()
	a.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://%s/health", ln.Addr()))
		if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Health check server failed unexpectedly", "error", err)
		}
	}()
	return nil
}

func (a *App) closeHealthCheckServer(ctx context.Context) error {
	if a.httpServer == nil {
		a.logger.Debug("Health check server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	a.logger.Info("🩺 Shutting down health check server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("Health check server shutdown failed", "error", err)
		return err
	}
	a.logger.Debug("Health check server shut down gracefully.")
	return nil
}
