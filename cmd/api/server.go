package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"wisewallet/internal/shared/config"
	"wisewallet/internal/shared/middleware"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Handler      http.Handler
	Addr         string
	TLSEnabled   bool
	CertPath     string
	KeyPath      string
	RedirectHTTP bool
	AllowedHosts []string
}

// StartServers creates and starts the main server and optional redirect server.
// Returns both servers (redirect is nil if not enabled) and a channel that
// receives the main server's error if it stops unexpectedly.
func StartServers(scfg ServerConfig, logger *slog.Logger) (*http.Server, *http.Server, <-chan error) {
	srv := &http.Server{
		Addr:         scfg.Addr,
		Handler:      scfg.Handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	var redirectSrv *http.Server

	// Start HTTP redirect server if TLS redirect is enabled
	if scfg.TLSEnabled && scfg.RedirectHTTP {
		redirectSrv = createRedirectServer(scfg.AllowedHosts)
		go func() {
			logger.Info("HTTP redirect server starting", "addr", redirectSrv.Addr)
			if err := redirectSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("HTTP redirect server error", "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		var err error
		if scfg.TLSEnabled {
			logger.Info("HTTPS server starting", "addr", scfg.Addr)
			err = srv.ListenAndServeTLS(scfg.CertPath, scfg.KeyPath)
		} else {
			logger.Info("HTTP server starting", "addr", scfg.Addr)
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	return srv, redirectSrv, errCh
}

// GracefulShutdown stops accepting requests and waits for in-flight ones.
func GracefulShutdown(ctx context.Context, srv, redirectSrv *http.Server, logger *slog.Logger) {
	logger.Info("server shutting down")

	if redirectSrv != nil {
		if err := redirectSrv.Shutdown(ctx); err != nil {
			logger.Error("error shutting down HTTP redirect server", "error", err)
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error shutting down main server", "error", err)
	}

	logger.Info("server stopped")
}

// createRedirectServer creates an HTTP server that redirects all requests to HTTPS.
func createRedirectServer(allowedHosts []string) *http.Server {
	return &http.Server{
		Addr:         ":80",
		Handler:      redirectHandler(allowedHosts),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func redirectHandler(allowedHosts []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Header.Get("X-Forwarded-Host")
		if host == "" {
			host = r.Host
		}

		if !middleware.IsHostAllowed(host, allowedHosts) {
			http.Error(w, "Invalid host", http.StatusBadRequest)
			return
		}

		http.Redirect(w, r, "https://"+canonicalHost(host)+r.URL.RequestURI(), http.StatusMovedPermanently)
	})
}

// canonicalHost drops the port so the redirect targets the default HTTPS port.
func canonicalHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		if strings.Contains(h, ":") {
			return "[" + h + "]"
		}
		return h
	}
	return host
}

// NewServerConfigFromConfig creates ServerConfig from application config.
func NewServerConfigFromConfig(handler http.Handler, cfg *config.Config) ServerConfig {
	return ServerConfig{
		Handler:      handler,
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		TLSEnabled:   cfg.TLS.Enabled,
		CertPath:     cfg.TLS.CertPath,
		KeyPath:      cfg.TLS.KeyPath,
		RedirectHTTP: cfg.TLS.RedirectHTTP,
		AllowedHosts: cfg.Server.AllowedHosts,
	}
}
