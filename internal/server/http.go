// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-visit-keeper/internal/config"
	"github.com/MKhiriev/go-visit-keeper/internal/logger"
)

// ShutdownTimeout bounds the graceful shutdown of the HTTP server.
const ShutdownTimeout = 5 * time.Second

type httpServer struct {
	server *http.Server
	logger *logger.Logger

	mu   sync.Mutex
	addr string
}

// NewHTTPServer creates the control API server for handler.
func NewHTTPServer(handler http.Handler, cfg config.ClientServer, logger *logger.Logger) (Server, error) {
	if cfg.HTTPAddress == "" {
		return nil, ErrNoAddress
	}

	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
		addr:   cfg.HTTPAddress,
	}, nil
}

func (h *httpServer) Addr() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.addr
}

func (h *httpServer) Run(ctx context.Context) {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		h.logger.Err(err).Str("func", "*httpServer.Run").Str("addr", h.server.Addr).Msg("error listening")
		return
	}

	h.mu.Lock()
	h.addr = ln.Addr().String()
	h.mu.Unlock()

	served := make(chan struct{})
	go func() {
		defer close(served)
		h.logger.Info().Str("addr", ln.Addr().String()).Msg("launching control API")
		if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Err(err).Str("func", "*httpServer.Run").Msg("control API stopped unexpectedly")
		}
	}()

	select {
	case <-ctx.Done():
	case <-served:
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()
	if err := h.server.Shutdown(shutdownCtx); err != nil {
		h.logger.Err(err).Str("func", "*httpServer.Run").Msg("error shutting down control API")
	}
	<-served
	h.logger.Info().Msg("control API shut down gracefully")
}
