package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/juristack/lawoffice-backend/internal/infrastructure/config"
)

// Server is the HTTP API server.
type Server struct {
	config     *config.Config
	httpServer *http.Server
	handler    *Handler
	logger     *zap.Logger
	db         *pgxpool.Pool
}

// NewServer wires routes and middleware around the given services.
func NewServer(cfg *config.Config, services *Services, db *pgxpool.Pool, logger *zap.Logger) *Server {
	server := &Server{
		config:  cfg,
		handler: NewHandler(services, logger),
		logger:  logger,
		db:      db,
	}

	mux := server.setupRoutes()

	h := chain(mux,
		requestIDMiddleware,
		loggingMiddleware(logger),
		metricsMiddleware,
		recoveryMiddleware(logger),
		rateLimitMiddleware(cfg.Security.RateLimit.RequestsPerSecond, cfg.Security.RateLimit.BurstSize),
	)

	server.httpServer = &http.Server{
		Addr:           cfg.Server.Address(),
		Handler:        h,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	return server
}

// setupRoutes configures all routes. Health and metrics stay outside the
// authenticated API prefix.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", metricsHandler())

	v1 := http.NewServeMux()

	// Client routes
	v1.HandleFunc("POST /clients", s.handler.handleCreateClient)
	v1.HandleFunc("GET /clients", s.handler.handleListClients)
	v1.HandleFunc("GET /clients/export", s.handler.handleExportClients)
	v1.HandleFunc("GET /clients/{id}", s.handler.handleGetClient)
	v1.HandleFunc("PUT /clients/{id}", s.handler.handleUpdateClient)
	v1.HandleFunc("DELETE /clients/{id}", s.handler.handleDeactivateClient)
	v1.HandleFunc("GET /clients/{id}/cases", s.handler.handleListClientCases)

	// Case routes
	v1.HandleFunc("POST /cases", s.handler.handleCreateCase)
	v1.HandleFunc("GET /cases/{id}", s.handler.handleGetCase)
	v1.HandleFunc("POST /cases/{id}/deadlines", s.handler.handleCreateDeadline)
	v1.HandleFunc("POST /cases/{id}/updates", s.handler.handleCreateCaseUpdate)
	v1.HandleFunc("GET /cases/{id}/documents", s.handler.handleListCaseDocuments)
	v1.HandleFunc("GET /cases/{id}/ledger", s.handler.handleCaseLedger)
	v1.HandleFunc("GET /cases/{id}/ledger/export", s.handler.handleExportCaseLedger)
	v1.HandleFunc("GET /cases/{id}/balance", s.handler.handleCaseBalance)

	// Document routes
	v1.HandleFunc("POST /documents", s.handler.handleCreateDocument)
	v1.HandleFunc("GET /documents/{id}", s.handler.handleGetDocument)
	v1.HandleFunc("DELETE /documents/{id}", s.handler.handleDeleteDocument)

	// Appointment routes
	v1.HandleFunc("POST /appointments", s.handler.handleCreateAppointment)
	v1.HandleFunc("GET /appointments", s.handler.handleListUpcomingAppointments)
	v1.HandleFunc("POST /appointments/{id}/confirm", s.handler.handleConfirmAppointment)
	v1.HandleFunc("POST /appointments/{id}/cancel", s.handler.handleCancelAppointment)

	// Ledger routes
	v1.HandleFunc("POST /ledger/entries", s.handler.handleCreateEntry)
	v1.HandleFunc("POST /ledger/entries/{id}/pay", s.handler.handleMarkEntryPaid)
	v1.HandleFunc("POST /ledger/contracts", s.handler.handleCreateFeeContract)

	authed := authMiddleware([]byte(s.config.Security.JWTSecret))(v1)
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", authed))

	return mux
}

// handleHealth reports liveness, including database reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "unhealthy",
			"database": "unreachable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Start runs the server until an error or a shutdown signal.
func (s *Server) Start() error {
	s.logger.Info("starting API server",
		zap.String("address", s.httpServer.Addr),
		zap.String("environment", s.config.Environment))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-sigCh:
		s.logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		return s.Shutdown()
	}
}

// Shutdown drains in-flight requests and closes the database pool.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.logger.Info("shutting down server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("failed to shutdown server", zap.Error(err))
		return err
	}

	s.db.Close()

	s.logger.Info("server shutdown complete")
	return nil
}
