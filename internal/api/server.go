package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"parkhub/internal/auth"
	"parkhub/internal/config"
	"parkhub/internal/domain"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Pinger is the readiness probe seam; *database.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server exposes the REST surface.
type Server struct {
	cfg        config.HTTPConfig
	monitoring config.MonitoringConfig

	reservations  domain.ReservationService
	slots         domain.SlotService
	vehicles      domain.VehicleService
	notifications domain.NotificationService
	exporter      domain.Exporter

	tokens  *auth.Manager
	limiter *rateLimiter
	pinger  Pinger
	server  *http.Server
	log     zerolog.Logger
}

type Deps struct {
	Reservations  domain.ReservationService
	Slots         domain.SlotService
	Vehicles      domain.VehicleService
	Notifications domain.NotificationService
	Exporter      domain.Exporter
	Tokens        *auth.Manager
	Pinger        Pinger
}

func NewServer(cfg *config.Config, deps Deps, logger *zerolog.Logger) *Server {
	s := &Server{
		cfg:           cfg.HTTP,
		monitoring:    cfg.Monitoring,
		reservations:  deps.Reservations,
		slots:         deps.Slots,
		vehicles:      deps.Vehicles,
		notifications: deps.Notifications,
		exporter:      deps.Exporter,
		tokens:        deps.Tokens,
		limiter:       newRateLimiter(cfg.RateLimit),
		pinger:        deps.Pinger,
		log:           logger.With().Str("component", "http_server").Logger(),
	}

	readTimeout := time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second
	if writeTimeout <= 0 {
		writeTimeout = 15 * time.Second
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
	}

	return s
}

// Router builds the full route table. Exposed for handler tests.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)

	if s.monitoring.PrometheusEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	// Public routes are limited per remote host.
	public := r.NewRoute().Subrouter()
	public.Use(s.rateLimitMiddleware)

	public.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	public.HandleFunc("/readyz", s.handleReadyz).Methods(http.MethodGet)

	// Slot reads are public.
	public.HandleFunc("/slots", s.handleListSlots).Methods(http.MethodGet)
	public.HandleFunc("/slots/{id:[0-9]+}", s.handleGetSlot).Methods(http.MethodGet)

	// The limiter runs after auth here so limits apply per user id.
	authed := r.NewRoute().Subrouter()
	authed.Use(s.authMiddleware, s.rateLimitMiddleware)

	authed.HandleFunc("/reservations", s.handleCreateReservation).Methods(http.MethodPost)
	authed.HandleFunc("/reservations", s.handleListOwnReservations).Methods(http.MethodGet)
	authed.HandleFunc("/reservations/all", s.handleListAllReservations).Methods(http.MethodGet)
	authed.HandleFunc("/reservations/export", s.handleExportReservations).Methods(http.MethodGet)
	authed.HandleFunc("/reservations/{id:[0-9]+}", s.handleGetReservation).Methods(http.MethodGet)
	authed.HandleFunc("/reservations/{id:[0-9]+}", s.handleCancelReservation).Methods(http.MethodDelete)
	authed.HandleFunc("/reservations/{id:[0-9]+}/acknowledge", s.handleAcknowledgeReservation).Methods(http.MethodPatch)
	authed.HandleFunc("/reservations/{id:[0-9]+}/revoke", s.handleRevokeReservation).Methods(http.MethodPatch)

	authed.HandleFunc("/slots", s.handleCreateSlot).Methods(http.MethodPost)
	authed.HandleFunc("/slots/{id:[0-9]+}", s.handleUpdateSlot).Methods(http.MethodPut)
	authed.HandleFunc("/slots/{id:[0-9]+}", s.handleDeleteSlot).Methods(http.MethodDelete)

	authed.HandleFunc("/vehicles", s.handleRegisterVehicle).Methods(http.MethodPost)
	authed.HandleFunc("/vehicles", s.handleListVehicles).Methods(http.MethodGet)

	authed.HandleFunc("/notifications", s.handleListNotifications).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", s.handleMarkNotificationRead).Methods(http.MethodPatch)

	return r
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		if err := s.pinger.PingContext(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
