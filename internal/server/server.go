// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	nuts "github.com/vaudience/go-nuts"
	"github.com/vivaria/terrahub/api"
	"github.com/vivaria/terrahub/internal/cleanup"
	"github.com/vivaria/terrahub/internal/config"
	"github.com/vivaria/terrahub/internal/database"
	"github.com/vivaria/terrahub/internal/events"
	"github.com/vivaria/terrahub/internal/hubservice"
	"github.com/vivaria/terrahub/internal/models"
	"github.com/vivaria/terrahub/internal/monitoring"
	"github.com/vivaria/terrahub/internal/repository/postgres"
	"github.com/vivaria/terrahub/internal/repository/timescale"
)

const databasePingTimeout = 5 * time.Second

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	hubservice *hubservice.HubService
	monitoring *monitoring.Service
	publisher  *events.Publisher
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config: cfg,
	}
}

// Start wires the service stack and begins listening for requests.
func (s *Server) Start() error {
	s.monitoring = monitoring.NewService()

	svc, publisher, err := initializeHubService(s.config, s.monitoring)
	if err != nil {
		return err
	}
	s.hubservice = svc
	s.publisher = publisher

	if err := s.hubservice.Validate(); err != nil {
		return fmt.Errorf("hub service validation failed: %w", err)
	}

	s.setupCleanupHandlers()

	router := api.NewRouter(s.hubservice, s.monitoring)
	handler := gorillahandlers.RecoveryHandler(
		gorillahandlers.PrintRecoveryStack(true),
	)(gorillahandlers.CombinedLoggingHandler(os.Stdout, router))

	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      handler,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if err := s.publisher.Close(); err != nil {
		nuts.L.Warnf("[Server] Error closing event publisher: %v", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

func (s *Server) setupCleanupHandlers() {
	s.hubservice.Cleanup.OnCleanup("enclosure.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] Enclosure %s and all associated data deleted", id)
		s.monitoring.RecordEvent("enclosure_deletion", map[string]string{
			"enclosure_id": id,
		})
	})

	s.hubservice.Cleanup.OnCleanup("sensor.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] Sensor %s and all measurement history deleted", id)
		s.monitoring.RecordEvent("sensor_deletion", map[string]string{
			"sensor_id": id,
		})
	})

	s.hubservice.Cleanup.OnCleanup("relay.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] Relay %s and all state history deleted", id)
		s.monitoring.RecordEvent("relay_deletion", map[string]string{
			"relay_id": id,
		})
	})

	s.hubservice.Cleanup.OnCleanup("button.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] Button %s and all state history deleted", id)
		s.monitoring.RecordEvent("button_deletion", map[string]string{
			"button_id": id,
		})
	})
}

// initializeHubService creates and configures the hub service
func initializeHubService(cfg *config.Config, mon *monitoring.Service) (*hubservice.HubService, *events.Publisher, error) {
	tsdb, err := initTimescaleDB(cfg.Database.TimescaleDB)
	if err != nil {
		return nil, nil, err
	}
	appDB, err := initAppDB(cfg.Database.AppDB)
	if err != nil {
		return nil, nil, err
	}

	if err := postgres.EnsureSchema(appDB); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize app schema: %w", err)
	}

	enclosures := postgres.NewEnclosureRepository(appDB)
	areas := postgres.NewAreaRepository(appDB)
	relays := postgres.NewRelayRepository(appDB)
	sensors := postgres.NewSensorRepository(appDB)
	buttons := postgres.NewButtonRepository(appDB)
	webcams := postgres.NewWebcamRepository(appDB)
	settings := postgres.NewSettingRepository(appDB)
	audiofiles := postgres.NewAudiofileRepository(appDB)

	sensorHistory, err := timescale.NewSensorHistoryRepository(tsdb)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize sensor history: %w", err)
	}
	relayHistory, err := timescale.NewRelayHistoryRepository(tsdb)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize relay history: %w", err)
	}
	buttonHistory, err := timescale.NewButtonHistoryRepository(tsdb)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize button history: %w", err)
	}

	cleanupSvc := cleanup.New(
		enclosures, areas, buttons,
		sensors, sensorHistory,
		relays, relayHistory,
		buttonHistory,
		cfg.FileStore.BasePath,
	)

	publisher := events.NewPublisher(cfg.Redis)

	repos := hubservice.Repositories{
		Enclosures:    enclosures,
		Areas:         areas,
		Relays:        relays,
		Sensors:       sensors,
		Buttons:       buttons,
		Webcams:       webcams,
		Settings:      settings,
		Audiofiles:    audiofiles,
		SensorHistory: sensorHistory,
		RelayHistory:  relayHistory,
		ButtonHistory: buttonHistory,
	}

	svc := hubservice.New(repos, cleanupSvc,
		hubservice.WithMergeMode(models.MergeMode(cfg.Aggregation.SensorMergeMode)),
		hubservice.WithEvents(publisher),
		hubservice.WithMonitoring(mon),
	)
	return svc, publisher, nil
}

func initTimescaleDB(cfg config.PostgresConfig) (database.DB, error) {
	wrappedDB, err := database.NewTimescaleDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to TimescaleDB: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), databasePingTimeout)
	defer cancel()
	if err := wrappedDB.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping TimescaleDB: %w", err)
	}
	return wrappedDB, nil
}

func initAppDB(cfg config.PostgresConfig) (database.DB, error) {
	wrappedDB, err := database.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AppDB: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), databasePingTimeout)
	defer cancel()
	if err := wrappedDB.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping AppDB: %w", err)
	}
	return wrappedDB, nil
}
