package main

import (
	"braincheck/internal/channel"
	"braincheck/internal/classify"
	"braincheck/internal/config"
	"braincheck/internal/infrastructure"
	"braincheck/internal/orchestrator"
	"braincheck/internal/report"
	"braincheck/internal/session"
)

// Server composes infrastructure, the channel hub, the intake pipeline, and
// the HTTP listener.
type Server struct {
	cfg      *config.Config
	infra    *infrastructure.Infrastructure
	hub      *channel.Hub
	sessions *session.Store
	flow     *orchestrator.Orchestrator
	http     *httpServer
}

// NewServer loads configuration and wires all systems together.
func NewServer() (*Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	hub := channel.NewHub(&cfg.Channel, infra.Logger)

	sessions := session.NewStore(
		cfg.Intake.IdleTimeoutDuration(),
		cfg.Intake.SweepIntervalDuration(),
		infra.Logger,
	)

	flow := orchestrator.New(
		cfg,
		sessions,
		hub,
		classify.NewClient(&cfg.Classifier, infra.Logger),
		report.NewAssembler(&cfg.Report, infra.Logger),
		infra.Archive,
		infra.Logger,
	)

	router := buildRouter(infra)
	mountModules(router, cfg, infra, hub)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"env", cfg.Env(),
	)

	return &Server{
		cfg:      cfg,
		infra:    infra,
		hub:      hub,
		sessions: sessions,
		flow:     flow,
		http:     newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start brings up infrastructure, the HTTP listener, the session sweeper,
// and the orchestrator loop.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	s.sessions.Start(s.infra.Lifecycle)

	go s.flow.Run(s.infra.Lifecycle, s.hub.Events())

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown stops all subsystems within the configured timeout.
func (s *Server) Shutdown() error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(s.cfg.ShutdownTimeoutDuration())
}
