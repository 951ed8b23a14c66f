// Package infrastructure provides core service initialization for application
// startup. It assembles the common dependencies (lifecycle, logging, report
// archive) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"braincheck/internal/config"
	"braincheck/pkg/archive"
	"braincheck/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain components.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Archive   archive.System
}

// New creates an Infrastructure from the application configuration. Systems
// are initialized but not started; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	arc, err := archive.New(&cfg.Archive, logger)
	if err != nil {
		return nil, fmt.Errorf("archive init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Archive:   arc,
	}, nil
}

// Start registers infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Archive.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("archive start failed: %w", err)
	}
	return nil
}
