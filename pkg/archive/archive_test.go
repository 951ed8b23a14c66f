package archive_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"braincheck/pkg/archive"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewWithoutConnectionString(t *testing.T) {
	sys, err := archive.New(&archive.Config{ContainerName: "reports"}, discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if sys.Enabled() {
		t.Error("archive without connection string reports enabled")
	}
	if err := sys.Start(nil); err != nil {
		t.Errorf("Start: %v", err)
	}
	if err := sys.Put(context.Background(), "reports/x.pdf", []byte("data"), "application/pdf"); err != nil {
		t.Errorf("disabled Put: %v", err)
	}
}

func TestNewWithBadConnectionString(t *testing.T) {
	cfg := &archive.Config{
		ContainerName:    "reports",
		ConnectionString: "not-a-connection-string",
	}

	if _, err := archive.New(cfg, discard()); err == nil {
		t.Error("expected an error for a malformed connection string")
	}
}

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := &archive.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.ContainerName != "reports" {
		t.Errorf("ContainerName = %q, want reports", cfg.ContainerName)
	}
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("TEST_ARCHIVE_CONTAINER", "scans")

	cfg := &archive.Config{}
	env := &archive.Env{ContainerName: "TEST_ARCHIVE_CONTAINER"}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.ContainerName != "scans" {
		t.Errorf("ContainerName = %q, want scans", cfg.ContainerName)
	}
}

func TestConfigMerge(t *testing.T) {
	cfg := &archive.Config{ContainerName: "reports"}
	cfg.Merge(&archive.Config{ConnectionString: "UseDevelopmentStorage=true"})

	if cfg.ContainerName != "reports" {
		t.Errorf("ContainerName = %q, want reports", cfg.ContainerName)
	}
	if cfg.ConnectionString != "UseDevelopmentStorage=true" {
		t.Errorf("ConnectionString = %q", cfg.ConnectionString)
	}
}
