// Package archive stores generated reports in Azure Blob Storage. The
// archive is optional: without a connection string it degrades to a no-op.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"braincheck/pkg/lifecycle"
)

// System manages report archival and its lifecycle hooks.
type System interface {
	// Start registers a startup hook that initializes the archive container.
	Start(lc *lifecycle.Coordinator) error
	// Enabled reports whether archival is configured.
	Enabled() bool
	// Put uploads data under the given key with the specified content type.
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// New creates an archive System from configuration. An empty connection
// string yields a disabled archive.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	if cfg.ConnectionString == "" {
		return disabled{}, nil
	}

	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create archive client: %w", err)
	}

	return &azure{
		client:    client,
		container: cfg.ContainerName,
		logger:    logger.With("system", "archive"),
	}, nil
}

type azure struct {
	client    *azblob.Client
	container string
	logger    *slog.Logger
}

func (a *azure) Start(lc *lifecycle.Coordinator) error {
	a.logger.Info("starting archive system")

	lc.OnStartup(func() {
		_, err := a.client.CreateContainer(lc.Context(), a.container, nil)
		if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			a.logger.Error("archive container initialization failed", "error", err)
			return
		}
		a.logger.Info("archive container ready", "container", a.container)
	})

	return nil
}

func (a *azure) Enabled() bool {
	return true
}

func (a *azure) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	opts := &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	}

	if _, err := a.client.UploadStream(ctx, a.container, key, bytes.NewReader(data), opts); err != nil {
		return fmt.Errorf("archive blob %s: %w", key, err)
	}

	return nil
}

type disabled struct{}

func (disabled) Start(*lifecycle.Coordinator) error { return nil }
func (disabled) Enabled() bool                      { return false }

func (disabled) Put(context.Context, string, []byte, string) error {
	return nil
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
