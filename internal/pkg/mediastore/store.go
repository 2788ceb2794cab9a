// Package mediastore manages the lifecycle of binary assets held in a
// remote media store: validation, upload, URL-to-identifier inversion, and
// best-effort removal. Content rows only ever hold the durable URL a store
// returned; everything that understands that URL lives here.
package mediastore

import (
	"context"
	"fmt"

	"github.com/sevatrust/core/internal/config"
)

// ResourceType is the remote store's processing classification. It must
// match between upload and later deletion of the same object.
type ResourceType string

const (
	ResourceImage ResourceType = "image"
	ResourceRaw   ResourceType = "raw"
)

// UploadInput carries one validated file to a store backend.
type UploadInput struct {
	Folder      string
	FileName    string
	ContentType string
	Resource    ResourceType
	Body        []byte
}

// Store is a remote media store backend. Implementations are explicitly
// constructed and injected; there is no package-level client state.
type Store interface {
	// Upload pushes the file and returns its durable, publicly
	// resolvable URL.
	Upload(ctx context.Context, in UploadInput) (string, error)
	// Destroy removes a previously uploaded object. Removing an object
	// that is already gone is success.
	Destroy(ctx context.Context, publicID string, resource ResourceType) error
}

// New builds the configured store backend.
func New(cfg config.MediaConfig) (Store, error) {
	switch cfg.Backend {
	case config.MediaBackendCloudinary:
		return newCloudinaryStore(cfg.Cloudinary), nil
	case config.MediaBackendS3:
		return newS3Store(cfg.S3)
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.Backend)
	}
}
