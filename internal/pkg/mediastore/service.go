package mediastore

import (
	"context"
	"io"
	"mime/multipart"
	"strings"

	"go.uber.org/zap"
)

// Service is the consolidated asset lifecycle used by every asset-bearing
// entity: validate, then upload; later, best-effort removal of the prior
// object when a record is replaced or deleted.
type Service struct {
	store Store
	log   *zap.Logger
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

// Upload validates the submitted file against the policy and pushes it to
// the remote store, returning the durable URL. A *Rejection error means
// the file never left the process; any other error is an upstream upload
// failure. Nothing may be persisted unless a URL is returned.
func (s *Service) Upload(ctx context.Context, fh *multipart.FileHeader, folder string, policy Policy) (string, error) {
	contentType := declaredContentType(fh)
	if err := policy.Validate(contentType, fh.Size); err != nil {
		return "", err
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	payload, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	// The multipart header size is client-declared; re-check the bytes.
	if err := policy.Validate(contentType, int64(len(payload))); err != nil {
		return "", err
	}

	return s.store.Upload(ctx, UploadInput{
		Folder:      folder,
		FileName:    fh.Filename,
		ContentType: contentType,
		Resource:    ResourceTypeForFile(contentType, fh.Filename),
		Body:        payload,
	})
}

// Remove tears down the remote object behind a stored URL. The record
// mutation this accompanies has already been decided, so failure here is
// logged and swallowed: a leaked remote file is preferable to a failed
// delete or replace.
func (s *Service) Remove(ctx context.Context, assetURL string) {
	assetURL = strings.TrimSpace(assetURL)
	if assetURL == "" {
		return
	}

	publicID, ok := ExtractPublicID(assetURL)
	if !ok {
		s.log.Debug("asset url has no recognizable public id, nothing to delete",
			zap.String("url", assetURL))
		return
	}

	if err := s.store.Destroy(ctx, publicID, ResourceTypeForURL(assetURL)); err != nil {
		s.log.Warn("best-effort remote asset removal failed",
			zap.String("public_id", publicID),
			zap.Error(err))
	}
}

func declaredContentType(fh *multipart.FileHeader) string {
	if ct := strings.TrimSpace(fh.Header.Get("Content-Type")); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
