package mediastore

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	uploads    []UploadInput
	destroyed  []string
	uploadErr  error
	destroyErr error
}

func (f *fakeStore) Upload(_ context.Context, in UploadInput) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads = append(f.uploads, in)
	return "https://res.cloudinary.com/test/image/upload/v1/" + in.Folder + "/stored.jpg", nil
}

func (f *fakeStore) Destroy(_ context.Context, publicID string, _ ResourceType) error {
	if f.destroyErr != nil {
		return f.destroyErr
	}
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

func makeFileHeader(t *testing.T, filename, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, fh, err := req.FormFile("file")
	require.NoError(t, err)
	return fh
}

func TestServiceUpload(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, zap.NewNop())

	t.Run("valid image is stored", func(t *testing.T) {
		fh := makeFileHeader(t, "pic.jpg", "image/jpeg", []byte("jpeg-bytes"))
		url, err := svc.Upload(context.Background(), fh, "news", ImagesOnly)
		require.NoError(t, err)
		assert.Contains(t, url, "/upload/")

		require.Len(t, store.uploads, 1)
		in := store.uploads[0]
		assert.Equal(t, "news", in.Folder)
		assert.Equal(t, "pic.jpg", in.FileName)
		assert.Equal(t, ResourceImage, in.Resource)
		assert.Equal(t, []byte("jpeg-bytes"), in.Body)
	})

	t.Run("wrong type never reaches the store", func(t *testing.T) {
		before := len(store.uploads)
		fh := makeFileHeader(t, "doc.pdf", "application/pdf", []byte("%PDF"))
		_, err := svc.Upload(context.Background(), fh, "news", ImagesOnly)
		rej, ok := AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, "Only image files are allowed", rej.Reason)
		assert.Len(t, store.uploads, before)
	})

	t.Run("upstream failure is not a rejection", func(t *testing.T) {
		failing := &fakeStore{uploadErr: errors.New("cloud is down")}
		failingSvc := NewService(failing, zap.NewNop())
		fh := makeFileHeader(t, "pic.png", "image/png", []byte("png"))
		_, err := failingSvc.Upload(context.Background(), fh, "news", ImagesOnly)
		require.Error(t, err)
		_, ok := AsRejection(err)
		assert.False(t, ok)
	})
}

func TestServiceRemove(t *testing.T) {
	t.Run("extracts id and destroys", func(t *testing.T) {
		store := &fakeStore{}
		svc := NewService(store, zap.NewNop())
		svc.Remove(context.Background(), "https://res.cloudinary.com/test/image/upload/v1/news/old.jpg")
		assert.Equal(t, []string{"news/old"}, store.destroyed)
	})

	t.Run("foreign url is skipped", func(t *testing.T) {
		store := &fakeStore{}
		svc := NewService(store, zap.NewNop())
		svc.Remove(context.Background(), "https://example.com/static/logo.png")
		assert.Empty(t, store.destroyed)
	})

	t.Run("empty url is a no-op", func(t *testing.T) {
		store := &fakeStore{}
		svc := NewService(store, zap.NewNop())
		svc.Remove(context.Background(), "   ")
		assert.Empty(t, store.destroyed)
	})

	t.Run("destroy failure is swallowed", func(t *testing.T) {
		store := &fakeStore{destroyErr: errors.New("transient")}
		svc := NewService(store, zap.NewNop())
		svc.Remove(context.Background(), "https://res.cloudinary.com/test/image/upload/v1/news/old.jpg")
	})
}
