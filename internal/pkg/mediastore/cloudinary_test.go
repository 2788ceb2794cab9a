package mediastore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sevatrust/core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCloudinary(t *testing.T, handler http.HandlerFunc) *cloudinaryStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := newCloudinaryStore(config.CloudinaryConfig{
		CloudName: "testcloud",
		APIKey:    "key",
		APISecret: "secret",
	})
	s.endpoint = srv.URL
	return s
}

func TestCloudinaryUpload(t *testing.T) {
	var gotPath string
	var gotParams map[string]string

	s := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(10<<20))
		gotParams = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			gotParams[k] = v[0]
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/testcloud/image/upload/v1/news/x.jpg","public_id":"news/x"}`))
	})

	url, err := s.Upload(context.Background(), UploadInput{
		Folder:      "news",
		FileName:    "x.jpg",
		ContentType: "image/jpeg",
		Resource:    ResourceImage,
		Body:        []byte("fake-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/testcloud/image/upload/v1/news/x.jpg", url)

	assert.Equal(t, "/v1_1/testcloud/image/upload", gotPath)
	assert.Equal(t, "news", gotParams["folder"])
	assert.Equal(t, "key", gotParams["api_key"])
	assert.NotEmpty(t, gotParams["timestamp"])
	// The signature must cover the signed params, not the api key.
	expected := s.sign(map[string]string{
		"timestamp": gotParams["timestamp"],
		"folder":    "news",
	})
	assert.Equal(t, expected, gotParams["signature"])
}

func TestCloudinaryUploadRawFlags(t *testing.T) {
	var gotParams map[string]string
	s := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		gotParams = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			gotParams[k] = v[0]
		}
		w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/testcloud/raw/upload/v1/certificates/c.pdf"}`))
	})

	_, err := s.Upload(context.Background(), UploadInput{
		Folder:      "certificates",
		FileName:    "c.pdf",
		ContentType: "application/pdf",
		Resource:    ResourceRaw,
		Body:        []byte("%PDF-1.4"),
	})
	require.NoError(t, err)
	assert.Equal(t, "upload", gotParams["type"])
	assert.Equal(t, "attachment:inline", gotParams["flags"])
}

func TestCloudinaryUploadError(t *testing.T) {
	s := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid image file"}}`))
	})

	_, err := s.Upload(context.Background(), UploadInput{
		FileName: "x.jpg", ContentType: "image/jpeg",
		Resource: ResourceImage, Body: []byte("junk"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid image file")
}

func TestCloudinaryDestroy(t *testing.T) {
	t.Run("ok result", func(t *testing.T) {
		s := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1_1/testcloud/image/destroy", r.URL.Path)
			w.Write([]byte(`{"result":"ok"}`))
		})
		assert.NoError(t, s.Destroy(context.Background(), "news/x", ResourceImage))
	})

	t.Run("not found is success", func(t *testing.T) {
		s := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result":"not found"}`))
		})
		assert.NoError(t, s.Destroy(context.Background(), "news/gone", ResourceImage))
	})

	t.Run("other result is an error", func(t *testing.T) {
		s := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result":"pending"}`))
		})
		assert.Error(t, s.Destroy(context.Background(), "news/x", ResourceImage))
	})
}
