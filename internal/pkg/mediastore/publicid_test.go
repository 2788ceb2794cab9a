package mediastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPublicID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{
			name:   "versioned image url",
			url:    "https://res.cloudinary.com/demo/image/upload/v1700000000/news/abc123.jpg",
			wantID: "news/abc123",
			wantOK: true,
		},
		{
			name:   "no version segment",
			url:    "https://res.cloudinary.com/demo/image/upload/sponsors/logo.png",
			wantID: "sponsors/logo",
			wantOK: true,
		},
		{
			name:   "raw pdf",
			url:    "https://res.cloudinary.com/demo/raw/upload/v1/certificates/cert.pdf",
			wantID: "certificates/cert",
			wantOK: true,
		},
		{
			name:   "query string stripped",
			url:    "https://res.cloudinary.com/demo/image/upload/v2/gallery/pic.webp?_a=1#frag",
			wantID: "gallery/pic",
			wantOK: true,
		},
		{
			name:   "no extension",
			url:    "https://cdn.example.org/bucket/upload/misc/a1b2c3d4",
			wantID: "misc/a1b2c3d4",
			wantOK: true,
		},
		{
			name:   "no upload marker",
			url:    "https://example.com/static/logo.png",
			wantOK: false,
		},
		{
			name:   "marker with nothing after it",
			url:    "https://res.cloudinary.com/demo/image/upload/",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractPublicID(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestResourceTypeForURL(t *testing.T) {
	assert.Equal(t, ResourceRaw, ResourceTypeForURL("https://x/raw/upload/v1/c/doc.pdf"))
	assert.Equal(t, ResourceRaw, ResourceTypeForURL("https://x/image/upload/v1/c/doc.pdf"))
	assert.Equal(t, ResourceImage, ResourceTypeForURL("https://x/image/upload/v1/c/pic.jpg"))
}

func TestResourceTypeForFile(t *testing.T) {
	assert.Equal(t, ResourceRaw, ResourceTypeForFile("application/pdf", "cert.pdf"))
	assert.Equal(t, ResourceRaw, ResourceTypeForFile("application/octet-stream", "CERT.PDF"))
	assert.Equal(t, ResourceImage, ResourceTypeForFile("image/png", "pic.png"))
	assert.Equal(t, ResourceRaw, ResourceTypeForFile("text/plain", "notes.txt"))
}
