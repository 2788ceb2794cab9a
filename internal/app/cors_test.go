package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOriginHost(t *testing.T) {
	assert.Equal(t, "example.org", extractOriginHost("https://example.org"))
	assert.Equal(t, "example.org:3000", extractOriginHost("http://example.org:3000"))
	assert.Equal(t, "not a url", extractOriginHost("not a url"))
}

func TestMatchOriginPattern(t *testing.T) {
	tests := []struct {
		pattern string
		host    string
		want    bool
	}{
		{"example.org", "example.org", true},
		{"example.org", "evil.org", false},
		{"*.example.org", "app.example.org", true},
		{"*.example.org", "example.com", false},
		{"localhost:*", "localhost:3000", true},
		{"localhost:*", "remotehost:3000", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchOriginPattern(tt.pattern, tt.host), "%s vs %s", tt.pattern, tt.host)
	}
}
