package mediastore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyValidate(t *testing.T) {
	t.Run("image accepted", func(t *testing.T) {
		assert.NoError(t, ImagesOnly.Validate("image/jpeg", 1024))
	})

	t.Run("pdf rejected by image policy", func(t *testing.T) {
		err := ImagesOnly.Validate("application/pdf", 1024)
		rej, ok := AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, "Only image files are allowed", rej.Reason)
	})

	t.Run("pdf accepted by document policy", func(t *testing.T) {
		assert.NoError(t, ImagesOrPDF.Validate("application/pdf", 1024))
	})

	t.Run("wrong type for document policy", func(t *testing.T) {
		err := ImagesOrPDF.Validate("video/mp4", 1024)
		rej, ok := AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, "Only images or PDFs are allowed", rej.Reason)
	})

	t.Run("oversize rejected with default ceiling", func(t *testing.T) {
		err := ImagesOnly.Validate("image/png", DefaultMaxBytes+1)
		rej, ok := AsRejection(err)
		require.True(t, ok)
		assert.Equal(t, "File size must be under 5MB", rej.Reason)
	})

	t.Run("exact ceiling passes", func(t *testing.T) {
		assert.NoError(t, ImagesOnly.Validate("image/png", DefaultMaxBytes))
	})

	t.Run("custom ceiling", func(t *testing.T) {
		p := Policy{Allowed: []string{"image/"}, MaxBytes: 1 << 20}
		err := p.Validate("image/png", 2<<20)
		_, ok := AsRejection(err)
		assert.True(t, ok)
	})

	t.Run("case insensitive content type", func(t *testing.T) {
		assert.NoError(t, ImagesOnly.Validate("IMAGE/PNG", 10))
	})
}

func TestAsRejection(t *testing.T) {
	_, ok := AsRejection(errors.New("network down"))
	assert.False(t, ok)

	rej, ok := AsRejection(&Rejection{Reason: "nope"})
	require.True(t, ok)
	assert.Equal(t, "nope", rej.Error())
}
