package mediastore

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxBytes is the per-file size ceiling applied when a policy does
// not set its own.
const DefaultMaxBytes = 5 << 20

// Rejection is a validation failure. Its message is surfaced verbatim to
// the caller as a 400; no upload or database write happens after one.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string { return r.Reason }

// AsRejection reports whether err is a validation rejection.
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

// Policy is an entity's file acceptance rule: which MIME types it takes
// and how large they may be. Entries ending in "/" match as prefixes
// ("image/"), others match exactly ("application/pdf").
type Policy struct {
	Allowed  []string
	MaxBytes int64
	// typeMessage overrides the generic rejection copy for a wrong kind.
	typeMessage string
}

// ImagesOnly accepts any image type up to the default ceiling.
var ImagesOnly = Policy{
	Allowed:     []string{"image/"},
	typeMessage: "Only image files are allowed",
}

// ImagesOrPDF accepts images and PDF documents.
var ImagesOrPDF = Policy{
	Allowed:     []string{"image/", "application/pdf"},
	typeMessage: "Only images or PDFs are allowed",
}

func (p Policy) maxBytes() int64 {
	if p.MaxBytes > 0 {
		return p.MaxBytes
	}
	return DefaultMaxBytes
}

func (p Policy) allows(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	for _, allowed := range p.Allowed {
		if strings.HasSuffix(allowed, "/") {
			if strings.HasPrefix(ct, allowed) {
				return true
			}
		} else if ct == allowed {
			return true
		}
	}
	return false
}

// Validate checks a file's declared MIME type and size against the policy
// before any upload is attempted.
func (p Policy) Validate(contentType string, size int64) error {
	if !p.allows(contentType) {
		msg := p.typeMessage
		if msg == "" {
			msg = fmt.Sprintf("File type %s is not allowed", contentType)
		}
		return &Rejection{Reason: msg}
	}
	if max := p.maxBytes(); size > max {
		return &Rejection{Reason: fmt.Sprintf("File size must be under %dMB", max>>20)}
	}
	return nil
}
