package mediastore

import (
	"path"
	"regexp"
	"strings"
)

const uploadMarker = "/upload/"

var versionSegment = regexp.MustCompile(`^v\d+/`)

// ExtractPublicID inverts a store-issued URL into the identifier needed to
// delete the object: everything after the /upload/ marker, minus an
// optional v<digits>/ version segment and the file extension. A URL
// without the marker is not ours to delete, so ok is false.
func ExtractPublicID(assetURL string) (string, bool) {
	idx := strings.Index(assetURL, uploadMarker)
	if idx < 0 {
		return "", false
	}

	rest := assetURL[idx+len(uploadMarker):]
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	rest = versionSegment.ReplaceAllString(rest, "")
	if ext := path.Ext(rest); ext != "" {
		rest = strings.TrimSuffix(rest, ext)
	}
	if rest == "" {
		return "", false
	}
	return rest, true
}

// ResourceTypeForURL picks the deletion resource-type hint for a stored
// URL. PDFs are stored as raw objects; everything else this service
// uploads is an image.
func ResourceTypeForURL(assetURL string) ResourceType {
	if strings.Contains(assetURL, ".pdf") || strings.Contains(assetURL, "/raw/upload/") {
		return ResourceRaw
	}
	return ResourceImage
}

// ResourceTypeForFile picks the upload resource type from the declared
// MIME type and filename.
func ResourceTypeForFile(contentType, filename string) ResourceType {
	if contentType == "application/pdf" || strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return ResourceRaw
	}
	if !strings.HasPrefix(contentType, "image/") {
		return ResourceRaw
	}
	return ResourceImage
}
