// Package storage defines the interface for the remote blob store holding
// product media. Swap implementations by changing the concrete type injected
// at startup — the MinIO implementation works with any S3-compatible provider.
package storage

import (
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Object identifies an uploaded blob: the browser-accessible URL and the
// stable public ID used for later deletion.
type Object struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// DeleteResult reports the outcome of a best-effort deletion. Deletions never
// surface as errors to callers — an orphaned blob is acceptable, a crashed
// edit flow is not — so failures travel as a value with a diagnostic.
type DeleteResult struct {
	PublicID string
	Deleted  bool
	Err      error
}

// BlobStore is the interface for uploading and removing product media.
type BlobStore interface {
	// Upload streams data to the store under a generated unique name and
	// returns the resulting object. size must be the exact byte count.
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (*Object, error)
	// Delete removes the blob identified by publicID, best-effort.
	Delete(ctx context.Context, publicID string) DeleteResult
}

// publicIDPattern matches the versioned-path URL convention:
// <base>/v<digits>/<public id>.<ext>. The capture is the public ID.
var publicIDPattern = regexp.MustCompile(`/v\d+/(.+)\.\w+$`)

// ExtractPublicID parses the public ID out of a blob URL. Returns the empty
// string for anything that does not match the store's URL convention, so
// malformed or foreign URLs are skipped rather than crashing a batch.
func ExtractPublicID(url string) string {
	m := publicIDPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

var whitespace = regexp.MustCompile(`\s+`)

// objectName builds the unique name for a new upload from the original
// filename: a millisecond timestamp prefix plus the sanitized base name.
// The extension is returned separately — public IDs do not carry it.
func objectName(filename string, now time.Time) (base, ext string) {
	name := filepath.Base(filename)
	ext = filepath.Ext(name)
	name = strings.TrimSuffix(name, ext)
	name = whitespace.ReplaceAllString(name, "_")
	base = strings.ToLower(strings.TrimSpace(name))
	if base == "" || base == "." {
		base = "upload"
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + base, strings.ToLower(ext)
}
