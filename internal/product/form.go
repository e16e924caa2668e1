// Package product implements the admin product operations: listing, fetching,
// and the image reconciliation and submission pipeline behind create and edit.
package product

import (
	"fmt"
	"io"
	"net/http"
)

// maxFormMemory bounds how much of a multipart submission is held in memory;
// larger file parts spill to disk.
const maxFormMemory = 32 << 20

// File is one pending image upload from the edit form.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// EditSession is the transient state of one product form interaction: the
// raw text fields plus the image set split into kept URLs and new files.
// Kept URLs and new files never share an identifier — new uploads get fresh
// timestamped names.
type EditSession struct {
	Name          string
	Price         string
	KeptImageURLs []string
	NewFiles      []File
}

// ParseForm reads the multipart product form. The repeated "images" field
// carries kept-URL strings as value parts and new uploads as file parts;
// relative order within each kind is preserved.
func ParseForm(r *http.Request) (*EditSession, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	form := r.MultipartForm
	session := &EditSession{
		Name:  firstValue(form.Value["name"]),
		Price: firstValue(form.Value["price"]),
	}

	for _, url := range form.Value["images"] {
		if url == "" {
			continue
		}
		session.KeptImageURLs = append(session.KeptImageURLs, url)
	}

	for _, fh := range form.File["images"] {
		fh := fh
		session.NewFiles = append(session.NewFiles, File{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}

	return session, nil
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
