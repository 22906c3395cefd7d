// Package upload validates and stores article thumbnails.
package upload

import (
	"context"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/gosimple/slug"
)

// PublicPrefix is the path, relative to the static root, under which
// stored thumbnails are referenced from article records.
const PublicPrefix = "uploads"

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

// BlobStore is the destination for accepted files.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
}

// BlobSource reads stored files back by key, for backends that are not
// served from the static directory.
type BlobSource interface {
	Download(ctx context.Context, key string) ([]byte, string, error)
}

// File is an uploaded file as received from the form.
type File struct {
	Name string
	Size int64
	Body io.Reader
}

// Allowed reports whether filename carries an accepted image extension.
// Only the part after the last dot counts, compared case-insensitively.
func Allowed(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	return allowedExtensions[strings.ToLower(filename[i+1:])]
}

// SanitizeFilename drops any directory components and reduces the base
// name to a slug, so the result is safe to join to the upload directory.
func SanitizeFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	ext := ""
	if i := strings.LastIndex(name, "."); i >= 0 {
		name, ext = name[:i], strings.ToLower(name[i+1:])
	}
	base := slug.Make(name)
	if base == "" {
		base = "image"
	}
	if ext == "" {
		return base
	}
	return base + "." + ext
}

// Thumbnails saves accepted images to a BlobStore.
type Thumbnails struct {
	blobs BlobStore
}

func NewThumbnails(blobs BlobStore) *Thumbnails {
	return &Thumbnails{blobs: blobs}
}

// Save stores f and returns the path to record on the article. A nil file
// or a disallowed extension yields "" and no error; only a failed write
// is reported.
func (t *Thumbnails) Save(ctx context.Context, f *File) (string, error) {
	if f == nil || f.Name == "" || !Allowed(f.Name) {
		return "", nil
	}
	name := SanitizeFilename(f.Name)
	contentType := mime.TypeByExtension(path.Ext(name))
	if err := t.blobs.Put(ctx, name, f.Body, f.Size, contentType); err != nil {
		return "", err
	}
	return PublicPrefix + "/" + name, nil
}
