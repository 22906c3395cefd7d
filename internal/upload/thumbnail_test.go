package upload

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

type recordingBlobs struct {
	keys  []string
	data  map[string]string
	types map[string]string
	err   error
}

func (r *recordingBlobs) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	if r.err != nil {
		return r.err
	}
	b, _ := io.ReadAll(body)
	if r.data == nil {
		r.data = map[string]string{}
		r.types = map[string]string{}
	}
	r.keys = append(r.keys, key)
	r.data[key] = string(b)
	r.types[key] = contentType
	return nil
}

func TestAllowed(t *testing.T) {
	cases := map[string]bool{
		"cat.png":        true,
		"cat.PNG":        true,
		"cat.Jpeg":       true,
		"cat.jpg":        true,
		"anim.gif":       true,
		"archive.tar.gz": false,
		"cat.png.exe":    false,
		"script.js":      false,
		"png":            false,
		"":               false,
	}
	for name, want := range cases {
		if got := Allowed(name); got != want {
			t.Errorf("Allowed(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"My Photo.JPG":            "my-photo.jpg",
		"../../etc/passwd.png":    "passwd.png",
		`C:\Users\me\avatar.gif`:  "avatar.gif",
		".png":                    "image.png",
		"summer_2024 (final).png": "summer_2024-final.png",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestThumbnailsSave(t *testing.T) {
	blobs := &recordingBlobs{}
	th := NewThumbnails(blobs)

	p, err := th.Save(context.Background(), &File{Name: "Cat Pic.PNG", Size: 4, Body: strings.NewReader("data")})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if p != "uploads/cat-pic.png" {
		t.Errorf("path = %q", p)
	}
	if blobs.data["cat-pic.png"] != "data" || blobs.types["cat-pic.png"] != "image/png" {
		t.Errorf("blob not stored as expected: %+v", blobs)
	}
}

func TestThumbnailsSkipsRejected(t *testing.T) {
	blobs := &recordingBlobs{}
	th := NewThumbnails(blobs)

	for _, f := range []*File{nil, {Name: ""}, {Name: "evil.exe", Body: strings.NewReader("x")}} {
		p, err := th.Save(context.Background(), f)
		if err != nil || p != "" {
			t.Errorf("Save(%+v) = %q, %v; want silent skip", f, p, err)
		}
	}
	if len(blobs.keys) != 0 {
		t.Errorf("rejected files were stored: %v", blobs.keys)
	}
}

func TestThumbnailsReportsWriteFailure(t *testing.T) {
	boom := errors.New("disk full")
	th := NewThumbnails(&recordingBlobs{err: boom})

	_, err := th.Save(context.Background(), &File{Name: "a.png", Body: strings.NewReader("x")})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
