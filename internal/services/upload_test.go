package services

import (
	"bytes"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestReadPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.PDF"), []byte("second"))
	writeFile(t, filepath.Join(dir, "a.pdf"), []byte("first"))
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("ignored"))
	if err := os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	single := filepath.Join(t.TempDir(), "c.pdf")
	writeFile(t, single, []byte("third"))

	docs, err := NewUploadService(1024, 10).ReadPaths([]string{dir, single})
	if err != nil {
		t.Fatalf("ReadPaths() error = %v", err)
	}

	want := []Document{
		{FileName: "a.pdf", Data: []byte("first")},
		{FileName: "b.PDF", Data: []byte("second")},
		{FileName: "c.pdf", Data: []byte("third")},
	}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Fatalf("documents mismatch (-want +got):\n%s", diff)
	}
}

func TestReadPathsValidation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	text := filepath.Join(dir, "resume.docx")
	writeFile(t, text, []byte("x"))
	big := filepath.Join(dir, "big.pdf")
	writeFile(t, big, bytes.Repeat([]byte("x"), 64))

	uploads := NewUploadService(32, 1)

	if _, err := uploads.ReadPaths([]string{text}); !errors.Is(err, ErrInvalidExtension) {
		t.Fatalf("expected ErrInvalidExtension, got %v", err)
	}
	if _, err := uploads.ReadPaths([]string{big}); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if _, err := uploads.ReadPaths([]string{big, big}); !errors.Is(err, ErrTooManyFiles) {
		t.Fatalf("expected ErrTooManyFiles, got %v", err)
	}
	if _, err := uploads.ReadPaths([]string{t.TempDir()}); !errors.Is(err, ErrNoFiles) {
		t.Fatalf("expected ErrNoFiles, got %v", err)
	}
	if _, err := uploads.ReadPaths([]string{filepath.Join(dir, "missing.pdf")}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func multipartFiles(t *testing.T, files map[string][]byte, order ...string) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, name := range order {
		part, err := writer.CreateFormFile("resumes", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write(files[name])
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["resumes"]
}

func TestReadUploadsKeepsSubmissionOrder(t *testing.T) {
	t.Parallel()

	files := multipartFiles(t, map[string][]byte{
		"zed.pdf":   []byte("z"),
		"alpha.pdf": []byte("a"),
	}, "zed.pdf", "alpha.pdf")

	docs, err := NewUploadService(1024, 5).ReadUploads(files)
	if err != nil {
		t.Fatalf("ReadUploads() error = %v", err)
	}

	want := []Document{{FileName: "zed.pdf", Data: []byte("z")}, {FileName: "alpha.pdf", Data: []byte("a")}}
	if diff := cmp.Diff(want, docs); diff != "" {
		t.Fatalf("documents mismatch (-want +got):\n%s", diff)
	}

	bad := multipartFiles(t, map[string][]byte{"photo.png": []byte("p")}, "photo.png")
	if _, err := NewUploadService(1024, 5).ReadUploads(bad); !errors.Is(err, ErrInvalidExtension) {
		t.Fatalf("expected ErrInvalidExtension, got %v", err)
	}
	if _, err := NewUploadService(1024, 5).ReadUploads(nil); !errors.Is(err, ErrNoFiles) {
		t.Fatalf("expected ErrNoFiles, got %v", err)
	}
}
