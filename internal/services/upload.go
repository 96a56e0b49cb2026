package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNoFiles          = errors.New("please upload at least one PDF resume")
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrFileTooLarge     = errors.New("file too large")
	ErrTooManyFiles     = errors.New("too many files")
)

const pdfExtension = ".pdf"

// UploadService turns uploaded or on-disk files into in-memory documents.
// Nothing is written to disk.
type UploadService interface {
	ReadUploads(files []*multipart.FileHeader) ([]Document, error)
	ReadPaths(paths []string) ([]Document, error)
}

type uploadService struct {
	maxFileSize int64
	maxFiles    int
}

func NewUploadService(maxFileSize int64, maxFiles int) UploadService {
	return &uploadService{
		maxFileSize: maxFileSize,
		maxFiles:    maxFiles,
	}
}

// ReadUploads validates and reads multipart uploads in their submitted order.
func (s *uploadService) ReadUploads(files []*multipart.FileHeader) ([]Document, error) {
	if err := s.checkCount(len(files)); err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(files))
	for _, file := range files {
		if err := s.validate(file.Filename, file.Size); err != nil {
			return nil, err
		}

		src, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file: %w", err)
		}

		docs = append(docs, Document{FileName: filepath.Base(file.Filename), Data: data})
	}
	return docs, nil
}

// ReadPaths reads PDF files. Directories contribute their top-level *.pdf
// files in name order.
func (s *uploadService) ReadPaths(paths []string) ([]Document, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("file does not exist: %s", path)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), pdfExtension) {
				files = append(files, filepath.Join(path, entry.Name()))
			}
		}
	}

	if err := s.checkCount(len(files)); err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(files))
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", file, err)
		}
		if err := s.validate(file, info.Size()); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		docs = append(docs, Document{FileName: filepath.Base(file), Data: data})
	}
	return docs, nil
}

func (s *uploadService) checkCount(n int) error {
	if n == 0 {
		return ErrNoFiles
	}
	if s.maxFiles > 0 && n > s.maxFiles {
		return fmt.Errorf("%w: %d files, at most %d allowed", ErrTooManyFiles, n, s.maxFiles)
	}
	return nil
}

func (s *uploadService) validate(name string, size int64) error {
	if ext := strings.ToLower(filepath.Ext(name)); ext != pdfExtension {
		return fmt.Errorf("%w: %s (only PDF files are allowed)", ErrInvalidExtension, filepath.Base(name))
	}
	if s.maxFileSize > 0 && size > s.maxFileSize {
		return fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, filepath.Base(name), s.maxFileSize)
	}
	return nil
}
