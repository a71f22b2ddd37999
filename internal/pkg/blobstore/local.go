// Package blobstore keeps identity photos on local disk and hands back
// relative keys that are stored on the user record.
package blobstore

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"apartmentbooking/internal/pkg/apperr"
)

const (
	MaxFileSize   = 2 * 1024 * 1024
	StaticURLBase = "/static/uploads"
)

var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

var (
	ErrEmptyFile       = apperr.New(apperr.KindValidation, "EMPTY_FILE", "file is empty")
	ErrFileTooLarge    = apperr.New(apperr.KindValidation, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
	ErrInvalidMimeType = apperr.New(apperr.KindValidation, "INVALID_FILE_TYPE", "file must be a png, jpeg or gif image")
)

type Store interface {
	Save(ctx context.Context, folder, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

type Local struct {
	baseDir    string
	staticBase string
	now        func() time.Time
}

func NewLocal(baseDir string) *Local {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	return &Local{baseDir: baseDir, staticBase: StaticURLBase, now: time.Now}
}

func (s *Local) BaseDir() string { return s.baseDir }

// Save writes r under folder/YYYY/MM/DD/<uuid><ext> and returns that relative key.
func (s *Local) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	br := bufio.NewReader(r)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return "", fmt.Errorf("read file header: %w", err)
	}
	if len(head) == 0 {
		return "", ErrEmptyFile
	}

	mimeType := strings.Split(http.DetectContentType(head), ";")[0]
	if !AllowedMimeTypes[mimeType] {
		return "", ErrInvalidMimeType
	}

	now := s.now()
	relDir := filepath.Join(sanitizeName(folder), fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day()))
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = mimeToExt(mimeType)
	}
	relPath := filepath.Join(relDir, uuid.New().String()+ext)
	absPath := filepath.Join(s.baseDir, relPath)

	dst, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, io.LimitReader(br, MaxFileSize+1))
	if err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("write file: %w", err)
	}
	if n > MaxFileSize {
		_ = os.Remove(absPath)
		return "", ErrFileTooLarge
	}

	return filepath.ToSlash(relPath), nil
}

// SaveFile saves a multipart upload. A nil header is not an error and yields
// an empty key.
func SaveFile(ctx context.Context, s Store, folder string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", nil
	}
	if fh.Size == 0 {
		return "", ErrEmptyFile
	}
	if fh.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return s.Save(ctx, folder, fh.Filename, f)
}

func (s *Local) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Local) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.staticBase + "/" + key
}

func sanitizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, filepath.Base(name))
	if name == "" || name == "." {
		return "files"
	}
	return name
}

func mimeToExt(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	default:
		return ".bin"
	}
}
