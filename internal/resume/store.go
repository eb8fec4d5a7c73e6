// Package resume stores uploaded resumes on disk and extracts their text.
package resume

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/job-tracker/internal/logger"
)

var (
	ErrTooLarge = errors.New("resume file is too large")
	ErrNoFile   = errors.New("no file uploaded")
)

// DefaultMaxSize is the upload limit.
const DefaultMaxSize = 5 << 20

// Stored describes a saved resume file.
type Stored struct {
	Filename   string
	Path       string
	Text       string
	UploadedAt time.Time
}

// Store writes resumes to Dir as <userID>_<unix ms>_<filename>.
type Store struct {
	dir     string
	maxSize int64
	now     func() time.Time
	logger  *zap.Logger
}

func NewStore(dir string, maxSize int64, log *zap.Logger) *Store {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Store{
		dir:     dir,
		maxSize: maxSize,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger.Named(log, "resume_store"),
	}
}

// MaxSize is the largest accepted upload in bytes.
func (s *Store) MaxSize() int64 { return s.maxSize }

// Save copies the upload to disk and extracts its text.
// The file is removed again when it is too large or unreadable.
func (s *Store) Save(ctx context.Context, userID, filename string, src io.Reader) (Stored, error) {
	if err := ctx.Err(); err != nil {
		return Stored{}, err
	}

	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "." || filename == string(filepath.Separator) || filename == "" {
		return Stored{}, ErrNoFile
	}
	if !Supported(filename) {
		return Stored{}, ErrUnsupportedFile
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Stored{}, fmt.Errorf("create upload dir: %w", err)
	}

	now := s.now()
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%d_%s", userID, now.UnixMilli(), filename))

	if err := s.write(path, src); err != nil {
		_ = os.Remove(path)
		return Stored{}, err
	}

	text, err := ExtractFile(path)
	if err != nil {
		_ = os.Remove(path)
		return Stored{}, fmt.Errorf("extract resume text: %w", err)
	}

	s.logger.Debug("resume saved",
		zap.String(logger.FieldUserID, userID),
		zap.String("path", path),
		zap.Int("text_length", len(text)),
	)

	return Stored{Filename: filename, Path: path, Text: text, UploadedAt: now}, nil
}

func (s *Store) write(path string, src io.Reader) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create resume file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(src, s.maxSize+1))
	if err != nil {
		return fmt.Errorf("write resume file: %w", err)
	}
	if n > s.maxSize {
		return ErrTooLarge
	}
	return nil
}

// Remove deletes a stored resume file. A missing file is not an error.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
