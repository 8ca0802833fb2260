package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/hubinova/backend/pkg/apperr"
	"github.com/hubinova/backend/pkg/logger"
)

// FileStore persists uploaded bytes under a name and serves them back at
// /uploads/<name>.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) error
}

type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(s.dir, filepath.Base(name))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

type UploadService struct {
	store    FileStore
	maxBytes int64
}

func NewUploadService(store FileStore, maxSizeMB int) *UploadService {
	return &UploadService{store: store, maxBytes: int64(maxSizeMB) << 20}
}

func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

// SaveImage checks that r holds an image no larger than the configured limit
// and stores it under a random name. It returns that name.
func (s *UploadService) SaveImage(ctx context.Context, originalName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", apperr.Validation("failed to read file")
	}
	if int64(len(data)) > s.maxBytes {
		return "", apperr.Newf(apperr.CodeTooLarge, "file exceeds %d MB", s.maxBytes>>20)
	}
	if len(data) == 0 {
		return "", apperr.Validation("file is empty")
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", apperr.Validation("only image files are allowed")
	}
	// SVG carries script and is served from the API origin.
	if mtype.Is("image/svg+xml") {
		return "", apperr.Validation("svg images are not allowed")
	}

	name := uuid.NewString() + storedExtension(originalName, mtype)

	if err := s.store.Save(ctx, name, bytes.NewReader(data)); err != nil {
		logger.Error().Err(err).Str("file", name).Msg("failed to store upload")
		return "", apperr.Wrap(apperr.CodeInternal, err, "failed to store file")
	}
	logger.Info().Str("file", name).Str("mime", mtype.String()).Int("bytes", len(data)).Msg("file uploaded")
	return name, nil
}

// storedExtension keeps the client's extension only when it names the
// detected type, so static serving never picks a different content type.
func storedExtension(originalName string, mtype *mimetype.MIME) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext != "" && mtype.Is(mime.TypeByExtension(ext)) {
		return ext
	}
	return mtype.Extension()
}
