package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Limits on a single image upload.
const (
	MaxImageSize = 5 << 20 // 5 MB
	urlPrefix    = "/uploads/"
)

// Client-visible rejections of an upload.
var (
	ErrImageTooLarge = errors.New("image exceeds the 5 MB limit")
	ErrNotAnImage    = errors.New("only image uploads are accepted")
)

// Store writes incoming images to a directory on disk and reports the
// relative URL they are served under. It never touches files it did not
// write itself.
type Store struct {
	dir string
}

// NewStore creates the uploads directory if needed and returns a Store for it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes into.
func (s *Store) Dir() string {
	return s.dir
}

// Save checks the size and declared MIME type, writes the file under a
// generated name and returns its relative URL, e.g. /uploads/<token>.jpg.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxImageSize {
		return "", ErrImageTooLarge
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return "", ErrNotAnImage
	}

	name := generateName(fh.Filename)
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded image: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file %q: %w", name, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write image file %q: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("close image file %q: %w", name, err)
	}

	return urlPrefix + name, nil
}

// Remove deletes the file behind a relative upload URL.
func (s *Store) Remove(relURL string) error {
	name := filepath.Base(strings.TrimPrefix(relURL, urlPrefix))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fmt.Errorf("invalid upload url %q", relURL)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("remove image %q: %w", name, err)
	}
	return nil
}

// generateName builds a collision-resistant filename: UTC timestamp plus a
// uuid fragment, keeping the original extension only.
func generateName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	stamp := time.Now().UTC().Format("20060102150405")
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return stamp + "-" + suffix + ext
}
