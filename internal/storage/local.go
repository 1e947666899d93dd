// Package storage holds proof screenshots on local disk. The submission
// workflow only ever sees opaque filenames; the HTTP layer serves them back
// under /uploads.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Store is the blob collaborator consumed by the submission workflow.
type Store interface {
	// Save writes src under the suggested name and returns the stored
	// reference. The name is sanitized before use.
	Save(src io.Reader, name string) (string, error)
}

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// AllowedExtension reports whether the filename carries one of the accepted
// image extensions. This is the only content check the system performs.
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeFilename strips directory components and any character that could
// be used for path traversal, keeping just a flat safe name.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "file"
	}
	return name
}

// ProofFilename builds the deterministic stored name for a proof image:
// {userID}_{songID}_{timestamp}_{sanitized original}.
func ProofFilename(userID, songID uint, now time.Time, original string) string {
	return fmt.Sprintf("%d_%d_%s_%s", userID, songID, now.Format("20060102_150405"), SanitizeFilename(original))
}

type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(src io.Reader, name string) (string, error) {
	name = SanitizeFilename(name)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return name, nil
}

// Path returns the on-disk location of a stored reference.
func (s *LocalStore) Path(name string) string {
	return filepath.Join(s.dir, SanitizeFilename(name))
}
