// Package photostore persists pet photos on local disk and serves as the
// single validation point for uploaded image files.
package photostore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/miguelocque/PetTrackr/internal/apperr"
)

// MaxFileSize is the largest accepted upload, 5MB.
const MaxFileSize = 5 << 20

// URLPrefix is the public path photos are served under.
const URLPrefix = "/uploads/"

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type Store struct {
	dir       string
	nowMillis func() int64
}

func New(dir string) *Store {
	return &Store{
		dir:       dir,
		nowMillis: func() int64 { return time.Now().UnixMilli() },
	}
}

// Dir returns the directory files are written to.
func (s *Store) Dir() string { return s.dir }

// Save validates the upload and writes it as <petID>_<millis><ext>,
// returning that filename. The write goes to a uuid-named temp file first
// so a crash never leaves a half-written photo at the final name.
func (s *Store) Save(petID int64, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperr.Invalidf("File cannot be empty")
	}
	if len(data) > MaxFileSize {
		return "", apperr.TooLargef("File size exceeds maximum allowed size of 5MB")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", apperr.Invalidf("File type not allowed. Allowed types: jpg, jpeg, png, gif, webp")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	tmp := filepath.Join(s.dir, uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}

	name := fmt.Sprintf("%d_%d%s", petID, s.nowMillis(), ext)
	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("store photo: %w", err)
	}
	return name, nil
}
