package photostore

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/miguelocque/PetTrackr/internal/apperr"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(t.TempDir())
	s.nowMillis = func() int64 { return 1756700000000 }
	return s
}

func TestSaveWritesFileAndReturnsFilename(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Save(7, "buddy.PNG", []byte("pngdata"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	// The stored reference is the bare filename; serving composes the
	// /uploads/ path.
	if name != "7_1756700000000.png" {
		t.Fatalf("unexpected name: %q", name)
	}
	if ok, _ := regexp.MatchString(`^\d+_\d+\.(jpg|jpeg|png|gif|webp)$`, name); !ok {
		t.Fatalf("stored name %q does not match expected pattern", name)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), name))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(data, []byte("pngdata")) {
		t.Fatalf("stored bytes differ")
	}
}

func TestSaveRejectsEmptyFile(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save(1, "buddy.png", nil)
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save(1, "buddy.png", make([]byte, MaxFileSize+1))
	if !errors.Is(err, apperr.ErrTooLarge) {
		t.Fatalf("want ErrTooLarge, got %v", err)
	}
}

func TestSaveRejectsDisallowedExtensions(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"malware.exe", "noext", "archive.tar.gz", "photo.png.svg"} {
		if _, err := s.Save(1, name, []byte("data")); !errors.Is(err, apperr.ErrInvalid) {
			t.Fatalf("%s: want ErrInvalid, got %v", name, err)
		}
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Save(3, "buddy.jpg", []byte("jpgdata")); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}
