// Package upload implements the multipart upload store backing
// {upload} directories: stream-to-disk on POST, directory listing on
// GET, and byte-stream download on GET /<name>. Streaming write mirrors
// the teacher's internal/store/fs/store.go os.OpenFile/io streaming
// idiom; unlike that store, files here are addressed by name directly
// rather than accumulated into an append-only log.
package upload

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rawen554/mockhive/internal/apperr"
)

// Entry describes one uploaded file as reported by the list endpoint.
type Entry struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Store owns one directory of uploaded files.
type Store struct {
	Dir       string
	Temporary bool

	mu sync.Mutex
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string, temporary bool) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir %s: %w", dir, err)
	}
	return &Store{Dir: dir, Temporary: temporary}, nil
}

// Save streams src into <dir>/<filename>, truncating any prior content.
// Within one upload folder, filenames are unique — a repeat upload
// replaces the prior file's contents and timestamp.
func (s *Store) Save(filename string, src io.Reader) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if filename == "" {
		return Entry{}, apperr.ErrUploadFormatInvalid
	}

	dst := filepath.Join(s.Dir, filepath.Base(filename))
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return Entry{}, fmt.Errorf("opening %s: %w: %v", dst, apperr.ErrUploadIoFailure, err)
	}
	defer f.Close()

	n, err := io.Copy(f, src)
	if err != nil {
		return Entry{}, fmt.Errorf("writing %s: %w: %v", dst, apperr.ErrUploadIoFailure, err)
	}

	return Entry{Name: filepath.Base(filename), Size: n, UploadedAt: time.Now()}, nil
}

// List re-reads the directory at call time and returns every file,
// sorted by name. Sub-directories are skipped.
func (s *Store) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w: %v", s.Dir, apperr.ErrUploadIoFailure, err)
	}

	out := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		out = append(out, Entry{Name: de.Name(), Size: info.Size(), UploadedAt: info.ModTime()})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Path resolves the on-disk path for name, or ErrNotFound if it doesn't
// exist (or would escape the store's directory).
func (s *Store) Path(name string) (string, error) {
	full := filepath.Join(s.Dir, filepath.Base(name))
	if _, err := os.Stat(full); err != nil {
		return "", apperr.ErrNotFound
	}
	return full, nil
}

// ContentType infers a download's Content-Type from its extension.
func ContentType(name string) string {
	ct := mime.TypeByExtension(filepath.Ext(name))
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}

// Purge removes every file under the store's directory, leaving the
// directory itself in place. Called by the shutdown coordinator for
// every store registered as temporary.
func (s *Store) Purge() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return fmt.Errorf("reading %s for purge: %w", s.Dir, err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(s.Dir, e.Name())); err != nil {
			return fmt.Errorf("purging %s: %w", e.Name(), err)
		}
	}
	return nil
}
