package transcribe

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const fallbackFilename = "audio"

// Scratch is a directory for uploads that live only for one request.
type Scratch struct {
	dir string
}

func NewScratch(dir string) (*Scratch, error) {
	if dir == "" {
		return nil, errors.New("scratch: directory required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	return &Scratch{dir: dir}, nil
}

func (s *Scratch) Dir() string { return s.dir }

// Save writes body under a unique name derived from filename and returns
// its path. A partially written file is removed before returning an error.
func (s *Scratch) Save(filename string, body io.Reader) (string, error) {
	name := SecureFilename(filename)
	if name == "" {
		name = fallbackFilename
	}
	path := filepath.Join(s.dir, uuid.NewString()+"_"+name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("create scratch file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close scratch file: %w", err)
	}
	return path, nil
}

// Remove deletes a saved file; a missing file is not an error.
func (s *Scratch) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove scratch file: %w", err)
	}
	return nil
}
