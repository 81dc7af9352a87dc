// Package media stores product image assets under a public directory,
// keyed by a sanitized original filename. An upload with an already-used
// name silently overwrites the previous asset.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const publicPrefix = "/media/"

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is empty")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}

	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save writes the asset and returns the public path to serve it from.
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	name := SanitizeFilename(filename)
	if name == "" {
		return "", fmt.Errorf("filename %q sanitizes to nothing", filename)
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("os.Create: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("io.Copy: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("f.Close: %w", err)
	}

	return publicPrefix + name, nil
}

// SanitizeFilename strips directories and reduces the name to a safe
// character set so it can be served straight from the media directory.
func SanitizeFilename(filename string) string {
	name := filepath.Base(filepath.ToSlash(filename))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-':
			b.WriteRune(r)
		case r == ' ', r == '_':
			b.WriteRune('_')
		}
	}

	return strings.Trim(b.String(), "._")
}
