package infra

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/Vovarama1992/content-calendar/internal/ports"
)

type FileFixtureSource struct {
	path string
}

func NewFileFixtureSource(path string) *FileFixtureSource {
	return &FileFixtureSource{path: path}
}

func (s *FileFixtureSource) Open(_ context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ports.ErrFixtureNotFound
		}
		return nil, fmt.Errorf("open fixture %s: %w", s.path, err)
	}
	return f, nil
}

func (s *FileFixtureSource) Location() string { return s.path }
