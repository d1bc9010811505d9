package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source returns the raw bytes of a named artifact.
type Source interface {
	Read(ctx context.Context, name string) ([]byte, error)
}

// DirSource reads artifacts from files in a single directory.
type DirSource struct {
	Root string
}

func (d DirSource) Read(_ context.Context, name string) ([]byte, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid artifact name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(d.Root, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, filepath.Join(d.Root, name))
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}
