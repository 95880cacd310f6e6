package aferofs

import (
	"os"
	"path/filepath"

	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem"
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem/aferofs/localfs"
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem/aferofs/memoryfs"
	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

// NewLocalFs creates filesystem rooted in the rootDir.
// If rootDir is empty, the OS working directory is used.
func NewLocalFs(rootDir string, opts ...Option) (filesystem.Fs, error) {
	if rootDir == "" {
		var err error
		rootDir, err = os.Getwd()
		if err != nil {
			return nil, errors.Errorf(`cannot get working dir from OS: %w`, err)
		}
	}

	rootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, errors.Errorf(`cannot get absolute path of "%s": %w`, rootDir, err)
	}

	if s, err := os.Stat(rootDir); err != nil || !s.IsDir() {
		return nil, errors.Errorf(`working directory "%s" not found`, rootDir)
	}

	backend, err := localfs.New(rootDir)
	if err != nil {
		return nil, err
	}

	return New(backend, opts...), nil
}

func NewMemoryFs(opts ...Option) filesystem.Fs {
	return New(memoryfs.New(), opts...)
}
