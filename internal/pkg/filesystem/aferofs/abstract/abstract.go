package abstract

import (
	"github.com/spf13/afero"

	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem"
)

// Backend is implemented by localfs and memoryfs.
type Backend interface {
	afero.Fs
	Name() string
	BasePath() string
	Walk(root string, walkFn filesystem.WalkFunc) error
	ReadDir(path string) ([]filesystem.FileInfo, error)
}

type BackendProvider interface {
	Backend() Backend
}
