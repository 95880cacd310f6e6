package localfs

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem"
	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

type fs = afero.Fs

// LocalFs is abstraction of the local filesystem implemented by "os" package.
// All paths are relative to the basePath.
type LocalFs struct {
	fs
	utils    *afero.Afero
	basePath string
}

func New(basePath string) (*LocalFs, error) {
	if !filepath.IsAbs(basePath) {
		return nil, errors.Errorf(`base path "%s" must be absolute`, basePath)
	}

	fs := afero.NewBasePathFs(afero.NewOsFs(), basePath)
	return &LocalFs{
		fs:       fs,
		utils:    &afero.Afero{Fs: fs},
		basePath: basePath,
	}, nil
}

func (fs *LocalFs) Name() string {
	return `local`
}

func (fs *LocalFs) BasePath() string {
	return fs.basePath
}

func (fs *LocalFs) Walk(root string, walkFn filesystem.WalkFunc) error {
	return fs.utils.Walk(filesystem.FromSlash(root), walkFn)
}

func (fs *LocalFs) ReadDir(path string) ([]filesystem.FileInfo, error) {
	return fs.utils.ReadDir(filesystem.FromSlash(path))
}
