package aferofs

import (
	"github.com/spf13/afero"
	"go.nhat.io/aferocopy/v2"

	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem"
	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

const CopyBufferSize uint = 512 * 1024 // 512 kB

// CopyFs2Fs copies a file or a directory, a nil filesystem means the OS filesystem.
func CopyFs2Fs(srcFs filesystem.Fs, srcPath string, dstFs filesystem.Fs, dstPath string) error {
	aferoSrc, err := aferoBackend(srcFs)
	if err != nil {
		return errors.PrefixError(err, "invalid source")
	}

	aferoDst, err := aferoBackend(dstFs)
	if err != nil {
		return errors.PrefixError(err, "invalid destination")
	}

	return aferocopy.Copy(filesystem.FromSlash(clean(srcPath)), filesystem.FromSlash(clean(dstPath)), aferocopy.Options{
		SrcFs:          aferoSrc,
		DestFs:         aferoDst,
		Sync:           false,
		CopyBufferSize: CopyBufferSize,
		OnDirExists: func(srcFs afero.Fs, src string, destFs afero.Fs, dest string) aferocopy.DirExistsAction {
			return aferocopy.Replace
		},
	})
}

func aferoBackend(fs filesystem.Fs) (afero.Fs, error) {
	if fs == nil {
		return afero.NewOsFs(), nil
	}
	if v, ok := fs.(*Fs); ok {
		return v.Backend(), nil
	}
	return nil, errors.Errorf(`unexpected type of filesystem "%T"`, fs)
}
