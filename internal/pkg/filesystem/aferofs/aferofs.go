package aferofs

import (
	"context"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem"
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem/aferofs/abstract"
	"github.com/typo3-migrate/mask2cb/internal/pkg/log"
	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

// Fs implements filesystem.Fs interface on top of an afero backend.
type Fs struct {
	backend    abstract.Backend
	utils      *afero.Afero
	logger     log.Logger
	workingDir string
}

func New(backend abstract.Backend, opts ...Option) *Fs {
	config := newConfig(opts)
	return &Fs{
		backend:    backend,
		utils:      &afero.Afero{Fs: backend},
		logger:     config.logger,
		workingDir: clean(config.workingDir),
	}
}

func (f *Fs) Backend() abstract.Backend {
	return f.backend
}

func (f *Fs) BackendName() string {
	return f.backend.Name()
}

func (f *Fs) BasePath() string {
	return f.backend.BasePath()
}

func (f *Fs) WorkingDir() string {
	return f.workingDir
}

func (f *Fs) SetLogger(logger log.Logger) {
	f.logger = logger
}

func (f *Fs) Walk(_ context.Context, root string, walkFn filesystem.WalkFunc) error {
	return f.backend.Walk(clean(root), func(p string, info filesystem.FileInfo, err error) error {
		return walkFn(filesystem.ToSlash(p), info, err)
	})
}

func (f *Fs) Glob(_ context.Context, pattern string) (matches []string, err error) {
	matches, err = afero.Glob(f.backend, filesystem.FromSlash(clean(pattern)))
	for i, m := range matches {
		matches[i] = filesystem.ToSlash(m)
	}
	return matches, err
}

func (f *Fs) Stat(_ context.Context, p string) (filesystem.FileInfo, error) {
	return f.backend.Stat(filesystem.FromSlash(clean(p)))
}

func (f *Fs) ReadDir(_ context.Context, p string) ([]filesystem.FileInfo, error) {
	return f.backend.ReadDir(clean(p))
}

func (f *Fs) Mkdir(_ context.Context, p string) error {
	return f.backend.MkdirAll(filesystem.FromSlash(clean(p)), filesystem.DirPerm)
}

func (f *Fs) Exists(ctx context.Context, p string) bool {
	_, err := f.Stat(ctx, p)
	return err == nil
}

func (f *Fs) IsFile(ctx context.Context, p string) bool {
	s, err := f.Stat(ctx, p)
	return err == nil && !s.IsDir()
}

func (f *Fs) IsDir(ctx context.Context, p string) bool {
	s, err := f.Stat(ctx, p)
	return err == nil && s.IsDir()
}

// Copy src to dst, it fails if the destination exists.
func (f *Fs) Copy(ctx context.Context, src, dst string) error {
	if f.Exists(ctx, dst) {
		return errors.Errorf(`cannot copy "%s" -> "%s": destination exists`, src, dst)
	}
	return f.CopyForce(ctx, src, dst)
}

// CopyForce copies src to dst, an existing destination is replaced.
func (f *Fs) CopyForce(ctx context.Context, src, dst string) error {
	if !f.Exists(ctx, src) {
		return errors.Errorf(`cannot copy "%s" -> "%s": source not found`, src, dst)
	}
	if err := f.Mkdir(ctx, filesystem.Dir(dst)); err != nil {
		return errors.Errorf(`cannot copy "%s" -> "%s": %w`, src, dst, err)
	}
	if err := CopyFs2Fs(f, src, f, dst); err != nil {
		return errors.Errorf(`cannot copy "%s" -> "%s": %w`, src, dst, err)
	}
	f.logger.Debugf(ctx, `Copied "%s" -> "%s"`, src, dst)
	return nil
}

func (f *Fs) Remove(_ context.Context, p string) error {
	return f.backend.RemoveAll(filesystem.FromSlash(clean(p)))
}

// ReadFile content as a string.
func (f *Fs) ReadFile(ctx context.Context, def *filesystem.FileDef) (*filesystem.RawFile, error) {
	file := &filesystem.RawFile{FileDef: def}

	content, err := f.utils.ReadFile(filesystem.FromSlash(clean(def.Path())))
	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(err, `missing %s`, def.String())
	} else if err != nil {
		return nil, errors.Errorf(`cannot open %s: %w`, def.String(), err)
	}

	file.Content = string(content)
	f.logger.Debugf(ctx, `Loaded %s`, def.String())
	return file, nil
}

// WriteFile writes the file, the parent directory is created if it doesn't exist.
func (f *Fs) WriteFile(ctx context.Context, file filesystem.File) error {
	raw, err := file.ToRawFile()
	if err != nil {
		return err
	}

	p := clean(raw.Path())
	if err := f.Mkdir(ctx, filesystem.Dir(p)); err != nil {
		return errors.Errorf(`cannot create directory for %s: %w`, raw.String(), err)
	}
	if err := f.utils.WriteFile(filesystem.FromSlash(p), []byte(raw.Content), filesystem.FilePerm); err != nil {
		return errors.Errorf(`cannot write %s: %w`, raw.String(), err)
	}

	f.logger.Debugf(ctx, `Saved "%s"`, p)
	return nil
}

// clean converts the path to a relative clean path.
func clean(p string) string {
	p = strings.TrimLeft(path.Clean("/"+filesystem.ToSlash(p)), "/")
	if p == "" {
		return "."
	}
	return p
}
