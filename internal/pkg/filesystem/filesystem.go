// Package filesystem is an abstraction over the local and in-memory filesystems.
// All paths are relative to the base path and use "/" as the separator.
package filesystem

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/typo3-migrate/mask2cb/internal/pkg/log"
	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

const (
	PathSeparator = "/"
	// DirPerm is used for all created directories.
	DirPerm = 0o755
	// FilePerm is used for all written files.
	FilePerm = 0o644
)

type (
	FileInfo = os.FileInfo
	WalkFunc = filepath.WalkFunc
)

// Fs is the filesystem interface.
type Fs interface {
	BackendName() string // name of the used implementation, for example local, memory, ...
	BasePath() string
	WorkingDir() string
	SetLogger(logger log.Logger)
	Walk(ctx context.Context, root string, walkFn WalkFunc) error
	Glob(ctx context.Context, pattern string) (matches []string, err error)
	Stat(ctx context.Context, path string) (FileInfo, error)
	ReadDir(ctx context.Context, path string) ([]FileInfo, error)
	Mkdir(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) bool
	IsFile(ctx context.Context, path string) bool
	IsDir(ctx context.Context, path string) bool
	Copy(ctx context.Context, src, dst string) error
	CopyForce(ctx context.Context, src, dst string) error
	Remove(ctx context.Context, path string) error
	ReadFile(ctx context.Context, def *FileDef) (*RawFile, error)
	WriteFile(ctx context.Context, file File) error
}

// Rel returns relative path.
func Rel(base, p string) (string, error) {
	base = FromSlash(base)
	p = FromSlash(p)
	relPath, err := filepath.Rel(base, p)
	if err != nil {
		return "", errors.Errorf(`cannot get relative path, base="%s", path="%s"`, base, p)
	}
	return ToSlash(relPath), nil
}

// Join joins any number of path elements into a single path.
func Join(elem ...string) string {
	return path.Join(elem...)
}

// Dir returns all but the last element of path, typically the path's directory.
func Dir(p string) string {
	return path.Dir(p)
}

// Base returns the last element of path.
func Base(p string) string {
	return path.Base(p)
}

// Ext returns the file name extension used by path, including the dot.
func Ext(p string) string {
	return path.Ext(p)
}

// Match reports whether name matches the shell file name pattern.
func Match(pattern, name string) (matched bool, err error) {
	return path.Match(pattern, name)
}

// IsAbs reports whether the path is absolute in the OS representation.
func IsAbs(p string) bool {
	return filepath.IsAbs(FromSlash(p)) || strings.HasPrefix(p, PathSeparator)
}

// IsFrom reports whether the path is equal to or is inside the base path.
func IsFrom(p, base string) bool {
	base = strings.TrimRight(base, PathSeparator)
	return p == base || strings.HasPrefix(p, base+PathSeparator)
}

// FromSlash returns OS representation of the path.
func FromSlash(p string) string {
	return strings.ReplaceAll(p, PathSeparator, string(filepath.Separator))
}

// ToSlash returns internal representation of the path.
func ToSlash(p string) string {
	return strings.ReplaceAll(p, string(filepath.Separator), PathSeparator)
}
