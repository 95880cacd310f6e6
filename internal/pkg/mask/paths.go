package mask

import (
	"context"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem"
)

const (
	DefaultPublicDir     = "public"
	DefaultExtensionsDir = "typo3conf/ext"
)

// PreviewIconExtensions are searched in the order.
var PreviewIconExtensions = []string{"png", "svg", "jpg", "jpeg", "gif"} //nolint:gochecknoglobals

// PathResolver converts TYPO3 paths to paths in the filesystem.
// ExtensionsDir is relative to PublicDir.
type PathResolver struct {
	PublicDir     string
	ExtensionsDir string
}

func NewPathResolver(publicDir, extensionsDir string) PathResolver {
	return PathResolver{PublicDir: publicDir, ExtensionsDir: extensionsDir}
}

// ExtensionPath returns directory of the extension.
func (r PathResolver) ExtensionPath(extensionKey string) string {
	return filesystem.Join(r.PublicDir, r.ExtensionsDir, extensionKey)
}

// Resolve path:
//   - "EXT:my_ext/foo" is resolved to the extension directory,
//   - an absolute path is resolved to the filesystem root,
//   - other paths are relative to the public directory.
func (r PathResolver) Resolve(p string) string {
	p = strings.TrimSpace(p)
	if key, rest, ok := splitExtPath(p); ok {
		return filesystem.Join(r.ExtensionPath(key), rest)
	}
	if strings.HasPrefix(p, "/") {
		return filesystem.Join(strings.TrimLeft(p, "/"))
	}
	return filesystem.Join(r.PublicDir, p)
}

// TemplatePath returns path of the element template in the folder.
// The "<key>.html" file has priority, otherwise "<UpperCamelCaseKey>.html" is used.
// Empty string is returned if the folder is not set or no template exists.
func TemplatePath(ctx context.Context, fs filesystem.Fs, paths PathResolver, folder, elementKey string) string {
	if strings.TrimSpace(folder) == "" || elementKey == "" {
		return ""
	}
	dir := paths.Resolve(folder)
	for _, name := range []string{elementKey + ".html", strcase.ToCamel(elementKey) + ".html"} {
		p := filesystem.Join(dir, name)
		if fs.IsFile(ctx, p) {
			return p
		}
	}
	return ""
}

// PreviewIconResolver finds the preview icon of an element in the Mask "preview" folder.
type PreviewIconResolver struct {
	fs     filesystem.Fs
	paths  PathResolver
	folder string
}

func NewPreviewIconResolver(fs filesystem.Fs, paths PathResolver, config Configuration) *PreviewIconResolver {
	return &PreviewIconResolver{fs: fs, paths: paths, folder: config.Preview}
}

// GetPreviewIconPath returns path of the icon, or an empty string.
func (r *PreviewIconResolver) GetPreviewIconPath(ctx context.Context, elementKey string) string {
	if strings.TrimSpace(r.folder) == "" || elementKey == "" {
		return ""
	}
	dir := r.paths.Resolve(r.folder)
	for _, ext := range PreviewIconExtensions {
		p := filesystem.Join(dir, elementKey+"."+ext)
		if r.fs.IsFile(ctx, p) {
			return p
		}
	}
	return ""
}
