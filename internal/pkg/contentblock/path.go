package contentblock

import (
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem"
)

const (
	ContentElementsDir       = "ContentBlocks/ContentElements"
	ConfigFile               = "config.yaml"
	TemplatesDir             = "templates"
	AssetsDir                = "assets"
	FrontendTemplateFile     = "frontend.html"
	BackendPreviewFile       = "backend-preview.html"
	IconFileWithoutExtension = "icon"
)

// ContentElementsPath returns directory of the content elements in the extension.
func ContentElementsPath(extensionPath string) string {
	return filesystem.Join(extensionPath, ContentElementsDir)
}

func FrontendTemplatePath(blockPath string) string {
	return filesystem.Join(blockPath, TemplatesDir, FrontendTemplateFile)
}

func BackendPreviewPath(blockPath string) string {
	return filesystem.Join(blockPath, TemplatesDir, BackendPreviewFile)
}

// IconPath returns path of the icon with the extension, for example "assets/icon.svg".
func IconPath(blockPath, extension string) string {
	return filesystem.Join(blockPath, AssetsDir, IconFileWithoutExtension+"."+extension)
}
