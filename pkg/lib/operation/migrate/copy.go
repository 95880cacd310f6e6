package migrate

import (
	"context"
	"strings"

	"github.com/typo3-migrate/mask2cb/internal/pkg/contentblock"
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem"
	"github.com/typo3-migrate/mask2cb/internal/pkg/log"
	"github.com/typo3-migrate/mask2cb/internal/pkg/mask"
	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

// assetCopier copies templates and icons of an element, missing sources are skipped.
// Copy errors are collected as warnings.
type assetCopier struct {
	fs       filesystem.Fs
	logger   log.Logger
	config   mask.Configuration
	paths    mask.PathResolver
	icons    *mask.PreviewIconResolver
	warnings errors.MultiError
}

func newAssetCopier(fs filesystem.Fs, logger log.Logger, config mask.Configuration, paths mask.PathResolver, warnings errors.MultiError) *assetCopier {
	return &assetCopier{
		fs:       fs,
		logger:   logger.WithComponent("assets"),
		config:   config,
		paths:    paths,
		icons:    mask.NewPreviewIconResolver(fs, paths, config),
		warnings: warnings,
	}
}

func (c *assetCopier) previewIcon(ctx context.Context, elementKey string) string {
	return c.icons.GetPreviewIconPath(ctx, elementKey)
}

func (c *assetCopier) copyFrontendTemplate(ctx context.Context, elementKey, blockPath string) bool {
	src := mask.TemplatePath(ctx, c.fs, c.paths, c.config.Content, elementKey)
	return c.copy(ctx, "frontend template", src, contentblock.FrontendTemplatePath(blockPath))
}

func (c *assetCopier) copyBackendPreview(ctx context.Context, elementKey, blockPath string) bool {
	src := mask.TemplatePath(ctx, c.fs, c.paths, c.config.Backend, elementKey)
	return c.copy(ctx, "backend preview", src, contentblock.BackendPreviewPath(blockPath))
}

func (c *assetCopier) copyIcon(ctx context.Context, iconPath, blockPath string) bool {
	if iconPath == "" {
		return false
	}
	extension := strings.TrimPrefix(filesystem.Ext(iconPath), ".")
	return c.copy(ctx, "icon", iconPath, contentblock.IconPath(blockPath, extension))
}

func (c *assetCopier) copy(ctx context.Context, kind, src, dst string) bool {
	if src == "" || !c.fs.IsFile(ctx, src) {
		return false
	}
	if err := c.fs.CopyForce(ctx, src, dst); err != nil {
		err = errors.PrefixErrorf(err, `cannot copy %s "%s"`, kind, src)
		c.logger.Warn(ctx, err.Error())
		c.warnings.Append(err)
		return false
	}
	c.logger.Debugf(ctx, `Copied %s "%s" to "%s".`, kind, src, dst)
	return true
}
