// Package migrate creates Content Blocks from Mask elements.
package migrate

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/typo3-migrate/mask2cb/internal/pkg/contentblock"
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem"
	"github.com/typo3-migrate/mask2cb/internal/pkg/log"
	"github.com/typo3-migrate/mask2cb/internal/pkg/mask"
	"github.com/typo3-migrate/mask2cb/internal/pkg/svgicon"
	"github.com/typo3-migrate/mask2cb/internal/pkg/telemetry"
	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

type Options struct {
	Mask          mask.Configuration
	PublicDir     string
	ExtensionsDir string
	Vendor        string
	Shape         contentblock.OutputShape
	// IncludeHidden migrates also hidden elements.
	IncludeHidden bool
}

type dependencies interface {
	Logger() log.Logger
	Telemetry() telemetry.Telemetry
	Fs() filesystem.Fs
}

// Result of the migration. Warnings contain failed blocks, copies and icons, they don't stop the migration.
type Result struct {
	Extension string
	Elements  []ElementResult
	Skipped   []string
	// Failed contains keys of elements whose content block cannot be created.
	Failed   []string
	Warnings errors.MultiError
}

type ElementResult struct {
	Key  string
	Name string
	Path string
	// Copied or generated assets
	FrontendTemplate bool
	BackendPreview   bool
	Icon             bool
	GeneratedIcon    bool
}

func (o Options) pathResolver() mask.PathResolver {
	publicDir, extensionsDir := o.PublicDir, o.ExtensionsDir
	if publicDir == "" {
		publicDir = mask.DefaultPublicDir
	}
	if extensionsDir == "" {
		extensionsDir = mask.DefaultExtensionsDir
	}
	return mask.NewPathResolver(publicDir, extensionsDir)
}

func Run(ctx context.Context, o Options, d dependencies) (result *Result, err error) {
	ctx, span := d.Telemetry().Tracer().Start(ctx, "mask2cb.lib.operation.migrate")
	defer span.End(&err)

	logger := d.Logger()
	fs := d.Fs()
	result = &Result{Warnings: errors.NewMultiError()}

	// Target extension is required
	extensionKey, err := o.Mask.ExtensionKey()
	if err != nil {
		return nil, err
	}
	if err := o.Mask.Validate(ctx); err != nil {
		return nil, errors.PrefixError(err, "invalid Mask configuration")
	}
	result.Extension = extensionKey
	span.SetAttributes(attribute.String("mask2cb.extension", extensionKey))

	// Load definitions
	paths := o.pathResolver()
	collection, err := mask.NewLoader(fs, logger, o.Mask, paths).Load(ctx)
	if err != nil {
		return nil, err
	}

	table, found := collection.GetTable(mask.ContentTable)
	if !found || len(table.Elements) == 0 {
		logger.Info(ctx, "No Mask elements found.")
		return result, nil
	}

	translator := contentblock.NewTranslator(collection, o.Shape, logger)
	assembler := contentblock.NewAssembler(o.Vendor, o.Shape)
	builder := contentblock.NewBuilder(fs, logger)
	assets := newAssetCopier(fs, logger, o.Mask, paths, result.Warnings)
	extPath := contentblock.ContentElementsPath(paths.ExtensionPath(extensionKey))

	for _, element := range table.Elements {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if element.Hidden && !o.IncludeHidden {
			logger.Infof(ctx, `Skipped hidden element "%s".`, element.Key)
			result.Skipped = append(result.Skipped, element.Key)
			continue
		}

		fields := translator.Translate(ctx, element, element.Columns, table)
		block := contentblock.LoadedContentBlock{
			Name:          assembler.Name(element),
			Yaml:          assembler.Assemble(element, fields),
			HostExtension: extensionKey,
			ExtPath:       extPath,
		}

		// Placeholder icon, if there is no preview icon
		iconPath := assets.previewIcon(ctx, element.Key)
		if iconPath == "" {
			block.Icon = placeholderIcon(ctx, logger, element, result.Warnings)
		}

		// A failed block doesn't stop the migration of other elements
		if err := builder.Create(ctx, block); err != nil {
			err = errors.PrefixErrorf(err, `cannot create content block "%s"`, block.Name)
			logger.Warn(ctx, err.Error())
			result.Warnings.Append(err)
			result.Failed = append(result.Failed, element.Key)
			continue
		}

		elementResult := ElementResult{Key: element.Key, Name: block.Name, Path: block.Path(), GeneratedIcon: block.Icon != nil}
		elementResult.FrontendTemplate = assets.copyFrontendTemplate(ctx, element.Key, block.Path())
		elementResult.BackendPreview = assets.copyBackendPreview(ctx, element.Key, block.Path())
		elementResult.Icon = assets.copyIcon(ctx, iconPath, block.Path()) || elementResult.GeneratedIcon
		result.Elements = append(result.Elements, elementResult)

		logger.Infof(ctx, `Migrated element "%s" to "%s".`, element.Key, block.Name)
	}

	span.SetAttributes(
		attribute.Int("mask2cb.elements.migrated", len(result.Elements)),
		attribute.Int("mask2cb.elements.skipped", len(result.Skipped)),
		attribute.Int("mask2cb.elements.failed", len(result.Failed)),
	)
	return result, nil
}

func placeholderIcon(ctx context.Context, logger log.Logger, element *mask.ElementDefinition, warnings errors.MultiError) *contentblock.Icon {
	text := element.Label
	if text == "" {
		text = element.Key
	}
	svg, err := svgicon.Generate(text, element.Color, svgicon.DefaultSize, svgicon.DefaultRadius)
	if err != nil {
		err = errors.PrefixErrorf(err, `cannot generate icon of the element "%s"`, element.Key)
		logger.Warn(ctx, err.Error())
		warnings.Append(err)
		return nil
	}
	return &contentblock.Icon{Extension: "svg", Content: svg}
}
