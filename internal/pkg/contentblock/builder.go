package contentblock

import (
	"context"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/typo3-migrate/mask2cb/internal/pkg/encoding/yaml"
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem"
	"github.com/typo3-migrate/mask2cb/internal/pkg/log"
	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

// Icon is a generated icon content.
type Icon struct {
	Extension string
	Content   string
}

// LoadedContentBlock is a Content Block ready to be written.
type LoadedContentBlock struct {
	// Name with the vendor, for example "mask/hero-teaser".
	Name string
	Yaml *orderedmap.OrderedMap
	// Icon is optional.
	Icon          *Icon
	HostExtension string
	// ExtPath is the content elements directory in the host extension.
	ExtPath string
}

// DirName returns name of the block directory, the vendor is not a part of it.
func (b LoadedContentBlock) DirName() string {
	_, name, found := strings.Cut(b.Name, "/")
	if !found {
		return b.Name
	}
	return name
}

func (b LoadedContentBlock) Path() string {
	return filesystem.Join(b.ExtPath, b.DirName())
}

// Builder writes Content Blocks to the filesystem.
type Builder struct {
	fs     filesystem.Fs
	logger log.Logger
}

func NewBuilder(fs filesystem.Fs, logger log.Logger) *Builder {
	return &Builder{fs: fs, logger: logger.WithComponent("builder")}
}

// Create the block directory with "config.yaml", "templates" and "assets". An existing block is overwritten.
func (b *Builder) Create(ctx context.Context, block LoadedContentBlock) error {
	if block.Name == "" {
		return errors.New("content block name is empty")
	}
	if block.Yaml == nil {
		return errors.Errorf(`content block "%s" has no definition`, block.Name)
	}

	blockPath := block.Path()
	for _, dir := range []string{blockPath, filesystem.Join(blockPath, TemplatesDir), filesystem.Join(blockPath, AssetsDir)} {
		if err := b.fs.Mkdir(ctx, dir); err != nil {
			return errors.PrefixErrorf(err, `cannot create directory "%s"`, dir)
		}
	}

	content, err := yaml.EncodeString(block.Yaml)
	if err != nil {
		return errors.PrefixErrorf(err, `cannot encode definition of the content block "%s"`, block.Name)
	}
	configFile := filesystem.NewRawFile(filesystem.Join(blockPath, ConfigFile), content).SetDescription("content block definition")
	if err := b.fs.WriteFile(ctx, configFile); err != nil {
		return err
	}

	if block.Icon != nil {
		iconFile := filesystem.NewRawFile(IconPath(blockPath, block.Icon.Extension), block.Icon.Content).SetDescription("content block icon")
		if err := b.fs.WriteFile(ctx, iconFile); err != nil {
			return err
		}
	}

	b.logger.Debugf(ctx, `Created content block "%s" in "%s".`, block.Name, blockPath)
	return nil
}
