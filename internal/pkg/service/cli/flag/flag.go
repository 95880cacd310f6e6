// Package flag defines flags of the CLI. Each field tagged by "configKey" is mapped to a flag,
// an ENV variable and a key in the config file.
package flag

import (
	"github.com/typo3-migrate/mask2cb/internal/pkg/contentblock"
	"github.com/typo3-migrate/mask2cb/internal/pkg/log"
	"github.com/typo3-migrate/mask2cb/internal/pkg/mask"
)

// GlobalFlags are defined for all commands.
type GlobalFlags struct {
	WorkingDir string `configKey:"working-dir" configShorthand:"d" configUsage:"use other working directory"`
	LogFile    string `configKey:"log-file" configShorthand:"l" configUsage:"path to a log file for details"`
	LogFormat  string `configKey:"log-format" configUsage:"format of stdout and stderr" validate:"oneof=console json"`
	Verbose    bool   `configKey:"verbose" configShorthand:"v" configUsage:"print details"`
	ConfigFile string `configKey:"config-file" configUsage:"path to a YAML or JSON file with settings"`
}

// MigrateFlags configure the migration.
type MigrateFlags struct {
	OutputShape   string    `configKey:"output-shape" configUsage:"shape of the generated definitions, \"full\" or \"minimal\"" validate:"oneof=full minimal"`
	IncludeHidden bool      `configKey:"include-hidden" configUsage:"migrate also hidden elements"`
	PublicDir     string    `configKey:"public-dir" configUsage:"TYPO3 public directory" validate:"required"`
	ExtensionsDir string    `configKey:"extensions-dir" configUsage:"extensions directory, relative to the public directory" validate:"required"`
	Vendor        string    `configKey:"vendor" configUsage:"vendor of the Content Blocks names" validate:"required"`
	Mask          MaskFlags `configKey:"mask"`
}

// MaskFlags replace the Mask extension configuration.
type MaskFlags struct {
	Content        string `configKey:"content" configUsage:"Mask frontend templates folder, it locates the target extension, for example \"EXT:site/Resources/Private/Mask/\""`
	Backend        string `configKey:"backend" configUsage:"Mask backend preview templates folder"`
	Preview        string `configKey:"preview" configUsage:"Mask preview icons folder"`
	JSON           string `configKey:"json" configUsage:"Mask definitions file, for the \"json\" loader"`
	Loader         string `configKey:"loader" configUsage:"Mask definitions loader, \"json\" or \"json-split\"" validate:"oneof=json json-split"`
	ElementsFolder string `configKey:"elements-folder" configUsage:"Mask definitions folder, for the \"json-split\" loader"`
}

func DefaultGlobalFlags() GlobalFlags {
	return GlobalFlags{
		LogFormat: string(log.LogFormatConsole),
	}
}

func DefaultMigrateFlags() MigrateFlags {
	maskConfig := mask.DefaultConfiguration()
	return MigrateFlags{
		OutputShape:   string(contentblock.ShapeFull),
		PublicDir:     mask.DefaultPublicDir,
		ExtensionsDir: mask.DefaultExtensionsDir,
		Vendor:        contentblock.DefaultVendor,
		Mask: MaskFlags{
			JSON:   maskConfig.JSON,
			Loader: maskConfig.Loader,
		},
	}
}

// MaskConfiguration converts the flags to the Mask extension configuration.
func (f MigrateFlags) MaskConfiguration() mask.Configuration {
	return mask.Configuration{
		Content:               f.Mask.Content,
		Backend:               f.Mask.Backend,
		Preview:               f.Mask.Preview,
		JSON:                  f.Mask.JSON,
		Loader:                f.Mask.Loader,
		ContentElementsFolder: f.Mask.ElementsFolder,
	}
}
