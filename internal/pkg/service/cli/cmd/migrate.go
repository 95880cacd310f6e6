package cmd

import (
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/typo3-migrate/mask2cb/internal/pkg/contentblock"
	"github.com/typo3-migrate/mask2cb/internal/pkg/service/cli/flag"
	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
	"github.com/typo3-migrate/mask2cb/pkg/lib/operation/migrate"
)

const maskContentFlag = "mask-content"

func MigrateCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrate Mask elements to Content Blocks",
		Long: `Migrate Mask elements to Content Blocks.

Each element of the "tt_content" table is converted to the Content Block
"config.yaml", the frontend template, the backend preview and the icon are copied.
Hidden elements are skipped, unless the "--include-hidden" flag is used.
`,
		Args: cobra.NoArgs,
		RunE: root.runMigrate,
	}
}

func (root *RootCommand) runMigrate(cmd *cobra.Command, args []string) error {
	// Bind migrate flags
	f := flag.DefaultMigrateFlags()
	if err := root.binder().Bind(cmd.Context(), cmd.Flags(), args, &f); err != nil {
		return err
	}

	shape, err := contentblock.ParseOutputShape(f.OutputShape)
	if err != nil {
		return err
	}

	options := migrate.Options{
		Mask:          f.MaskConfiguration(),
		PublicDir:     f.PublicDir,
		ExtensionsDir: f.ExtensionsDir,
		Vendor:        f.Vendor,
		Shape:         shape,
		IncludeHidden: f.IncludeHidden,
	}

	result, err := migrate.Run(cmd.Context(), options, root.deps)
	if err != nil {
		return err
	}

	root.printSummary(cmd, result)
	if len(result.Failed) > 0 {
		return errors.Errorf("%d content block(s) cannot be created, see the warnings above", len(result.Failed))
	}
	return nil
}

func (root *RootCommand) printSummary(cmd *cobra.Command, result *migrate.Result) {
	ctx := cmd.Context()
	if len(result.Elements) == 0 && len(result.Skipped) == 0 && len(result.Failed) == 0 {
		return
	}

	root.logger.Infof(ctx, `Content Blocks in the extension "%s":`, result.Extension)
	for _, element := range result.Elements {
		root.logger.Infof(ctx, "  %s %s (%s)%s", color.GreenString("+"), element.Name, element.Path, assetsSummary(element))
	}
	for _, key := range result.Skipped {
		root.logger.Infof(ctx, "  %s %s (hidden)", color.YellowString("-"), key)
	}
	for _, key := range result.Failed {
		root.logger.Infof(ctx, "  %s %s (failed)", color.RedString("!"), key)
	}

	if result.Warnings.Len() > 0 {
		root.logger.Warnf(ctx, "%s %d warning(s), see the messages above.", color.YellowString("Warning:"), result.Warnings.Len())
	}
	root.logger.Infof(ctx, "Migrated %d element(s), skipped %d.", len(result.Elements), len(result.Skipped))
}

func assetsSummary(element migrate.ElementResult) string {
	var assets []string
	if element.FrontendTemplate {
		assets = append(assets, "frontend")
	}
	if element.BackendPreview {
		assets = append(assets, "backend preview")
	}
	switch {
	case element.GeneratedIcon:
		assets = append(assets, "generated icon")
	case element.Icon:
		assets = append(assets, "icon")
	}
	if len(assets) == 0 {
		return ""
	}

	return " with " + strings.Join(assets, ", ")
}
