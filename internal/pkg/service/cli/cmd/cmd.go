// Package cmd contains the root command of the CLI and its sub-commands.
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/typo3-migrate/mask2cb/internal/pkg/dependencies"
	"github.com/typo3-migrate/mask2cb/internal/pkg/env"
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem"
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem/aferofs"
	"github.com/typo3-migrate/mask2cb/internal/pkg/log"
	"github.com/typo3-migrate/mask2cb/internal/pkg/mask"
	"github.com/typo3-migrate/mask2cb/internal/pkg/service/cli"
	"github.com/typo3-migrate/mask2cb/internal/pkg/service/cli/cmdconfig"
	"github.com/typo3-migrate/mask2cb/internal/pkg/service/cli/flag"
	"github.com/typo3-migrate/mask2cb/internal/pkg/telemetry"
	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

const description = `
mask2cb

Migrates Mask elements of a TYPO3 installation to Content Blocks.

Content Blocks are created in the extension referenced by the Mask
"content" setting, together with the templates and icons of the elements.
`

// FsFactory creates the filesystem rooted in the working dir.
type FsFactory func(workingDir string, opts ...aferofs.Option) (filesystem.Fs, error)

type Cmd = cobra.Command

type RootCommand struct {
	*Cmd
	logger      log.Logger
	globalFlags flag.GlobalFlags
	envs        *env.Map
	fs          filesystem.Fs
	logFile     *log.File
	logFormat   log.LogFormat
	deps        dependencies.Base
}

// NewRootCommand creates parent of all sub-commands.
func NewRootCommand(stdin io.Reader, stdout io.Writer, stderr io.Writer, osEnvs *env.Map, fsFactory FsFactory) *RootCommand {
	// Command definition
	root := &RootCommand{
		logger:      log.NewMemoryLogger(), // temporary logger, we don't have a path to the log file yet
		globalFlags: flag.DefaultGlobalFlags(),
	}
	root.Cmd = &Cmd{
		Use:               "mask2cb", // name of the binary
		Short:             description,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
		SilenceErrors:     true, // custom error handling, see printError
		Args:              cobra.NoArgs,
	}

	// Setup in/out
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	// Persistent flags for all sub-commands
	cmdconfig.MustGenerateFlags(root.PersistentFlags(), flag.DefaultGlobalFlags())
	cmdconfig.MustGenerateFlags(root.PersistentFlags(), flag.DefaultMigrateFlags())

	// Init when flags are parsed
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Bind flags - without ENVs from files
		root.globalFlags = flag.DefaultGlobalFlags()
		err := cmdconfig.NewBinder(osEnvs, log.NewNopLogger()).Bind(cmd.Context(), cmd.Flags(), args, &root.globalFlags)
		if err != nil {
			return err
		}

		// Create filesystem abstraction
		root.fs, err = fsFactory(root.globalFlags.WorkingDir, aferofs.WithLogger(root.logger))
		if err != nil {
			return err
		}

		// Load ENVs
		root.envs = env.LoadDotEnv(cmd.Context(), root.logger, osEnvs, root.fs, []string{"."})

		// Bind flags - with ENVs from files and the config file
		root.globalFlags = flag.DefaultGlobalFlags()
		err = root.binder().Bind(cmd.Context(), cmd.Flags(), args, &root.globalFlags)
		if err != nil {
			return err
		}

		// Setup logger
		root.setupLogger()
		root.fs.SetLogger(root.logger)
		root.logger.Debugf(cmd.Context(), `Working dir: %s`, filesystem.Join(root.fs.BasePath(), root.fs.WorkingDir()))

		// Create dependencies
		root.deps = dependencies.NewBaseDeps(root.envs, root.logger, telemetry.NewNop(), root.fs)
		return nil
	}

	// Root command runs the migration, the sub-command is an explicit alternative
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return root.runMigrate(cmd, args)
	}
	root.AddCommand(MigrateCommand(root))

	return root
}

// Execute command or sub-command.
func (root *RootCommand) Execute() (exitCode int) {
	defer func() {
		exitCode = root.tearDown(exitCode, recover())
	}()

	if err := root.Cmd.Execute(); err != nil {
		root.printError(err)
		return 1
	}
	return 0
}

// binder binds values from flags, ENVs and the config file.
func (root *RootCommand) binder() *cmdconfig.Binder {
	binder := cmdconfig.NewBinder(root.envs, root.logger)
	if root.globalFlags.ConfigFile != "" {
		binder = binder.WithConfigFile(root.fs, root.globalFlags.ConfigFile)
	}
	return binder
}

func (root *RootCommand) printError(errRaw error) {
	// Convert to MultiError
	var originalErrs errors.MultiError
	if v, ok := errRaw.(errors.MultiError); ok { // nolint: errorlint
		originalErrs = v
	} else {
		originalErrs = errors.NewMultiError()
		originalErrs.Append(errRaw)
	}

	// Iterate over errors and replace message if needed
	modifiedErrs := errors.NewMultiError()
	for _, err := range originalErrs.WrappedErrors() {
		switch {
		case errors.Is(err, mask.ErrMissingExtension):
			root.logger.Infof(root.context(), `Please set the Mask "content" setting by the "--%s" flag or the ENV variable "%s".`, maskContentFlag, env.NewNamingConvention(cmdconfig.ENVPrefix).FlagToEnv(maskContentFlag))
			modifiedErrs.Append(err)
		default:
			modifiedErrs.Append(err)
		}
	}

	fullErr := errors.PrefixError(modifiedErrs, "Error")
	root.logger.Debugf(root.context(), "Error debug log:\n%s", errors.Format(fullErr, errors.FormatWithStack(), errors.FormatWithUnwrap()))
	root.PrintErrln(errors.Format(fullErr, errors.FormatAsSentences()))
}

func (root *RootCommand) setupLogger() {
	// Get log file
	var logFileErr error
	root.logFile, logFileErr = log.NewLogFile(root.globalFlags.LogFile)

	var logFormatErr error
	root.logFormat, logFormatErr = log.NewLogFormat(root.globalFlags.LogFormat)

	// Get temporary logger
	memoryLogger, _ := root.logger.(*log.MemoryLogger)

	// Create logger
	root.logger = log.NewCliLogger(root.OutOrStdout(), root.ErrOrStderr(), root.logFile, root.logFormat, root.globalFlags.Verbose)

	// Warn if user specified log file + it cannot be opened
	if logFileErr != nil && root.globalFlags.LogFile != "" {
		root.logger.Warnf(root.context(), "Cannot open log file: %s", logFileErr)
	}

	// Warn if user specified invalid log format
	if logFormatErr != nil {
		root.logger.Warnf(root.context(), "Invalid log format: %s", logFormatErr)
	}

	// Log info
	root.logger.Debugf(root.context(), "Running command %v", os.Args)

	if root.logFile == nil {
		root.logger.Debug(root.context(), `Log file: -`)
	} else {
		root.logger.Debug(root.context(), `Log file: `+root.logFile.Path())
	}

	// Copy logs from the temporary logger
	if memoryLogger != nil {
		memoryLogger.CopyLogsTo(root.logger)
	}
}

// tearDown does clean-up after command execution.
func (root *RootCommand) tearDown(exitCode int, panicErr any) int {
	// Logger may be uninitialized, if error occurred before initialization
	if _, ok := root.logger.(*log.MemoryLogger); ok {
		root.setupLogger()
	}

	if panicErr != nil {
		logFilePath := ""
		if root.logFile != nil {
			logFilePath = root.logFile.Path()
		}

		// Process panic
		exitCode = cli.ProcessPanic(root.context(), panicErr, root.logger, logFilePath)
	}

	// Close log file
	root.logFile.TearDown(exitCode != 0)
	return exitCode
}

func (root *RootCommand) context() context.Context {
	if ctx := root.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
