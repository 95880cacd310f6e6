package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/keboola/go-utils/pkg/wildcards"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typo3-migrate/mask2cb/internal/pkg/env"
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem"
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem/aferofs"
	"github.com/typo3-migrate/mask2cb/internal/pkg/fixtures"
	"github.com/typo3-migrate/mask2cb/internal/pkg/log"
	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/ioutil"
)

const (
	testContentSetting = "EXT:site/Resources/Private/Mask/Frontend/Templates/"
	testBlocksDir      = "public/typo3conf/ext/site/ContentBlocks/ContentElements"
)

type testOutput struct {
	stdout *ioutil.AtomicWriter
	stderr *ioutil.AtomicWriter
}

func TestCliSubCommands(t *testing.T) {
	t.Parallel()
	root, _ := newTestRootCommand(t, aferofs.NewMemoryFs(), env.Empty())

	// Map commands to names, skip hidden
	var names []string
	for _, cmd := range root.Commands() {
		if !cmd.Hidden {
			names = append(names, cmd.Name())
		}
	}

	// Assert
	assert.Equal(t, []string{"migrate"}, names)
}

func TestCliCmdPersistentFlags(t *testing.T) {
	t.Parallel()
	root, _ := newTestRootCommand(t, aferofs.NewMemoryFs(), env.Empty())

	// Map flags to names
	var names []string
	root.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		names = append(names, flag.Name)
	})

	// Assert
	expected := []string{
		"config-file",
		"extensions-dir",
		"include-hidden",
		"log-file",
		"log-format",
		"mask-backend",
		"mask-content",
		"mask-elements-folder",
		"mask-json",
		"mask-loader",
		"mask-preview",
		"output-shape",
		"public-dir",
		"vendor",
		"verbose",
		"working-dir",
	}
	assert.Equal(t, expected, names)
	assert.Equal(t, "d", root.PersistentFlags().Lookup("working-dir").Shorthand)
	assert.Equal(t, "typo3conf/ext", root.PersistentFlags().Lookup("extensions-dir").DefValue)
}

func TestExecute_Migrate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs := aferofs.NewMemoryFs()
	writeTestFile(t, fs, "public/typo3conf/mask.json", fixtures.MaskJSON(t, "hero"))
	writeTestFile(t, fs, "public/typo3conf/ext/site/Resources/Private/Mask/Frontend/Templates/HeroTeaser.html", "<h1>{data.header}</h1>")

	envs := env.Empty()
	envs.Set("MASK2CB_MASK_CONTENT", testContentSetting)

	root, out := newTestRootCommand(t, fs, envs)
	root.SetArgs([]string{})
	assert.Equal(t, 0, root.Execute())

	stdout := out.stdout.String()
	assert.Contains(t, stdout, `Skipped hidden element "secret".`)
	assert.Contains(t, stdout, `Migrated element "hero_teaser" to "mask/hero-teaser".`)
	assert.Contains(t, stdout, `Content Blocks in the extension "site":`)
	assert.Contains(t, stdout, "mask/hero-teaser ("+testBlocksDir+"/hero-teaser) with frontend, generated icon")
	assert.Contains(t, stdout, "Migrated 1 element(s), skipped 1.")
	assert.Empty(t, out.stderr.String())

	config := readTestFile(t, fs, filesystem.Join(testBlocksDir, "hero-teaser", "config.yaml"))
	assert.Contains(t, config, "name: mask/hero-teaser\n")
	assert.Contains(t, config, "prefixFields: false\n")
	assert.True(t, fs.IsFile(ctx, filesystem.Join(testBlocksDir, "hero-teaser", "templates/frontend.html")))
}

func TestExecute_MigrateSubCommand_EnvFileAndConfigFile(t *testing.T) {
	t.Parallel()
	fs := aferofs.NewMemoryFs()
	writeTestFile(t, fs, "public/typo3conf/mask.json", fixtures.MaskJSON(t, "hero"))
	writeTestFile(t, fs, ".env", "MASK2CB_MASK_CONTENT="+testContentSetting+"\nMASK2CB_VENDOR=env\n")
	writeTestFile(t, fs, "mask2cb.yaml", "vendor: acme\noutput-shape: minimal\n")

	// ENV from the ".env" file has higher priority than the config file, the flag has the highest priority
	root, out := newTestRootCommand(t, fs, env.Empty())
	root.SetArgs([]string{"migrate", "--config-file", "mask2cb.yaml", "--vendor", "flag", "--include-hidden"})
	assert.Equal(t, 0, root.Execute())

	stdout := out.stdout.String()
	assert.Contains(t, stdout, `Loaded env file ".env".`)
	assert.Contains(t, stdout, `Migrated element "hero_teaser" to "flag/hero-teaser".`)
	assert.Contains(t, stdout, `Migrated element "secret" to "flag/secret".`)
	assert.Contains(t, stdout, "Migrated 2 element(s), skipped 0.")

	// Minimal shape from the config file
	config := readTestFile(t, fs, filesystem.Join(testBlocksDir, "hero-teaser", "config.yaml"))
	assert.NotContains(t, config, "prefixFields")
	assert.NotContains(t, config, "basics")
}

func TestExecute_MissingExtension(t *testing.T) {
	t.Parallel()
	fs := aferofs.NewMemoryFs()
	writeTestFile(t, fs, "public/typo3conf/mask.json", fixtures.MaskJSON(t, "hero"))

	root, out := newTestRootCommand(t, fs, env.Empty())
	root.SetArgs([]string{})
	assert.Equal(t, 1, root.Execute())

	assert.Contains(t, out.stdout.String(), `Please set the Mask "content" setting by the "--mask-content" flag or the ENV variable "MASK2CB_MASK_CONTENT".`)
	stderr := out.stderr.String()
	assert.True(t, strings.HasPrefix(stderr, "Error:"), stderr)
	assert.Contains(t, stderr, "Please provide extension where to put Content Blocks in.")
	assert.False(t, fs.Exists(context.Background(), testBlocksDir))
}

func TestExecute_FailedBlock(t *testing.T) {
	t.Parallel()
	fs, err := aferofs.NewLocalFs(t.TempDir())
	require.NoError(t, err)
	writeTestFile(t, fs, "public/typo3conf/mask.json", fixtures.MaskJSON(t, "hero"))
	writeTestFile(t, fs, filesystem.Join(testBlocksDir, "hero-teaser"), "foo")

	envs := env.Empty()
	envs.Set("MASK2CB_MASK_CONTENT", testContentSetting)

	root, out := newTestRootCommand(t, fs, envs)
	root.SetArgs([]string{"--include-hidden"})
	assert.Equal(t, 1, root.Execute())

	stdout := out.stdout.String()
	assert.Contains(t, stdout, `Migrated element "secret" to "mask/secret".`)
	assert.Contains(t, stdout, "hero_teaser (failed)")
	stderr := out.stderr.String()
	assert.Contains(t, stderr, `cannot create content block "mask/hero-teaser"`)
	assert.Contains(t, stderr, "1 content block(s) cannot be created, see the warnings above")
}

func TestExecute_NoElements(t *testing.T) {
	t.Parallel()
	envs := env.Empty()
	envs.Set("MASK2CB_MASK_CONTENT", testContentSetting)

	root, out := newTestRootCommand(t, aferofs.NewMemoryFs(), envs)
	root.SetArgs([]string{"migrate"})
	assert.Equal(t, 0, root.Execute())
	assert.Contains(t, out.stdout.String(), "No Mask elements found.")
	assert.NotContains(t, out.stdout.String(), "Migrated")
}

func TestExecute_InvalidFlag(t *testing.T) {
	t.Parallel()
	envs := env.Empty()
	envs.Set("MASK2CB_MASK_CONTENT", testContentSetting)

	root, out := newTestRootCommand(t, aferofs.NewMemoryFs(), envs)
	root.SetArgs([]string{"--output-shape", "foo"})
	assert.Equal(t, 1, root.Execute())
	assert.Contains(t, out.stderr.String(), `"output-shape" must be one of [full minimal]`)
}

func TestExecute_UnknownCommand(t *testing.T) {
	t.Parallel()
	root, out := newTestRootCommand(t, aferofs.NewMemoryFs(), env.Empty())
	root.SetArgs([]string{"foo"})
	assert.Equal(t, 1, root.Execute())
	assert.Contains(t, out.stderr.String(), `Error:`)
	assert.Contains(t, out.stderr.String(), `foo`)
}

func TestTearDown_RemoveLogFile(t *testing.T) {
	t.Parallel()
	root, _ := newTestRootCommand(t, aferofs.NewMemoryFs(), env.Empty())

	root.globalFlags.LogFile = ""
	root.setupLogger()
	assert.True(t, root.logFile.IsTemp())

	assert.FileExists(t, root.logFile.Path())
	root.tearDown(0, nil)
	assert.NoFileExists(t, root.logFile.Path())
}

func TestTearDown_KeepLogFile(t *testing.T) {
	t.Parallel()
	root, _ := newTestRootCommand(t, aferofs.NewMemoryFs(), env.Empty())
	tempDir := t.TempDir()

	root.globalFlags.LogFile = filepath.Join(tempDir, "log-file.txt")
	root.setupLogger()
	assert.False(t, root.logFile.IsTemp())
	assert.Equal(t, root.logFile.Path(), root.globalFlags.LogFile)

	assert.FileExists(t, root.globalFlags.LogFile)
	root.tearDown(0, nil)
	assert.FileExists(t, root.globalFlags.LogFile)
}

func TestTearDown_Panic(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	root, _ := newTestRootCommand(t, aferofs.NewMemoryFs(), env.Empty())
	root.logger = logger
	exitCode := root.tearDown(0, errors.New("panic error"))
	assert.Equal(t, 1, exitCode)
	expected := `
DEBUG  Unexpected panic: panic error
%A
INFO  
---------------------------------------------------
mask2cb had a problem and crashed.

To help us diagnose the problem you can send us a crash report.

Please run the command again with the flag "--log-file <path>" to generate a log file.

Then please open an issue and include the log file as an attachment.

The log file may contain paths and settings of your TYPO3 installation, please check it before sending.

Thank you kindly!
`
	wildcards.Assert(t, expected, logger.AllMessages())
}

func TestGetLogFileTempFile(t *testing.T) {
	t.Parallel()
	root, _ := newTestRootCommand(t, aferofs.NewMemoryFs(), env.Empty())
	root.globalFlags.LogFile = ""
	root.setupLogger()
	assert.True(t, root.logFile.IsTemp())

	// Linux returns temp dir without last separator, MacOs with last separator.
	// ... so we need to make sure there is only one separator at the end.
	tempDir := strings.TrimRight(os.TempDir(), string(os.PathSeparator)) + string(os.PathSeparator)
	assert.True(t, strings.HasPrefix(root.logFile.Path(), tempDir))
	root.tearDown(0, nil)
}

func newTestRootCommand(t *testing.T, fs filesystem.Fs, envs *env.Map) (*RootCommand, testOutput) {
	t.Helper()

	in := strings.NewReader("")
	out := testOutput{stdout: ioutil.NewAtomicWriter(), stderr: ioutil.NewAtomicWriter()}
	fsFactory := func(_ string, _ ...aferofs.Option) (filesystem.Fs, error) {
		return fs, nil
	}

	// Log file is always kept in the test temp dir
	if _, found := envs.Lookup("MASK2CB_LOG_FILE"); !found {
		envs.Set("MASK2CB_LOG_FILE", filepath.Join(t.TempDir(), "log.txt"))
	}

	root := NewRootCommand(in, out.stdout, out.stderr, envs, fsFactory)
	if root.Context() == nil {
		root.SetContext(context.Background())
	}

	return root, out
}

func writeTestFile(t *testing.T, fs filesystem.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.WriteFile(context.Background(), filesystem.NewRawFile(path, content)))
}

func readTestFile(t *testing.T, fs filesystem.Fs, path string) string {
	t.Helper()
	file, err := fs.ReadFile(context.Background(), filesystem.NewFileDef(path))
	require.NoError(t, err)
	return file.Content
}
