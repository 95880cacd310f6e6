package log

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/keboola/go-utils/pkg/wildcards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/ioutil"
)

func TestCliLogger_New(t *testing.T) {
	t.Parallel()
	stdout := ioutil.NewAtomicWriter()
	stderr := ioutil.NewAtomicWriter()
	logger := NewCliLogger(stdout, stderr, nil, LogFormatConsole, false)
	assert.NotNil(t, logger)
}

func TestCliLogger_File(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "log-file.txt")
	file, err := NewLogFile(filePath)
	require.NoError(t, err)
	assert.False(t, file.IsTemp())

	stdout := ioutil.NewAtomicWriter()
	stderr := ioutil.NewAtomicWriter()
	logger := NewCliLogger(stdout, stderr, file, LogFormatConsole, false)

	ctx := context.Background()
	logger.Debug(ctx, "Debug msg")
	logger.Info(ctx, "Info msg")
	logger.Warn(ctx, "Warn msg")
	logger.Error(ctx, "Error msg")
	file.TearDown(false)

	// Assert, all levels logged
	expected := `
{"level":"debug","time":"%s","message":"Debug msg"}
{"level":"info","time":"%s","message":"Info msg"}
{"level":"warn","time":"%s","message":"Warn msg"}
{"level":"error","time":"%s","message":"Error msg"}
`

	content, err := os.ReadFile(filePath)
	require.NoError(t, err)
	wildcards.Assert(t, expected, string(content))
}

func TestCliLogger_VerboseFalse(t *testing.T) {
	t.Parallel()
	stdout := ioutil.NewAtomicWriter()
	stderr := ioutil.NewAtomicWriter()
	logger := NewCliLogger(stdout, stderr, nil, LogFormatConsole, false)

	ctx := context.Background()
	logger.Debug(ctx, "Debug msg")
	logger.Info(ctx, "Info msg")
	logger.WithComponent("migrate").Warn(ctx, "Warn msg")
	logger.Errorf(ctx, "Error %s", "msg")

	// Assert
	// info      -> stdout
	// warn, err -> stderr
	assert.Equal(t, "Info msg\n", stdout.String())
	assert.Equal(t, "Warn msg\nError msg\n", stderr.String())
}

func TestCliLogger_VerboseTrue(t *testing.T) {
	t.Parallel()
	stdout := ioutil.NewAtomicWriter()
	stderr := ioutil.NewAtomicWriter()
	logger := NewCliLogger(stdout, stderr, nil, LogFormatConsole, true)

	ctx := context.Background()
	logger.Debug(ctx, "Debug msg")
	logger.Info(ctx, "Info msg")
	logger.Warn(ctx, "Warn msg")
	logger.Error(ctx, "Error msg")

	// Assert
	// debug (verbose), info -> stdout
	// warn, err             -> stderr
	assert.Equal(t, "DEBUG\tDebug msg\nINFO\tInfo msg\n", stdout.String())
	assert.Equal(t, "WARN\tWarn msg\nERROR\tError msg\n", stderr.String())
}

func TestCliLogger_JSON(t *testing.T) {
	t.Parallel()
	stdout := ioutil.NewAtomicWriter()
	stderr := ioutil.NewAtomicWriter()
	logger := NewCliLogger(stdout, stderr, nil, LogFormatJSON, false)

	ctx := context.Background()
	logger.WithComponent("migrate").Info(ctx, "Info msg")
	logger.Warn(ctx, "Warn msg")

	assert.Equal(t, `{"level":"info","message":"Info msg","component":"migrate"}`+"\n", stdout.String())
	assert.Equal(t, `{"level":"warn","message":"Warn msg"}`+"\n", stderr.String())
}

func TestLogFile_TempRemoved(t *testing.T) {
	t.Parallel()
	file, err := NewLogFile("")
	require.NoError(t, err)
	assert.True(t, file.IsTemp())
	assert.FileExists(t, file.Path())

	file.TearDown(false)
	assert.NoFileExists(t, file.Path())
}

func TestLogFile_TempKeptOnError(t *testing.T) {
	t.Parallel()
	file, err := NewLogFile("")
	require.NoError(t, err)

	file.TearDown(true)
	assert.FileExists(t, file.Path())
	assert.NoError(t, os.Remove(file.Path()))
}

func TestNewLogFormat(t *testing.T) {
	t.Parallel()

	format, err := NewLogFormat("json")
	assert.NoError(t, err)
	assert.Equal(t, LogFormatJSON, format)

	format, err = NewLogFormat("")
	assert.NoError(t, err)
	assert.Equal(t, LogFormatConsole, format)

	format, err = NewLogFormat("xml")
	assert.Error(t, err)
	assert.Equal(t, LogFormatConsole, format)
}

func TestLevelRange(t *testing.T) {
	t.Parallel()
	levels := levelRange(InfoLevel, WarnLevel)
	assert.False(t, levels.Enabled(DebugLevel))
	assert.True(t, levels.Enabled(InfoLevel))
	assert.True(t, levels.Enabled(WarnLevel))
	assert.False(t, levels.Enabled(ErrorLevel))
}
