package dependencies

import (
	"testing"

	"github.com/typo3-migrate/mask2cb/internal/pkg/env"
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem"
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem/aferofs"
	"github.com/typo3-migrate/mask2cb/internal/pkg/log"
	"github.com/typo3-migrate/mask2cb/internal/pkg/telemetry"
)

// mocked dependencies container implements Mocked interface.
type mocked struct {
	*base
	debugLogger   log.DebugLogger
	testTelemetry *telemetry.ForTest
}

type MockedOption func(c *mockedConfig)

type mockedConfig struct {
	envs *env.Map
	fs   filesystem.Fs
}

func WithEnvs(envs *env.Map) MockedOption {
	return func(c *mockedConfig) {
		c.envs = envs
	}
}

func WithFs(fs filesystem.Fs) MockedOption {
	return func(c *mockedConfig) {
		c.fs = fs
	}
}

// NewMocked creates dependencies with an in-memory filesystem, a debug logger and recorded spans.
func NewMocked(t *testing.T, opts ...MockedOption) Mocked {
	t.Helper()

	debugLogger := log.NewDebugLogger()
	if testing.Verbose() {
		debugLogger.ConnectTo(testWriter{t: t})
	}

	c := mockedConfig{}
	for _, o := range opts {
		o(&c)
	}
	if c.envs == nil {
		c.envs = env.Empty()
	}
	if c.fs == nil {
		c.fs = aferofs.NewMemoryFs(aferofs.WithLogger(debugLogger))
	}

	testTelemetry := telemetry.NewForTest(t)
	return &mocked{
		base:          newBaseDeps(c.envs, debugLogger, testTelemetry, c.fs),
		debugLogger:   debugLogger,
		testTelemetry: testTelemetry,
	}
}

func (v *mocked) DebugLogger() log.DebugLogger {
	return v.debugLogger
}

func (v *mocked) TestTelemetry() *telemetry.ForTest {
	return v.testTelemetry
}

// testWriter writes logs to the test output.
type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
