// Package dependencies provides dependencies containers, they are passed to operations.
//
// Each operation declares a "dependencies" interface with the dependencies it needs.
// The Base container satisfies all operations of the CLI, the Mocked container is used in tests.
package dependencies

import (
	"github.com/typo3-migrate/mask2cb/internal/pkg/env"
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem"
	"github.com/typo3-migrate/mask2cb/internal/pkg/log"
	"github.com/typo3-migrate/mask2cb/internal/pkg/telemetry"
)

type Base interface {
	Envs() *env.Map
	Logger() log.Logger
	Telemetry() telemetry.Telemetry
	Fs() filesystem.Fs
}

type Mocked interface {
	Base
	DebugLogger() log.DebugLogger
	TestTelemetry() *telemetry.ForTest
}
