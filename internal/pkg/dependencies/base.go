package dependencies

import (
	"github.com/typo3-migrate/mask2cb/internal/pkg/env"
	"github.com/typo3-migrate/mask2cb/internal/pkg/filesystem"
	"github.com/typo3-migrate/mask2cb/internal/pkg/log"
	"github.com/typo3-migrate/mask2cb/internal/pkg/telemetry"
)

// base dependencies container implements Base interface.
type base struct {
	envs      *env.Map
	logger    log.Logger
	telemetry telemetry.Telemetry
	fs        filesystem.Fs
}

func NewBaseDeps(envs *env.Map, logger log.Logger, tel telemetry.Telemetry, fs filesystem.Fs) Base {
	return newBaseDeps(envs, logger, tel, fs)
}

func newBaseDeps(envs *env.Map, logger log.Logger, tel telemetry.Telemetry, fs filesystem.Fs) *base {
	return &base{
		envs:      envs,
		logger:    logger,
		telemetry: tel,
		fs:        fs,
	}
}

func (v *base) Envs() *env.Map {
	return v.envs
}

func (v *base) Logger() log.Logger {
	return v.logger
}

func (v *base) Telemetry() telemetry.Telemetry {
	return v.telemetry
}

func (v *base) Fs() filesystem.Fs {
	return v.fs
}
