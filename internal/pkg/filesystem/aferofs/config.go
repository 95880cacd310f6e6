package aferofs

import (
	"github.com/typo3-migrate/mask2cb/internal/pkg/log"
)

type config struct {
	logger     log.Logger
	workingDir string
}

type Option func(c *config)

func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithWorkingDir sets the working dir, relative to the base path.
func WithWorkingDir(workingDir string) Option {
	return func(c *config) {
		c.workingDir = workingDir
	}
}

func newConfig(opts []Option) config {
	c := config{logger: log.NewNopLogger()}
	for _, o := range opts {
		o(&c)
	}
	return c
}
