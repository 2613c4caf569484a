package main

import (
	"log/slog"
	"strings"
	"sync"

	"fq/internal/config"
	"fq/internal/jobdir"
	"fq/internal/lockprobe"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

type jobEnvironment struct {
	dir    *jobdir.Dir
	prober lockprobe.Prober
}

func (c *commandContext) jobEnvironment(cfg *config.Config, logger *slog.Logger) (*jobEnvironment, error) {
	dir, err := jobdir.Open(cfg.Paths.JobDir)
	if err != nil {
		return nil, withExitCode(exitConfig, err)
	}
	prober, err := lockprobe.New(cfg.Follow.LockMethod, logger)
	if err != nil {
		return nil, withExitCode(exitConfig, err)
	}
	return &jobEnvironment{dir: dir, prober: prober}, nil
}
