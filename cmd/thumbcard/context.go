package main

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"

	"thumbcard/internal/metadata"
	"thumbcard/internal/startup"
)

// commandContext carries what every subcommand needs and lets tests swap the
// metadata provider and terminal detection.
type commandContext struct {
	configFlag string
	config     *startup.Config

	newProvider func(context.Context, *startup.Config) (metadata.Provider, error)
	isTerminal  func(io.Writer) bool
}

func newCommandContext() *commandContext {
	return &commandContext{
		newProvider: func(ctx context.Context, cfg *startup.Config) (metadata.Provider, error) {
			return startup.NewProvider(ctx, cfg, nil)
		},
		isTerminal: writerIsTerminal,
	}
}

func (c *commandContext) ensureConfig() (*startup.Config, error) {
	if c.config != nil {
		return c.config, nil
	}
	if c.configFlag != "" {
		if err := os.Setenv(startup.ConfigFileEnv, c.configFlag); err != nil {
			return nil, err
		}
	}
	cfg, err := startup.Load()
	if err != nil {
		return nil, err
	}
	c.config = cfg
	return cfg, nil
}

func (c *commandContext) provider(ctx context.Context) (metadata.Provider, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return c.newProvider(ctx, cfg)
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
