package main

import (
	"fmt"
	"strings"

	"github.com/asynkron/codexterm/internal/config"
	"github.com/asynkron/codexterm/internal/execclient"
)

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if url := strings.TrimSpace(opts.url); url != "" {
		cfg.Execute.URL = url
	}
	return cfg, nil
}

func newRemoteExecutor(cfg config.Config) *execclient.Client {
	return execclient.New(execclient.Config{
		Endpoint: cfg.Execute.URL,
		Timeout:  cfg.Execute.Timeout,
	})
}

func newLocalExecutor(cfg config.Config) *execclient.LocalExecutor {
	return execclient.NewLocal(execclient.LocalConfig{
		Command: cfg.Execute.Interpreter,
		Args:    cfg.Execute.InterpreterArgs,
		Workdir: cfg.Execute.Workdir,
	})
}
