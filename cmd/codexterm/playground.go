package main

import (
	"github.com/spf13/cobra"

	"github.com/asynkron/codexterm/internal/session"
)

func newPlaygroundCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "playground",
		Short: "Open the free-form Python playground",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlayground(cmd, opts)
		},
	}
}

func runPlayground(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	return runTUI(cmd.Context(), cfg, tuiSession{
		kind:        session.KindPlayground,
		starterCode: cfg.Playground.StarterCode,
	})
}
