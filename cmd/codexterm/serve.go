package main

import (
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/asynkron/codexterm/internal/backend"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host the execution endpoint backed by a local interpreter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}
			executor := newLocalExecutor(cfg)
			logger := pslog.Ctx(cmd.Context())
			logger.Info("execution endpoint listening", "addr", cfg.Serve.Addr, "interpreter", executor.Command())
			return backend.ListenAndServe(cmd.Context(), cfg.Serve.Addr, backend.NewServer(executor).Handler())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides serve.addr)")
	return cmd
}
