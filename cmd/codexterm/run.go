package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/asynkron/codexterm/internal/execclient"
	"github.com/asynkron/codexterm/internal/session"
	"github.com/asynkron/codexterm/internal/terminal"
)

// errRunFailed marks a run whose output log holds an error entry. The entry
// has already been printed, so main exits non-zero without logging it again.
var errRunFailed = errors.New("run produced an error")

func newRunCmd(opts *rootOptions) *cobra.Command {
	var local bool
	cmd := &cobra.Command{
		Use:   "run FILE|-",
		Short: "Execute a file once and print the terminal output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			code, err := readSource(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			var executor execclient.Executor = newRemoteExecutor(cfg)
			if local {
				executor = newLocalExecutor(cfg)
			}

			sess, err := session.New(session.KindPlayground, code)
			if err != nil {
				return err
			}
			entries, _ := sess.Run(cmd.Context(), executor)
			return printEntries(cmd.OutOrStdout(), cmd.ErrOrStderr(), entries)
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "run with the local interpreter instead of the execution endpoint")
	return cmd
}

func readSource(stdin io.Reader, arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}

func printEntries(stdout, stderr io.Writer, entries []terminal.Entry) error {
	failed := false
	for _, e := range entries {
		w := stdout
		if e.Kind == terminal.KindError {
			w = stderr
			failed = true
		}
		if _, err := fmt.Fprintln(w, e.Content); err != nil {
			return err
		}
	}
	if failed {
		return errRunFailed
	}
	return nil
}
