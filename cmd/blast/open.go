package main

import (
	"io"

	"github.com/matsen/blast/internal/namespace"
	"github.com/spf13/cobra"
)

// OpenResponse is the response for open.
type OpenResponse struct {
	Key    string `json:"key"`
	Target string `json:"target"`
}

func (a *app) newOpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open <key>",
		Short: "Open the URL or path in entry",
		Long: `Open the file path or URL stored at key with the system's default
handler (open on macOS, start on Windows, xdg-open elsewhere).`,
		Args: cobra.ExactArgs(1),
	}

	cmd.RunE = a.keyed(func(cmd *cobra.Command, ns *namespace.Store, args []string) error {
		key := args[0]
		target, err := ns.Get(key)
		if err != nil {
			return err
		}
		if err := a.platform.Open(target); err != nil {
			return exitErrorf(ExitError, "opening %s: %v", target, err)
		}
		return a.printResult(cmd, OpenResponse{Key: key, Target: target}, func(io.Writer) {})
	})
	return cmd
}
