package main

import (
	"fmt"
	"io"

	"github.com/matsen/blast/internal/namespace"
	"github.com/spf13/cobra"
)

func (a *app) newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Set value",
		Long: `Set the value at key, replacing any existing value.

If the value is not passed, it is read from stdin until end of input.

Examples:
  blast set wifi hunter2
  blast set work.vpn https://vpn.example.com
  pbpaste | blast set notes.snippet`,
		Args: cobra.RangeArgs(1, 2),
	}

	cmd.RunE = a.keyed(func(cmd *cobra.Command, ns *namespace.Store, args []string) error {
		key := args[0]

		var value string
		if len(args) == 2 {
			value = args[1]
		} else {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			value = string(data)
		}

		if err := ns.Set(key, value); err != nil {
			return err
		}
		return a.printResult(cmd, StatusResponse{Status: "set", Key: key}, func(io.Writer) {})
	})
	return cmd
}
