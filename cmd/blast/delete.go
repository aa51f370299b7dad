package main

import (
	"io"

	"github.com/matsen/blast/internal/namespace"
	"github.com/spf13/cobra"
)

func (a *app) newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete value",
		Long:  `Delete the value at key.`,
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = a.keyed(func(cmd *cobra.Command, ns *namespace.Store, args []string) error {
		key := args[0]
		if err := ns.Delete(key); err != nil {
			return err
		}
		return a.printResult(cmd, StatusResponse{Status: "deleted", Key: key}, func(io.Writer) {})
	})
	return cmd
}
