package main

import (
	"fmt"
	"io"

	"github.com/matsen/blast/internal/namespace"
	"github.com/spf13/cobra"
)

func (a *app) newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear [key]",
		Short: "Clear the entries",
		Long: `Clear all the entries. If key is passed, remove only the keys in that
namespace. Clearing an empty namespace does nothing.

Examples:
  blast clear work
  blast clear`,
		Args: cobra.MaximumNArgs(1),
	}

	cmd.RunE = a.keyed(func(cmd *cobra.Command, ns *namespace.Store, args []string) error {
		prefix := optionalArg(args)
		removed, err := ns.Clear(prefix)
		if err != nil {
			return err
		}
		return a.printResult(cmd, ClearResponse{Namespace: prefix, Removed: removed}, func(w io.Writer) {
			fmt.Fprintf(w, "Cleared %s\n", pluralize(removed))
		})
	})
	return cmd
}
