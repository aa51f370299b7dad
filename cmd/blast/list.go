package main

import (
	"fmt"
	"io"

	"github.com/matsen/blast/internal/namespace"
	"github.com/spf13/cobra"
)

// noEntriesMsg is printed when a listing is empty.
const noEntriesMsg = "no entries"

func (a *app) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [key]",
		Short: "List the keys",
		Long: `List all the keys in sorted order. If key is passed, list only the keys
in that namespace.

Examples:
  blast list
  blast list work`,
		Args: cobra.MaximumNArgs(1),
	}

	cmd.RunE = a.keyed(func(cmd *cobra.Command, ns *namespace.Store, args []string) error {
		prefix := optionalArg(args)
		keys, err := ns.List(prefix)
		if err != nil {
			return err
		}
		return a.printResult(cmd, ListResponse{Namespace: prefix, Keys: keys}, func(w io.Writer) {
			writeKeys(w, keys)
		})
	})
	return cmd
}

// writeKeys prints one key per line, or noEntriesMsg for an empty list.
func writeKeys(w io.Writer, keys []string) {
	if len(keys) == 0 {
		fmt.Fprintln(w, noEntriesMsg)
		return
	}
	for _, k := range keys {
		fmt.Fprintln(w, k)
	}
}
