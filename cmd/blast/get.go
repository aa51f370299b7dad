package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/matsen/blast/internal/namespace"
	"github.com/matsen/blast/internal/platform"
	"github.com/spf13/cobra"
)

// clipboardUnavailableMsg is the standard warning when clipboard is not available.
const clipboardUnavailableMsg = "clipboard unavailable (install xclip, xsel or wl-clipboard on Linux)"

func (a *app) newGetCmd() *cobra.Command {
	var noCopy bool

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get value and copy it to the clipboard",
		Long: `Print the value stored at key and copy it to the system clipboard.

Copying can be turned off with --no-copy or with "copy_on_get: false"
in the config file. A clipboard failure is a warning, not an error.

Examples:
  blast get github.token
  blast get wifi --no-copy`,
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVar(&noCopy, "no-copy", false, "Do not copy the value to the clipboard")

	cmd.RunE = a.keyed(func(cmd *cobra.Command, ns *namespace.Store, args []string) error {
		key := args[0]
		value, err := ns.Get(key)
		if err != nil {
			return err
		}

		copied := false
		if !noCopy && a.cfg.ShouldCopyOnGet() {
			if err := a.platform.Copy(value); err != nil {
				if errors.Is(err, platform.ErrClipboardUnavailable) {
					warnf(cmd, clipboardUnavailableMsg)
				} else {
					warnf(cmd, "clipboard error: %v", err)
				}
			} else {
				copied = true
			}
		}

		return a.printResult(cmd, ValueResponse{Key: key, Value: value, Copied: copied}, func(w io.Writer) {
			fmt.Fprintln(w, value)
		})
	})
	return cmd
}

func (a *app) newEchoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "echo <key>",
		Short: "Print value",
		Long:  `Print the value stored at key without copying it to the clipboard.`,
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = a.keyed(func(cmd *cobra.Command, ns *namespace.Store, args []string) error {
		key := args[0]
		value, err := ns.Get(key)
		if err != nil {
			return err
		}
		return a.printResult(cmd, ValueResponse{Key: key, Value: value}, func(w io.Writer) {
			fmt.Fprintln(w, value)
		})
	})
	return cmd
}
