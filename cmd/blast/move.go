package main

import (
	"errors"
	"io"

	"github.com/matsen/blast/internal/namespace"
	"github.com/matsen/blast/internal/storage"
	"github.com/spf13/cobra"
)

func (a *app) newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <key> <dest>",
		Short: "Move value",
		Long: `Move the value at key to dest, replacing any value already at dest.

Unlike get and delete, moving a key that does not exist is an error
(exit code 4), so scripts can tell a rename did not happen.`,
		Args: cobra.ExactArgs(2),
		RunE: a.runMove,
	}
}

func (a *app) runMove(cmd *cobra.Command, args []string) error {
	key, dest := args[0], args[1]
	if err := validateKeyArg(key); err != nil {
		return err
	}
	if err := validateKeyArg(dest); err != nil {
		return err
	}

	return a.withStore(func(ns *namespace.Store) error {
		if err := ns.Move(key, dest); err != nil {
			if errors.Is(err, storage.ErrKeyNotFound) {
				return exitErrorf(ExitNotFound, "key not found: %s", key)
			}
			return err
		}
		return a.printResult(cmd, StatusResponse{Status: "moved", Key: key, Dest: dest}, func(io.Writer) {})
	})
}
