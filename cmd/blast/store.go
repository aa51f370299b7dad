package main

import (
	"errors"
	"fmt"

	"github.com/matsen/blast/internal/logger"
	"github.com/matsen/blast/internal/namespace"
	"github.com/matsen/blast/internal/storage"
	"github.com/spf13/cobra"
)

// withStore opens the database, runs fn and closes the database on every
// exit path. Errors without an exit code become ExitError.
func (a *app) withStore(fn func(ns *namespace.Store) error) error {
	path := a.dbLocation().Path
	logger.Log.WithField("path", path).Debug("using database")

	err := storage.With(path, func(s *storage.Store) error {
		return fn(namespace.New(s))
	})
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	return withExitCode(ExitError, err)
}

// keyedFunc is a command body run against an open store.
type keyedFunc func(cmd *cobra.Command, ns *namespace.Store, args []string) error

// keyed wraps a command whose first argument, when given, is a key.
// The key is validated before the database is opened; a missing key is
// reported and the command still succeeds.
func (a *app) keyed(fn keyedFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			if err := validateKeyArg(args[0]); err != nil {
				return err
			}
		}
		return a.withStore(func(ns *namespace.Store) error {
			err := fn(cmd, ns, args)
			if errors.Is(err, storage.ErrKeyNotFound) {
				a.printError(cmd, fmt.Sprintf("key not found: %s", optionalArg(args)))
				return nil
			}
			return err
		})
	}
}

// validateKeyArg checks a key argument and attaches ExitInvalidKey.
func validateKeyArg(key string) error {
	if err := namespace.ValidateKey(key); err != nil {
		return withExitCode(ExitInvalidKey, err)
	}
	return nil
}

// optionalArg returns args[0] or "".
func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
