// Package logger holds the process-wide diagnostic logger.
//
// Diagnostics go to stderr so they never mix with values printed on stdout.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. It is quiet (warnings and above) unless
// SetVerbose is called.
var Log *logrus.Logger

func init() {
	Log = logrus.New()
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	Log.SetLevel(logrus.WarnLevel)
	Log.SetOutput(os.Stderr)
}

// SetVerbose switches debug logging on or off.
func SetVerbose(verbose bool) {
	if verbose {
		Log.SetLevel(logrus.DebugLevel)
		return
	}
	Log.SetLevel(logrus.WarnLevel)
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}
