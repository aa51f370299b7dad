// Package platform provides the OS actions applied to stored values:
// copying to the clipboard and opening a URL or path.
package platform

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable is returned when no clipboard utility is installed.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Platform opens targets and copies text for the host OS.
type Platform interface {
	// Open hands target (URL or file path) to the desktop's default handler.
	Open(target string) error
	// Copy places text on the system clipboard.
	Copy(text string) error
}

// System is the Platform for a real OS.
type System struct {
	// openCommand is the launcher followed by any fixed arguments.
	openCommand []string
}

// Detect returns the Platform for the running OS.
func Detect() *System {
	return ForOS(runtime.GOOS)
}

// ForOS returns the Platform for goos.
func ForOS(goos string) *System {
	switch goos {
	case "darwin":
		return &System{openCommand: []string{"open"}}
	case "windows":
		// Not cmd /c start: cmd.exe would treat & and | in the target as
		// command separators.
		return &System{openCommand: []string{"rundll32", "url.dll,FileProtocolHandler"}}
	default:
		return &System{openCommand: []string{"xdg-open"}}
	}
}

// OpenCommand returns the command line used to open target.
func (s *System) OpenCommand(target string) []string {
	args := make([]string, 0, len(s.openCommand)+1)
	args = append(args, s.openCommand...)
	return append(args, target)
}

// Open starts the launcher and does not wait for it to exit.
func (s *System) Open(target string) error {
	if target == "" {
		return fmt.Errorf("nothing to open")
	}
	args := s.OpenCommand(target)
	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("running %s: %w", args[0], err)
	}
	// Reap the launcher so it does not linger as a zombie.
	go cmd.Wait()
	return nil
}

// Copy copies text to the clipboard.
// Returns ErrClipboardUnavailable if no clipboard utility is installed.
func (s *System) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}
