// Package player launches audio in an external player process. It is the
// media surface collaborator: the core tells it what to play and stop, and
// never blocks on it.
package player

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// candidatePlayers defines the preferred audio player order per platform
var candidatePlayers = map[string][]string{
	"darwin":  {"mpv", "ffplay", "afplay"},
	"linux":   {"mpv", "ffplay", "paplay"},
	"windows": {"mpv", "ffplay"},
}

// extraArgs holds per-player flags needed for headless audio playback
var extraArgs = map[string][]string{
	"mpv":    {"--no-video", "--really-quiet"},
	"ffplay": {"-nodisp", "-autoexit", "-loglevel", "quiet"},
}

// Launcher starts and stops an external audio player process
type Launcher struct {
	command string   // configured player command, empty for auto-detect
	args    []string // additional arguments for the configured player
	logger  *slog.Logger

	current *exec.Cmd
}

// NewLauncher creates a launcher for the configured player command
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{command: command, args: args, logger: logger}
}

// Play starts audio playback, replacing any running player process
func (l *Launcher) Play(audioRef string) error {
	l.Stop()

	// Tier 1: user configured a specific player
	if l.command != "" {
		cmdArgs := append(append([]string{}, l.args...), audioRef)
		cmd := exec.Command(l.command, cmdArgs...)
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("failed to launch %s: %w", l.command, err)
		}
		l.current = cmd
		l.logger.Info("launched configured player", "command", l.command, "ref", audioRef)
		return nil
	}

	// Tier 2: candidate chain for the platform
	candidates, ok := candidatePlayers[runtime.GOOS]
	if !ok {
		candidates = candidatePlayers["linux"]
	}

	for _, name := range candidates {
		if _, err := exec.LookPath(name); err != nil {
			continue
		}
		cmdArgs := append(append([]string{}, extraArgs[name]...), audioRef)
		cmd := exec.Command(name, cmdArgs...)
		if err := cmd.Start(); err != nil {
			l.logger.Debug("candidate player failed to start", "player", name, "error", err)
			continue
		}
		l.current = cmd
		l.logger.Info("launched detected player", "player", name, "ref", audioRef)
		return nil
	}

	return fmt.Errorf("no audio player found")
}

// Stop terminates the running player process, if any
func (l *Launcher) Stop() {
	if l.current == nil || l.current.Process == nil {
		return
	}
	if err := l.current.Process.Kill(); err != nil {
		l.logger.Debug("failed to kill player process", "error", err)
	}
	// Reap the process so it doesn't linger as a zombie
	go l.current.Wait()
	l.current = nil
}
