package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/slotwise/internal/config"
	"github.com/danieljhkim/slotwise/internal/engine"
	"github.com/danieljhkim/slotwise/internal/fsops"
	"github.com/danieljhkim/slotwise/internal/logging"
	"github.com/danieljhkim/slotwise/internal/planner"
	"github.com/danieljhkim/slotwise/internal/schedule"
	"github.com/danieljhkim/slotwise/internal/state"
)

// stdout receives all command output. Tests swap it for a buffer.
var stdout io.Writer = color.Output

// app bundles what a command needs: the engine and the timetable it targets.
type app struct {
	eng       *engine.Engine
	timetable string
	settings  *config.Settings
	paths     *config.Paths
	fs        fsops.FS
}

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*app, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	fs := fsops.NewRealFS()
	settings, err := config.LoadSettings(fs, paths.Config)
	if err != nil {
		return nil, err
	}

	log, err := logging.NewLogger(settings.Log)
	if err != nil {
		return nil, err
	}

	mode, _ := schedule.ParseSlotMode(settings.PreferredSlot)
	eng := engine.New(state.NewFileStateStore(fs, paths.Timetables), engine.Options{
		DefaultMode: mode,
		Logger:      log,
	})

	name := timetableFlag
	if name == "" {
		name = settings.DefaultTimetable
	}
	return &app{eng: eng, timetable: name, settings: settings, paths: paths, fs: fs}, nil
}

// configureColor applies --no-color. color already disables itself when
// stdout is not a terminal.
func configureColor() {
	if noColor {
		color.NoColor = true
	}
}

// slotFlag returns the tokens of a slot pattern flag, or nil when the flag
// was not given so the engine can tell "unchanged" from "empty".
func slotFlag(cmd *cobra.Command, name, value string) []string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	tokens := planner.SplitPattern(value)
	if tokens == nil {
		return []string{}
	}
	return tokens
}

// splitNames splits a comma-separated name list, trimming blanks.
func splitNames(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// formatJSON formats a value as JSON.
func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// formatError formats an error for display.
func formatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// reportError prints the details carried by structured errors before the
// error itself is returned to cobra.
func reportError(err error) {
	if jsonOutput {
		return
	}
	var selErr *engine.SelectionError
	if errors.As(err, &selErr) {
		PrintSection("Slots rejected")
		for _, r := range selErr.Rejected {
			PrintError(fmt.Sprintf("%s: %s", r.Token, r.Reason))
		}
		return
	}
	var valErr *schedule.ValidationError
	if errors.As(err, &valErr) {
		PrintSection("Invalid input")
		for _, f := range valErr.Fields {
			PrintError(fmt.Sprintf("%s %s", f.Field, f.Message))
		}
	}
}
