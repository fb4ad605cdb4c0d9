package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/slotwise/internal/config"
	"github.com/danieljhkim/slotwise/internal/engine"
	"github.com/danieljhkim/slotwise/internal/fsops"
)

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Replace the timetable from a CSV file",
	Long: `Replace every course of the timetable with the rows of a CSV file.

The header must name courseName, slots, credits, facultyPreferences,
preferredSlot, creationMode and facultyLabAssignments, in any order. Use "-"
to read from stdin. Nothing changes when the file cannot be read.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}

		var r io.Reader = cmd.InOrStdin()
		source := "stdin"
		if args[0] == "-" && isTerminal(r) {
			_, _ = dimColor.Fprintln(stderr, "Reading CSV from stdin, end with Ctrl-D")
		}
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()
			r = f
			source = args[0]
		}

		result, err := a.eng.Import(context.Background(), &engine.ImportRequest{
			Timetable: a.timetable,
			Reader:    r,
			Source:    source,
			DryRun:    importDryRun,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if result.DryRun {
			PrintSection("Dry Run")
			PrintInfo(fmt.Sprintf("Would import %s in %s mode", PrintCount(result.Courses, "course", "courses"), result.PreferredSlot))
			return nil
		}
		PrintSuccess(fmt.Sprintf("Imported %s into %s", PrintCount(result.Courses, "course", "courses"), a.timetable))
		PrintLabelValue("Preferred slot mode", string(result.PreferredSlot))
		return nil
	},
}

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the timetable as CSV or XLSX",
	Long: `Export the timetable.

csv writes one row per course and can be edited and imported back once a
creationMode column is added. xlsx writes the weekly grid as a workbook.
Without --output the export goes to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}
		format := strings.ToLower(exportFormat)
		if exportOutput != "" && !cmd.Flags().Changed("format") {
			if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(exportOutput)), "."); ext == engine.FormatXLSX {
				format = ext
			}
		}

		if exportOutput == "" {
			_, err := a.eng.Export(context.Background(), &engine.ExportRequest{
				Timetable: a.timetable,
				Writer:    stdout,
				Format:    format,
			})
			return err
		}

		var buf bytes.Buffer
		result, err := a.eng.Export(context.Background(), &engine.ExportRequest{
			Timetable: a.timetable,
			Writer:    &buf,
			Format:    format,
		})
		if err != nil {
			return err
		}
		if err := fsops.NewRealFS().AtomicWrite(exportOutput, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}

		if jsonOutput {
			return outputJSON(result)
		}
		PrintSuccess(fmt.Sprintf("Exported %s to %s", PrintCount(result.Courses, "course", "courses"), exportOutput))
		return nil
	},
}

// timetableCmd is the parent command for saved timetables.
var timetableCmd = &cobra.Command{
	Use:   "timetable",
	Short: "Manage saved timetables",
	Long:  `List or delete saved timetables. Select one for any command with --timetable.`,
}

var timetableLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List saved timetables",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}

		result, err := a.eng.ListTimetables(context.Background())
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if len(result.Timetables) == 0 {
			PrintEmptyState("No timetables saved")
			return nil
		}
		PrintSection("Timetables")
		for _, name := range result.Timetables {
			if name == a.timetable {
				_, _ = successColor.Fprintf(stdout, "  * %s\n", name)
				continue
			}
			PrintInfo("    " + name)
		}
		return nil
	},
}

var timetableRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a saved timetable",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}

		if err := a.eng.RemoveTimetable(context.Background(), &engine.RemoveTimetableRequest{Timetable: args[0]}); err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(map[string]string{"removed": args[0]})
		}
		PrintSuccess(fmt.Sprintf("Deleted timetable %s", args[0]))
		return nil
	},
}

var timetableUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the default timetable",
	Long: `Make <name> the timetable commands use when --timetable is not given.

The timetable is created on its first change.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}
		if err := a.fs.ValidateIdentifier(args[0]); err != nil {
			return err
		}

		a.settings.DefaultTimetable = args[0]
		if err := config.SaveSettings(a.fs, a.paths.Config, a.settings); err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(map[string]string{"defaultTimetable": args[0]})
		}
		PrintSuccess(fmt.Sprintf("Default timetable set to %s", args[0]))
		return nil
	},
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Decode the file without saving")

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", engine.FormatCSV, "Export format (csv or xlsx)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file instead of stdout")

	timetableCmd.AddCommand(timetableLsCmd)
	timetableCmd.AddCommand(timetableRmCmd)
	timetableCmd.AddCommand(timetableUseCmd)
}
