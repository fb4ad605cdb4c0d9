package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/danieljhkim/slotwise/internal/engine"
)

var (
	// Output colors, disabled by configureColor when stdout is not a TTY
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
	dimColor     = color.New(color.FgHiBlack)
)

// stderr receives error lines.
var stderr io.Writer = color.Error

// PrintSection prints a section header
func PrintSection(title string) {
	fmt.Fprintln(stdout)
	_, _ = headerColor.Fprintf(stdout, "▸ %s\n", title)
	fmt.Fprintln(stdout)
}

// PrintSubsection prints a subsection header
func PrintSubsection(title string) {
	_, _ = infoColor.Fprintf(stdout, "  %s\n", title)
}

// PrintSuccess prints a success message with a checkmark
func PrintSuccess(msg string) {
	_, _ = successColor.Fprintf(stdout, "✓ %s\n", msg)
}

// PrintWarning prints a warning message with a warning symbol
func PrintWarning(msg string) {
	_, _ = warningColor.Fprintf(stdout, "⚠ %s\n", msg)
}

// PrintError prints an error message to stderr
func PrintError(msg string) {
	_, _ = errorColor.Fprintf(stderr, "✗ %s\n", msg)
}

// PrintInfo prints an informational message
func PrintInfo(msg string) {
	fmt.Fprintln(stdout, msg)
}

// PrintLabelValue prints a label-value pair with proper formatting
func PrintLabelValue(label, value string) {
	_, _ = labelColor.Fprintf(stdout, "  %s: ", label)
	_, _ = valueColor.Fprintln(stdout, value)
}

// PrintLabelValueWithColor prints a label-value pair with a custom value color
func PrintLabelValueWithColor(label, value string, valueClr *color.Color) {
	_, _ = labelColor.Fprintf(stdout, "  %s: ", label)
	_, _ = valueClr.Fprintln(stdout, value)
}

// PrintNumberedList prints a numbered list
func PrintNumberedList(items []string, indent int) {
	indentStr := strings.Repeat("  ", indent)
	for i, item := range items {
		_, _ = infoColor.Fprintf(stdout, "%s%d. %s\n", indentStr, i+1, item)
	}
}

// PrintTable prints a simple two-column table
func PrintTable(headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	// Calculate column widths
	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(colWidths) && len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}

	// Print header
	_, _ = headerColor.Fprint(stdout, "  ")
	for i, header := range headers {
		if i > 0 {
			fmt.Fprint(stdout, "  ")
		}
		_, _ = headerColor.Fprintf(stdout, "%-*s", colWidths[i], header)
	}
	fmt.Fprintln(stdout)

	// Print separator
	fmt.Fprint(stdout, "  ")
	for i, width := range colWidths {
		if i > 0 {
			fmt.Fprint(stdout, "  ")
		}
		fmt.Fprint(stdout, strings.Repeat("-", width))
	}
	fmt.Fprintln(stdout)

	// Print rows
	for _, row := range rows {
		fmt.Fprint(stdout, "  ")
		for i, cell := range row {
			if i >= len(colWidths) {
				break
			}
			if i > 0 {
				fmt.Fprint(stdout, "  ")
			}
			_, _ = valueColor.Fprintf(stdout, "%-*s", colWidths[i], cell)
		}
		fmt.Fprintln(stdout)
	}
}

// PrintEmptyState prints a message when there's no data to show
func PrintEmptyState(msg string) {
	_, _ = dimColor.Fprintf(stdout, "  %s\n", msg)
}

// PrintBadge prints a colored badge/tag
func PrintBadge(text string, clr *color.Color) {
	_, _ = clr.Fprintf(stdout, "  [%s]", text)
}

// PrintCount prints a count with proper formatting
func PrintCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// slotText joins slots the way patterns are written.
func slotText(list []string) string {
	if len(list) == 0 {
		return "-"
	}
	return strings.Join(list, "+")
}

// printCourse prints the full detail of one course.
func printCourse(v engine.CourseView) {
	_, _ = headerColor.Fprintf(stdout, "▸ %s", v.Name)
	if v.IsLab {
		PrintBadge("lab", infoColor)
	}
	fmt.Fprintln(stdout)
	PrintLabelValue("ID", v.ID)
	PrintLabelValue("Slots", slotText(v.Slots))
	if v.IsLab && slotText(v.Effective) != slotText(v.Slots) {
		PrintLabelValueWithColor("Effective", slotText(v.Effective), successColor)
	}
	PrintLabelValue("Credits", fmt.Sprintf("%d", v.Credits))
	if len(v.Faculty) > 0 {
		PrintLabelValue("Faculty", strings.Join(v.Faculty, ", "))
	}
	if len(v.LabAssignments) > 0 {
		PrintSubsection("Lab assignments:")
		names := make([]string, 0, len(v.LabAssignments))
		for name := range v.LabAssignments {
			names = append(names, name)
		}
		sort.Strings(names)
		orphaned := make(map[string]bool, len(v.Orphaned))
		for _, name := range v.Orphaned {
			orphaned[name] = true
		}
		for _, name := range names {
			line := fmt.Sprintf("%s: %s", name, slotText(v.LabAssignments[name]))
			if orphaned[name] {
				_, _ = dimColor.Fprintf(stdout, "    %s (not in faculty list)\n", line)
				continue
			}
			_, _ = valueColor.Fprintf(stdout, "    %s\n", line)
		}
	}
}
