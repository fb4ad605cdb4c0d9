package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/danieljhkim/slotwise/internal/codec"
	"github.com/danieljhkim/slotwise/internal/engine"
	"github.com/danieljhkim/slotwise/internal/planner"
	"github.com/danieljhkim/slotwise/internal/schedule"
)

// captureOutput points stdout and stderr at buffers with colors off.
func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr, oldNoColor := stdout, stderr, color.NoColor
	stdout, stderr = &out, &errOut
	color.NoColor = true
	t.Cleanup(func() {
		stdout, stderr = oldOut, oldErr
		color.NoColor = oldNoColor
	})
	return &out, &errOut
}

func TestFormatJSON(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{
			name:  "simple map",
			input: map[string]string{"key": "value"},
			want:  "{\n  \"key\": \"value\"\n}",
		},
		{
			name:  "empty map",
			input: map[string]string{},
			want:  "{}",
		},
		{
			name:  "array",
			input: []string{"A1", "TA1"},
			want:  "[\n  \"A1\",\n  \"TA1\"\n]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatJSON(tt.input)
			if err != nil {
				t.Fatalf("formatJSON() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("formatJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatError(t *testing.T) {
	captureOutput(t)
	got := formatError(os.ErrNotExist)
	if !strings.HasPrefix(got, "Error:") {
		t.Errorf("formatError() = %q, expected to start with 'Error:'", got)
	}
}

func TestOutputJSON(t *testing.T) {
	out, _ := captureOutput(t)

	if err := outputJSON(map[string]string{"test": "value"}); err != nil {
		t.Fatalf("outputJSON() error = %v", err)
	}

	var v map[string]string
	if err := json.Unmarshal(out.Bytes(), &v); err != nil {
		t.Fatalf("outputJSON() produced invalid JSON: %v", err)
	}
	if v["test"] != "value" {
		t.Errorf("outputJSON() = %v", v)
	}
}

func TestPrintFunctions(t *testing.T) {
	out, errOut := captureOutput(t)

	PrintSuccess("Success message")
	PrintWarning("Warning message")
	PrintError("Error message")
	PrintInfo("Info message")

	if !strings.Contains(out.String(), "✓ Success message") || !strings.Contains(out.String(), "Info message") {
		t.Errorf("PrintSuccess/PrintInfo should write to stdout, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "✗ Error message") {
		t.Errorf("PrintError should write to stderr, got %q", errOut.String())
	}
}

func TestPrintTable(t *testing.T) {
	out, _ := captureOutput(t)

	PrintTable([]string{"SLOT", "STATUS"}, [][]string{{"A1", "free"}, {"TAA1", "taken"}})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	want := []string{
		"  SLOT  STATUS",
		"  ----  ------",
		"  A1    free  ",
		"  TAA1  taken ",
	}
	if len(lines) != len(want) {
		t.Fatalf("PrintTable() printed %d lines, want %d: %q", len(lines), len(want), out.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestSplitNames(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"Dr. A", []string{"Dr. A"}},
		{" Dr. A , ,Dr. B ", []string{"Dr. A", "Dr. B"}},
	}
	for _, tt := range tests {
		got := splitNames(tt.in)
		if fmt.Sprint(got) != fmt.Sprint(tt.want) || len(got) != len(tt.want) {
			t.Errorf("splitNames(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlotText(t *testing.T) {
	if got := slotText(nil); got != "-" {
		t.Errorf("slotText(nil) = %q", got)
	}
	if got := slotText([]string{"A1", "TA1"}); got != "A1+TA1" {
		t.Errorf("slotText() = %q", got)
	}
}

func TestPosition(t *testing.T) {
	if got, err := position("3"); err != nil || got != 2 {
		t.Errorf("position(3) = %d, %v", got, err)
	}
	for _, arg := range []string{"0", "-1", "x"} {
		if _, err := position(arg); !errors.Is(err, schedule.ErrInvalidInput) {
			t.Errorf("position(%q) error = %v, want ErrInvalidInput", arg, err)
		}
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"unavailable", &engine.SelectionError{Rejected: []planner.Rejection{{Token: "L1", Reason: "taken"}}}, ExitUnavailable},
		{"invalid", fmt.Errorf("wrap: %w", schedule.ErrInvalidInput), ExitInvalid},
		{"format", &codec.FormatError{Missing: []string{"slots"}}, ExitInvalid},
		{"other", os.ErrPermission, ExitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReportError(t *testing.T) {
	_, errOut := captureOutput(t)

	reportError(&engine.SelectionError{Rejected: []planner.Rejection{
		{Token: "L1", Reason: "L1 clashes with A1"},
	}})
	if !strings.Contains(errOut.String(), "L1: L1 clashes with A1") {
		t.Errorf("reportError() stderr = %q", errOut.String())
	}
}

func TestIsTerminal(t *testing.T) {
	if isTerminal(strings.NewReader("")) {
		t.Error("a string reader is not a terminal")
	}
	f, err := os.CreateTemp(t.TempDir(), "in")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	if isTerminal(f) {
		t.Error("a regular file is not a terminal")
	}
}
