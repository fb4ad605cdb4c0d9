package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/slotwise/internal/engine"
	"github.com/danieljhkim/slotwise/internal/schedule"
)

// facultyCmd is the parent command for faculty preferences.
var facultyCmd = &cobra.Command{
	Use:   "faculty",
	Short: "Manage faculty preferences",
	Long: `Manage the ordered faculty preference list of a course.

For a lab, the faculty at the top of the list decides which lab slots the lab
actually occupies: their lab assignment when set, the lab's own slots
otherwise.`,
}

var facultySetCmd = &cobra.Command{
	Use:   "set <course> <name>...",
	Short: "Replace the faculty preference list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}

		view, err := a.eng.SetFaculty(context.Background(), &engine.SetFacultyRequest{
			Timetable: a.timetable,
			Course:    args[0],
			Faculty:   args[1:],
		})
		if err != nil {
			reportError(err)
			return err
		}
		return printFaculty(view)
	},
}

var facultyMoveCmd = &cobra.Command{
	Use:   "move <course> <from> <to>",
	Short: "Move a faculty within the preference list",
	Long: `Move the faculty at position <from> to position <to>, counting from 1.

The others shift to make room.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := position(args[1])
		if err != nil {
			return err
		}
		to, err := position(args[2])
		if err != nil {
			return err
		}

		a, err := newEngine()
		if err != nil {
			return err
		}

		view, err := a.eng.MoveFaculty(context.Background(), &engine.MoveFacultyRequest{
			Timetable: a.timetable,
			Course:    args[0],
			From:      from,
			To:        to,
		})
		if err != nil {
			reportError(err)
			return err
		}
		return printFaculty(view)
	},
}

var (
	facultyLabSlots string
	facultyLabClear bool
	facultyLabMode  string
)

var facultyLabCmd = &cobra.Command{
	Use:   "lab <course> <faculty>",
	Short: "Set the lab slots one faculty would use",
	Long: `Set the lab slots a faculty would teach the lab in.

The assignment takes effect while that faculty is at the top of the lab's
preference list. Use --clear to remove it.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}

		view, err := a.eng.SetLabAssignment(context.Background(), &engine.SetLabAssignmentRequest{
			Timetable: a.timetable,
			Course:    args[0],
			Faculty:   args[1],
			Clear:     facultyLabClear,
			Selection: engine.Selection{
				Slots: slotFlag(cmd, "slots", facultyLabSlots),
				Mode:  facultyLabMode,
			},
		})
		if err != nil {
			reportError(err)
			return err
		}
		return printFaculty(view)
	},
}

var modeCmd = &cobra.Command{
	Use:   "mode [standard|custom]",
	Short: "Show or set the preferred slot mode",
	Long: `Show or set how slot selections are interpreted.

standard: a primary slot brings its first free extension (A1 takes TA1).
custom:   slots are taken exactly as given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}
		ctx := context.Background()

		var mode schedule.SlotMode
		if len(args) == 0 {
			list, err := a.eng.List(ctx, &engine.ListRequest{Timetable: a.timetable})
			if err != nil {
				return err
			}
			mode = list.PreferredSlot
		} else {
			mode, err = a.eng.SetMode(ctx, &engine.SetModeRequest{Timetable: a.timetable, Mode: args[0]})
			if err != nil {
				return err
			}
		}

		if jsonOutput {
			return outputJSON(map[string]string{"timetable": a.timetable, "preferredSlot": string(mode)})
		}
		if len(args) > 0 {
			PrintSuccess(fmt.Sprintf("Preferred slot mode set to %s", mode))
			return nil
		}
		PrintLabelValueWithColor("Preferred slot mode", string(mode), infoColor)
		return nil
	},
}

// position parses a 1-based list position into an index.
func position(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: position %q must be a number from 1", schedule.ErrInvalidInput, arg)
	}
	return n - 1, nil
}

func printFaculty(view *engine.CourseView) error {
	if jsonOutput {
		return outputJSON(view)
	}
	PrintSuccess(fmt.Sprintf("Updated faculty of %s", view.Name))
	if len(view.Faculty) == 0 {
		PrintEmptyState("No faculty listed")
	} else {
		PrintNumberedList(view.Faculty, 1)
	}
	if view.IsLab {
		PrintLabelValue("Effective", slotText(view.Effective))
	}
	return nil
}

func init() {
	facultyLabCmd.Flags().StringVarP(&facultyLabSlots, "slots", "s", "", "Lab slot pattern, e.g. L3+L4")
	facultyLabCmd.Flags().BoolVar(&facultyLabClear, "clear", false, "Remove the faculty's lab assignment")
	facultyLabCmd.Flags().StringVarP(&facultyLabMode, "mode", "m", "", "Slot mode for this selection (standard or custom)")
	facultyLabCmd.MarkFlagsMutuallyExclusive("slots", "clear")

	facultyCmd.AddCommand(facultySetCmd)
	facultyCmd.AddCommand(facultyMoveCmd)
	facultyCmd.AddCommand(facultyLabCmd)
}
