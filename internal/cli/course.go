package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/slotwise/internal/engine"
)

var (
	addSlots      string
	addCredits    int
	addFaculty    string
	addLabSlots   string
	addLabFaculty string
	addMode       string
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a theory course",
	Long: `Add a theory course to the timetable.

Slots are given as a pattern such as "A1+TA1". In standard mode each primary
slot brings its first free extension along, so "A1" alone takes A1 and TA1.
Custom mode takes the pattern literally.

Use --lab-slots to add the course's lab in the same step; both are saved
together or not at all.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}

		req := &engine.AddCourseRequest{
			Timetable: a.timetable,
			Name:      args[0],
			Credits:   addCredits,
			Faculty:   splitNames(addFaculty),
			Selection: engine.Selection{
				Slots: slotFlag(cmd, "slots", addSlots),
				Mode:  addMode,
			},
		}
		if cmd.Flags().Changed("lab-slots") {
			req.Lab = &engine.AddLabRequest{
				Faculty: splitNames(addLabFaculty),
				Selection: engine.Selection{
					Slots: slotFlag(cmd, "lab-slots", addLabSlots),
					Mode:  addMode,
				},
			}
		}

		result, err := a.eng.AddCourse(context.Background(), req)
		if err != nil {
			reportError(err)
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSuccess(fmt.Sprintf("Added %s (%s)", result.Course.Name, slotText(result.Course.Slots)))
		if result.Lab != nil {
			PrintSuccess(fmt.Sprintf("Added %s (%s)", result.Lab.Name, slotText(result.Lab.Slots)))
		}
		PrintLabelValue("ID", result.Course.ID)
		return nil
	},
}

var (
	editName    string
	editCredits int
	editSlots   string
	editToggle  string
	editMode    string
)

var editCmd = &cobra.Command{
	Use:   "edit <course>",
	Short: "Edit a course in place",
	Long: `Edit a course's name, credits or slots.

--slots replaces the selection; --toggle flips individual slots against the
current one. The course's own slots never count as conflicts while editing.
Renaming a theory course renames its lab too.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}

		req := &engine.EditCourseRequest{
			Timetable: a.timetable,
			Course:    args[0],
			Selection: engine.Selection{
				Slots:  slotFlag(cmd, "slots", editSlots),
				Toggle: slotFlag(cmd, "toggle", editToggle),
				Mode:   editMode,
			},
		}
		if cmd.Flags().Changed("name") {
			req.Name = &editName
		}
		if cmd.Flags().Changed("credits") {
			req.Credits = &editCredits
		}

		result, err := a.eng.EditCourse(context.Background(), req)
		if err != nil {
			reportError(err)
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSuccess(fmt.Sprintf("Updated %s", result.Course.Name))
		PrintLabelValue("Slots", slotText(result.Course.Slots))
		PrintLabelValue("Credits", fmt.Sprintf("%d", result.Course.Credits))
		if len(result.Renamed) > 0 {
			PrintLabelValue("Also renamed", strings.Join(result.Renamed, ", "))
		}
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <course>",
	Short: "Delete a course",
	Long: `Delete a course from the timetable.

Deleting a theory course also deletes its lab.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}

		result, err := a.eng.RemoveCourse(context.Background(), &engine.RemoveCourseRequest{
			Timetable: a.timetable,
			Course:    args[0],
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		for _, name := range result.Removed {
			PrintSuccess(fmt.Sprintf("Deleted %s", name))
		}
		return nil
	},
}

var (
	labAddSlots   string
	labAddFaculty string
	labAddMode    string
)

// labCmd is the parent command for lab companions.
var labCmd = &cobra.Command{
	Use:   "lab",
	Short: "Manage lab companions",
	Long:  `Manage the lab companion of a theory course.`,
}

var labAddCmd = &cobra.Command{
	Use:   "add <course>",
	Short: "Add a lab to a theory course",
	Long: `Add the "<course> Lab" companion of a theory course.

Labs take lab slots only and carry one credit. A course has at most one lab.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}

		result, err := a.eng.AddLab(context.Background(), &engine.AddLabRequest{
			Timetable: a.timetable,
			Course:    args[0],
			Faculty:   splitNames(labAddFaculty),
			Selection: engine.Selection{
				Slots: slotFlag(cmd, "slots", labAddSlots),
				Mode:  labAddMode,
			},
		})
		if err != nil {
			reportError(err)
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSuccess(fmt.Sprintf("Added %s (%s)", result.Course.Name, slotText(result.Course.Slots)))
		PrintLabelValue("ID", result.Course.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addSlots, "slots", "s", "", "Slot pattern, e.g. A1+TA1")
	addCmd.Flags().IntVarP(&addCredits, "credits", "c", 0, "Credits (0-5)")
	addCmd.Flags().StringVarP(&addFaculty, "faculty", "f", "", "Comma-separated faculty, most preferred first")
	addCmd.Flags().StringVar(&addLabSlots, "lab-slots", "", "Also add a lab with this slot pattern")
	addCmd.Flags().StringVar(&addLabFaculty, "lab-faculty", "", "Comma-separated faculty for the lab")
	addCmd.Flags().StringVarP(&addMode, "mode", "m", "", "Slot mode for this selection (standard or custom)")
	_ = addCmd.MarkFlagRequired("slots")

	editCmd.Flags().StringVarP(&editName, "name", "n", "", "New course name")
	editCmd.Flags().IntVarP(&editCredits, "credits", "c", 0, "New credits (0-5)")
	editCmd.Flags().StringVarP(&editSlots, "slots", "s", "", "Replace the slot selection")
	editCmd.Flags().StringVar(&editToggle, "toggle", "", "Flip these slots against the current selection")
	editCmd.Flags().StringVarP(&editMode, "mode", "m", "", "Slot mode for this selection (standard or custom)")

	labAddCmd.Flags().StringVarP(&labAddSlots, "slots", "s", "", "Lab slot pattern, e.g. L1+L2")
	labAddCmd.Flags().StringVarP(&labAddFaculty, "faculty", "f", "", "Comma-separated faculty, most preferred first")
	labAddCmd.Flags().StringVarP(&labAddMode, "mode", "m", "", "Slot mode for this selection (standard or custom)")
	_ = labAddCmd.MarkFlagRequired("slots")

	labCmd.AddCommand(labAddCmd)
}
