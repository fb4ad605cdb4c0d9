package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/slotwise/internal/engine"
	"github.com/danieljhkim/slotwise/internal/grid"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all courses",
	Long:  `Display every course in the timetable with its slots and the credit total.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}

		result, err := a.eng.List(context.Background(), &engine.ListRequest{Timetable: a.timetable})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		PrintSection(fmt.Sprintf("Timetable %s (%s)", result.Timetable, result.PreferredSlot))
		if len(result.Courses) == 0 {
			PrintEmptyState("No courses yet. Add one with 'slotwise add'.")
			return nil
		}

		rows := make([][]string, 0, len(result.Courses))
		for _, c := range result.Courses {
			rows = append(rows, []string{
				c.ID[:min(8, len(c.ID))],
				c.Name,
				slotText(c.Effective),
				fmt.Sprintf("%d", c.Credits),
				strings.Join(c.Faculty, ", "),
			})
		}
		PrintTable([]string{"ID", "COURSE", "SLOTS", "CREDITS", "FACULTY"}, rows)
		fmt.Fprintln(stdout)
		PrintLabelValueWithColor("Total credits", fmt.Sprintf("%d", result.TotalCredits), successColor)
		PrintLabelValue("Courses", PrintCount(len(result.Courses), "course", "courses"))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [course]",
	Short: "Show the weekly grid or one course",
	Long: `Without an argument, draw the weekly grid of the timetable: each family's
five theory columns and six lab columns per day, coloured by course.

With a course, print that course's details.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}
		ctx := context.Background()

		if len(args) == 1 {
			view, err := a.eng.Show(ctx, &engine.ShowRequest{Timetable: a.timetable, Course: args[0]})
			if err != nil {
				return err
			}
			if jsonOutput {
				return outputJSON(view)
			}
			printCourse(*view)
			return nil
		}

		g, err := a.eng.Grid(ctx, &engine.GridRequest{Timetable: a.timetable})
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(g)
		}
		grid.Render(stdout, g)
		return nil
	},
}

var (
	slotsFree     bool
	slotsCategory string
	slotsEditing  string
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List slots with availability",
	Long: `List every slot of the catalog and whether it can still be taken.

Use --editing to see availability as it would be while editing a course,
with that course's own slots exempt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}

		result, err := a.eng.Slots(context.Background(), &engine.SlotsRequest{
			Timetable: a.timetable,
			Category:  slotsCategory,
			FreeOnly:  slotsFree,
			Editing:   slotsEditing,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if len(result.Slots) == 0 {
			PrintEmptyState("No slots match")
			return nil
		}
		rows := make([][]string, 0, len(result.Slots))
		for _, s := range result.Slots {
			status := "free"
			switch {
			case s.Owner != "":
				status = "taken by " + s.Owner
			case !s.Available:
				status = "clashes with " + strings.Join(s.BlockedBy, ", ")
			}
			rows = append(rows, []string{s.Slot, string(s.Category), status})
		}
		PrintTable([]string{"SLOT", "CATEGORY", "STATUS"}, rows)
		return nil
	},
}

var checkEditing string

var checkCmd = &cobra.Command{
	Use:   "check <slot>",
	Short: "Check whether a slot can be taken",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}

		result, err := a.eng.Check(context.Background(), &engine.CheckRequest{
			Timetable: a.timetable,
			Slot:      args[0],
			Editing:   checkEditing,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}

		if result.Available {
			PrintSuccess(fmt.Sprintf("%s is available", result.Slot))
		} else {
			PrintWarning(fmt.Sprintf("%s is not available", result.Slot))
			for _, c := range result.Conflicts {
				PrintInfo("  " + c.Reason)
			}
		}
		PrintLabelValue("Category", string(result.Category))
		if len(result.Overlaps) > 0 {
			PrintLabelValue("Overlaps", strings.Join(result.Overlaps, ", "))
		}
		if len(result.Extensions) > 0 {
			PrintLabelValue("Extensions", strings.Join(result.Extensions, ", "))
		}
		return nil
	},
}

func init() {
	slotsCmd.Flags().BoolVar(&slotsFree, "free", false, "Only list available slots")
	slotsCmd.Flags().StringVarP(&slotsCategory, "category", "c", "", "Only list one category (theory-morning, theory-evening, lab-morning, lab-evening)")
	slotsCmd.Flags().StringVarP(&slotsEditing, "editing", "e", "", "Exempt this course's own slots")

	checkCmd.Flags().StringVarP(&checkEditing, "editing", "e", "", "Exempt this course's own slots")
}
