package grid

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/danieljhkim/slotwise/internal/slots"
)

// SheetName is the worksheet WriteXLSX fills.
const SheetName = "Timetable"

// groupFills are the workbook fill colours, matched by index to groupColors.
var groupFills = []string{
	"#9BE7F0", "#FFF2A8", "#B8F0B8", "#F2B8F0", "#9DB8F0",
	"#F0A8A8", "#C8FAFF", "#FFF8D0", "#DDFBDD", "#FADDFA",
}

// WriteXLSX writes the grid to w as an Excel workbook. Occupied cells are
// filled with their group's colour; the first two columns name the family
// and the day.
func WriteXLSX(w io.Writer, g *Grid, title string) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	lastCol := colName(2 + slots.TheoryColumns + slots.LabColumns - 1)
	if err := f.SetColWidth(SheetName, "A", "B", 10); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "C", lastCol, 18); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	fills := make([]int, len(groupFills))
	for i, c := range groupFills {
		fills[i], err = f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{c}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		})
		if err != nil {
			return fmt.Errorf("group style: %w", err)
		}
	}

	if title == "" {
		title = SheetName
	}
	if err := f.SetCellValue(SheetName, "A1", title); err != nil {
		return err
	}
	if err := f.MergeCell(SheetName, "A1", lastCol+"1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	header := []any{"Family", "Day"}
	for i := 1; i <= slots.TheoryColumns; i++ {
		header = append(header, fmt.Sprintf("T%d", i))
	}
	for i := 1; i <= slots.LabColumns; i++ {
		header = append(header, fmt.Sprintf("L%d", i))
	}
	if err := f.SetSheetRow(SheetName, "A2", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A2", lastCol+"2", headerStyle); err != nil {
		return err
	}

	for i, r := range g.Rows {
		row := i + 3
		cells := append(r.Theory[:], r.Labs[:]...)
		values := []any{capitalize(r.Family.String()), r.Day.String()}
		for _, c := range cells {
			values = append(values, cellText(c))
		}
		if err := f.SetSheetRow(SheetName, cell("A", row), &values); err != nil {
			return err
		}
		for j, c := range cells {
			if c.Free() {
				continue
			}
			ref := cell(colName(2+j), row)
			if err := f.SetCellStyle(SheetName, ref, ref, fills[c.Group%len(fills)]); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func cellText(c Cell) string {
	if c.Free() {
		return c.Slot
	}
	return c.Slot + "\n" + c.Course
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
