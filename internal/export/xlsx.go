package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sales Register"

// moneyFormat is Excel's built-in "#,##0.00".
const moneyFormat = 4

// WriteXLSX writes the register as a single-sheet workbook with a summary row.
func WriteXLSX(out io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: moneyFormat})
	if err != nil {
		return fmt.Errorf("creating money style: %w", err)
	}
	summaryStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: moneyFormat})
	if err != nil {
		return fmt.Errorf("creating summary style: %w", err)
	}

	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(columns))
	_ = f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle)

	for r := range rows {
		rowNum := r + 2
		cells := rows[r].cells()
		for c := 0; c < firstAmountCol; c++ {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowNum)
			_ = f.SetCellValue(sheetName, cell, cells[c])
		}
		for i, amt := range rows[r].amounts() {
			cell, _ := excelize.CoordinatesToCellName(firstAmountCol+i+1, rowNum)
			_ = f.SetCellValue(sheetName, cell, amt.InexactFloat64())
		}
		cell, _ := excelize.CoordinatesToCellName(len(columns), rowNum)
		_ = f.SetCellValue(sheetName, cell, cells[len(columns)-1])
	}
	if len(rows) > 0 {
		from, _ := excelize.CoordinatesToCellName(firstAmountCol+1, 2)
		to, _ := excelize.CoordinatesToCellName(len(columns)-1, len(rows)+1)
		_ = f.SetCellStyle(sheetName, from, to, moneyStyle)
	}

	summaryRow := len(rows) + 2
	sum := Summary(rows)
	summaryRowData := Row{Totals: sum}
	_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Total")
	_ = f.SetCellValue(sheetName, fmt.Sprintf("G%d", summaryRow), len(rows))
	for i, amt := range summaryRowData.amounts() {
		cell, _ := excelize.CoordinatesToCellName(firstAmountCol+i+1, summaryRow)
		_ = f.SetCellValue(sheetName, cell, amt.InexactFloat64())
	}
	_ = f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("%s%d", lastCol, summaryRow), summaryStyle)

	widths := map[string]float64{"A": 18, "B": 12, "C": 30, "D": 18, "F": 14}
	for col, w := range widths {
		_ = f.SetColWidth(sheetName, col, col, w)
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
