package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"paintcalc/internal/domain"
)

// excelRoomHeader 与 CSV 报表保持同一列顺序
var excelRoomHeader = []string{
	"Room Name",
	"Wall Area",
	"Ceiling Area",
	"Subtract Area",
	"Add Area",
	"Net Paintable Area",
}

// Excel renders the estimate as a styled workbook: the same section order
// as the tabular report (room table, totals, paint required) on one sheet.
func Excel(result *domain.CalculationResult) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	sheetName := "Paint Estimate"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	// 表头
	for col, header := range excelRoomHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	columnWidths := []float64{
		25, // Room Name
		15, // Wall Area
		15, // Ceiling Area
		15, // Subtract Area
		15, // Add Area
		18, // Net Paintable Area
	}
	for i := range excelRoomHeader {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, columnWidths[i]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	// 房间数据
	row := 2
	for _, r := range result.Rooms {
		values := []any{
			r.RoomName,
			r.WallArea,
			r.CeilingArea,
			r.SubtractArea,
			r.AddArea,
			r.TotalPaintableArea,
		}
		for col, v := range values {
			if err := setCell(f, sheetName, col+1, row, v); err != nil {
				f.Close()
				return nil, err
			}
		}
		row++
	}

	// Totals 区块
	area := result.Labels.Area
	row++
	totals := []struct {
		label string
		value float64
	}{
		{"Total Wall Area", result.Totals.WallArea},
		{"Total Ceiling Area", result.Totals.CeilingArea},
		{"Total Subtract Area", result.Totals.SubtractArea},
		{"Total Add Area", result.Totals.AddArea},
		{"Total Paintable Area", result.Totals.TotalPaintableArea},
	}
	if err := setCell(f, sheetName, 1, row, "Totals"); err != nil {
		f.Close()
		return nil, err
	}
	row++
	for _, t := range totals {
		if err := setCell(f, sheetName, 1, row, t.label); err != nil {
			f.Close()
			return nil, err
		}
		if err := setCell(f, sheetName, 2, row, fmt.Sprintf("%.2f %s", t.value, area)); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}

	// Paint Required 区块
	vol := result.Labels.VolumeAbbr
	row++
	if err := setCell(f, sheetName, 1, row, "Paint Required"); err != nil {
		f.Close()
		return nil, err
	}
	row++
	paint := []struct {
		label string
		value string
	}{
		{"Coats", fmt.Sprintf("%d", result.Paint.Coats)},
		{"Wastage", formatRate(result.Paint.WastagePercent) + "%"},
		{"Coverage", fmt.Sprintf("%s %s/%s", formatRate(result.Paint.Coverage), area, vol)},
		{"Paint Required", fmt.Sprintf("%.2f %s", result.Paint.WithWastage, vol)},
		{"Recommended Purchase", fmt.Sprintf("%d %s", result.Paint.RecommendedUnits, vol)},
	}
	for _, p := range paint {
		if err := setCell(f, sheetName, 1, row, p.label); err != nil {
			f.Close()
			return nil, err
		}
		if err := setCell(f, sheetName, 2, row, p.value); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}

	// 冻结表头
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	// Write to bytes buffer
	// Note: File must remain open during Write operation
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

// setCell 设置单元格值
func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	return nil
}
