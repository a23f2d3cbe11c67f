package export

import (
	"fmt"
	"strconv"
	"strings"

	"paintcalc/internal/domain"
)

// reportTitle is the first line of the tabular report.
const reportTitle = "Paint Estimate Report"

// roomTableHeader 房间表表头（列顺序固定，测试按字节比对）
const roomTableHeader = "Room Name,Wall Area,Ceiling Area,Subtract Area,Add Area,Net Paintable Area"

// CSV renders the tabular text report. Output is bit-reproducible: fixed
// section order, two-decimal area figures, room names always quoted so
// embedded commas cannot break the table.
func CSV(result *domain.CalculationResult) string {
	var b strings.Builder

	b.WriteString(reportTitle + "\n")
	b.WriteString(roomTableHeader + "\n")
	for _, room := range result.Rooms {
		fmt.Fprintf(&b, "%s,%.2f,%.2f,%.2f,%.2f,%.2f\n",
			quote(room.RoomName),
			room.WallArea,
			room.CeilingArea,
			room.SubtractArea,
			room.AddArea,
			room.TotalPaintableArea,
		)
	}

	area := result.Labels.Area
	b.WriteString("\n")
	b.WriteString("Totals\n")
	fmt.Fprintf(&b, "Total Wall Area,%.2f %s\n", result.Totals.WallArea, area)
	fmt.Fprintf(&b, "Total Ceiling Area,%.2f %s\n", result.Totals.CeilingArea, area)
	fmt.Fprintf(&b, "Total Subtract Area,%.2f %s\n", result.Totals.SubtractArea, area)
	fmt.Fprintf(&b, "Total Add Area,%.2f %s\n", result.Totals.AddArea, area)
	fmt.Fprintf(&b, "Total Paintable Area,%.2f %s\n", result.Totals.TotalPaintableArea, area)

	vol := result.Labels.VolumeAbbr
	b.WriteString("\n")
	b.WriteString("Paint Required\n")
	fmt.Fprintf(&b, "Coats,%d\n", result.Paint.Coats)
	fmt.Fprintf(&b, "Wastage,%s%%\n", formatRate(result.Paint.WastagePercent))
	fmt.Fprintf(&b, "Coverage,%s %s/%s\n", formatRate(result.Paint.Coverage), area, vol)
	fmt.Fprintf(&b, "Paint Required,%.2f %s\n", result.Paint.WithWastage, vol)
	fmt.Fprintf(&b, "Recommended Purchase,%d %s\n", result.Paint.RecommendedUnits, vol)

	return b.String()
}

// quote wraps a field in double quotes, doubling any embedded quotes
// (CSV escaping). Room names are quoted unconditionally.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// formatRate prints a rate without trailing zeros (350 不输出 350.00，
// 32.5 保留一位小数).
func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
