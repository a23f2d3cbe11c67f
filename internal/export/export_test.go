package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"paintcalc/internal/calc"
	"paintcalc/internal/domain"
	"paintcalc/internal/units"
)

func sampleResult(t *testing.T) *domain.CalculationResult {
	t.Helper()
	p := &domain.Project{
		ProjectID:   "p1",
		ProjectName: "Home Repaint",
		UnitSystem:  units.Imperial,
		Settings:    domain.DefaultSettings(),
		Rooms: []domain.Room{
			{
				RoomID: "r1", RoomName: "Living Room",
				Length: 20, Width: 15, Height: 9,
				Openings: []domain.Opening{
					{Type: domain.OpeningPrefinishedDoor, Width: 3, Height: 7, Quantity: 1, Action: domain.ActionSubtract},
					{Type: domain.OpeningWindow, Width: 6, Height: 4, Quantity: 2, Action: domain.ActionSubtract},
				},
			},
			{
				RoomID: "r2", RoomName: "Master Bedroom",
				Length: 14, Width: 12, Height: 9,
				Openings: []domain.Opening{
					{Type: domain.OpeningPaintableDoor, Width: 3, Height: 7, Quantity: 1, Action: domain.ActionAdd, FaceCount: 2},
					{Type: domain.OpeningWindow, Width: 4, Height: 3, Quantity: 1, Action: domain.ActionSubtract},
					{Type: domain.OpeningWardrobe, Width: 8, Height: 8, Quantity: 1, Action: domain.ActionAdd, FaceCount: 1},
				},
			},
		},
	}
	result, err := calc.CalculateAll(p)
	require.NoError(t, err)
	return result
}

const goldenCSV = `Paint Estimate Report
Room Name,Wall Area,Ceiling Area,Subtract Area,Add Area,Net Paintable Area
"Living Room",630.00,300.00,69.00,0.00,861.00
"Master Bedroom",468.00,168.00,12.00,106.00,730.00

Totals
Total Wall Area,1098.00 sq ft
Total Ceiling Area,468.00 sq ft
Total Subtract Area,81.00 sq ft
Total Add Area,106.00 sq ft
Total Paintable Area,1591.00 sq ft

Paint Required
Coats,2
Wastage,10%
Coverage,350 sq ft/gal
Paint Required,10.00 gal
Recommended Purchase,11 gal
`

func TestCSV_GoldenOutput(t *testing.T) {
	assert.Equal(t, goldenCSV, CSV(sampleResult(t)))
}

func TestCSV_Deterministic(t *testing.T) {
	result := sampleResult(t)
	assert.Equal(t, CSV(result), CSV(result))
}

func TestCSV_QuotesRoomNames(t *testing.T) {
	result := sampleResult(t)
	result.Rooms[0].RoomName = `Living, "Formal"`
	out := CSV(result)
	assert.Contains(t, out, `"Living, ""Formal""",630.00`)
}

func TestCSV_MetricLabels(t *testing.T) {
	result := sampleResult(t)
	result.UnitSystem = units.Metric
	result.Labels = units.LabelsFor(units.Metric)
	result.Paint.Coverage = 32.5
	out := CSV(result)
	assert.Contains(t, out, "Total Paintable Area,1591.00 sq m")
	assert.Contains(t, out, "Coverage,32.5 sq m/L")
	assert.Contains(t, out, "Recommended Purchase,11 L")
}

func TestJSON_StableKeyOrderAndUnroundedNumbers(t *testing.T) {
	out, err := JSON(sampleResult(t))
	require.NoError(t, err)

	s := string(out)
	// key order follows struct declaration order
	order := []string{`"project_id"`, `"project_name"`, `"unit_system"`, `"labels"`, `"settings"`, `"rooms"`, `"totals"`, `"paint"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(s, key)
		require.GreaterOrEqual(t, idx, 0, key)
		assert.Greater(t, idx, last, key)
		last = idx
	}

	// numeric values are unrounded
	assert.Contains(t, s, `"with_wastage": 10.000571428571`)
	assert.Contains(t, s, "\n  ") // 2-space indentation
}

func TestExcel_RoundTripReadable(t *testing.T) {
	content, err := Excel(sampleResult(t))
	require.NoError(t, err)
	require.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Paint Estimate", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Room Name", name)

	room, err := f.GetCellValue("Paint Estimate", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Living Room", room)
}

func TestBuild_Formats(t *testing.T) {
	result := sampleResult(t)

	jsonFile, err := Build(result, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "paint-estimate.json", jsonFile.Name)
	assert.Equal(t, "application/json", jsonFile.ContentType)

	csvFile, err := Build(result, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "paint-estimate.csv", csvFile.Name)
	assert.Equal(t, "text/csv", csvFile.ContentType)
	assert.Equal(t, goldenCSV, string(csvFile.Content))

	xlsxFile, err := Build(result, FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "paint-estimate.xlsx", xlsxFile.Name)

	_, err = Build(result, Format("pdf"))
	assert.Error(t, err)
}
