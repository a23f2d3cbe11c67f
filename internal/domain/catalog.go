package domain

import "paintcalc/internal/units"

// Action 开口面积的作用方向：add 增加可涂面积，subtract 从墙面扣除
type Action string

const (
	ActionAdd      Action = "add"
	ActionSubtract Action = "subtract"
)

// OpeningType 开口类型枚举
type OpeningType string

const (
	OpeningPrefinishedDoor OpeningType = "prefinished_door"
	OpeningPaintableDoor   OpeningType = "paintable_door"
	OpeningWindow          OpeningType = "window"
	OpeningSlidingDoor     OpeningType = "sliding_door"
	OpeningWardrobe        OpeningType = "wardrobe"
	OpeningGrill           OpeningType = "grill"
)

// OpeningSpec 开口类型的默认参数（默认尺寸以英尺为单位）
type OpeningSpec struct {
	Label     string  `json:"label"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Action    Action  `json:"action"`
	FaceCount int     `json:"face_count"`
}

// openingSpecs centralizes the per-type defaults as data. Subtract types
// carry face count 0: a hole in the wall has no painted faces.
var openingSpecs = map[OpeningType]OpeningSpec{
	OpeningPrefinishedDoor: {Label: "Prefinished Door", Width: 3, Height: 7, Action: ActionSubtract, FaceCount: 0},
	OpeningPaintableDoor:   {Label: "Paintable Door", Width: 3, Height: 7, Action: ActionAdd, FaceCount: 2},
	OpeningWindow:          {Label: "Window", Width: 4, Height: 3, Action: ActionSubtract, FaceCount: 0},
	OpeningSlidingDoor:     {Label: "Sliding Door", Width: 6, Height: 7, Action: ActionSubtract, FaceCount: 0},
	OpeningWardrobe:        {Label: "Wardrobe", Width: 6, Height: 8, Action: ActionAdd, FaceCount: 1},
	OpeningGrill:           {Label: "Grill / Gate", Width: 3, Height: 7, Action: ActionAdd, FaceCount: 2},
}

// SpecFor returns the default spec for an opening type. Unknown types get a
// zero-value subtract spec so malformed input degrades instead of panicking.
func SpecFor(t OpeningType) OpeningSpec {
	return openingSpecs[t]
}

// ValidOpeningType reports whether t is a known opening type.
func ValidOpeningType(t OpeningType) bool {
	_, ok := openingSpecs[t]
	return ok
}

// OpeningTypes returns the catalog in stable display order.
func OpeningTypes() []OpeningType {
	return []OpeningType{
		OpeningPrefinishedDoor,
		OpeningPaintableDoor,
		OpeningWindow,
		OpeningSlidingDoor,
		OpeningWardrobe,
		OpeningGrill,
	}
}

// PaintType 涂料类型枚举
type PaintType string

const (
	PaintInterior PaintType = "interior"
	PaintExterior PaintType = "exterior"
	PaintEnamel   PaintType = "enamel"
	PaintPrimer   PaintType = "primer"
	PaintCeiling  PaintType = "ceiling"
)

// PaintSpec 涂料类型的覆盖率（每单位体积可涂面积，按单位制区分）
type PaintSpec struct {
	Label            string  `json:"label"`
	CoverageImperial float64 `json:"coverage_imperial"` // sq ft per gallon
	CoverageMetric   float64 `json:"coverage_metric"`   // sq m per liter
}

var paintSpecs = map[PaintType]PaintSpec{
	PaintInterior: {Label: "Interior", CoverageImperial: 350, CoverageMetric: 32.5},
	PaintExterior: {Label: "Exterior", CoverageImperial: 300, CoverageMetric: 28},
	PaintEnamel:   {Label: "Enamel", CoverageImperial: 400, CoverageMetric: 37},
	PaintPrimer:   {Label: "Primer", CoverageImperial: 400, CoverageMetric: 37},
	PaintCeiling:  {Label: "Ceiling", CoverageImperial: 400, CoverageMetric: 37},
}

// PaintSpecFor returns the spec for a paint type.
func PaintSpecFor(t PaintType) PaintSpec {
	return paintSpecs[t]
}

// ValidPaintType reports whether t is a known paint type.
func ValidPaintType(t PaintType) bool {
	_, ok := paintSpecs[t]
	return ok
}

// Coverage returns the coverage rate of a paint type under a unit system.
func Coverage(t PaintType, s units.System) float64 {
	spec := paintSpecs[t]
	if s == units.Metric {
		return spec.CoverageMetric
	}
	return spec.CoverageImperial
}
