package domain

import "paintcalc/internal/units"

// RoomResult 单个房间的面积分解
type RoomResult struct {
	RoomID             string  `json:"room_id"`
	RoomName           string  `json:"room_name"`
	WallArea           float64 `json:"wall_area"`
	CeilingArea        float64 `json:"ceiling_area"`
	SubtractArea       float64 `json:"subtract_area"`
	AddArea            float64 `json:"add_area"`
	NetWallArea        float64 `json:"net_wall_area"`
	TotalPaintableArea float64 `json:"total_paintable_area"`
}

// Totals 所有房间面积字段的合计
type Totals struct {
	WallArea           float64 `json:"wall_area"`
	CeilingArea        float64 `json:"ceiling_area"`
	SubtractArea       float64 `json:"subtract_area"`
	AddArea            float64 `json:"add_area"`
	TotalPaintableArea float64 `json:"total_paintable_area"`
}

// PaintEstimate 涂料用量估算
type PaintEstimate struct {
	PaintType        PaintType `json:"paint_type"`
	Coats            int       `json:"coats"`
	WastagePercent   float64   `json:"wastage_percent"`
	Coverage         float64   `json:"coverage"`
	BaseVolume       float64   `json:"base_volume"`
	WithCoats        float64   `json:"with_coats"`
	WithWastage      float64   `json:"with_wastage"`
	RecommendedUnits int       `json:"recommended_units"`
}

// CalculationResult 一次完整计算的结果树。
// 纯派生数据：只由 Rooms+Settings+UnitSystem 决定，每次输入变化后重算，
// 从不单独修改。
type CalculationResult struct {
	ProjectID   string        `json:"project_id"`
	ProjectName string        `json:"project_name"`
	UnitSystem  units.System  `json:"unit_system"`
	Labels      units.Labels  `json:"labels"`
	Settings    Settings      `json:"settings"`
	Rooms       []RoomResult  `json:"rooms"`
	Totals      Totals        `json:"totals"`
	Paint       PaintEstimate `json:"paint"`
}
