package domain

import (
	"time"

	"paintcalc/internal/units"
)

// Project 估算项目（一次涂料估算会话的全部输入状态）
// Rooms/Settings 是计算的唯一输入；Revision 在每次修改后递增，
// 作为结果缓存的 key 的一部分，保证不会读到过期结果。
type Project struct {
	ProjectID   string       `json:"project_id"`
	ProjectName string       `json:"project_name"`
	UnitSystem  units.System `json:"unit_system"`
	Settings    Settings     `json:"settings"`
	Rooms       []Room       `json:"rooms"`
	Revision    int64        `json:"revision"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Room 房间（尺寸使用项目当前单位制）
type Room struct {
	RoomID   string    `json:"room_id"`
	RoomName string    `json:"room_name"`
	Length   float64   `json:"length"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Openings []Opening `json:"openings"`
}

// Opening 墙面开口（门/窗/衣柜等）
// Action 与 FaceCount 默认由 Type 决定（见 catalog.go），可被显式覆盖。
// FaceCount == 0 表示未覆盖，使用类型默认值。
type Opening struct {
	OpeningID string      `json:"opening_id"`
	Type      OpeningType `json:"type"`
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	Quantity  int         `json:"quantity"`
	Action    Action      `json:"action"`
	FaceCount int         `json:"face_count,omitempty"`
}

// Faces returns the effective face count for an add-action opening:
// the explicit override when set, otherwise the type default.
func (o Opening) Faces() int {
	if o.FaceCount > 0 {
		return o.FaceCount
	}
	return SpecFor(o.Type).FaceCount
}

// Rescale switches the project's active unit system and rewrites every
// stored room and opening dimension with the toggle factor. The mutation is
// deliberate: all later calculations run in the new unit without tracking
// original values, at the cost of a slightly lossy toggle round trip
// (see units.MetersToFeet).
func (p *Project) Rescale(to units.System) {
	factor := units.ToggleFactor(p.UnitSystem, to)
	if factor != 1 {
		for i := range p.Rooms {
			room := &p.Rooms[i]
			room.Length *= factor
			room.Width *= factor
			room.Height *= factor
			for j := range room.Openings {
				room.Openings[j].Width *= factor
				room.Openings[j].Height *= factor
			}
		}
	}
	p.UnitSystem = to
}

// Settings 全局计算设置（对所有房间生效）
type Settings struct {
	Coats          int       `json:"coats"`
	WastagePercent float64   `json:"wastage_percent"`
	IncludeCeiling bool      `json:"include_ceiling"`
	PaintType      PaintType `json:"paint_type"`
}

// DefaultSettings returns the settings a new project starts with.
func DefaultSettings() Settings {
	return Settings{
		Coats:          2,
		WastagePercent: 10,
		IncludeCeiling: true,
		PaintType:      PaintInterior,
	}
}
