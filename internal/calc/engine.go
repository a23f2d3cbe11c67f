// Package calc is the pure calculation engine: every function maps
// well-formed room/opening/settings input to an area or volume figure with
// no side effects and no hidden state. Input validation is a boundary
// concern (service/http layers); malformed numeric input propagates as
// NaN/Inf here instead of panicking.
package calc

import (
	"errors"
	"math"

	"paintcalc/internal/domain"
	"paintcalc/internal/units"
)

// ErrNoRooms 没有房间时不产生结果（“未计算”区别于“计算结果为零”）
var ErrNoRooms = errors.New("no rooms to calculate")

// WallArea returns the gross wall area of a rectangular room.
func WallArea(length, width, height float64) float64 {
	return 2 * (length + width) * height
}

// CeilingArea returns the ceiling area of a rectangular room.
func CeilingArea(length, width float64) float64 {
	return length * width
}

// OpeningArea returns the area an opening contributes.
//
// For add-action openings every painted face counts, so the base area is
// multiplied by quantity and the effective face count (minimum 1). For
// subtract-action openings the face count is ignored: the opening is a hole
// in the wall, not a painted surface.
func OpeningArea(o domain.Opening) float64 {
	base := o.Width * o.Height
	qty := o.Quantity
	if qty < 1 {
		qty = 1
	}
	if o.Action == domain.ActionAdd {
		faces := o.Faces()
		if faces < 1 {
			faces = 1
		}
		return base * float64(qty) * float64(faces)
	}
	return base * float64(qty)
}

// RoomArea computes the full area breakdown for one room. The net wall area
// is floored at zero: a room cannot go negative even when subtract openings
// are over-specified.
func RoomArea(room domain.Room, includeCeiling bool) domain.RoomResult {
	wall := WallArea(room.Length, room.Width, room.Height)

	ceiling := 0.0
	if includeCeiling {
		ceiling = CeilingArea(room.Length, room.Width)
	}

	var subtract, add float64
	for _, o := range room.Openings {
		if o.Action == domain.ActionSubtract {
			subtract += OpeningArea(o)
		} else {
			add += OpeningArea(o)
		}
	}

	net := math.Max(0, wall-subtract)

	return domain.RoomResult{
		RoomID:             room.RoomID,
		RoomName:           room.RoomName,
		WallArea:           wall,
		CeilingArea:        ceiling,
		SubtractArea:       subtract,
		AddArea:            add,
		NetWallArea:        net,
		TotalPaintableArea: net + ceiling + add,
	}
}

// Aggregate sums the per-room breakdowns into project totals. The
// includeCeiling flag is global: the same setting applies to every room.
func Aggregate(rooms []domain.Room, settings domain.Settings) ([]domain.RoomResult, domain.Totals) {
	results := make([]domain.RoomResult, 0, len(rooms))
	var totals domain.Totals
	for _, room := range rooms {
		r := RoomArea(room, settings.IncludeCeiling)
		results = append(results, r)
		totals.WallArea += r.WallArea
		totals.CeilingArea += r.CeilingArea
		totals.SubtractArea += r.SubtractArea
		totals.AddArea += r.AddArea
		totals.TotalPaintableArea += r.TotalPaintableArea
	}
	return results, totals
}

// PaintRequired converts a total paintable area into a purchase
// recommendation. The recommended unit count always rounds up: buying one
// unit too many is cheaper than a second trip to the store.
func PaintRequired(totalArea, coveragePerUnit float64, coats int, wastagePercent float64) (base, withCoats, withWastage float64, recommended int) {
	base = totalArea / coveragePerUnit
	withCoats = base * float64(coats)
	withWastage = withCoats * (1 + wastagePercent/100)
	recommended = int(math.Ceil(withWastage))
	return base, withCoats, withWastage, recommended
}

// CalculateAll runs the whole pipeline for a project. Returns ErrNoRooms
// when the project has no rooms, so callers can distinguish "nothing
// computed" from a computed zero-area result.
func CalculateAll(p *domain.Project) (*domain.CalculationResult, error) {
	if p == nil || len(p.Rooms) == 0 {
		return nil, ErrNoRooms
	}

	roomResults, totals := Aggregate(p.Rooms, p.Settings)

	coverage := domain.Coverage(p.Settings.PaintType, p.UnitSystem)
	base, withCoats, withWastage, recommended := PaintRequired(
		totals.TotalPaintableArea, coverage, p.Settings.Coats, p.Settings.WastagePercent)

	return &domain.CalculationResult{
		ProjectID:   p.ProjectID,
		ProjectName: p.ProjectName,
		UnitSystem:  p.UnitSystem,
		Labels:      units.LabelsFor(p.UnitSystem),
		Settings:    p.Settings,
		Rooms:       roomResults,
		Totals:      totals,
		Paint: domain.PaintEstimate{
			PaintType:        p.Settings.PaintType,
			Coats:            p.Settings.Coats,
			WastagePercent:   p.Settings.WastagePercent,
			Coverage:         coverage,
			BaseVolume:       base,
			WithCoats:        withCoats,
			WithWastage:      withWastage,
			RecommendedUnits: recommended,
		},
	}, nil
}
