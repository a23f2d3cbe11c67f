package units

// System 单位制（imperial 或 metric）
type System string

const (
	Imperial System = "imperial"
	Metric   System = "metric"
)

// Conversion factors. The area factor is an independent coefficient; it is
// NOT derived from the length factor at call time.
const (
	// FeetToMeters converts one-way length values (ft -> m).
	FeetToMeters = 0.3048
	// SqFeetToSqMeters converts one-way area values (sq ft -> sq m).
	SqFeetToSqMeters = 0.092903

	// MetersToFeet is the factor used when rescaling stored dimensions on a
	// unit toggle. It is the conventional approximation, not the exact
	// reciprocal of FeetToMeters, so a toggle round trip is slightly lossy.
	MetersToFeet = 3.28084
)

// Labels 单位显示标签
type Labels struct {
	Length     string `json:"length"`
	Area       string `json:"area"`
	VolumeAbbr string `json:"volume_abbr"`
	VolumeName string `json:"volume_name"`
}

var labels = map[System]Labels{
	Imperial: {Length: "ft", Area: "sq ft", VolumeAbbr: "gal", VolumeName: "gallons"},
	Metric:   {Length: "m", Area: "sq m", VolumeAbbr: "L", VolumeName: "liters"},
}

// Valid reports whether s is one of the two supported systems.
func Valid(s System) bool {
	_, ok := labels[s]
	return ok
}

// LabelsFor returns the display labels for a system. Unknown systems fall
// back to imperial labels.
func LabelsFor(s System) Labels {
	if l, ok := labels[s]; ok {
		return l
	}
	return labels[Imperial]
}

// ConvertLength converts a linear dimension between systems, passing through
// the metric canonical value.
func ConvertLength(v float64, from, to System) float64 {
	if from == to {
		return v
	}
	metric := v
	if from == Imperial {
		metric = v * FeetToMeters
	}
	if to == Imperial {
		return metric / FeetToMeters
	}
	return metric
}

// ConvertArea converts an area value between systems using the dedicated
// area coefficient.
func ConvertArea(v float64, from, to System) float64 {
	if from == to {
		return v
	}
	metric := v
	if from == Imperial {
		metric = v * SqFeetToSqMeters
	}
	if to == Imperial {
		return metric / SqFeetToSqMeters
	}
	return metric
}

// ToggleFactor returns the in-place rescale factor applied to stored room
// and opening dimensions when the active system switches from -> to.
// Returns 1 when from == to.
func ToggleFactor(from, to System) float64 {
	switch {
	case from == to:
		return 1
	case from == Imperial && to == Metric:
		return FeetToMeters
	case from == Metric && to == Imperial:
		return MetersToFeet
	}
	return 1
}
