package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Coordinate is a point on the reference image, both axes normalized to [0, 1].
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (c Coordinate) IsValid() bool {
	return inUnitRange(c.X) && inUnitRange(c.Y)
}

type Marker struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

func (m Marker) DistanceTo(c Coordinate) float64 {
	dx := m.X - c.X
	dy := m.Y - c.Y

	return math.Sqrt(dx*dx + dy*dy)
}

// RawMarker is a marker as it was stored by either the checkout or the entry
// flow. Values keep whatever JSON type they arrived with.
type RawMarker map[string]any

// NormalizeMarkers turns raw markers into well-formed ones. Entries whose
// coordinates are not finite numbers in [0, 1] are dropped. A missing or
// non-string id is replaced by "<idPrefix>-marker-<position>".
func NormalizeMarkers(raw []RawMarker, idPrefix string) []Marker {
	markers := make([]Marker, 0, len(raw))
	for i, r := range raw {
		if r == nil {
			continue
		}

		x, ok := coerceFloat(r["x"])
		if !ok || !inUnitRange(x) {
			continue
		}

		y, ok := coerceFloat(r["y"])
		if !ok || !inUnitRange(y) {
			continue
		}

		id, isString := r["id"].(string)
		if !isString || id == "" {
			id = idPrefix + "-marker-" + strconv.Itoa(i+1)
		}

		markers = append(markers, Marker{ID: id, X: x, Y: y})
	}

	return markers
}

func coerceFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

func inUnitRange(f float64) bool {
	return !math.IsNaN(f) && f >= 0 && f <= 1
}
