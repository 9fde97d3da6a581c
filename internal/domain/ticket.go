package domain

import (
	"bytes"
	"encoding/json"
	"math"
)

type Ticket struct {
	TicketID     string   `json:"ticketId"`
	TicketNumber int      `json:"ticketNumber"`
	Markers      []Marker `json:"markers"`
}

// RawTicket is a ticket entry from a checkout summary or a ticket submission.
// Decoding never fails on a malformed field; the field is left empty instead.
type RawTicket struct {
	TicketID     string      `json:"ticketId,omitempty"`
	TicketNumber int         `json:"ticketNumber"`
	Markers      []RawMarker `json:"markers"`
}

func (t *RawTicket) UnmarshalJSON(data []byte) error {
	*t = RawTicket{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// not an object
		return nil
	}

	if raw, ok := fields["ticketId"]; ok {
		var id string
		if err := json.Unmarshal(raw, &id); err == nil {
			t.TicketID = id
		}
	}

	if raw, ok := fields["ticketNumber"]; ok {
		t.TicketNumber = decodeTicketNumber(raw)
	}

	if raw, ok := fields["markers"]; ok {
		t.Markers = DecodeRawMarkers(raw)
	}

	return nil
}

func decodeTicketNumber(raw json.RawMessage) int {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return 0
	}

	f, ok := coerceFloat(v)
	if !ok || f < 1 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0
	}

	return int(f)
}

// DecodeRawMarkers decodes a JSON list of markers. List positions are kept:
// entries that are not objects become nil so that synthesized marker ids
// still reflect the original index. Anything but a list decodes as nil.
func DecodeRawMarkers(raw []byte) []RawMarker {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	markers := make([]RawMarker, len(items))
	for i, item := range items {
		var m map[string]any
		if err := json.Unmarshal(item, &m); err != nil {
			continue
		}
		markers[i] = m
	}

	return markers
}

// ClosestMarker returns the marker nearest to c and its distance. On ties the
// earliest marker wins. ok is false when markers is empty.
func ClosestMarker(markers []Marker, c Coordinate) (best Marker, distance float64, ok bool) {
	if len(markers) == 0 {
		return Marker{}, math.Inf(1), false
	}

	best = markers[0]
	distance = best.DistanceTo(c)
	for _, m := range markers[1:] {
		if d := m.DistanceTo(c); d < distance {
			best, distance = m, d
		}
	}

	return best, distance, true
}
