package calc

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"Hidro/internal/catalog"
	"Hidro/internal/units"
)

// Raw is a value as the user typed it. JSON numbers and strings both decode
// into it; null decodes to blank.
type Raw string

func (r *Raw) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = Raw(s)
		return nil
	}
	*r = Raw(b)
	return nil
}

// number parses r. Blank, unparseable, NaN and zero all count as "not
// supplied": a typed 0 blocks the calculation exactly like an empty field.
func (r Raw) number() (float64, bool) {
	s := strings.TrimSpace(string(r))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || v == 0 {
		return 0, false
	}
	return v, true
}

// Conversion carries the measurement type and unit pair of unit-conversion mode.
type Conversion struct {
	MeasurementType units.Family `json:"measurement_type"`
	From            string       `json:"from"`
	To              string       `json:"to"`
}

// Request is one "Calculate" action.
type Request struct {
	Category   catalog.ID        `json:"category"`
	Values     map[string]Raw    `json:"values"`
	Units      map[string]string `json:"units,omitempty"`
	Conversion *Conversion       `json:"conversion,omitempty"`
}

// NewRequest builds a request from plain numbers, mostly for callers that
// already hold parsed values.
func NewRequest(id catalog.ID, values map[string]float64, chosen map[string]string) Request {
	raw := make(map[string]Raw, len(values))
	for k, v := range values {
		raw[k] = Raw(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return Request{Category: id, Values: raw, Units: chosen}
}

func (r Request) unitFor(f catalog.Field) string {
	if u, ok := r.Units[f.Name]; ok && u != "" {
		return u
	}
	return f.DefaultUnit
}
