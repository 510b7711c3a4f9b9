package history

import (
	"errors"
	"fmt"
	"strings"

	"Hidro/internal/calc"
	"Hidro/internal/catalog"
)

var ErrInvalidResult = errors.New("result is not recordable")

// TimeLayout is how CreatedAt is rendered.
const TimeLayout = "02/01/2006 15:04:05"

// Entry is one recorded calculation. Entries are never mutated after creation.
type Entry struct {
	ID           int64             `json:"id"`
	Category     catalog.ID        `json:"category"`
	CategoryName string            `json:"category_name"`
	Value        float64           `json:"value"`
	Display      string            `json:"display"`
	Unit         string            `json:"unit"`
	Regime       string            `json:"regime,omitempty"`
	Formula      string            `json:"formula"`
	Derivation   []string          `json:"derivation"`
	Inputs       map[string]string `json:"inputs,omitempty"`
	CreatedAt    string            `json:"created_at"`
}

// Draft is everything an Entry carries except its id and timestamp.
type Draft struct {
	Category     catalog.ID
	CategoryName string
	Value        float64
	Display      string
	Unit         string
	Regime       string
	Formula      string
	Derivation   []string
	Inputs       map[string]string
}

// DraftFrom turns a valid evaluation into a Draft.
func DraftFrom(req calc.Request, res calc.Result) (Draft, error) {
	if !res.Valid() {
		return Draft{}, ErrInvalidResult
	}
	cat, err := catalog.Lookup(res.Category)
	if err != nil {
		return Draft{}, fmt.Errorf("draft: %w", err)
	}
	return Draft{
		Category:     cat.ID,
		CategoryName: cat.Name,
		Value:        *res.Value,
		Display:      calc.FormatResult(res),
		Unit:         res.Unit,
		Regime:       res.Regime,
		Formula:      cat.Formula,
		Derivation:   append([]string(nil), res.Derivation...),
		Inputs:       describeInputs(cat, req),
	}, nil
}

func describeInputs(cat catalog.Category, req calc.Request) map[string]string {
	out := make(map[string]string, len(req.Values))
	for name, raw := range req.Values {
		v := strings.TrimSpace(string(raw))
		if v == "" {
			continue
		}
		unit := req.Units[name]
		if unit == "" {
			if f, ok := cat.Field(name); ok {
				unit = f.DefaultUnit
			}
		}
		if unit != "" {
			v += " " + unit
		}
		out[name] = v
	}
	if c := req.Conversion; c != nil && cat.UsesConversion() {
		out["measurement_type"] = string(c.MeasurementType)
		out["from"] = c.From
		out["to"] = c.To
	}
	return out
}
