package calc

import (
	"fmt"
	"math"
	"strconv"

	"Hidro/internal/catalog"
	"Hidro/internal/units"
)

// Output is a secondary value derived alongside the main result.
type Output struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Result is the outcome of one evaluation. A nil Value means the inputs are
// incomplete; a non-finite Value means the formula could not be applied.
type Result struct {
	Category   catalog.ID
	Value      *float64
	Unit       string
	Derivation []string
	Regime     string
	Secondary  []Output
	Alternates []Output
}

// Ready reports whether every required input was supplied.
func (r Result) Ready() bool {
	return r.Value != nil
}

// Valid reports whether the result may be displayed and recorded.
func (r Result) Valid() bool {
	return r.Value != nil && !math.IsNaN(*r.Value) && !math.IsInf(*r.Value, 0)
}

// si holds inputs normalized to SI, keyed by field name.
type si map[string]float64

type evaluation struct {
	value     float64
	steps     []string
	regime    string
	secondary []Output
}

type formula func(in si) evaluation

var formulas = map[catalog.ID]formula{
	catalog.FlowRate:          flowRate,
	catalog.VelocityFlow:      velocityFromFlow,
	catalog.Pressure:          pressure,
	catalog.Density:           density,
	catalog.WaterColumn:       waterColumn,
	catalog.Reynolds:          reynolds,
	catalog.RelativeRoughness: relativeRoughness,
	catalog.FrictionFactor:    frictionFactor,
	catalog.HeadLoss:          headLoss,
	catalog.EnergyEquation:    energyEquation,
	catalog.PumpPower:         pumpPower,
	catalog.NPSH:              npsh,
	catalog.Bernoulli:         bernoulli,
}

// Evaluate runs the category formula for req. The only error is an unknown
// category; every other failure is expressed through the Result.
func Evaluate(req Request) (Result, error) {
	cat, err := catalog.Lookup(req.Category)
	if err != nil {
		return Result{}, fmt.Errorf("evaluate %q: %w", req.Category, err)
	}
	if cat.UsesConversion() {
		return convert(cat, req), nil
	}
	fn, ok := formulas[cat.ID]
	if !ok {
		return Result{}, fmt.Errorf("evaluate %q: %w", req.Category, catalog.ErrUnknownCategory)
	}

	res := Result{Category: cat.ID, Unit: cat.OutputUnit}
	in := make(si, len(cat.Fields))
	lines := make([]string, 0, len(cat.Fields)+6)
	for _, f := range cat.Fields {
		raw, ok := req.Values[f.Name].number()
		if !ok {
			return res, nil
		}
		unit := req.unitFor(f)
		v := units.ToSI(raw, f.Family, unit)
		in[f.Name] = v
		lines = append(lines, inputLine(f, raw, unit, v))
	}

	ev := fn(in)
	value := ev.value
	res.Value = &value
	res.Regime = ev.regime
	res.Secondary = ev.secondary
	lines = append(lines, ev.steps...)

	if res.Valid() {
		lines = append(lines, fmt.Sprintf("Resultado: %s", withUnit(Format(value, cat.ID), cat.OutputUnit)))
		for _, alt := range cat.Alternates {
			o := Output{Label: alt.Unit, Value: value * alt.Scale, Unit: alt.Unit}
			res.Alternates = append(res.Alternates, o)
			lines = append(lines, fmt.Sprintf("  = %s", withUnit(formatNumber(o.Value), o.Unit)))
		}
	}
	res.Derivation = lines
	return res, nil
}

func inputLine(f catalog.Field, raw float64, unit string, v float64) string {
	rawText := strconv.FormatFloat(raw, 'f', -1, 64)
	switch {
	case f.Family == units.Percentage:
		return fmt.Sprintf("%s = %s %%", f.Symbol, rawText)
	case !units.Known(f.Family):
		return fmt.Sprintf("%s = %s", f.Symbol, rawText)
	}
	return fmt.Sprintf("%s = %s %s = %s %s", f.Symbol, rawText, unit, formatNumber(v), units.Base(f.Family))
}

func convert(cat catalog.Category, req Request) Result {
	res := Result{Category: cat.ID}
	c := req.Conversion
	if c == nil || c.MeasurementType == "" || c.From == "" || c.To == "" {
		return res
	}
	res.Unit = c.To
	value, ok := req.Values["value"].number()
	if !ok {
		return res
	}
	fromFactor, toFactor := factorOrOne(c.MeasurementType, c.From), factorOrOne(c.MeasurementType, c.To)
	out := value * units.Ratio(c.MeasurementType, c.From, c.To)
	res.Value = &out

	base := units.Base(c.MeasurementType)
	res.Derivation = []string{
		fmt.Sprintf("x = %s %s", strconv.FormatFloat(value, 'f', -1, 64), c.From),
		fmt.Sprintf("fator(%s) = %s %s", c.From, formatNumber(fromFactor), base),
		fmt.Sprintf("fator(%s) = %s %s", c.To, formatNumber(toFactor), base),
		fmt.Sprintf("resultado = %s · (%s / %s) = %s",
			formatNumber(value), formatNumber(fromFactor), formatNumber(toFactor), withUnit(formatNumber(out), c.To)),
	}
	return res
}

func factorOrOne(family units.Family, unit string) float64 {
	if f, ok := units.FactorOf(family, unit); ok {
		return f
	}
	return 1
}

func withUnit(v, unit string) string {
	if unit == "" {
		return v
	}
	return v + " " + unit
}

// n is shorthand for formatNumber inside equation lines.
func n(v float64) string {
	return formatNumber(v)
}
