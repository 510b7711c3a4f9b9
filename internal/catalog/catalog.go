package catalog

import (
	"errors"

	"Hidro/internal/units"
)

// ID names a calculation category.
type ID string

const (
	FlowRate          ID = "flow-rate"
	VelocityFlow      ID = "velocity-flow"
	Pressure          ID = "pressure"
	Density           ID = "density"
	WaterColumn       ID = "water-column"
	Reynolds          ID = "reynolds"
	RelativeRoughness ID = "relative-roughness"
	FrictionFactor    ID = "friction-factor"
	HeadLoss          ID = "head-loss"
	EnergyEquation    ID = "energy-equation"
	PumpPower         ID = "pump-power"
	NPSH              ID = "npsh"
	Bernoulli         ID = "bernoulli"
	UnitConversion    ID = "unit-conversion"
)

var ErrUnknownCategory = errors.New("unknown category")

// Field describes one required input of a category.
type Field struct {
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Symbol      string       `json:"symbol"`
	Family      units.Family `json:"family"`
	Units       []string     `json:"units"`
	DefaultUnit string       `json:"default_unit"`
}

// Alternate is a convenience unit the result is also expressed in.
type Alternate struct {
	Unit  string  `json:"unit"`
	Scale float64 `json:"-"`
}

// Category is a fixed calculation with its inputs and presentation metadata.
type Category struct {
	ID          ID          `json:"id"`
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Formula     string      `json:"formula"`
	Description string      `json:"description"`
	Fields      []Field     `json:"fields"`
	OutputUnit  string      `json:"output_unit"`
	Alternates  []Alternate `json:"alternates,omitempty"`
}

// UsesConversion reports whether the category takes the from/to unit shape
// instead of the field list.
func (c Category) UsesConversion() bool {
	return c.ID == UnitConversion
}

// Field returns the named field.
func (c Category) Field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Lookup returns the category with the given id.
func Lookup(id ID) (Category, error) {
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrUnknownCategory
}

// All returns every category in menu order.
func All() []Category {
	return append([]Category(nil), categories...)
}

// MeasurementType is one option of the unit-conversion type picker.
type MeasurementType struct {
	Family units.Family `json:"family"`
	Name   string       `json:"name"`
	Units  []string     `json:"units"`
}

// MeasurementTypes lists the families selectable in unit-conversion mode.
func MeasurementTypes() []MeasurementType {
	fams := units.Families()
	out := make([]MeasurementType, 0, len(fams))
	for _, f := range fams {
		out = append(out, MeasurementType{Family: f, Name: units.DisplayName(f), Units: units.Labels(f)})
	}
	return out
}
