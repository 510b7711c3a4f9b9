package units

// Family identifies a set of mutually convertible units.
type Family string

const (
	Velocity  Family = "velocity"
	Area      Family = "area"
	Force     Family = "force"
	Pressure  Family = "pressure"
	Mass      Family = "mass"
	Volume    Family = "volume"
	Density   Family = "density"
	Length    Family = "length"
	Viscosity Family = "viscosity"
	Flow      Family = "flow"

	// Dimensionless and Percentage have no conversion table.
	Dimensionless Family = "dimensionless"
	Percentage    Family = "percentage"
)

// Unit is one entry of a family table: SI = raw * Factor.
type Unit struct {
	Label  string  `json:"label"`
	Factor float64 `json:"factor"`
}

type familyTable struct {
	family Family
	name   string
	units  []Unit
}

// Factors are exact where a definition exists (ft, lb, psi, gal).
var registry = []familyTable{
	{Velocity, "Velocidade", []Unit{
		{"m/s", 1},
		{"km/h", 1 / 3.6},
		{"cm/s", 0.01},
		{"ft/s", 0.3048},
		{"mph", 0.44704},
	}},
	{Area, "Área", []Unit{
		{"m²", 1},
		{"cm²", 1e-4},
		{"mm²", 1e-6},
		{"ft²", 0.09290304},
		{"in²", 0.00064516},
	}},
	{Force, "Força", []Unit{
		{"N", 1},
		{"kN", 1000},
		{"kgf", 9.80665},
		{"lbf", 4.4482216152605},
		{"dyn", 1e-5},
	}},
	{Pressure, "Pressão", []Unit{
		{"Pa", 1},
		{"kPa", 1000},
		{"MPa", 1e6},
		{"bar", 1e5},
		{"atm", 101325},
		{"psi", 6894.757293168},
		{"mmHg", 133.322387415},
		{"mca", 9806.65},
	}},
	{Mass, "Massa", []Unit{
		{"kg", 1},
		{"g", 0.001},
		{"t", 1000},
		{"lb", 0.45359237},
	}},
	{Volume, "Volume", []Unit{
		{"m³", 1},
		{"L", 0.001},
		{"mL", 1e-6},
		{"cm³", 1e-6},
		{"ft³", 0.028316846592},
		{"gal", 0.003785411784},
	}},
	{Density, "Massa específica", []Unit{
		{"kg/m³", 1},
		{"g/cm³", 1000},
		{"lb/ft³", 16.018463373960138},
	}},
	{Length, "Comprimento", []Unit{
		{"m", 1},
		{"cm", 0.01},
		{"mm", 0.001},
		{"km", 1000},
		{"ft", 0.3048},
		{"in", 0.0254},
	}},
	{Viscosity, "Viscosidade dinâmica", []Unit{
		{"Pa·s", 1},
		{"mPa·s", 0.001},
		{"cP", 0.001},
		{"P", 0.1},
	}},
	{Flow, "Vazão", []Unit{
		{"m³/s", 1},
		{"m³/h", 1.0 / 3600},
		{"L/s", 0.001},
		{"L/min", 0.001 / 60},
		{"gal/min", 0.003785411784 / 60},
	}},
}

func lookup(family Family) (familyTable, bool) {
	for _, t := range registry {
		if t.family == family {
			return t, true
		}
	}
	return familyTable{}, false
}

// FactorOf returns the SI factor of unit within family.
func FactorOf(family Family, unit string) (float64, bool) {
	t, ok := lookup(family)
	if !ok {
		return 0, false
	}
	for _, u := range t.units {
		if u.Label == unit {
			return u.Factor, true
		}
	}
	return 0, false
}

// Families lists the convertible families in display order.
func Families() []Family {
	out := make([]Family, 0, len(registry))
	for _, t := range registry {
		out = append(out, t.family)
	}
	return out
}

// Known reports whether family has a conversion table.
func Known(family Family) bool {
	_, ok := lookup(family)
	return ok
}

// DisplayName is the human label of a family.
func DisplayName(family Family) string {
	if t, ok := lookup(family); ok {
		return t.name
	}
	return string(family)
}

// Units returns a copy of the family table, base unit first.
func Units(family Family) []Unit {
	t, ok := lookup(family)
	if !ok {
		return nil
	}
	return append([]Unit(nil), t.units...)
}

// Labels returns the unit labels of family in table order.
func Labels(family Family) []string {
	t, ok := lookup(family)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(t.units))
	for _, u := range t.units {
		out = append(out, u.Label)
	}
	return out
}

// Base returns the SI base unit label of family, or "" for tableless families.
func Base(family Family) string {
	t, ok := lookup(family)
	if !ok {
		return ""
	}
	for _, u := range t.units {
		if u.Factor == 1 {
			return u.Label
		}
	}
	return ""
}
