package units

// ToSI normalizes raw to the family's SI base unit. An empty or unknown unit,
// or an unknown family, leaves raw unchanged: the value is assumed to already
// be SI. Sign and range are not checked.
func ToSI(raw float64, family Family, unit string) float64 {
	if unit == "" {
		return raw
	}
	factor, ok := FactorOf(family, unit)
	if !ok {
		return raw
	}
	return raw * factor
}

// FromSI expresses an SI value in unit, with the same pass-through rules as ToSI.
func FromSI(si float64, family Family, unit string) float64 {
	if unit == "" {
		return si
	}
	factor, ok := FactorOf(family, unit)
	if !ok {
		return si
	}
	return si / factor
}

// Convert re-expresses value from one unit of family to another.
func Convert(value float64, family Family, from, to string) float64 {
	return FromSI(ToSI(value, family, from), family, to)
}

// Ratio returns factor(from)/factor(to); missing units count as factor 1.
func Ratio(family Family, from, to string) float64 {
	f, ok := FactorOf(family, from)
	if !ok {
		f = 1
	}
	t, ok := FactorOf(family, to)
	if !ok {
		t = 1
	}
	return f / t
}
