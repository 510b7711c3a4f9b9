package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"Hidro/internal/catalog"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name string
		v    float64
		id   catalog.ID
		want string
	}{
		{"plain decimal", 123.456789, catalog.Pressure, "123.456789"},
		{"rounded to six places", 123.4567891, catalog.Pressure, "123.456789"},
		{"trailing zeros stripped", 50, catalog.Pressure, "50"},
		{"negative", -50.5, catalog.Bernoulli, "-50.5"},
		{"zero", 0, catalog.Pressure, "0"},
		{"lower edge stays decimal", 0.001, catalog.Pressure, "0.001"},
		{"upper edge stays decimal", 10000, catalog.Pressure, "10000"},
		{"tiny uses six significant digits", 0.0005, catalog.Pressure, "0.000500000"},
		{"large uses six significant digits", 21600, catalog.FlowRate, "21600.0"},
		{"very large switches to exponent", 1234567, catalog.PumpPower, "1.23457e+6"},
		{"very small switches to exponent", 1e-7, catalog.RelativeRoughness, "1.00000e-7"},
		{"reynolds integer", 200000, catalog.Reynolds, "200000"},
		{"reynolds rounds", 2299.7, catalog.Reynolds, "2300"},
		{"reynolds small", 1.5, catalog.Reynolds, "2"},
		{"reynolds huge stays integer", 1234567.89, catalog.Reynolds, "1234568"},
		{"reynolds negative zero", -0.2, catalog.Reynolds, "0"},
		{"nan", math.NaN(), catalog.Pressure, ""},
		{"inf", math.Inf(1), catalog.Pressure, ""},
		{"reynolds inf", math.Inf(-1), catalog.Reynolds, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Format(tc.v, tc.id))
		})
	}
}

func TestFormatResult(t *testing.T) {
	assert.Equal(t, "", FormatResult(Result{Category: catalog.Pressure}))
	v := 50.0
	assert.Equal(t, "50", FormatResult(Result{Category: catalog.Pressure, Value: &v}))
}
