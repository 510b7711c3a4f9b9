package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryInvariants(t *testing.T) {
	for _, fam := range Families() {
		us := Units(fam)
		require.NotEmpty(t, us, fam)

		seen := map[string]bool{}
		baseCount := 0
		for _, u := range us {
			assert.Greater(t, u.Factor, 0.0, "%s %s", fam, u.Label)
			assert.False(t, seen[u.Label], "duplicate unit %s in %s", u.Label, fam)
			seen[u.Label] = true
			if u.Factor == 1 {
				baseCount++
			}
		}
		assert.Equal(t, 1, baseCount, "family %s must have exactly one base unit", fam)
		assert.Equal(t, us[0].Label, Base(fam), "base unit listed first in %s", fam)
	}
}

func TestToSIBaseIsIdentity(t *testing.T) {
	for _, fam := range Families() {
		for _, x := range []float64{0, 1, -3.5, 1234.5678, 1e-9} {
			assert.Equal(t, x, ToSI(x, fam, Base(fam)))
		}
	}
}

func TestRoundTripWithinFamily(t *testing.T) {
	const x = 42.125
	for _, fam := range Families() {
		for _, u1 := range Labels(fam) {
			for _, u2 := range Labels(fam) {
				f2, _ := FactorOf(fam, u2)
				inU2 := ToSI(x, fam, u1) / f2
				back := Convert(inU2, fam, u2, u1)
				assert.InDelta(t, x, back, 1e-9*math.Abs(x), "%s: %s -> %s", fam, u1, u2)
			}
		}
	}
}

func TestToSIPassThrough(t *testing.T) {
	assert.Equal(t, 7.0, ToSI(7, Pressure, ""))
	assert.Equal(t, 7.0, ToSI(7, Pressure, "furlong"))
	assert.Equal(t, 7.0, ToSI(7, Family("temperature"), "K"))
	assert.Equal(t, 7.0, ToSI(7, Dimensionless, "m"))
	assert.Equal(t, -2000.0, ToSI(-2, Pressure, "kPa"))
}

func TestKnownConversions(t *testing.T) {
	assert.Equal(t, 101325.0, Convert(1, Pressure, "atm", "Pa"))
	assert.InDelta(t, 1.01325, Convert(1, Pressure, "atm", "bar"), 1e-12)
	assert.InDelta(t, 1000.0, Convert(1, Volume, "m³", "L"), 1e-9)
	assert.InDelta(t, 3600.0, Convert(1, Flow, "m³/s", "m³/h"), 1e-9)
	assert.InDelta(t, 0.001, ToSI(1, Viscosity, "cP"), 1e-15)
	assert.Equal(t, 101325.0, Ratio(Pressure, "atm", "Pa"))
	assert.Equal(t, 1.0, Ratio(Pressure, "nope", "Pa"))
}

func TestFactorOfUnknown(t *testing.T) {
	_, ok := FactorOf(Length, "parsec")
	assert.False(t, ok)
	_, ok = FactorOf(Percentage, "%")
	assert.False(t, ok)
	assert.False(t, Known(Dimensionless))
	assert.True(t, Known(Flow))
	assert.Equal(t, "", Base(Percentage))
}
