package calc

import (
	"fmt"
	"math"
)

const (
	gravity      = 9.81
	waterDensity = 1000.0

	laminarLimit   = 2300.0
	turbulentLimit = 4000.0
)

// Regime names as shown to the user.
const (
	RegimeLaminar      = "Laminar"
	RegimeTransitional = "Transição"
	RegimeTurbulent    = "Turbulento"
)

// ClassifyRegime maps a Reynolds number to its flow regime.
func ClassifyRegime(re float64) string {
	switch {
	case re < laminarLimit:
		return RegimeLaminar
	case re < turbulentLimit:
		return RegimeTransitional
	default:
		return RegimeTurbulent
	}
}

func flowRate(in si) evaluation {
	v, a := in["velocity"], in["area"]
	q := v * a
	return evaluation{
		value: q,
		steps: []string{fmt.Sprintf("Q = v · A = %s · %s = %s m³/s", n(v), n(a), n(q))},
	}
}

func velocityFromFlow(in si) evaluation {
	q, a := in["flow"], in["area"]
	v := q / a
	return evaluation{
		value: v,
		steps: []string{fmt.Sprintf("v = Q / A = %s / %s = %s m/s", n(q), n(a), n(v))},
	}
}

func pressure(in si) evaluation {
	f, a := in["force"], in["area"]
	p := f / a
	return evaluation{
		value: p,
		steps: []string{fmt.Sprintf("P = F / A = %s / %s = %s Pa", n(f), n(a), n(p))},
	}
}

func density(in si) evaluation {
	m, vol := in["mass"], in["volume"]
	rho := m / vol
	return evaluation{
		value: rho,
		steps: []string{fmt.Sprintf("ρ = m / V = %s / %s = %s kg/m³", n(m), n(vol), n(rho))},
	}
}

func waterColumn(in si) evaluation {
	p := in["pressure"]
	h := p / (waterDensity * gravity)
	return evaluation{
		value: h,
		steps: []string{fmt.Sprintf("h = P / (ρ · g) = %s / (%s · %s) = %s m", n(p), n(waterDensity), n(gravity), n(h))},
	}
}

func reynolds(in si) evaluation {
	rho, v, d, mu := in["density"], in["velocity"], in["diameter"], in["viscosity"]
	re := rho * v * d / mu
	ev := evaluation{
		value: re,
		steps: []string{fmt.Sprintf("Re = ρ · v · D / μ = %s · %s · %s / %s = %s", n(rho), n(v), n(d), n(mu), n(re))},
	}
	if !math.IsNaN(re) {
		ev.regime = ClassifyRegime(re)
		ev.steps = append(ev.steps, fmt.Sprintf("Regime: %s (laminar < %s ≤ transição < %s ≤ turbulento)",
			ev.regime, n(laminarLimit), n(turbulentLimit)))
	}
	return ev
}

func relativeRoughness(in si) evaluation {
	e, d := in["roughness"], in["diameter"]
	r := e / d
	return evaluation{
		value: r,
		steps: []string{fmt.Sprintf("ε/D = %s / %s = %s", n(e), n(d), n(r))},
	}
}

// frictionFactor is the Swamee-Jain explicit fit of Colebrook.
func frictionFactor(in si) evaluation {
	re, rr := in["reynolds"], in["relativeRoughness"]
	arg := rr/3.7 + 5.74/math.Pow(re, 0.9)
	lg := math.Log10(arg)
	f := 0.25 / (lg * lg)
	return evaluation{
		value: f,
		steps: []string{
			fmt.Sprintf("ε/D / 3.7 + 5.74 / Re^0.9 = %s / 3.7 + 5.74 / %s^0.9 = %s", n(rr), n(re), n(arg)),
			fmt.Sprintf("log10(%s) = %s", n(arg), n(lg)),
			fmt.Sprintf("f = 0.25 / (%s)² = %s", n(lg), n(f)),
		},
	}
}

func headLoss(in si) evaluation {
	f, l, d, v, k := in["frictionFactor"], in["length"], in["diameter"], in["velocity"], in["kSum"]
	dyn := v * v / (2 * gravity)
	distributed := f * (l / d) * dyn
	local := k * dyn
	total := distributed + local
	return evaluation{
		value: total,
		steps: []string{
			fmt.Sprintf("v²/2g = %s² / (2 · %s) = %s m", n(v), n(gravity), n(dyn)),
			fmt.Sprintf("h_f = f · (L/D) · v²/2g = %s · (%s / %s) · %s = %s m", n(f), n(l), n(d), n(dyn), n(distributed)),
			fmt.Sprintf("h_k = Σk · v²/2g = %s · %s = %s m", n(k), n(dyn), n(local)),
			fmt.Sprintf("h_t = h_f + h_k = %s + %s = %s m", n(distributed), n(local), n(total)),
		},
		secondary: []Output{
			{Label: "Perda distribuída", Value: distributed, Unit: "m"},
			{Label: "Perda localizada", Value: local, Unit: "m"},
		},
	}
}

func energyEquation(in si) evaluation {
	z1, z2 := in["z1"], in["z2"]
	p1, p2 := in["p1"], in["p2"]
	v1, v2 := in["v1"], in["v2"]
	ht, rho := in["headLoss"], in["density"]

	pressureHead := (p2 - p1) / (rho * gravity)
	velocityHead := (v2*v2 - v1*v1) / (2 * gravity)
	elevation := z2 - z1
	hm := pressureHead + velocityHead + elevation + ht
	return evaluation{
		value: hm,
		steps: []string{
			fmt.Sprintf("(p2 − p1)/(ρg) = (%s − %s) / (%s · %s) = %s m", n(p2), n(p1), n(rho), n(gravity), n(pressureHead)),
			fmt.Sprintf("(v2² − v1²)/(2g) = (%s² − %s²) / (2 · %s) = %s m", n(v2), n(v1), n(gravity), n(velocityHead)),
			fmt.Sprintf("z2 − z1 = %s − %s = %s m", n(z2), n(z1), n(elevation)),
			fmt.Sprintf("H_m = %s + %s + %s + %s = %s m", n(pressureHead), n(velocityHead), n(elevation), n(ht), n(hm)),
		},
		secondary: []Output{
			{Label: "Carga de pressão", Value: pressureHead, Unit: "m"},
			{Label: "Carga cinética", Value: velocityHead, Unit: "m"},
			{Label: "Desnível", Value: elevation, Unit: "m"},
		},
	}
}

func pumpPower(in si) evaluation {
	q, h, rho, eta := in["flow"], in["head"], in["density"], in["efficiency"]
	hydraulic := rho * gravity * q * h
	p := hydraulic / (eta / 100)
	return evaluation{
		value: p,
		steps: []string{
			fmt.Sprintf("P_h = ρ · g · Q · H = %s · %s · %s · %s = %s W", n(rho), n(gravity), n(q), n(h), n(hydraulic)),
			fmt.Sprintf("P = P_h / (η/100) = %s / (%s/100) = %s W", n(hydraulic), n(eta), n(p)),
		},
		secondary: []Output{{Label: "Potência hidráulica", Value: hydraulic, Unit: "W"}},
	}
}

func npsh(in si) evaluation {
	patm, pv := in["atmosphericPressure"], in["vaporPressure"]
	hs, hl, rho := in["suctionHeight"], in["headLoss"], in["density"]
	available := (patm - pv) / (rho * gravity)
	value := available - hs - hl
	return evaluation{
		value: value,
		steps: []string{
			fmt.Sprintf("(P_atm − P_v)/(ρg) = (%s − %s) / (%s · %s) = %s m", n(patm), n(pv), n(rho), n(gravity), n(available)),
			fmt.Sprintf("NPSH = %s − %s − %s = %s m", n(available), n(hs), n(hl), n(value)),
		},
	}
}

func bernoulli(in si) evaluation {
	p1, v1, h1 := in["pressure1"], in["velocity1"], in["height1"]
	v2, h2, rho := in["velocity2"], in["height2"], in["density"]
	e1 := p1 + 0.5*rho*v1*v1 + rho*gravity*h1
	p2 := e1 - 0.5*rho*v2*v2 - rho*gravity*h2
	return evaluation{
		value: p2,
		steps: []string{
			fmt.Sprintf("E1 = P1 + ½ρv1² + ρgh1 = %s + %s + %s = %s Pa", n(p1), n(0.5*rho*v1*v1), n(rho*gravity*h1), n(e1)),
			fmt.Sprintf("P2 = E1 − ½ρv2² − ρgh2 = %s − %s − %s = %s Pa", n(e1), n(0.5*rho*v2*v2), n(rho*gravity*h2), n(p2)),
		},
		secondary: []Output{{Label: "Energia no ponto 1", Value: e1, Unit: "Pa"}},
	}
}
