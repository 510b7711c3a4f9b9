package catalog

import "Hidro/internal/units"

func measured(name, label, symbol string, family units.Family, def string) Field {
	return Field{
		Name:        name,
		Label:       label,
		Symbol:      symbol,
		Family:      family,
		Units:       units.Labels(family),
		DefaultUnit: def,
	}
}

func plain(name, label, symbol string) Field {
	return Field{Name: name, Label: label, Symbol: symbol, Family: units.Dimensionless}
}

func percent(name, label, symbol string) Field {
	return Field{Name: name, Label: label, Symbol: symbol, Family: units.Percentage, DefaultUnit: "%"}
}

var pressureAlternates = []Alternate{
	{Unit: "kPa", Scale: 1e-3},
	{Unit: "bar", Scale: 1e-5},
	{Unit: "psi", Scale: 1 / 6894.757293168},
}

var categories = []Category{
	{
		ID:          FlowRate,
		Name:        "Vazão",
		Title:       "Vazão volumétrica",
		Formula:     "Q = v · A",
		Description: "Volume de fluido que atravessa uma seção por unidade de tempo.",
		Fields: []Field{
			measured("velocity", "Velocidade", "v", units.Velocity, "m/s"),
			measured("area", "Área da seção", "A", units.Area, "m²"),
		},
		OutputUnit: "m³/s",
		Alternates: []Alternate{{Unit: "m³/h", Scale: 3600}, {Unit: "L/s", Scale: 1000}},
	},
	{
		ID:          VelocityFlow,
		Name:        "Velocidade",
		Title:       "Velocidade média do escoamento",
		Formula:     "v = Q / A",
		Description: "Velocidade média a partir da vazão e da área da seção.",
		Fields: []Field{
			measured("flow", "Vazão", "Q", units.Flow, "m³/s"),
			measured("area", "Área da seção", "A", units.Area, "m²"),
		},
		OutputUnit: "m/s",
		Alternates: []Alternate{{Unit: "km/h", Scale: 3.6}},
	},
	{
		ID:          Pressure,
		Name:        "Pressão",
		Title:       "Pressão",
		Formula:     "P = F / A",
		Description: "Força normal distribuída sobre uma área.",
		Fields: []Field{
			measured("force", "Força", "F", units.Force, "N"),
			measured("area", "Área", "A", units.Area, "m²"),
		},
		OutputUnit: "Pa",
		Alternates: pressureAlternates,
	},
	{
		ID:          Density,
		Name:        "Massa específica",
		Title:       "Massa específica",
		Formula:     "ρ = m / V",
		Description: "Massa por unidade de volume do fluido.",
		Fields: []Field{
			measured("mass", "Massa", "m", units.Mass, "kg"),
			measured("volume", "Volume", "V", units.Volume, "m³"),
		},
		OutputUnit: "kg/m³",
		Alternates: []Alternate{{Unit: "g/cm³", Scale: 1e-3}},
	},
	{
		ID:          WaterColumn,
		Name:        "Coluna d'água",
		Title:       "Altura de coluna d'água",
		Formula:     "h = P / (ρ · g)",
		Description: "Altura de água equivalente a uma pressão (ρ = 1000 kg/m³, g = 9,81 m/s²).",
		Fields: []Field{
			measured("pressure", "Pressão", "P", units.Pressure, "Pa"),
		},
		OutputUnit: "m",
		Alternates: []Alternate{{Unit: "cm", Scale: 100}, {Unit: "ft", Scale: 1 / 0.3048}},
	},
	{
		ID:          Reynolds,
		Name:        "Número de Reynolds",
		Title:       "Número de Reynolds",
		Formula:     "Re = ρ · v · D / μ",
		Description: "Razão entre forças de inércia e viscosas; classifica o regime de escoamento.",
		Fields: []Field{
			measured("density", "Massa específica", "ρ", units.Density, "kg/m³"),
			measured("velocity", "Velocidade", "v", units.Velocity, "m/s"),
			measured("diameter", "Diâmetro", "D", units.Length, "m"),
			measured("viscosity", "Viscosidade dinâmica", "μ", units.Viscosity, "Pa·s"),
		},
		OutputUnit: "",
	},
	{
		ID:          RelativeRoughness,
		Name:        "Rugosidade relativa",
		Title:       "Rugosidade relativa",
		Formula:     "ε / D",
		Description: "Rugosidade absoluta da parede dividida pelo diâmetro interno.",
		Fields: []Field{
			measured("roughness", "Rugosidade absoluta", "ε", units.Length, "mm"),
			measured("diameter", "Diâmetro", "D", units.Length, "m"),
		},
		OutputUnit: "",
	},
	{
		ID:          FrictionFactor,
		Name:        "Fator de atrito",
		Title:       "Fator de atrito (Swamee-Jain)",
		Formula:     "f = 0,25 / [log10(ε/D / 3,7 + 5,74 / Re^0,9)]²",
		Description: "Aproximação explícita da equação de Colebrook para escoamento turbulento.",
		Fields: []Field{
			plain("reynolds", "Número de Reynolds", "Re"),
			plain("relativeRoughness", "Rugosidade relativa", "ε/D"),
		},
		OutputUnit: "",
	},
	{
		ID:          HeadLoss,
		Name:        "Perda de carga",
		Title:       "Perda de carga total",
		Formula:     "h_t = f · (L/D) · (v²/2g) + Σk · (v²/2g)",
		Description: "Soma da perda distribuída (Darcy-Weisbach) com as perdas localizadas.",
		Fields: []Field{
			plain("frictionFactor", "Fator de atrito", "f"),
			measured("length", "Comprimento", "L", units.Length, "m"),
			measured("diameter", "Diâmetro", "D", units.Length, "m"),
			measured("velocity", "Velocidade", "v", units.Velocity, "m/s"),
			plain("kSum", "Soma dos coeficientes locais", "Σk"),
		},
		OutputUnit: "m",
	},
	{
		ID:          EnergyEquation,
		Name:        "Equação da energia",
		Title:       "Altura manométrica da bomba",
		Formula:     "H_m = (p2 − p1)/(ρg) + (v2² − v1²)/(2g) + (z2 − z1) + h_t",
		Description: "Energia por unidade de peso que a bomba deve fornecer entre os pontos 1 e 2.",
		Fields: []Field{
			measured("z1", "Cota no ponto 1", "z1", units.Length, "m"),
			measured("z2", "Cota no ponto 2", "z2", units.Length, "m"),
			measured("p1", "Pressão no ponto 1", "p1", units.Pressure, "Pa"),
			measured("p2", "Pressão no ponto 2", "p2", units.Pressure, "Pa"),
			measured("v1", "Velocidade no ponto 1", "v1", units.Velocity, "m/s"),
			measured("v2", "Velocidade no ponto 2", "v2", units.Velocity, "m/s"),
			measured("headLoss", "Perda de carga", "h_t", units.Length, "m"),
			measured("density", "Massa específica", "ρ", units.Density, "kg/m³"),
		},
		OutputUnit: "m",
	},
	{
		ID:          PumpPower,
		Name:        "Potência da bomba",
		Title:       "Potência de acionamento",
		Formula:     "P = ρ · g · Q · H / η",
		Description: "Potência no eixo da bomba para a vazão e altura manométrica dadas.",
		Fields: []Field{
			measured("flow", "Vazão", "Q", units.Flow, "m³/s"),
			measured("head", "Altura manométrica", "H", units.Length, "m"),
			measured("density", "Massa específica", "ρ", units.Density, "kg/m³"),
			percent("efficiency", "Rendimento", "η"),
		},
		OutputUnit: "W",
		Alternates: []Alternate{
			{Unit: "kW", Scale: 1e-3},
			{Unit: "hp", Scale: 1 / 745.6998715822702},
			{Unit: "cv", Scale: 1 / 735.49875},
		},
	},
	{
		ID:          NPSH,
		Name:        "NPSH",
		Title:       "NPSH disponível",
		Formula:     "NPSH = (P_atm − P_v)/(ρg) − h_s − h_l",
		Description: "Margem de energia na sucção acima da pressão de vapor do fluido.",
		Fields: []Field{
			measured("atmosphericPressure", "Pressão atmosférica", "P_atm", units.Pressure, "Pa"),
			measured("vaporPressure", "Pressão de vapor", "P_v", units.Pressure, "Pa"),
			measured("suctionHeight", "Altura de sucção", "h_s", units.Length, "m"),
			measured("headLoss", "Perda de carga na sucção", "h_l", units.Length, "m"),
			measured("density", "Massa específica", "ρ", units.Density, "kg/m³"),
		},
		OutputUnit: "m",
	},
	{
		ID:          Bernoulli,
		Name:        "Bernoulli",
		Title:       "Equação de Bernoulli",
		Formula:     "P2 = (P1 + ½ρv1² + ρgh1) − ½ρv2² − ρgh2",
		Description: "Pressão no ponto 2 pela conservação de energia sem perdas.",
		Fields: []Field{
			measured("pressure1", "Pressão no ponto 1", "P1", units.Pressure, "Pa"),
			measured("velocity1", "Velocidade no ponto 1", "v1", units.Velocity, "m/s"),
			measured("height1", "Altura no ponto 1", "h1", units.Length, "m"),
			measured("velocity2", "Velocidade no ponto 2", "v2", units.Velocity, "m/s"),
			measured("height2", "Altura no ponto 2", "h2", units.Length, "m"),
			measured("density", "Massa específica", "ρ", units.Density, "kg/m³"),
		},
		OutputUnit: "Pa",
		Alternates: pressureAlternates,
	},
	{
		ID:          UnitConversion,
		Name:        "Conversão de unidades",
		Title:       "Conversão de unidades",
		Formula:     "resultado = valor · (fator_origem / fator_destino)",
		Description: "Converte um valor entre unidades da mesma grandeza.",
		Fields: []Field{
			plain("value", "Valor", "x"),
		},
	},
}
