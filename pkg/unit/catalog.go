// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package unit

import (
	"sort"

	"github.com/mikecarlton/dimcalc/internal/enumerable"
	"github.com/mikecarlton/dimcalc/pkg/number"
	"github.com/mikecarlton/dimcalc/pkg/quantity"
	"github.com/mikecarlton/dimcalc/pkg/system"
)

func define(name, description string, q quantity.Physical, s system.Set, factor string) Defined {
	return Defined{
		name:        name,
		description: description,
		quantity:    q,
		systems:     s,
		factor:      number.Factor(number.MustParse(factor)),
	}
}

func defineRatio(name, description string, q quantity.Physical, s system.Set, num, den int64) Defined {
	d := define(name, description, q, s, "1")
	d.factor = number.Fraction(number.New(num), number.New(den))
	return d
}

// Factors are to the coherent SI unit of each quantity (m, kg, s, K, mol,
// m², m³, J, N).
var (
	One     = define("", "dimensionless", quantity.Dimensionless, system.All, "1")
	Percent = define("%", "percent", quantity.Dimensionless, system.All, "0.01")

	Nanometer  = define("nm", "nanometers", quantity.Length, system.Metric, "0.000000001")
	Millimeter = define("mm", "millimeters", quantity.Length, system.Metric, "0.001")
	Centimeter = define("cm", "centimeters", quantity.Length, system.Metric, "0.01")
	Meter      = define("m", "meters", quantity.Length, system.Metric, "1")
	Kilometer  = define("km", "kilometers", quantity.Length, system.Metric, "1000")
	Inch       = define("in", "inches", quantity.Length, system.Imperial, "0.0254") // by definition
	Foot       = define("ft", "feet", quantity.Length, system.Imperial, "0.3048")
	Yard       = define("yd", "yards", quantity.Length, system.Imperial, "0.9144")
	Mile       = define("mi", "miles", quantity.Length, system.Imperial, "1609.344")

	Milligram = define("mg", "milligrams", quantity.Mass, system.Metric, "0.000001")
	Gram      = define("g", "grams", quantity.Mass, system.Metric, "0.001")
	Kilogram  = define("kg", "kilograms", quantity.Mass, system.Metric, "1")
	Ounce     = define("oz", "ounces", quantity.Mass, system.Imperial, "0.028349523125")
	Pound     = define("lb", "pounds", quantity.Mass, system.Imperial, "0.45359237") // by definition
	Stone     = define("st", "stones", quantity.Mass, system.UKImperial, "6.35029318")
	Tonne     = define("t", "tonnes", quantity.Mass, system.MetricUK, "1000")

	Second = define("s", "seconds", quantity.Time, system.All, "1")
	Minute = define("min", "minutes", quantity.Time, system.All, "60")
	Hour   = define("hr", "hours", quantity.Time, system.All, "3600")

	Kelvin  = define("K", "kelvin", quantity.Temperature, system.Metric, "1")
	Rankine = defineRatio("°R", "rankine", quantity.Temperature, system.Imperial, 5, 9)

	Mole = define("mol", "moles", quantity.Amount, system.All, "1")

	Milliliter     = define("ml", "milliliters", quantity.Volume, system.Metric, "0.000001")
	Liter          = define("l", "liters", quantity.Volume, system.Metric, "0.001")
	USPint         = define("pt", "us pints", quantity.Volume, system.USCustomary, "0.000473176473")
	USGallon       = define("gal", "us gallons", quantity.Volume, system.USCustomary, "0.003785411784") // 231 cubic inches by definition
	ImperialPint   = define("imppt", "imperial pints", quantity.Volume, system.UKImperial, "0.00056826125")
	ImperialGallon = define("impgal", "imperial gallons", quantity.Volume, system.UKImperial, "0.00454609")

	SquareMeter = define("m2", "square meters", quantity.Area, system.Metric, "1")
	Hectare     = define("ha", "hectares", quantity.Area, system.Metric, "10000")
	Acre        = define("ac", "acres", quantity.Area, system.Imperial, "4046.8564224")

	Joule       = define("J", "joules", quantity.Energy, system.Metric, "1")
	Calorie     = define("cal", "calories", quantity.Energy, system.Metric, "4.184")
	FoodCalorie = define("kcal", "kilocalories", quantity.Energy, system.MetricUS, "4184")
	BTU         = define("BTU", "british thermal units", quantity.Energy, system.Imperial, "1055.05585262")
	Newton      = define("N", "newtons", quantity.Force, system.Metric, "1")
	PoundForce  = define("lbf", "pounds-force", quantity.Force, system.Imperial, "4.4482216152605")
)

var catalog = []Defined{
	One, Percent,
	Nanometer, Millimeter, Centimeter, Meter, Kilometer, Inch, Foot, Yard, Mile,
	Milligram, Gram, Kilogram, Ounce, Pound, Stone, Tonne,
	Second, Minute, Hour,
	Kelvin, Rankine,
	Mole,
	Milliliter, Liter, USPint, USGallon, ImperialPint, ImperialGallon,
	SquareMeter, Hectare, Acre,
	Joule, Calorie, FoodCalorie, BTU, Newton, PoundForce,
}

// Lookup finds a catalogued unit by its exact symbol.
func Lookup(name string) (Defined, bool) {
	if name == "" {
		return Defined{}, false
	}
	return enumerable.Find(catalog, func(d Defined) bool { return d.name == name })
}

// Catalog returns the catalogued units ordered by quantity, then scale.
func Catalog() []Defined {
	result := make([]Defined, len(catalog))
	copy(result, catalog)
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].quantity != result[j].quantity {
			return result[i].quantity < result[j].quantity
		}
		ratio := result[i].factor.Div(result[j].factor)
		return ratio.Num.Cmp(ratio.Den) < 0
	})
	return result
}
