// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package value pairs magnitudes with units.
package value

import (
	"errors"
	"fmt"

	"github.com/mikecarlton/dimcalc/pkg/number"
	"github.com/mikecarlton/dimcalc/pkg/quantity"
	"github.com/mikecarlton/dimcalc/pkg/system"
	"github.com/mikecarlton/dimcalc/pkg/unit"
)

// ErrNotConvertible is returned when converting between units of different
// dimensions.
var ErrNotConvertible = errors.New("units are not convertible")

// Value is an immutable magnitude in a unit. A Value of a defined unit
// measures a physical quantity; a Value of an undefined unit measures a
// derived quantity kind.
type Value struct {
	number number.Number
	unit   unit.Unit
}

// Defined returns a value of a catalogued unit.
func Defined(n number.Number, u unit.Defined) Value {
	return Value{number: n, unit: u}
}

// Undefined returns a value of a derived unit.
func Undefined(n number.Number, u unit.Undefined) Value {
	return Value{number: n, unit: u}
}

// Of is shorthand for a defined value from an integer magnitude.
func Of(i int64, u unit.Defined) Value {
	return Defined(number.New(i), u)
}

// Dimensionless returns n in unit.One.
func Dimensionless(n number.Number) Value {
	return Defined(n, unit.One)
}

func (v Value) Magnitude() number.Number { return v.number }
func (v Value) Unit() unit.Unit          { return v.unit }

func (v Value) Kind() quantity.Kind {
	if v.unit == nil {
		return quantity.Extended{Quantity: quantity.Dimensionless}
	}
	return v.unit.Kind()
}

func (v Value) Systems() system.Set {
	if v.unit == nil {
		return system.All
	}
	return v.unit.Systems()
}

// IsDefined reports whether v measures a physical quantity directly.
func (v Value) IsDefined() bool {
	_, ok := v.unit.(unit.Defined)
	return ok || v.unit == nil
}

// IsDimensionless reports whether v is a pure number.
func (v Value) IsDimensionless() bool {
	return quantity.IsDimensionless(v.Kind())
}

// AsUndefined lifts a defined value into the derived algebra without
// changing its magnitude.
func (v Value) AsUndefined() Value {
	return Value{number: v.number, unit: unit.AsUndefined(v.unitOrOne())}
}

// factor to SI
func (v Value) scale() number.Ratio {
	return v.unitOrOne().Scale()
}

func (v Value) unitOrOne() unit.Unit {
	if v.unit == nil {
		return unit.One
	}
	return v.unit
}

func (v Value) String() string {
	name := v.unitOrOne().String()
	if name == "" {
		return v.number.String()
	}
	return fmt.Sprintf("%s %s", v.number, name)
}

// Equal reports whether two values have equal magnitudes in identical units.
func (v Value) Equal(other Value) bool {
	return v.number.Equal(other.number) && unit.Identical(v.unitOrOne(), other.unitOrOne())
}
