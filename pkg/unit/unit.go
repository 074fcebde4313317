// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package unit models units of measure.
//
// A Defined unit measures one physical quantity and comes from the catalog.
// An Undefined unit is built by the algebra: an Extended (wrapped) defined
// unit, or a Multiplied, Divided or Reciprocal combination of undefined units.
// The shape of an undefined unit always mirrors the shape of its kind.
package unit

import (
	"fmt"

	"github.com/mikecarlton/dimcalc/pkg/number"
	"github.com/mikecarlton/dimcalc/pkg/quantity"
	"github.com/mikecarlton/dimcalc/pkg/system"
)

// DOT separates the factors of a multiplied unit.
const DOT = "·"

// Unit is implemented by Defined and by every Undefined shape.
type Unit interface {
	Kind() quantity.Kind
	Systems() system.Set
	// Scale converts a magnitude in this unit to the coherent SI unit of its
	// kind.
	Scale() number.Ratio
	String() string
}

// Undefined is a unit built by the algebra rather than catalogued.
// Implementations are Extended, Multiplied, Divided and Reciprocal.
type Undefined interface {
	Unit
	undefined()
}

// Defined is a catalogued unit of a single physical quantity.
type Defined struct {
	name        string
	description string
	quantity    quantity.Physical
	systems     system.Set
	factor      number.Ratio
}

func (d Defined) Name() string                { return d.name }
func (d Defined) Description() string         { return d.description }
func (d Defined) Quantity() quantity.Physical { return d.quantity }
func (d Defined) Systems() system.Set         { return d.systems }
func (d Defined) Scale() number.Ratio         { return d.factor }
func (d Defined) String() string              { return d.name }

func (d Defined) Kind() quantity.Kind {
	return quantity.Extended{Quantity: d.quantity}
}

// Same reports whether two defined units are the same catalog entry.
func (d Defined) Same(other Defined) bool {
	return d.name == other.name && d.quantity == other.quantity
}

// Extended wraps a defined unit so it can take part in composite units.
type Extended struct {
	Inner Defined
}

// Multiplied is Left × Right.
type Multiplied struct {
	Left  Undefined
	Right Undefined
	// within optionally narrows the capability below the operands'
	within system.Set
}

// Divided is Numerator / Denominator.
type Divided struct {
	Numerator   Undefined
	Denominator Undefined
	within      system.Set
}

// Reciprocal is 1 / Inverse.
type Reciprocal struct {
	Inverse Undefined
}

func (Extended) undefined()   {}
func (Multiplied) undefined() {}
func (Divided) undefined()    {}
func (Reciprocal) undefined() {}

func (u Extended) Kind() quantity.Kind {
	return quantity.Extended{Quantity: u.Inner.quantity}
}

func (u Multiplied) Kind() quantity.Kind {
	return quantity.Multiplying{Left: u.Left.Kind(), Right: u.Right.Kind()}
}

func (u Divided) Kind() quantity.Kind {
	return quantity.Dividing{Numerator: u.Numerator.Kind(), Denominator: u.Denominator.Kind()}
}

func (u Reciprocal) Kind() quantity.Kind {
	return quantity.Reciprocal{Inner: u.Inverse.Kind()}
}

func (u Extended) Systems() system.Set { return u.Inner.systems }

func (u Multiplied) Systems() system.Set {
	return restrict(u.Left.Systems().Intersect(u.Right.Systems()), u.within)
}

func (u Divided) Systems() system.Set {
	return restrict(u.Numerator.Systems().Intersect(u.Denominator.Systems()), u.within)
}

func (u Reciprocal) Systems() system.Set { return u.Inverse.Systems() }

func restrict(s, within system.Set) system.Set {
	if within == system.None {
		return s
	}
	return s.Intersect(within)
}

func (u Extended) Scale() number.Ratio { return u.Inner.factor }

func (u Multiplied) Scale() number.Ratio {
	return u.Left.Scale().Mul(u.Right.Scale())
}

func (u Divided) Scale() number.Ratio {
	return u.Numerator.Scale().Div(u.Denominator.Scale())
}

func (u Reciprocal) Scale() number.Ratio {
	return u.Inverse.Scale().Inverse()
}

func (u Extended) String() string { return u.Inner.name }

func (u Multiplied) String() string {
	return group(u.Left) + DOT + group(u.Right)
}

func (u Divided) String() string {
	return group(u.Numerator) + "/" + group(u.Denominator)
}

func (u Reciprocal) String() string {
	return "1/" + group(u.Inverse)
}

// group parenthesizes composite operands so nesting stays readable
func group(u Undefined) string {
	if _, ok := u.(Extended); ok {
		return u.String()
	}
	return "(" + u.String() + ")"
}

// X combines two units by multiplication. The operands must share a
// measurement system; the result is usable in their intersection.
func X(left, right Undefined) (Multiplied, error) {
	if _, err := system.Resolve(left.Systems(), right.Systems()); err != nil {
		return Multiplied{}, fmt.Errorf("%s x %s: %w", left, right, err)
	}
	return Multiplied{Left: left, Right: right}, nil
}

// Per combines two units by division.
func Per(numerator, denominator Undefined) (Divided, error) {
	if _, err := system.Resolve(numerator.Systems(), denominator.Systems()); err != nil {
		return Divided{}, fmt.Errorf("%s per %s: %w", numerator, denominator, err)
	}
	return Divided{Numerator: numerator, Denominator: denominator}, nil
}

// ReciprocalOf inverts a unit; the capability is unchanged.
func ReciprocalOf(inner Undefined) Reciprocal {
	return Reciprocal{Inverse: inner}
}

// XWithin is X specialized to one capability: both operands must support
// every system in s and the result is restricted to s.
func XWithin(s system.Set, left, right Undefined) (Multiplied, error) {
	if err := within(s, left, right); err != nil {
		return Multiplied{}, err
	}
	return Multiplied{Left: left, Right: right, within: s}, nil
}

// PerWithin is Per specialized to one capability.
func PerWithin(s system.Set, numerator, denominator Undefined) (Divided, error) {
	if err := within(s, numerator, denominator); err != nil {
		return Divided{}, err
	}
	return Divided{Numerator: numerator, Denominator: denominator, within: s}, nil
}

func within(s system.Set, operands ...Undefined) error {
	if s.IsEmpty() {
		return fmt.Errorf("%w: empty capability", system.ErrIncompatible)
	}
	for _, u := range operands {
		if !u.Systems().Contains(s) {
			return fmt.Errorf("%s is not usable in %s: %w", u, s, system.ErrIncompatible)
		}
	}
	return nil
}

// Wrap lifts a defined unit into the undefined algebra.
func Wrap(d Defined) Extended {
	return Extended{Inner: d}
}

// Unwrap returns the defined unit behind an Extended unit.
func Unwrap(u Undefined) (Defined, bool) {
	if e, ok := u.(Extended); ok {
		return e.Inner, true
	}
	return Defined{}, false
}

// AsUndefined wraps defined units and passes undefined ones through.
func AsUndefined(u Unit) Undefined {
	switch u := u.(type) {
	case Defined:
		return Wrap(u)
	case Undefined:
		return u
	}
	panic(fmt.Sprintf("unknown unit type %T", u))
}

// Shape names the structural form of a unit: Defined, Extended, Multiplied,
// Divided or Reciprocal.
func Shape(u Unit) string {
	switch u.(type) {
	case Defined:
		return "Defined"
	case Extended:
		return "Extended"
	case Multiplied:
		return "Multiplied"
	case Divided:
		return "Divided"
	case Reciprocal:
		return "Reciprocal"
	}
	return fmt.Sprintf("%T", u)
}
