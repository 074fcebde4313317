// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package quantity describes what a unit measures.
//
// A Physical is one of the defined, catalogued quantities. A Kind is the shape
// of a possibly derived quantity: an Extended physical quantity, or a
// Multiplying, Dividing or Reciprocal combination of other kinds.
package quantity

import "fmt"

// Physical represents a defined quantity (Length, Time, Mass, ...).
type Physical int

const (
	Dimensionless Physical = iota
	Length
	Mass
	Time
	Temperature
	Amount
	Volume
	Area
	Energy
	Force
	NumPhysical
)

var physicalNames = [NumPhysical]string{
	Dimensionless: "Dimensionless",
	Length:        "Length",
	Mass:          "Mass",
	Time:          "Time",
	Temperature:   "Temperature",
	Amount:        "Amount",
	Volume:        "Volume",
	Area:          "Area",
	Energy:        "Energy",
	Force:         "Force",
}

func (p Physical) String() string {
	if p >= 0 && p < NumPhysical {
		return physicalNames[p]
	}
	return fmt.Sprintf("Physical(%d)", int(p))
}

// Kind is the shape of a quantity. The implementations are Extended,
// Multiplying, Dividing and Reciprocal.
type Kind interface {
	fmt.Stringer
	kind()
}

// Extended lifts a defined quantity into the derived algebra.
type Extended struct {
	Quantity Physical
}

type Multiplying struct {
	Left  Kind
	Right Kind
}

type Dividing struct {
	Numerator   Kind
	Denominator Kind
}

type Reciprocal struct {
	Inner Kind
}

func (Extended) kind()    {}
func (Multiplying) kind() {}
func (Dividing) kind()    {}
func (Reciprocal) kind()  {}

func (k Extended) String() string {
	return k.Quantity.String()
}

func (k Multiplying) String() string {
	return fmt.Sprintf("(%s×%s)", k.Left, k.Right)
}

func (k Dividing) String() string {
	return fmt.Sprintf("(%s/%s)", k.Numerator, k.Denominator)
}

func (k Reciprocal) String() string {
	return fmt.Sprintf("1/%s", k.Inner)
}

// Equal reports whether two kinds have the same shape and leaves.
func Equal(a, b Kind) bool {
	switch a := a.(type) {
	case Extended:
		b, ok := b.(Extended)
		return ok && a.Quantity == b.Quantity
	case Multiplying:
		b, ok := b.(Multiplying)
		return ok && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case Dividing:
		b, ok := b.(Dividing)
		return ok && Equal(a.Numerator, b.Numerator) && Equal(a.Denominator, b.Denominator)
	case Reciprocal:
		b, ok := b.(Reciprocal)
		return ok && Equal(a.Inner, b.Inner)
	}
	return false
}

// IsDimensionless reports whether k is the extended Dimensionless quantity.
func IsDimensionless(k Kind) bool {
	e, ok := k.(Extended)
	return ok && e.Quantity == Dimensionless
}
