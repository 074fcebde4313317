// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package quantity

import (
	"fmt"
	"strings"
)

// Base dimensions a kind reduces to. Derived physical quantities (Volume,
// Energy, ...) are expressed as powers of these.
var baseQuantities = []Physical{Length, Mass, Time, Temperature, Amount}

// Dimensions is the power of each base dimension, indexed by Physical.
// Only the base quantities are ever non-zero.
type Dimensions [NumPhysical]int

var derived = map[Physical]Dimensions{
	Volume: {Length: 3},
	Area:   {Length: 2},
	Energy: {Mass: 1, Length: 2, Time: -2},
	Force:  {Mass: 1, Length: 1, Time: -2},
}

// Of returns the base dimensions of a defined quantity.
func Of(p Physical) Dimensions {
	var d Dimensions
	if p == Dimensionless {
		return d
	}
	if dims, ok := derived[p]; ok {
		return dims
	}
	d[p] = 1
	return d
}

// DimensionsOf reduces a kind to its base dimensions, cancelling shared
// factors.
func DimensionsOf(k Kind) Dimensions {
	switch k := k.(type) {
	case Extended:
		return Of(k.Quantity)
	case Multiplying:
		return DimensionsOf(k.Left).Add(DimensionsOf(k.Right))
	case Dividing:
		return DimensionsOf(k.Numerator).Sub(DimensionsOf(k.Denominator))
	case Reciprocal:
		return DimensionsOf(k.Inner).Neg()
	}
	return Dimensions{}
}

func (d Dimensions) Add(other Dimensions) Dimensions {
	for i := range d {
		d[i] += other[i]
	}
	return d
}

func (d Dimensions) Sub(other Dimensions) Dimensions {
	return d.Add(other.Neg())
}

func (d Dimensions) Neg() Dimensions {
	for i := range d {
		d[i] = -d[i]
	}
	return d
}

// compatible if they are of the same power in all dimensions
func (d Dimensions) Compatible(other Dimensions) bool {
	return d == other
}

func (d Dimensions) Empty() bool {
	return d == Dimensions{}
}

func (d Dimensions) String() string {
	if d.Empty() {
		return "1"
	}
	var parts []string
	for _, p := range baseQuantities {
		switch power := d[p]; {
		case power == 1:
			parts = append(parts, p.String())
		case power != 0:
			parts = append(parts, fmt.Sprintf("%s^%d", p, power))
		}
	}
	return strings.Join(parts, "·")
}
