// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package unit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mikecarlton/dimcalc/pkg/number"
	"github.com/mikecarlton/dimcalc/pkg/quantity"
)

// Factor is one defined unit raised to a power within a normal form.
type Factor struct {
	Unit  Defined
	Power int
}

// Normal is the canonical form of a unit: the multiset of defined units with
// their powers after cancellation, independent of how the unit was grouped.
type Normal struct {
	Factors    []Factor
	Dimensions quantity.Dimensions
	Scale      number.Ratio
}

// Normalize flattens u into its normal form. Dimensionless units vanish, so
// m/m and One both normalize to the empty form.
func Normalize(u Unit) Normal {
	powers := map[string]int{}
	defs := map[string]Defined{}
	collect(u, 1, powers, defs)

	var factors []Factor
	for name, power := range powers {
		if power != 0 {
			factors = append(factors, Factor{Unit: defs[name], Power: power})
		}
	}
	sort.Slice(factors, func(i, j int) bool {
		return factors[i].Unit.name < factors[j].Unit.name
	})

	return Normal{
		Factors:    factors,
		Dimensions: quantity.DimensionsOf(u.Kind()),
		Scale:      u.Scale(),
	}
}

func collect(u Unit, sign int, powers map[string]int, defs map[string]Defined) {
	switch u := u.(type) {
	case Defined:
		if u.quantity == quantity.Dimensionless && u.factor.IsOne() {
			return
		}
		powers[u.name] += sign
		defs[u.name] = u
	case Extended:
		collect(u.Inner, sign, powers, defs)
	case Multiplied:
		collect(u.Left, sign, powers, defs)
		collect(u.Right, sign, powers, defs)
	case Divided:
		collect(u.Numerator, sign, powers, defs)
		collect(u.Denominator, -sign, powers, defs)
	case Reciprocal:
		collect(u.Inverse, -sign, powers, defs)
	}
}

// Same reports whether two normal forms name the same units with the same
// powers.
func (n Normal) Same(other Normal) bool {
	if len(n.Factors) != len(other.Factors) {
		return false
	}
	for i := range n.Factors {
		if !n.Factors[i].Unit.Same(other.Factors[i].Unit) || n.Factors[i].Power != other.Factors[i].Power {
			return false
		}
	}
	return true
}

func (n Normal) String() string {
	if len(n.Factors) == 0 {
		return "1"
	}
	var parts []string
	for _, f := range n.Factors {
		if f.Power == 1 {
			parts = append(parts, f.Unit.name)
		} else {
			parts = append(parts, fmt.Sprintf("%s^%d", f.Unit.name, f.Power))
		}
	}
	return strings.Join(parts, DOT)
}

// Equivalent reports whether a and b measure the same dimensions, so a value
// in one can be converted to the other.
func Equivalent(a, b Unit) bool {
	return quantity.DimensionsOf(a.Kind()).Compatible(quantity.DimensionsOf(b.Kind()))
}

// Identical reports whether a and b normalize to the same units and scale,
// whatever their grouping.
func Identical(a, b Unit) bool {
	na, nb := Normalize(a), Normalize(b)
	return na.Same(nb) && na.Scale.Equal(nb.Scale)
}
