// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package value

import (
	"fmt"

	"github.com/mikecarlton/dimcalc/pkg/number"
	"github.com/mikecarlton/dimcalc/pkg/unit"
)

// Factory builds the result value once its magnitude and unit are known.
type Factory func(number.Number, unit.Unit) Value

// ValueFor is the default factory: defined targets produce defined values,
// everything else an undefined value.
func ValueFor(n number.Number, target unit.Unit) Value {
	return Value{number: n, unit: target}
}

// ByMultiplying computes left × right expressed in target. Each operand is
// rebased to SI, multiplied, and rebased into the target's scale; the scale
// factors are combined exactly and divided once.
func ByMultiplying(left, right Value, target unit.Unit, factory Factory, places int32) (Value, error) {
	ratio := left.scale().Mul(right.scale()).Div(target.Scale())
	return combine(left.number.Mul(right.number), ratio, target, factory, places)
}

// ByDividing computes left / right expressed in target.
func ByDividing(left, right Value, target unit.Unit, factory Factory, places int32) (Value, error) {
	ratio := left.scale().Div(right.scale()).Div(target.Scale())
	// fold the divisor into the ratio so the magnitude is divided only once
	ratio = ratio.Mul(number.Fraction(number.One, right.number))
	return combine(left.number, ratio, target, factory, places)
}

func combine(n number.Number, ratio number.Ratio, target unit.Unit, factory Factory, places int32) (Value, error) {
	if factory == nil {
		factory = ValueFor
	}
	magnitude, err := ratio.Apply(n, places)
	if err != nil {
		return Value{}, err
	}
	return factory(magnitude, target), nil
}

// ConvertTo re-expresses v in target, which must measure the same
// dimensions.
func ConvertTo(v Value, target unit.Unit, places int32) (Value, error) {
	if !unit.Equivalent(v.unitOrOne(), target) {
		return Value{}, fmt.Errorf("%s to %s: %w", v.unitOrOne(), target, ErrNotConvertible)
	}
	return combine(v.number, v.scale().Div(target.Scale()), target, nil, places)
}
