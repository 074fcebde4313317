// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package algebra

import (
	"fmt"

	"github.com/mikecarlton/dimcalc/pkg/quantity"
	"github.com/mikecarlton/dimcalc/pkg/system"
	"github.com/mikecarlton/dimcalc/pkg/unit"
)

// Pattern matches the shape of an undefined unit and, on the result side of
// a rule, rebuilds a unit from what was matched.
type Pattern interface {
	match(u unit.Undefined, b bindings) bool
	build(b bindings, within system.Set) (unit.Undefined, error)
	precedence() int
	String() string
}

// bindings maps variable names to the sub-units they matched
type bindings map[string]unit.Undefined

const (
	precPer = iota
	precX
	precAtom
)

// Var matches any unit. A variable used twice in a rule matches the second
// time only a unit of the same quantity kind as the first; that shared factor
// is what a rule cancels.
type Var string

func (v Var) match(u unit.Undefined, b bindings) bool {
	if bound, ok := b[string(v)]; ok {
		return quantity.Equal(bound.Kind(), u.Kind())
	}
	b[string(v)] = u
	return true
}

func (v Var) build(b bindings, _ system.Set) (unit.Undefined, error) {
	u, ok := b[string(v)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnbound, string(v))
	}
	return u, nil
}

func (v Var) precedence() int { return precAtom }
func (v Var) String() string  { return string(v) }

type product struct {
	left, right Pattern
}

// Product matches a Multiplied unit and builds one with unit.XWithin.
func Product(left, right Pattern) Pattern {
	return product{left: left, right: right}
}

func (p product) match(u unit.Undefined, b bindings) bool {
	m, ok := u.(unit.Multiplied)
	return ok && p.left.match(m.Left, b) && p.right.match(m.Right, b)
}

func (p product) build(b bindings, within system.Set) (unit.Undefined, error) {
	left, err := p.left.build(b, within)
	if err != nil {
		return nil, err
	}
	right, err := p.right.build(b, within)
	if err != nil {
		return nil, err
	}
	return unit.XWithin(within, left, right)
}

func (p product) precedence() int { return precX }

func (p product) String() string {
	return operand(p.left, precX) + "X" + operand(p.right, precAtom)
}

type quotient struct {
	numerator, denominator Pattern
}

// Quotient matches a Divided unit and builds one with unit.PerWithin.
func Quotient(numerator, denominator Pattern) Pattern {
	return quotient{numerator: numerator, denominator: denominator}
}

func (q quotient) match(u unit.Undefined, b bindings) bool {
	d, ok := u.(unit.Divided)
	return ok && q.numerator.match(d.Numerator, b) && q.denominator.match(d.Denominator, b)
}

func (q quotient) build(b bindings, within system.Set) (unit.Undefined, error) {
	numerator, err := q.numerator.build(b, within)
	if err != nil {
		return nil, err
	}
	denominator, err := q.denominator.build(b, within)
	if err != nil {
		return nil, err
	}
	return unit.PerWithin(within, numerator, denominator)
}

func (q quotient) precedence() int { return precPer }

func (q quotient) String() string {
	return operand(q.numerator, precX) + "Per" + operand(q.denominator, precX)
}

type inverse struct {
	inner Pattern
}

// Inverse matches a Reciprocal unit and builds one with unit.ReciprocalOf.
func Inverse(inner Pattern) Pattern {
	return inverse{inner: inner}
}

func (i inverse) match(u unit.Undefined, b bindings) bool {
	r, ok := u.(unit.Reciprocal)
	return ok && i.inner.match(r.Inverse, b)
}

func (i inverse) build(b bindings, within system.Set) (unit.Undefined, error) {
	inner, err := i.inner.build(b, within)
	if err != nil {
		return nil, err
	}
	return unit.ReciprocalOf(inner), nil
}

func (i inverse) precedence() int { return precAtom }

func (i inverse) String() string {
	return "Reciprocal" + operand(i.inner, precAtom)
}

type unity struct{}

// Unity matches any dimensionless leaf (One, percent) and builds unit.One.
var Unity Pattern = unity{}

func (unity) match(u unit.Undefined, _ bindings) bool {
	e, ok := u.(unit.Extended)
	return ok && e.Inner.Quantity() == quantity.Dimensionless
}

func (unity) build(bindings, system.Set) (unit.Undefined, error) {
	return unit.Wrap(unit.One), nil
}

func (unity) precedence() int { return precAtom }
func (unity) String() string  { return "One" }

// operand parenthesizes p when it binds looser than its position requires
func operand(p Pattern, min int) string {
	if p.precedence() < min {
		return "(" + p.String() + ")"
	}
	return p.String()
}
