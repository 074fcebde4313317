// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package algebra

import (
	"github.com/mikecarlton/dimcalc/pkg/system"
	"github.com/mikecarlton/dimcalc/pkg/unit"
)

// Op is the arithmetic a rule applies to.
type Op int

const (
	Multiply Op = iota
	Divide
)

func (o Op) String() string {
	switch o {
	case Multiply:
		return "Times"
	case Divide:
		return "Div"
	default:
		return "Op?"
	}
}

// Rule is one algebraic identity: when the left and right operand units
// have the given shapes, the result unit has shape Result.
type Rule struct {
	Op     Op
	Left   Pattern
	Right  Pattern
	Result Pattern
}

// Name describes the operand shapes, e.g. "APerBTimesCXBPerD".
func (r Rule) Name() string {
	return r.Left.String() + r.Op.String() + r.Right.String()
}

// QualifiedName is the name of the rule specialized to one capability, e.g.
// "MetricAPerBTimesMetricCXBPerD".
func (r Rule) QualifiedName(s system.Set) string {
	return s.String() + r.Left.String() + r.Op.String() + s.String() + r.Right.String()
}

// Specializations lists the qualified name of the rule in each of the seven
// capabilities.
func (r Rule) Specializations() []string {
	var names []string
	for _, s := range system.Specializations() {
		names = append(names, r.QualifiedName(s))
	}
	return names
}

func (r Rule) String() string {
	return r.Name() + " -> " + r.Result.String()
}

// bind matches both operands; bindings are shared between them
func (r Rule) bind(left, right unit.Undefined) (bindings, bool) {
	b := bindings{}
	if !r.Left.match(left, b) || !r.Right.match(right, b) {
		return nil, false
	}
	return b, true
}

var (
	a, b, c, d, e, y = Var("A"), Var("B"), Var("C"), Var("D"), Var("E"), Var("Y")
	one              = Unity
)

func times(left, right, result Pattern) Rule {
	return Rule{Op: Multiply, Left: left, Right: right, Result: result}
}

func div(left, right, result Pattern) Rule {
	return Rule{Op: Divide, Left: left, Right: right, Result: result}
}

// short names keep the table below close to the algebra it encodes
var (
	mul = Product
	per = Quotient
	inv = Inverse
)

// Rules are tried in order and the first whose shapes match is used, so
// specific identities come before the general ones. Every identity that can
// match in two groupings is listed in both.
var defaultRules = []Rule{
	// dimensionless operands
	times(one, a, a),
	times(a, one, a),

	// full cancellation
	times(inv(a), a, one),
	times(a, inv(a), one),
	times(inv(mul(a, b)), mul(b, a), one),
	times(mul(a, b), inv(mul(b, a)), one),
	times(per(a, b), per(b, a), one),

	// a quotient times its denominator
	times(per(a, b), b, a),
	times(b, per(a, b), a),
	times(per(a, mul(b, c)), b, per(a, c)),
	times(per(a, mul(b, c)), c, per(a, b)),
	times(b, per(a, mul(b, c)), per(a, c)),
	times(c, per(a, mul(b, c)), per(a, b)),

	// chained quotients
	times(per(a, b), per(b, c), per(a, c)),
	times(per(b, c), per(a, b), per(a, c)),

	// (A/B) × ((C×B)/D) cancels the shared B
	times(per(a, b), per(mul(c, b), d), per(mul(a, c), d)),
	times(per(a, b), per(mul(b, c), d), per(mul(a, c), d)),
	times(per(mul(b, c), d), per(a, b), per(mul(c, a), d)),
	times(per(mul(c, b), d), per(a, b), per(mul(c, a), d)),

	// ((A×B)/C) × (D/(A×E)) cancels A or B against the other denominator
	times(per(mul(a, b), c), per(d, mul(a, e)), per(mul(b, d), mul(c, e))),
	times(per(mul(a, b), c), per(d, mul(b, e)), per(mul(a, d), mul(c, e))),
	times(per(mul(a, b), c), per(d, mul(e, a)), per(mul(b, d), mul(c, e))),
	times(per(mul(a, b), c), per(d, mul(e, b)), per(mul(a, d), mul(c, e))),

	// (C/(A×D)) × (A×B) cancels the shared A
	times(per(c, mul(a, d)), mul(a, b), per(mul(c, b), d)),
	times(per(c, mul(a, d)), mul(b, a), per(mul(c, b), d)),
	times(per(c, mul(d, a)), mul(a, b), per(mul(c, b), d)),
	times(per(c, mul(d, a)), mul(b, a), per(mul(c, b), d)),
	times(mul(a, b), per(c, mul(a, d)), per(mul(b, c), d)),
	times(mul(b, a), per(c, mul(a, d)), per(mul(b, c), d)),

	// reciprocals
	times(inv(a), per(a, b), inv(b)),
	times(per(a, b), inv(a), inv(b)),
	times(inv(a), b, per(b, a)),
	times(b, inv(a), per(b, a)),

	// general forms
	times(per(a, b), per(c, d), per(mul(a, c), mul(b, d))),
	times(a, b, mul(a, b)),

	// dimensionless operands
	div(a, one, a),
	div(a, a, one),
	div(mul(a, b), mul(b, a), one),
	div(one, inv(a), a),
	div(one, per(a, b), per(b, a)),
	div(one, a, inv(a)),

	// removing one factor of a product
	div(mul(a, b), a, b),
	div(mul(a, b), b, a),
	div(per(mul(a, b), c), a, per(b, c)),
	div(per(mul(a, b), c), b, per(a, c)),

	// shared numerator
	div(a, per(a, b), b),
	div(a, mul(a, b), inv(b)),
	div(a, mul(b, a), inv(b)),
	div(per(a, b), a, inv(b)),
	div(y, per(mul(a, y), mul(a, c)), c),
	div(y, per(mul(y, a), mul(c, a)), c),

	// reciprocal over a quotient with the same denominator
	div(inv(a), per(c, a), inv(c)),
	div(inv(mul(a, b)), per(c, mul(b, a)), inv(c)),

	// quotients sharing a numerator or a denominator
	div(per(a, b), per(a, c), per(c, b)),
	div(per(a, c), per(b, c), per(a, b)),

	// reciprocals
	div(a, inv(b), mul(a, b)),
	div(inv(a), b, inv(mul(a, b))),

	// general forms
	div(per(a, b), per(c, d), per(mul(a, d), mul(b, c))),
	div(per(a, b), c, per(a, mul(b, c))),
	div(a, per(b, c), per(mul(a, c), b)),
	div(a, b, per(a, b)),
}

// DefaultRules returns a copy of the built-in rule table.
func DefaultRules() []Rule {
	rules := make([]Rule, len(defaultRules))
	copy(rules, defaultRules)
	return rules
}
