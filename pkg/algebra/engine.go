// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package algebra derives the unit of a product or quotient of two values.
//
// Each identity of the unit algebra is written once as a Rule over operand
// shapes. Resolution picks the capability specialization (the measurement
// systems both operands support) and the first rule whose shapes match, then
// the value package computes the magnitude in the derived unit.
package algebra

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mikecarlton/dimcalc/pkg/number"
	"github.com/mikecarlton/dimcalc/pkg/quantity"
	"github.com/mikecarlton/dimcalc/pkg/system"
	"github.com/mikecarlton/dimcalc/pkg/unit"
	"github.com/mikecarlton/dimcalc/pkg/value"
)

var (
	// ErrNoRule is returned when no rule matches the operand shapes.
	ErrNoRule = errors.New("no rule matches")
	// ErrUnbound is returned by a rule whose result names a variable its
	// operand patterns never bind.
	ErrUnbound = errors.New("unbound rule variable")
	// ErrUnsound is returned in verify mode when a derived unit does not
	// measure the combined dimensions of its operands.
	ErrUnsound = errors.New("derived unit has the wrong dimensions")
)

// Match is the outcome of rule resolution.
type Match struct {
	Rule   Rule
	System system.Set
	Target unit.Unit
}

// Name is the qualified name of the matched rule in its specialization.
func (m Match) Name() string {
	return m.Rule.QualifiedName(m.System)
}

// Engine resolves and applies rules. It is not modified after New and is
// safe for concurrent use.
type Engine struct {
	rules  []Rule
	logger *slog.Logger
	places int32
	verify bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for the resolution trace.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithPrecision sets the decimal places kept by inexact divisions.
func WithPrecision(places int32) Option {
	return func(e *Engine) {
		e.places = places
	}
}

// WithVerify checks every derived unit against the operand dimensions.
func WithVerify(verify bool) Option {
	return func(e *Engine) {
		e.verify = verify
	}
}

// New returns an engine over the built-in rules.
func New(opts ...Option) *Engine {
	return NewWithRules(defaultRules, opts...)
}

// NewWithRules returns an engine over a custom rule table, tried in order.
func NewWithRules(rules []Rule, opts ...Option) *Engine {
	e := &Engine{
		rules:  append([]Rule(nil), rules...),
		logger: slog.New(slog.DiscardHandler),
		places: number.PRECISION,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns a copy of the engine's rule table.
func (e *Engine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Resolve finds the rule and specialization for left op right and the unit
// it derives, without computing the magnitude.
func (e *Engine) Resolve(op Op, left, right value.Value) (Match, error) {
	capability, err := system.Resolve(left.Systems(), right.Systems())
	if err != nil {
		return Match{}, fmt.Errorf("%s %s %s: %w", left, op, right, err)
	}

	l, r := lift(left), lift(right)
	for _, rule := range e.rules {
		if rule.Op != op {
			continue
		}
		b, ok := rule.bind(l, r)
		if !ok {
			continue
		}
		target, err := e.derive(rule, b, capability)
		if err != nil {
			return Match{}, err
		}
		m := Match{Rule: rule, System: capability, Target: target}
		e.logger.Debug("resolved rule",
			"op", op.String(),
			"left", l.String(),
			"right", r.String(),
			"rule", m.Name(),
			"target", target.String())
		return m, nil
	}
	return Match{}, fmt.Errorf("%s %s %s: %w", unit.Shape(l), op, unit.Shape(r), ErrNoRule)
}

// Apply resolves left op right with one given rule instead of searching the
// table; it fails with ErrNoRule when the rule's shapes do not match.
func (e *Engine) Apply(rule Rule, left, right value.Value) (value.Value, error) {
	capability, err := system.Resolve(left.Systems(), right.Systems())
	if err != nil {
		return value.Value{}, fmt.Errorf("%s %s %s: %w", left, rule.Op, right, err)
	}
	b, ok := rule.bind(lift(left), lift(right))
	if !ok {
		return value.Value{}, fmt.Errorf("%s: %w", rule.Name(), ErrNoRule)
	}
	target, err := e.derive(rule, b, capability)
	if err != nil {
		return value.Value{}, err
	}
	return e.compute(Match{Rule: rule, System: capability, Target: target}, left, right)
}

// Times multiplies two values.
func (e *Engine) Times(left, right value.Value) (value.Value, error) {
	result, _, err := e.Evaluate(Multiply, left, right)
	return result, err
}

// Div divides left by right.
func (e *Engine) Div(left, right value.Value) (value.Value, error) {
	result, _, err := e.Evaluate(Divide, left, right)
	return result, err
}

// Evaluate computes left op right and reports the rule that derived the
// result unit.
func (e *Engine) Evaluate(op Op, left, right value.Value) (value.Value, Match, error) {
	m, err := e.Resolve(op, left, right)
	if err != nil {
		return value.Value{}, Match{}, err
	}
	result, err := e.compute(m, left, right)
	if err != nil {
		return value.Value{}, Match{}, err
	}
	return result, m, nil
}

func (e *Engine) compute(m Match, left, right value.Value) (value.Value, error) {
	if e.verify {
		if err := check(m, left, right); err != nil {
			return value.Value{}, err
		}
	}
	if m.Rule.Op == Multiply {
		return value.ByMultiplying(left, right, m.Target, value.ValueFor, e.places)
	}
	return value.ByDividing(left, right, m.Target, value.ValueFor, e.places)
}

// derive builds the result unit; a single defined unit comes back in its
// defined flavour
func (e *Engine) derive(rule Rule, b bindings, capability system.Set) (unit.Unit, error) {
	result, err := rule.Result.build(b, capability)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rule, err)
	}
	if d, ok := unit.Unwrap(result); ok {
		return d, nil
	}
	return result, nil
}

func check(m Match, left, right value.Value) error {
	l, r := quantity.DimensionsOf(left.Kind()), quantity.DimensionsOf(right.Kind())
	want := l.Add(r)
	if m.Rule.Op == Divide {
		want = l.Sub(r)
	}
	got := quantity.DimensionsOf(m.Target.Kind())
	if !got.Compatible(want) {
		return fmt.Errorf("%s gives %s, want %s: %w", m.Name(), got, want, ErrUnsound)
	}
	return nil
}

func lift(v value.Value) unit.Undefined {
	return v.AsUndefined().Unit().(unit.Undefined)
}

var defaultEngine = New()

// Times multiplies two values with the built-in rules.
func Times(left, right value.Value) (value.Value, error) {
	return defaultEngine.Times(left, right)
}

// Div divides two values with the built-in rules.
func Div(left, right value.Value) (value.Value, error) {
	return defaultEngine.Div(left, right)
}

// Resolve finds the built-in rule for left op right.
func Resolve(op Op, left, right value.Value) (Match, error) {
	return defaultEngine.Resolve(op, left, right)
}
