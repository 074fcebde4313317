// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mikecarlton/dimcalc/pkg/algebra"
	"github.com/mikecarlton/dimcalc/pkg/number"
	"github.com/mikecarlton/dimcalc/pkg/unit"
	"github.com/mikecarlton/dimcalc/pkg/value"
)

var (
	errStackEmpty   = errors.New("not enough arguments")
	errUnrecognized = errors.New("unrecognized argument")
)

var stackAliases = map[string]string{
	"dup": "d",
	"pop": "p",
}

// calculator evaluates RPN arguments over a stack of values
type calculator struct {
	engine *algebra.Engine
	places int32
	values []value.Value
	rules  []string
}

func newCalculator(engine *algebra.Engine, places int32) *calculator {
	return &calculator{engine: engine, places: places}
}

func (c *calculator) eval(args []string) error {
	for _, arg := range args {
		if err := c.step(arg); err != nil {
			return err
		}
	}
	return nil
}

func (c *calculator) step(arg string) error {
	if alias, ok := stackAliases[arg]; ok {
		arg = alias
	}

	if n, ok := number.Parse(arg); ok {
		c.push(value.Dimensionless(n))
		return nil
	}
	if d, ok := unit.Lookup(arg); ok {
		return c.apply(d)
	}

	switch arg {
	case "*", "x", ".", "•":
		return c.binaryOp(arg, algebra.Multiply)
	case "/":
		return c.binaryOp(arg, algebra.Divide)
	case "+", "-":
		return c.additive(arg)
	case "r":
		v, err := c.pop(arg)
		if err != nil {
			return err
		}
		return c.combine(algebra.Divide, value.Dimensionless(number.One), v)
	case "d":
		v, err := c.peek(arg)
		if err != nil {
			return err
		}
		c.push(v)
	case "p":
		if _, err := c.pop(arg); err != nil {
			return err
		}
	case "swap":
		if len(c.values) < 2 {
			return fmt.Errorf("%w for '%s'", errStackEmpty, arg)
		}
		n := len(c.values)
		c.values[n-1], c.values[n-2] = c.values[n-2], c.values[n-1]
	default:
		return fmt.Errorf("%w '%s'", errUnrecognized, arg)
	}
	return nil
}

// apply gives a bare number the unit d, otherwise converts the top of the
// stack to d
func (c *calculator) apply(d unit.Defined) error {
	v, err := c.pop(d.Name())
	if err != nil {
		return err
	}
	if bare, ok := v.Unit().(unit.Defined); ok && bare.Same(unit.One) {
		c.push(value.Defined(v.Magnitude(), d))
		return nil
	}
	converted, err := value.ConvertTo(v, d, c.places)
	if err != nil {
		return err
	}
	c.push(converted)
	return nil
}

func (c *calculator) binaryOp(arg string, op algebra.Op) error {
	right, err := c.pop(arg)
	if err != nil {
		return err
	}
	left, err := c.pop(arg)
	if err != nil {
		return err
	}
	return c.combine(op, left, right)
}

func (c *calculator) combine(op algebra.Op, left, right value.Value) error {
	result, match, err := c.engine.Evaluate(op, left, right)
	if err != nil {
		return err
	}
	c.rules = append(c.rules, match.Name())
	c.push(result)
	return nil
}

// additive adds or subtracts after converting the right operand to the left
// operand's unit
func (c *calculator) additive(arg string) error {
	right, err := c.pop(arg)
	if err != nil {
		return err
	}
	left, err := c.pop(arg)
	if err != nil {
		return err
	}
	right, err = value.ConvertTo(right, left.Unit(), c.places)
	if err != nil {
		return err
	}

	n := left.Magnitude().Add(right.Magnitude())
	if arg == "-" {
		n = left.Magnitude().Sub(right.Magnitude())
	}
	c.push(value.ValueFor(n, left.Unit()))
	return nil
}

func (c *calculator) push(v value.Value) {
	c.values = append(c.values, v)
}

func (c *calculator) pop(arg string) (value.Value, error) {
	v, err := c.peek(arg)
	if err != nil {
		return value.Value{}, err
	}
	c.values = c.values[:len(c.values)-1]
	return v, nil
}

func (c *calculator) peek(arg string) (value.Value, error) {
	if len(c.values) == 0 {
		return value.Value{}, fmt.Errorf("%w for '%s'", errStackEmpty, arg)
	}
	return c.values[len(c.values)-1], nil
}

func (c *calculator) top() (value.Value, bool) {
	if len(c.values) == 0 {
		return value.Value{}, false
	}
	return c.values[len(c.values)-1], true
}

// print writes the stack top first, aligning the decimal points
func (c *calculator) print(w io.Writer) {
	intWidth, fracWidth := 0, 0
	for _, v := range c.values {
		intPart, fracPart := splitNumber(v.Magnitude().String())
		intWidth = max(intWidth, len(intPart))
		fracWidth = max(fracWidth, len(fracPart))
	}

	for i := len(c.values) - 1; i >= 0; i-- {
		v := c.values[i]
		intPart, fracPart := splitNumber(v.Magnitude().String())
		line := fmt.Sprintf("%*s%-*s", intWidth, intPart, fracWidth, fracPart)
		if name := v.Unit().String(); name != "" {
			line += " " + name
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

// splitNumber splits "100.5" into "100" and ".5"
func splitNumber(str string) (string, string) {
	if intPart, fracPart, ok := strings.Cut(str, "."); ok {
		return intPart, "." + fracPart
	}
	return str, ""
}
