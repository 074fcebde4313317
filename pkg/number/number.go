// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package number holds the magnitudes carried by values. A Number is an
// immutable arbitrary-precision decimal; only division rounds.
package number

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PRECISION is the default number of decimal places kept by a division.
const PRECISION int32 = 32

// ErrDivisionByZero is returned by Div and DivRound for a zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

// Number is an arbitrary-precision decimal magnitude.
type Number struct {
	d decimal.Decimal
}

var (
	Zero = Number{d: decimal.Zero}
	One  = Number{d: decimal.NewFromInt(1)}
)

func New(i int64) Number {
	return Number{d: decimal.NewFromInt(i)}
}

// Parse reads a decimal literal such as "12", "-0.0254" or "1.5e3".
func Parse(input string) (Number, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Number{}, false
	}
	d, err := decimal.NewFromString(input)
	if err != nil {
		return Number{}, false
	}
	return Number{d: d}, true
}

// MustParse is Parse for literals known to be valid.
func MustParse(input string) Number {
	n, ok := Parse(input)
	if !ok {
		panic(fmt.Sprintf("invalid number literal: %q", input))
	}
	return n
}

func (n Number) String() string {
	return n.d.String()
}

func (n Number) IsZero() bool {
	return n.d.IsZero()
}

func (n Number) Sign() int {
	return n.d.Sign()
}

func (n Number) Equal(other Number) bool {
	return n.d.Equal(other.d)
}

func (n Number) Cmp(other Number) int {
	return n.d.Cmp(other.d)
}

func (n Number) Add(other Number) Number {
	r, _ := n.binaryOp(other, "+", 0)
	return r
}

func (n Number) Sub(other Number) Number {
	r, _ := n.binaryOp(other, "-", 0)
	return r
}

func (n Number) Mul(other Number) Number {
	r, _ := n.binaryOp(other, "*", 0)
	return r
}

// Div divides to PRECISION decimal places.
func (n Number) Div(other Number) (Number, error) {
	return n.binaryOp(other, "/", PRECISION)
}

// DivRound divides to the given number of decimal places. Exact quotients
// are never padded.
func (n Number) DivRound(other Number, places int32) (Number, error) {
	return n.binaryOp(other, "/", places)
}

func (n Number) Neg() Number {
	return n.unaryOp("chs")
}

func (n Number) Abs() Number {
	return n.unaryOp("abs")
}

func (n Number) binaryOp(other Number, op string, places int32) (Number, error) {
	switch op {
	case "+":
		return Number{d: n.d.Add(other.d)}, nil
	case "-":
		return Number{d: n.d.Sub(other.d)}, nil
	case "*", ".":
		return Number{d: n.d.Mul(other.d)}, nil
	case "/":
		if other.d.IsZero() {
			return Number{}, ErrDivisionByZero
		}
		return Number{d: n.d.DivRound(other.d, places)}, nil
	default:
		return Number{}, fmt.Errorf("unimplemented binary op: '%s'", op)
	}
}

func (n Number) unaryOp(op string) Number {
	switch op {
	case "chs":
		return Number{d: n.d.Neg()}
	case "abs":
		return Number{d: n.d.Abs()}
	}

	return n
}
