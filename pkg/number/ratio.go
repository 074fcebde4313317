// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package number

import "fmt"

// Ratio is an exact scale factor kept as numerator and denominator so that a
// chain of conversions rounds at most once, when it is applied.
type Ratio struct {
	Num Number
	Den Number
}

// Unit is the identity scale.
var Unit = Ratio{Num: One, Den: One}

// Factor returns the ratio n/1.
func Factor(n Number) Ratio {
	return Ratio{Num: n, Den: One}
}

// Fraction returns the ratio num/den.
func Fraction(num, den Number) Ratio {
	return Ratio{Num: num, Den: den}
}

func (r Ratio) Mul(other Ratio) Ratio {
	return Ratio{Num: r.Num.Mul(other.Num), Den: r.Den.Mul(other.Den)}
}

func (r Ratio) Div(other Ratio) Ratio {
	return Ratio{Num: r.Num.Mul(other.Den), Den: r.Den.Mul(other.Num)}
}

func (r Ratio) Inverse() Ratio {
	return Ratio{Num: r.Den, Den: r.Num}
}

// IsOne reports whether the ratio is exactly 1.
func (r Ratio) IsOne() bool {
	return r.Num.Equal(r.Den)
}

// Equal compares by cross multiplication, so 2/4 equals 1/2.
func (r Ratio) Equal(other Ratio) bool {
	return r.Num.Mul(other.Den).Equal(other.Num.Mul(r.Den))
}

// Value collapses the ratio into a single Number.
func (r Ratio) Value(places int32) (Number, error) {
	return r.Num.DivRound(r.Den, places)
}

// Apply scales n by the ratio, dividing last.
func (r Ratio) Apply(n Number, places int32) (Number, error) {
	if r.Den.Equal(One) {
		return n.Mul(r.Num), nil
	}
	if r.IsOne() {
		return n, nil
	}
	return n.Mul(r.Num).DivRound(r.Den, places)
}

func (r Ratio) String() string {
	if r.Den.Equal(One) {
		return r.Num.String()
	}
	return fmt.Sprintf("%s/%s", r.Num, r.Den)
}
