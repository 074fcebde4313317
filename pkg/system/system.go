// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package system describes which measurement systems a unit can be used in.
//
// A Set is a subset of {Metric, UKImperial, USCustomary}. Combining two units
// yields the intersection of their sets, and the seven non-empty subsets are
// the capability specializations every arithmetic rule is available in.
package system

import (
	"errors"
	"fmt"
	"strings"
)

// Set is a bitflag set of measurement systems.
type Set uint8

const (
	Metric Set = 1 << iota
	UKImperial
	USCustomary
)

const (
	None     Set = 0
	Imperial     = UKImperial | USCustomary
	MetricUK     = Metric | UKImperial
	MetricUS     = Metric | USCustomary
	All          = Metric | UKImperial | USCustomary
)

// ErrIncompatible is returned when two units share no measurement system.
var ErrIncompatible = errors.New("no common measurement system")

// ordered from most to least permissive
var specializations = []Set{All, Metric, Imperial, UKImperial, USCustomary, MetricUK, MetricUS}

var names = map[Set]string{
	All:         "MetricAndImperial",
	Metric:      "Metric",
	Imperial:    "Imperial",
	UKImperial:  "UKImperial",
	USCustomary: "USCustomary",
	MetricUK:    "MetricUK",
	MetricUS:    "MetricUS",
	None:        "None",
}

// Specializations lists the seven capability specializations.
func Specializations() []Set {
	result := make([]Set, len(specializations))
	copy(result, specializations)
	return result
}

func (s Set) Intersect(other Set) Set {
	return s & other
}

func (s Set) Union(other Set) Set {
	return s | other
}

// Contains reports whether every system in other is also in s.
func (s Set) Contains(other Set) bool {
	return s&other == other
}

func (s Set) IsEmpty() bool {
	return s&All == None
}

// Systems returns the individual systems in s.
func (s Set) Systems() []Set {
	var result []Set
	for _, single := range []Set{Metric, UKImperial, USCustomary} {
		if s.Contains(single) {
			result = append(result, single)
		}
	}
	return result
}

// String returns the specialization name used as a rule name prefix.
func (s Set) String() string {
	if name, ok := names[s&All]; ok {
		return name
	}
	return fmt.Sprintf("Set(%d)", uint8(s))
}

// Resolve returns the capability two operands can be combined in.
func Resolve(a, b Set) (Set, error) {
	common := a.Intersect(b)
	if common.IsEmpty() {
		return None, fmt.Errorf("%w: %s and %s", ErrIncompatible, a, b)
	}
	return common, nil
}

// Parse accepts a specialization name or a comma separated list of systems
// ("metric", "uk", "us").
func Parse(input string) (Set, bool) {
	for set, name := range names {
		if set != None && strings.EqualFold(name, input) {
			return set, true
		}
	}

	var result Set
	for _, part := range strings.Split(input, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "metric", "si":
			result = result.Union(Metric)
		case "uk", "ukimperial":
			result = result.Union(UKImperial)
		case "us", "uscustomary":
			result = result.Union(USCustomary)
		case "imperial":
			result = result.Union(Imperial)
		case "all":
			result = result.Union(All)
		default:
			return None, false
		}
	}
	return result, !result.IsEmpty()
}
