// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package enumerable has generic helpers for listing catalog units and rules.
package enumerable

// Filter keeps the elements for which keep is true, in order.
func Filter[T any](slice []T, keep func(T) bool) []T {
	filtered := make([]T, 0, len(slice))
	for _, elem := range slice {
		if keep(elem) {
			filtered = append(filtered, elem)
		}
	}
	return filtered
}

func Map[T, R any](slice []T, mapper func(T) R) []R {
	mapped := make([]R, len(slice))
	for i, elem := range slice {
		mapped[i] = mapper(elem)
	}
	return mapped
}

// Find returns the first element matching predicate.
func Find[T any](slice []T, predicate func(T) bool) (T, bool) {
	for _, elem := range slice {
		if predicate(elem) {
			return elem, true
		}
	}
	var zero T
	return zero, false
}

// Group is the run of elements sharing one key.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupBy partitions slice by key, with groups in the order their keys first
// appear.
func GroupBy[T any, K comparable](slice []T, key func(T) K) []Group[K, T] {
	var groups []Group[K, T]
	index := map[K]int{}
	for _, elem := range slice {
		k := key(elem)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, elem)
	}
	return groups
}
