// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slice holds generic transforms missing from the standard slices package.
package slice

// Map returns transform applied to each element. A nil input stays nil.
func Map[T, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}
	result := make([]U, 0, len(input))
	for _, v := range input {
		result = append(result, transform(v))
	}
	return result
}

// Filter returns the elements for which keep is true, in order.
func Filter[T any](input []T, keep func(T) bool) []T {
	var result []T
	for _, v := range input {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}
