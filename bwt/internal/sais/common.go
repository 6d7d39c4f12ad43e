// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package sais implements a linear-time suffix array algorithm (SA-IS, by
// Nong, Zhang, and Chan), parameterized over an arbitrary integer alphabet
// size so it can serve a 16-bit token alphabet rather than only bytes.
package sais

// ComputeSA computes the suffix array of T and places the result in SA. T
// and SA must have the same length, and every value in T must lie in
// [0, alphabetSize).
func ComputeSA(T []int, SA []int, alphabetSize int) {
	if len(SA) != len(T) {
		panic("mismatching sizes")
	}
	if len(T) == 0 {
		return
	}
	computeSA_int(T, SA, 0, len(T), alphabetSize)
}
