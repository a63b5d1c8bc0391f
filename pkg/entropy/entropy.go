// Package entropy scores strings by Shannon entropy.
package entropy

import (
	"math"
	"unicode/utf8"
)

// Shannon returns the Shannon entropy of s in bits per character:
//
//	H = -Σ p_i·log2(p_i)
//
// where p_i is the relative frequency of rune i in s. The empty string scores 0.
func Shannon(s string) float64 {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		return 0
	}

	counts := make(map[rune]int)
	for _, r := range s {
		counts[r]++
	}

	var h float64
	for _, c := range counts {
		p := float64(c) / float64(n)
		h -= p * math.Log2(p)
	}
	// A single distinct rune yields -0.
	return math.Abs(h)
}

// ShannonBytes is Shannon for byte slices. A nil slice scores 0.
func ShannonBytes(b []byte) float64 {
	if b == nil {
		return 0
	}
	return Shannon(string(b))
}
