// Package natsort implements natural ordering for alphanumeric catalog
// codes: embedded digit runs compare numerically, text runs compare
// case-insensitively. Under plain lexicographic sorting "A10" precedes
// "A2"; under natural sorting "A2" precedes "A10".
package natsort

import (
	"sort"
	"strings"
	"unicode"
)

type chunk struct {
	text    string
	number  uint64
	isDigit bool
}

// key splits a string into alternating text and digit chunks.
func key(s string) []chunk {
	var chunks []chunk
	runes := []rune(s)
	for i := 0; i < len(runes); {
		j := i
		digit := unicode.IsDigit(runes[i])
		for j < len(runes) && unicode.IsDigit(runes[j]) == digit {
			j++
		}
		part := string(runes[i:j])
		c := chunk{isDigit: digit}
		if digit {
			// Digit runs on catalog codes are short; overflow would need a
			// 20+ digit run, at which point ordering by text is fine.
			var n uint64
			overflow := false
			for _, r := range part {
				d := uint64(r - '0')
				if n > (1<<64-1-d)/10 {
					overflow = true
					break
				}
				n = n*10 + d
			}
			if overflow {
				c.isDigit = false
				c.text = part
			} else {
				c.number = n
			}
		} else {
			c.text = strings.ToLower(part)
		}
		chunks = append(chunks, c)
		i = j
	}
	return chunks
}

// Compare returns -1, 0, or 1 ordering a and b naturally.
func Compare(a, b string) int {
	ka, kb := key(a), key(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		ca, cb := ka[i], kb[i]
		switch {
		case ca.isDigit && cb.isDigit:
			if ca.number != cb.number {
				if ca.number < cb.number {
					return -1
				}
				return 1
			}
		case !ca.isDigit && !cb.isDigit:
			if ca.text != cb.text {
				if ca.text < cb.text {
					return -1
				}
				return 1
			}
		case ca.isDigit:
			// Digits sort before text, matching numeric-first ordering.
			return -1
		default:
			return 1
		}
	}
	switch {
	case len(ka) < len(kb):
		return -1
	case len(ka) > len(kb):
		return 1
	}
	return 0
}

// Less reports whether a orders before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort orders the slice in place using natural ordering.
func Sort(items []string) {
	sort.SliceStable(items, func(i, j int) bool {
		return Less(items[i], items[j])
	})
}

// Min returns the naturally smallest item, or "" for an empty slice.
func Min(items []string) string {
	if len(items) == 0 {
		return ""
	}
	smallest := items[0]
	for _, it := range items[1:] {
		if Less(it, smallest) {
			smallest = it
		}
	}
	return smallest
}
