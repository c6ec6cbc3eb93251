package align

import "unicode/utf8"

// findRunes reports the first index of sub inside h such that the whole
// match lies within [start, end), or -1. An empty sub matches at start when
// the bounds allow it.
func findRunes(h, sub []rune, start, end int) int {
	if start < 0 {
		start = 0
	}
	if end > len(h) {
		end = len(h)
	}
	if start > end {
		return -1
	}
	if len(sub) == 0 {
		return start
	}
	for i := start; i+len(sub) <= end; i++ {
		if runesEqual(h[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// hasPrefixAt reports whether s starts at h[idx].
func hasPrefixAt(h []rune, idx int, s string) bool {
	if idx < 0 || idx > len(h) {
		return false
	}
	i := idx
	for _, r := range s {
		if i >= len(h) || h[i] != r {
			return false
		}
		i++
	}
	return true
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
