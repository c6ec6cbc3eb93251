// Package mapper translates indices between a string and its NFKC form.
package mapper

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Mapper holds a string, its NFKC-normalized form, and a dense index map
// from normalized rune positions back to original rune positions. NFKC can
// change the length (the ellipsis '…' becomes three dots), so every range
// computed on the normalized text has to be translated before it is handed
// back to the caller.
//
// A Mapper is built once per input line and never mutated.
type Mapper struct {
	original   string
	normalized string
	toOriginal []int // normalized rune index -> original rune index
	origRunes  int
}

// New builds the mapper for text. Normalization is applied per source rune,
// so when one rune expands the same original index repeats consecutively.
func New(text string) *Mapper {
	var b strings.Builder
	var m []int
	origRunes := 0
	for _, r := range text {
		nc := norm.NFKC.String(string(r))
		b.WriteString(nc)
		for range []rune(nc) {
			m = append(m, origRunes)
		}
		origRunes++
	}
	return &Mapper{
		original:   text,
		normalized: b.String(),
		toOriginal: m,
		origRunes:  origRunes,
	}
}

// Normalized returns the NFKC form of the original text.
func (m *Mapper) Normalized() string {
	return m.normalized
}

// ToOriginal translates a half-open rune range on the normalized text into
// the corresponding range on the original text. Out-of-range indices clamp
// to the end of the original rather than failing.
func (m *Mapper) ToOriginal(start, end int) (int, int) {
	if len(m.toOriginal) == 0 {
		return start, end
	}
	if start >= len(m.toOriginal) {
		return m.origRunes, m.origRunes
	}
	origStart := m.toOriginal[start]

	// end is exclusive: map the last covered position and reopen the range.
	var origEnd int
	if end > 0 && end <= len(m.toOriginal) {
		origEnd = m.toOriginal[end-1] + 1
	} else {
		origEnd = m.origRunes
	}
	return origStart, origEnd
}
