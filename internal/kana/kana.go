// Package kana classifies Japanese characters and provides kana helpers.
package kana

import "strings"

// CharType is the semantic class of a single character.
type CharType int

const (
	Kanji CharType = iota
	Hiragana
	Katakana
	Symbol
	Other
)

// String returns the class name, mainly for logs and test failures.
func (t CharType) String() string {
	switch t {
	case Kanji:
		return "kanji"
	case Hiragana:
		return "hiragana"
	case Katakana:
		return "katakana"
	case Symbol:
		return "symbol"
	default:
		return "other"
	}
}

// Punctuation that usually has no spoken counterpart in a romanization.
const symbolSet = "「」『』【】、。，．・〜？！（）(),.?!'\"：:"

// Classify maps one rune to its character class.
func Classify(r rune) CharType {
	if r >= 0x4e00 && r <= 0x9fff {
		return Kanji
	}
	// The iteration mark is used like the kanji it repeats.
	if r == '々' {
		return Kanji
	}
	if strings.ContainsRune(symbolSet, r) {
		return Symbol
	}
	if r >= 0x3040 && r <= 0x309f {
		return Hiragana
	}
	if r >= 0x30a0 && r <= 0x30ff {
		return Katakana
	}
	return Other
}

// IsHiragana reports whether r is in the hiragana block.
func IsHiragana(r rune) bool {
	return r >= 0x3040 && r <= 0x309f
}

// ToHiragana folds every katakana in s to its hiragana counterpart.
// Only ァ..ヶ are folded; the long mark ー and everything else pass through.
func ToHiragana(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'ァ' && r <= 'ヶ' {
			b.WriteRune(r - 0x60)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ContainsKanji reports whether s contains at least one kanji.
func ContainsKanji(s string) bool {
	for _, r := range s {
		if (r >= 0x4e00 && r <= 0x9fff) || r == '々' {
			return true
		}
	}
	return false
}

// ContainsKana reports whether s contains hiragana or katakana.
func ContainsKana(s string) bool {
	for _, r := range s {
		if (r >= 0x3040 && r <= 0x309f) || (r >= 0x30a0 && r <= 0x30ff) {
			return true
		}
	}
	return false
}

// IsLatinMajority reports whether more than half of the non-space characters
// in s are Latin letters. Such text is treated as English and never annotated.
func IsLatinMajority(s string) bool {
	latin, total := 0, 0
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '　' {
			continue
		}
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			latin++
		}
	}
	if total == 0 {
		return false
	}
	return float64(latin)/float64(total) > 0.5
}
