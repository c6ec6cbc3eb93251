// Package rules holds the fuzzy-match rule table and the variant engine
// that expands a kana anchor into cost-ranked phonetic variants.
package rules

import (
	"strings"

	"furigana/internal/kana"
	"furigana/internal/tokenizer"
)

// Rule costs. Zero means an equivalent spelling (particle は read わ);
// higher costs mark variants that should only win when nothing cheaper fits.
const (
	CostEquivalent    = 0
	CostCommonVariant = 1
	CostRareVariant   = 2
)

// TransformFunc rewrites an anchor using token context, for rules that
// cannot be expressed as a plain replacement.
type TransformFunc func(anchor string, tokens []tokenizer.Token, current tokenizer.Token) string

// Rule is one rewrite of an anchor string. The rule set is closed: a rule
// is either a substitution (From/To) or a function rule (Transform), never
// both. Introduced lists the characters the rule can add to a string, used
// only to skip rules that cannot possibly help match a given target.
type Rule struct {
	Name       string
	Cost       int
	From, To   string
	Transform  TransformFunc
	Introduced string
}

// IsFunction reports whether the rule is a function rule.
func (r Rule) IsFunction() bool {
	return r.Transform != nil
}

// vowelClass maps every plain kana to its vowel row, used to resolve the
// long mark ー from the preceding character.
var vowelClass = map[rune]rune{}

// Row order matters: rule generation below walks these strings and the
// resulting rule order is the tie-break order among equal-cost variants.
var (
	aRow = "あかさたなはまやらわがざだばぱゃぁゎ"
	iRow = "いきしちにひみりぎじぢびぴぃ"
	uRow = "うくすつぬふむゆるぐずづぶぷゅぅ"
	eRow = "えけせてねへめれげぜでべぺぇ"
	oRow = "おこそとのほもよろをごぞどぼぽょぉ"
)

func init() {
	for _, r := range aRow {
		vowelClass[r] = 'あ'
	}
	for _, r := range iRow {
		vowelClass[r] = 'い'
	}
	for _, r := range uRow {
		vowelClass[r] = 'う'
	}
	for _, r := range eRow {
		vowelClass[r] = 'え'
	}
	for _, r := range oRow {
		vowelClass[r] = 'お'
	}
}

// expandLongMark resolves ー to the vowel of the preceding character. When
// the mark opens the anchor the last character of the previous token gives
// the context; an unresolvable mark is kept as is.
func expandLongMark(anchor string, tokens []tokenizer.Token, current tokenizer.Token) string {
	if !strings.ContainsRune(anchor, 'ー') {
		return anchor
	}
	runes := []rune(anchor)
	var b strings.Builder
	for i, r := range runes {
		if r != 'ー' {
			b.WriteRune(r)
			continue
		}
		var prev rune
		if i > 0 {
			prev = runes[i-1]
		} else if idx := indexOf(tokens, current); idx > 0 {
			if pt := []rune(kana.ToHiragana(tokens[idx-1].Text)); len(pt) > 0 {
				prev = pt[len(pt)-1]
			}
		}
		if v, ok := vowelClass[prev]; ok {
			b.WriteRune(v)
		} else {
			b.WriteRune('ー')
		}
	}
	return b.String()
}

// indexOf finds current in tokens, or -1. During look-ahead the current
// token may not belong to the stream at all.
func indexOf(tokens []tokenizer.Token, current tokenizer.Token) int {
	for i, t := range tokens {
		if t == current {
			return i
		}
	}
	return -1
}

// substitutionPairs generates both directions of each (a, b) pair, with
// possibly asymmetric costs.
func substitutionPairs(pairs [][2]string, baseName string, costAtoB, costBtoA int) []Rule {
	out := make([]Rule, 0, len(pairs)*2)
	for _, p := range pairs {
		a, b := p[0], p[1]
		out = append(out,
			Rule{Name: baseName + "_" + a + "_to_" + b, Cost: costAtoB, From: a, To: b, Introduced: b},
			Rule{Name: baseName + "_" + b + "_to_" + a, Cost: costBtoA, From: b, To: a, Introduced: a},
		)
	}
	return out
}

func longVowelPairs() [][2]string {
	var pairs [][2]string
	for _, r := range oRow {
		pairs = append(pairs, [2]string{string(r) + "う", string(r) + "お"})
	}
	for _, r := range eRow {
		pairs = append(pairs, [2]string{string(r) + "い", string(r) + "え"})
	}
	return pairs
}

var smallToLarge = [][2]string{
	{"ぁ", "あ"}, {"ぃ", "い"}, {"ぅ", "う"}, {"ぇ", "え"}, {"ぉ", "お"},
	{"ゃ", "や"}, {"ゅ", "ゆ"}, {"ょ", "よ"}, {"っ", "つ"}, {"ゎ", "わ"},
}

var voicingPairs = [][2]string{
	{"か", "が"}, {"き", "ぎ"}, {"く", "ぐ"}, {"け", "げ"}, {"こ", "ご"},
	{"さ", "ざ"}, {"し", "じ"}, {"す", "ず"}, {"せ", "ぜ"}, {"そ", "ぞ"},
	{"た", "だ"}, {"ち", "ぢ"}, {"つ", "づ"}, {"て", "で"}, {"と", "ど"},
	{"は", "ば"}, {"ひ", "び"}, {"ふ", "ぶ"}, {"へ", "べ"}, {"ほ", "ぼ"},
	{"は", "ぱ"}, {"ひ", "ぴ"}, {"ふ", "ぷ"}, {"へ", "ぺ"}, {"ほ", "ぽ"},
	{"ば", "ぱ"}, {"び", "ぴ"}, {"ぶ", "ぷ"}, {"べ", "ぺ"}, {"ぼ", "ぽ"},
}

// table is the global rule set. Order matters: it decides which of two
// equal-cost variants is generated, and therefore tried, first.
var table = buildTable()

func buildTable() []Rule {
	var rules []Rule

	// Equivalences (cost 0): particles read differently than written.
	rules = append(rules,
		Rule{Name: "particle_ha_to_wa", Cost: CostEquivalent, From: "は", To: "わ", Introduced: "わ"},
		Rule{Name: "particle_he_to_e", Cost: CostEquivalent, From: "へ", To: "え", Introduced: "え"},
		Rule{Name: "particle_wo_to_o", Cost: CostEquivalent, From: "を", To: "お", Introduced: "お"},
	)
	rules = append(rules, substitutionPairs([][2]string{{"づ", "ず"}, {"ぢ", "じ"}}, "homophone", CostEquivalent, CostEquivalent)...)
	rules = append(rules, substitutionPairs(longVowelPairs(), "long_vowel", CostEquivalent, CostEquivalent)...)
	rules = append(rules, substitutionPairs([][2]string{{"でぃ", "ぢ"}, {"でゅ", "づ"}}, "special_reading", CostEquivalent, CostEquivalent)...)
	rules = append(rules,
		Rule{Name: "long_vowel_expand", Cost: CostEquivalent, Transform: expandLongMark, Introduced: "あいうえお"},
	)

	// Frequent cheap variants (cost 1).
	rules = append(rules,
		Rule{Name: "sokuon_omission", Cost: CostCommonVariant, From: "っ", To: ""},
		Rule{Name: "sokuon_to_tsu", Cost: CostCommonVariant, From: "っ", To: "つ", Introduced: "つ"},
		Rule{Name: "hatsuon_omission", Cost: CostCommonVariant, From: "ん", To: ""},
	)
	rules = append(rules, substitutionPairs(smallToLarge, "kana_variation", CostCommonVariant, CostRareVariant)...)

	// Rare or expensive variants (cost 2).
	rules = append(rules,
		Rule{Name: "long_vowel_omission", Cost: CostRareVariant, From: "ー", To: ""},
	)
	rules = append(rules, substitutionPairs(voicingPairs, "voicing", CostRareVariant, CostRareVariant)...)

	return rules
}

// Table returns the global rule set, read-only.
func Table() []Rule {
	return table
}
