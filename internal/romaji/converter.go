// Package romaji converts free-form romanized Japanese to hiragana.
package romaji

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

const (
	vowels     = "aiueo"
	consonants = "bcdfghjklmnpqrstvwxyz"
)

// Romanized syllable to hiragana. Matched greedily, longest first (3, 2, 1).
var syllables = map[string]string{
	// three letters
	"cha": "ちゃ", "chu": "ちゅ", "cho": "ちょ",
	"sha": "しゃ", "shu": "しゅ", "sho": "しょ",
	"hya": "ひゃ", "hyu": "ひゅ", "hyo": "ひょ",
	"kya": "きゃ", "kyu": "きゅ", "kyo": "きょ",
	"gya": "ぎゃ", "gyu": "ぎゅ", "gyo": "ぎょ",
	"nya": "にゃ", "nyu": "にゅ", "nyo": "にょ",
	"rya": "りゃ", "ryu": "りゅ", "ryo": "りょ",
	"pya": "ぴゃ", "pyu": "ぴゅ", "pyo": "ぴょ",
	"bya": "びゃ", "byu": "びゅ", "byo": "びょ",
	"mya": "みゃ", "myu": "みゅ", "myo": "みょ",
	"ja": "じゃ", "ju": "じゅ", "jo": "じょ",
	"ssu": "っす", // colloquial contraction
	"tsa": "つぁ", "tsi": "つぃ", "tse": "つぇ", "tso": "つぉ",
	"thi": "てぃ", "dhi": "でぃ",
	"she": "しぇ", "che": "ちぇ",
	// two letters
	"fa": "ふぁ", "fi": "ふぃ", "fe": "ふぇ", "fo": "ふぉ",
	"wi": "うぃ", "we": "うぇ",
	"va": "ゔぁ", "vi": "ゔぃ", "ve": "ゔぇ", "vo": "ゔぉ",
	"je": "じぇ",
	"shi": "し", "tsu": "つ", "chi": "ち",
	"za": "ざ", "ze": "ぜ", "zo": "ぞ",
	"da": "だ", "de": "で", "do": "ど",
	"ba": "ば", "bi": "び", "bu": "ぶ", "be": "べ", "bo": "ぼ",
	"pa": "ぱ", "pi": "ぴ", "pu": "ぷ", "pe": "ぺ", "po": "ぽ",
	"ga": "が", "gi": "ぎ", "gu": "ぐ", "ge": "げ", "go": "ご",
	"ka": "か", "ki": "き", "ku": "く", "ke": "け", "ko": "こ",
	"sa": "さ", "su": "す", "se": "せ", "so": "そ",
	"ta": "た", "te": "て", "to": "と",
	"na": "な", "ni": "に", "nu": "ぬ", "ne": "ね", "no": "の",
	"ha": "は", "hi": "ひ", "fu": "ふ", "he": "へ", "ho": "ほ",
	"ma": "ま", "mi": "み", "mu": "む", "me": "め", "mo": "も",
	"ya": "や", "yu": "ゆ", "yo": "よ",
	"ra": "ら", "ri": "り", "ru": "る", "re": "れ", "ro": "ろ",
	"wa": "わ", "wo": "を",
	"ji": "じ", "zu": "ず",
	"di": "ぢ", "du": "づ",
	// long vowels
	"aa": "ああ", "ii": "いい", "uu": "うう", "ee": "ええ", "oo": "おお",
	"ou": "おう",
	// non-standard spellings seen in the wild
	"si": "し", "ti": "ち", "tu": "つ", "hu": "ふ",
	"la": "ら", "li": "り", "lu": "る", "le": "れ", "lo": "ろ",
	"xi": "し", "qi": "ち", "cu": "つ",
	// one letter
	"a": "あ", "i": "い", "u": "う", "e": "え", "o": "お",
	"n": "ん",
}

var longMark = regexp.MustCompile(`[a-z]-`)

// Common misspellings, fixed before conversion.
var corrections = []struct {
	re *regexp.Regexp
	to string
}{
	{regexp.MustCompile(`\buta\b`), "futa"},
}

// preprocess lowercases, strips a single trailing apostrophe and expands a
// hyphen long mark after a vowel into a doubled vowel (ko-hi- -> koohii).
func preprocess(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	if strings.HasSuffix(text, "'") {
		text = strings.TrimSpace(strings.TrimSuffix(text, "'"))
	}
	text = longMark.ReplaceAllStringFunc(text, func(m string) string {
		if strings.ContainsRune(vowels, rune(m[0])) {
			return string(m[0]) + string(m[0])
		}
		return m
	})
	for _, c := range corrections {
		text = c.re.ReplaceAllString(text, c.to)
	}
	return text
}

// Convert transliterates romanized text to hiragana. Whitespace is kept as
// literal separators and anything unrecognized passes through unchanged, so
// the conversion never fails.
func Convert(text string) string {
	r := []rune(preprocess(text))
	n := len(r)
	var b strings.Builder
	b.Grow(n * 3)

	i := 0
	for i < n {
		if unicode.IsSpace(r[i]) {
			b.WriteRune(r[i])
			i++
			continue
		}

		// Longest syllable first.
		matched := false
		for length := 3; length > 0; length-- {
			if i+length > n {
				continue
			}
			if h, ok := syllables[string(r[i:i+length])]; ok {
				b.WriteString(h)
				i += length
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		// Doubled consonant marks gemination: kko, tta.
		if i+1 < n && strings.ContainsRune(consonants, r[i]) && r[i] == r[i+1] {
			b.WriteRune('っ')
			i++
			continue
		}

		// Moraic nasal: n, or m before a non-vowel (sempai, shimbun).
		isN := r[i] == 'n'
		isM := r[i] == 'm' && i+1 < n &&
			!strings.ContainsRune(vowels, r[i+1]) && !strings.ContainsRune("y' ", r[i+1])
		if (isN || isM) && !(i+1 < n && strings.ContainsRune(vowels+"y'", r[i+1])) {
			b.WriteRune('ん')
			i++
			continue
		}

		// An apostrophe not right after n stands for gemination.
		if r[i] == '\'' {
			if !(i > 0 && r[i-1] == 'n') {
				b.WriteRune('っ')
			}
			i++
			continue
		}

		log.Debug().
			Str("text", string(r)).
			Int("pos", i).
			Msgf("keeping unrecognized character %q in romaji conversion", r[i])
		b.WriteRune(r[i])
		i++
	}

	return b.String()
}
