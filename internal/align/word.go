package align

import (
	"github.com/rs/zerolog/log"

	"furigana/internal/kana"
	"furigana/internal/tokenizer"
)

// alignWordReading splits a dictionary word's reading across its kanji
// sub-tokens, using the word's own kana tokens as internal anchors. A word
// that is pure kana needs no ruby at all.
func alignWordReading(group []tokenizer.Token, reading string) []Span {
	if len(group) == 1 && (group[0].Type == kana.Kanji || group[0].Type == kana.Other) {
		if reading == "" {
			return nil
		}
		return []Span{{group[0].Start, group[0].End, reading}}
	}
	if kana.ToHiragana(tokenizer.JoinText(group)) == reading {
		return nil
	}

	r := []rune(reading)
	cursor := 0
	var block []tokenizer.Token
	var results []Span

	for idx, t := range group {
		switch {
		case t.Type == kana.Kanji || t.Type == kana.Other:
			block = append(block, t)

		case isKana(t.Type):
			anchor := kana.ToHiragana(t.Text)
			if len(block) > 0 {
				pos := findRunes(r, []rune(anchor), cursor, len(r))
				if pos == -1 {
					log.Warn().Str("word", tokenizer.JoinText(group)).
						Str("reading", reading).Str("anchor", anchor).
						Msg("internal anchor missing from reading, assigning remainder")
					var rest []tokenizer.Token
					for _, rt := range group[idx:] {
						if rt.Type == kana.Kanji || rt.Type == kana.Other {
							rest = append(rest, rt)
						}
					}
					if len(rest) > 0 && cursor < len(r) {
						results = append(results, Span{rest[0].Start, rest[len(rest)-1].End, string(r[cursor:])})
					}
					return results
				}
				if pos > cursor {
					results = append(results, Span{block[0].Start, block[len(block)-1].End, string(r[cursor:pos])})
				}
				cursor = pos
			}
			if hasPrefixAt(r, cursor, anchor) {
				cursor += runeLen(anchor)
			} else {
				log.Warn().Str("word", tokenizer.JoinText(group)).
					Str("anchor", anchor).Int("pos", cursor).
					Msg("reading cursor out of sync inside dictionary word")
			}
			block = nil
		}
	}

	if len(block) > 0 && cursor < len(r) {
		results = append(results, Span{block[0].Start, block[len(block)-1].End, string(r[cursor:])})
	}
	return results
}
