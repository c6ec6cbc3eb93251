// Package align synchronizes a token stream against the hiragana stream
// converted from a romanization and produces ruby spans.
package align

import (
	"strings"

	"github.com/rs/zerolog/log"

	"furigana/internal/kana"
	"furigana/internal/lexicon"
	"furigana/internal/rules"
	"furigana/internal/tokenizer"
)

// Span is one ruby annotation: a half-open rune range over the tokenized
// text plus the hiragana to display above it.
type Span struct {
	Start int
	End   int
	Ruby  string
}

// Engine aligns token chunks against converted hiragana. It only reads the
// shared dictionary trie, so one Engine may serve concurrent calls.
type Engine struct {
	trie *lexicon.Trie
}

// New creates an alignment engine over the given dictionary index.
func New(trie *lexicon.Trie) *Engine {
	return &Engine{trie: trie}
}

// AlignChunk walks the token list with a parallel cursor into hira (the
// hiragana-only conversion of the matching romanization chunk) and emits
// ruby spans. A token that cannot be synchronized simply contributes no
// span; the walk itself never fails.
func (e *Engine) AlignChunk(tokens []tokenizer.Token, hira string) []Span {
	h := []rune(hira)
	n := len(tokens)
	var results []Span
	hiraIdx := 0

	cursor := 0
	for cursor < n {
		cur := tokens[cursor]

		// Pre-annotated pattern: KANJI ( kana ), optionally followed by
		// trailing okurigana. The source already tells us the reading; we
		// only have to confirm it against the hiragana stream.
		if cur.Type == kana.Kanji && cursor+3 < n &&
			tokens[cursor+1].Text == "(" &&
			isKana(tokens[cursor+2].Type) &&
			tokens[cursor+3].Text == ")" {

			hint := kana.ToHiragana(tokens[cursor+2].Text)
			okuri := ""
			if cursor+4 < n && isKana(tokens[cursor+4].Type) {
				okuri = kana.ToHiragana(tokens[cursor+4].Text)
			}

			if okuri != "" && hasPrefixAt(h, hiraIdx, hint) {
				mid := hiraIdx + runeLen(hint)
				if hasPrefixAt(h, mid, okuri) {
					ruby := string(h[hiraIdx : mid+runeLen(okuri)])
					log.Debug().Str("kanji", cur.Text).Str("ruby", ruby).
						Msg("matched annotation hint with okurigana")
					results = append(results, Span{cur.Start, cur.End, ruby})
					hiraIdx += runeLen(ruby)
					cursor += 5
					continue
				}
			}
			if hasPrefixAt(h, hiraIdx, hint) {
				log.Debug().Str("kanji", cur.Text).Str("ruby", hint).
					Msg("matched annotation hint")
				results = append(results, Span{cur.Start, cur.End, hint})
				hiraIdx += runeLen(hint)
				cursor += 4
				continue
			}
			log.Warn().Str("kanji", cur.Text).Str("hint", hint).
				Msg("annotation hint does not match the hiragana stream, treating as plain kanji")
		}

		// Kana tokens are anchors: sync the cursor and move on.
		if isKana(cur.Type) {
			hiraIdx = e.syncKana(cur, h, hiraIdx, tokens)
			cursor++
			continue
		}
		if cur.Type == kana.Symbol || cur.Blank() {
			cursor++
			continue
		}

		// Dictionary first: a grouped run with a reading that prefixes the
		// remaining hiragana is assigned directly.
		if cur.GroupID != 0 {
			group := []tokenizer.Token{cur}
			next := cursor + 1
			for next < n && tokens[next].GroupID == cur.GroupID {
				group = append(group, tokens[next])
				next++
			}
			groupText := tokenizer.JoinText(group)

			if readings := e.trie.Lookup(groupText); len(readings) > 0 {
				nextAnchor, hasAnchor := findNextAnchor(next, tokens)
				reading, consumed, ok := selectBestReading(readings, h[hiraIdx:], nextAnchor, hasAnchor)
				if ok {
					log.Debug().Str("word", groupText).Str("reading", reading).
						Msg("dictionary reading matched")
					results = append(results, alignWordReading(group, reading)...)
					hiraIdx += consumed
					cursor = next
					continue
				}
			}
		}

		// Anchor search: accumulate a kanji/Other block, folding in grouped
		// runs whose readings are nowhere in the look-ahead window (false
		// anchors, usually bad source data).
		blockEnd := cursor
		for blockEnd+1 < n {
			nt := tokens[blockEnd+1]
			if nt.Type != kana.Kanji && nt.Type != kana.Other {
				break
			}
			if nt.GroupID != 0 && e.isTrueAnchor(nt, blockEnd+1, tokens, h, hiraIdx) {
				break
			}
			blockEnd++
		}

		block := tokens[cursor : blockEnd+1]
		spans := e.annotateBlock(block, h[hiraIdx:], tokens)
		if len(spans) > 0 {
			results = append(results, spans...)
			for _, s := range spans {
				hiraIdx += runeLen(s.Ruby)
			}
		} else if hasKanji(block) {
			log.Error().Str("block", tokenizer.JoinText(block)).
				Msg("no ruby could be generated for kanji block, skipping")
		}
		cursor = blockEnd + 1
	}

	return results
}

// syncKana advances the hiragana cursor past the current kana token, trying
// fuzzy variants cheapest first. On failure the cursor stays put.
func (e *Engine) syncKana(tok tokenizer.Token, h []rune, idx int, tokens []tokenizer.Token) int {
	anchor := strings.Join(strings.Fields(kana.ToHiragana(tok.Text)), "")

	for _, v := range rules.Variants(anchor, tokens, tok, string(h[idx:])) {
		if hasPrefixAt(h, idx, v.Text) {
			if v.Cost > 0 {
				log.Warn().Str("anchor", tok.Text).Str("variant", v.Text).
					Int("cost", v.Cost).Strs("rules", v.Rules).
					Msg("kana anchor matched through fuzzy variant")
			}
			return idx + runeLen(v.Text)
		}
	}

	log.Warn().Str("anchor", tok.Text).Int("pos", idx).
		Msg("kana anchor out of sync with hiragana stream")
	return idx
}

// isTrueAnchor checks whether the grouped run starting at idx has at least
// one reading literally present within the look-ahead window. Runs that do
// not are absorbed into the surrounding block instead of splitting it.
func (e *Engine) isTrueAnchor(first tokenizer.Token, idx int, tokens []tokenizer.Token, h []rune, hiraIdx int) bool {
	group := []tokenizer.Token{first}
	for peek := idx + 1; peek < len(tokens) && tokens[peek].GroupID == first.GroupID; peek++ {
		group = append(group, tokens[peek])
	}
	readings := e.trie.Lookup(tokenizer.JoinText(group))
	if len(readings) == 0 {
		return false
	}

	end := hiraIdx + anchorLookahead
	if end > len(h) {
		end = len(h)
	}
	if end < hiraIdx {
		return false
	}
	window := h[hiraIdx:end]
	for _, r := range readings {
		if findRunes(window, []rune(r), 0, len(window)) != -1 {
			return true
		}
	}
	return false
}

// anchorLookahead bounds the window used to validate dictionary anchors.
const anchorLookahead = 100

// findNextAnchor returns the next kana token at or after start, skipping
// kana that is the hint inside a KANJI ( kana ) annotation pair.
func findNextAnchor(start int, tokens []tokenizer.Token) (tokenizer.Token, bool) {
	for i := start; i < len(tokens); i++ {
		t := tokens[i]
		if !isKana(t.Type) {
			continue
		}
		inParens := i > 1 &&
			tokens[i-2].Type == kana.Kanji &&
			tokens[i-1].Text == "(" &&
			i+1 < len(tokens) &&
			tokens[i+1].Text == ")"
		if !inParens {
			return t, true
		}
	}
	return tokenizer.Token{}, false
}

// selectBestReading picks the reading to assign to a dictionary word: the
// longest one that literally prefixes the remaining hiragana. When that
// reading ends with the next anchor's kana (okurigana carried into the
// dictionary entry) the tail is stripped from the displayed reading while
// the full length is still consumed from the stream.
func selectBestReading(readings []string, remaining []rune, next tokenizer.Token, hasNext bool) (string, int, bool) {
	var candidates []string
	for _, r := range readings {
		if hasPrefixAt(remaining, 0, r) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return "", 0, false
	}

	longest := candidates[0]
	for _, c := range candidates[1:] {
		if runeLen(c) > runeLen(longest) {
			longest = c
		}
	}

	if hasNext {
		anchorHira := kana.ToHiragana(next.Text)
		if strings.HasSuffix(longest, anchorHira) && longest != anchorHira {
			stripped := strings.TrimSuffix(longest, anchorHira)
			log.Debug().Str("reading", longest).Str("okurigana", anchorHira).
				Msg("stripping okurigana tail from dictionary reading")
			return stripped, runeLen(longest), true
		}
	}
	return longest, runeLen(longest), true
}

func isKana(t kana.CharType) bool {
	return t == kana.Hiragana || t == kana.Katakana
}

func hasKanji(tokens []tokenizer.Token) bool {
	for _, t := range tokens {
		if t.Type == kana.Kanji {
			return true
		}
	}
	return false
}
