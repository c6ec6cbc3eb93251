package align

import (
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"furigana/internal/kana"
	"furigana/internal/rules"
	"furigana/internal/tokenizer"
)

// Scoring weights for the anchor search. Skipping a token dominates every
// other term so the nearest workable anchor always wins; the remaining
// terms break ties between variants of that anchor.
const (
	skipPenalty      = 100.0
	outlierPenalty   = 50.0
	zeroRubyPenalty  = 10.0
	ratioWeight      = 5.0
	positionWeight   = 0.01
	idealLengthRatio = 2.0
	maxLengthRatio   = 5.0
	minLengthRatio   = 0.25
)

type anchorMatch struct {
	pos        int
	cost       int
	text       string
	anchorText string
	score      float64
}

// annotateBlock assigns a reading to a block of kanji (and unclassified)
// tokens by scanning forward in the token stream for the next kana or
// dictionary anchor, locating that anchor in the remaining hiragana, and
// taking everything before it as the block's ruby.
func (e *Engine) annotateBlock(block []tokenizer.Token, remaining []rune, stream []tokenizer.Token) []Span {
	if latinBlock(block) {
		log.Debug().Str("block", tokenizer.JoinText(block)).
			Msg("latin block left unannotated")
		return nil
	}

	startSearch := len(stream)
	last := block[len(block)-1]
	for i, t := range stream {
		if t == last {
			startSearch = i + 1
			break
		}
	}

	annotatable := 0
	for _, t := range block {
		if t.Type == kana.Kanji || (t.Type == kana.Other && !t.Blank()) {
			annotatable += runeLen(t.Text)
		}
	}
	window := annotatable*5 + 10

	var best *anchorMatch

	cursor := startSearch
	for cursor < len(stream) {
		tok := stream[cursor]

		var variants []rules.Variant
		var anchorText string

		switch {
		case isKana(tok.Type):
			anchorText = kana.ToHiragana(tok.Text)
			variants = rules.Variants(anchorText, stream, tok, string(remaining))
			cursor++
		case tok.GroupID != 0:
			group := []tokenizer.Token{tok}
			end := cursor + 1
			for end < len(stream) && stream[end].GroupID == tok.GroupID {
				group = append(group, stream[end])
				end++
			}
			anchorText = tokenizer.JoinText(group)
			for _, r := range e.trie.Lookup(anchorText) {
				variants = append(variants, rules.Variant{Text: r, Rules: []string{"dictionary"}})
			}
			cursor = end
		default:
			cursor++
			continue
		}

		if len(variants) == 0 {
			continue
		}

		anchorBest := scoreAnchor(variants, anchorText, remaining, cursor-startSearch, annotatable, window)
		if anchorBest != nil && (best == nil || anchorBest.score < best.score) {
			best = anchorBest
		}
	}

	blockText := tokenizer.JoinText(block)

	if best != nil {
		pos := best.pos

		// A sokuon sitting right before the anchor belongs to the anchor
		// when the anchor itself starts with one; the variant that matched
		// without it stole the block's trailing mora.
		if pos > 0 && remaining[pos-1] == 'っ' &&
			!strings.HasPrefix(best.text, "っ") &&
			strings.HasPrefix(best.anchorText, "っ") {
			log.Debug().Str("anchor", best.anchorText).
				Msg("returning gemination mark to the anchor")
			pos--
		}

		ruby := string(remaining[:pos])
		if ruby == "" {
			return nil
		}
		if annotatable > 0 {
			ratio := float64(runeLen(ruby)) / float64(annotatable)
			if ratio > maxLengthRatio {
				log.Warn().Str("block", blockText).Str("ruby", ruby).
					Float64("ratio", ratio).
					Msg("ruby implausibly long for block, abandoning")
				return nil
			}
		}
		if lastTok, ok := lastMeaningful(block); ok {
			return []Span{{block[0].Start, lastTok.End, ruby}}
		}
		return nil
	}

	// No anchor anywhere after the block. Prefer a dictionary reading that
	// occurs in the remaining hiragana, otherwise take the whole tail.
	trimmed := strings.TrimSpace(blockText)
	if trimmed == "" {
		return nil
	}

	if readings := e.trie.Lookup(trimmed); len(readings) > 0 {
		var found []string
		for _, r := range readings {
			if findRunes(remaining, []rune(r), 0, len(remaining)) != -1 {
				found = append(found, r)
			}
		}
		if len(found) > 0 {
			bestReading := found[0]
			for _, r := range found[1:] {
				if runeLen(r) > runeLen(bestReading) {
					bestReading = r
				}
			}
			if lastTok, ok := lastMeaningful(block); ok {
				log.Debug().Str("block", trimmed).Str("ruby", bestReading).
					Msg("trailing block matched by dictionary reading")
				return []Span{{block[0].Start, lastTok.End, bestReading}}
			}
		}
	}

	ruby := string(remaining)
	if ruby == "" {
		return nil
	}
	lastTok, ok := lastMeaningful(block)
	if !ok {
		return nil
	}
	if annotatable > 0 {
		ratio := float64(runeLen(ruby)) / float64(annotatable)
		if ratio > maxLengthRatio {
			log.Warn().Str("block", blockText).Str("ruby", ruby).
				Float64("ratio", ratio).
				Msg("remaining hiragana implausibly long for trailing block, abandoning")
			return nil
		}
	}
	return []Span{{block[0].Start, lastTok.End, ruby}}
}

// scoreAnchor finds every occurrence of every variant inside the window and
// returns the cheapest placement for this anchor.
func scoreAnchor(variants []rules.Variant, anchorText string, remaining []rune, skipped, annotatable, window int) *anchorMatch {
	var best *anchorMatch
	for _, v := range variants {
		text := []rune(v.Text)
		searchPos := 0
		for {
			pos := findRunes(remaining, text, searchPos, searchPos+window)
			if pos == -1 {
				break
			}

			score := float64(skipped)*skipPenalty + float64(v.Cost)
			rubyLen := pos
			switch {
			case annotatable > 0 && rubyLen > 0:
				ratio := float64(rubyLen) / float64(annotatable)
				if ratio > maxLengthRatio || ratio < minLengthRatio {
					score += outlierPenalty
				} else {
					score += math.Abs(ratio-idealLengthRatio) * ratioWeight
				}
			case annotatable > 0 && rubyLen == 0:
				score += zeroRubyPenalty
			}
			score += float64(pos) * positionWeight

			if best == nil || score < best.score {
				best = &anchorMatch{pos: pos, cost: v.Cost, text: v.Text, anchorText: anchorText, score: score}
			}
			searchPos = pos + 1
		}
	}
	return best
}

// latinBlock reports whether the block is unclassified text that is mostly
// latin letters. Untranslated English in a lyric line has no reading in the
// hiragana stream and must not soak one up.
func latinBlock(block []tokenizer.Token) bool {
	for _, t := range block {
		if t.Type != kana.Other {
			return false
		}
	}
	return kana.IsLatinMajority(tokenizer.JoinText(block))
}

// lastMeaningful returns the last non-blank token of the block.
func lastMeaningful(block []tokenizer.Token) (tokenizer.Token, bool) {
	for i := len(block) - 1; i >= 0; i-- {
		if !block[i].Blank() {
			return block[i], true
		}
	}
	return tokenizer.Token{}, false
}
