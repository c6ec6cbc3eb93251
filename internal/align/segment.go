package align

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"furigana/internal/kana"
	"furigana/internal/romaji"
	"furigana/internal/tokenizer"
)

// placeholder marks, inside the romanization, the position of a literal
// symbol or passthrough token from the original text. It survives romaji
// conversion untouched, so the hiragana stream splits at the same places
// as the token stream.
const placeholder = "█"

// ProcessLine converts the romanization, splits both it and the token
// stream on literal symbol and passthrough tokens, and aligns the chunks
// pairwise. When the chunk counts disagree the whole line is aligned in one
// piece instead.
func (e *Engine) ProcessLine(roma string, tokens []tokenizer.Token) []Span {
	processed := roma
	dividers := make(map[int]bool)

	for _, tok := range tokens {
		if tok.Blank() {
			continue
		}
		switch tok.Type {
		case kana.Symbol:
			if cut, ok := replaceLiteral(processed, tok.Text); ok {
				processed = cut
				dividers[tok.Start] = true
			}
		case kana.Other:
			text := strings.ReplaceAll(tok.Text, " ", "")
			if cut, ok := replaceLiteral(processed, text); ok {
				processed = cut
				dividers[tok.Start] = true
			}
		}
	}

	var hiraChunks []string
	for _, c := range strings.Split(romaji.Convert(processed), placeholder) {
		if strings.TrimSpace(c) != "" {
			hiraChunks = append(hiraChunks, c)
		}
	}

	var tokenChunks [][]tokenizer.Token
	var current []tokenizer.Token
	for _, tok := range tokens {
		if dividers[tok.Start] {
			if len(current) > 0 {
				tokenChunks = append(tokenChunks, current)
				current = nil
			}
			continue
		}
		current = append(current, tok)
	}
	if len(current) > 0 {
		tokenChunks = append(tokenChunks, current)
	}

	if len(hiraChunks) != len(tokenChunks) {
		log.Warn().Int("hiraChunks", len(hiraChunks)).Int("tokenChunks", len(tokenChunks)).
			Msg("chunk counts diverge, aligning the whole line")
		return e.AlignChunk(tokens, hiraganaOnly(romaji.Convert(roma)))
	}

	var all []Span
	for i, chunk := range tokenChunks {
		all = append(all, e.AlignChunk(chunk, hiraganaOnly(hiraChunks[i]))...)
	}
	return all
}

// replaceLiteral substitutes the first occurrence of text in roma with the
// placeholder. Matching ignores case and tolerates whitespace between the
// literal's characters, since romanizers space symbols inconsistently.
func replaceLiteral(roma, text string) (string, bool) {
	if text == "" {
		return roma, false
	}
	var parts []string
	for _, r := range text {
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}
	re, err := regexp.Compile("(?i)" + strings.Join(parts, `\s*`))
	if err != nil {
		log.Warn().Str("literal", text).Err(err).Msg("literal not usable as a divider")
		return roma, false
	}
	loc := re.FindStringIndex(roma)
	if loc == nil {
		return roma, false
	}
	return roma[:loc[0]] + placeholder + roma[loc[1]:], true
}

func hiraganaOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if kana.IsHiragana(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
