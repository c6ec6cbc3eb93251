// Package tokenizer segments normalized lyric text into typed tokens.
package tokenizer

import (
	"strings"

	"furigana/internal/kana"
	"furigana/internal/lexicon"
)

// Token is one segment of the normalized line. Start and End are half-open
// rune offsets into the tokenized text. Tokens produced by decomposing one
// dictionary word share a positive GroupID and are always contiguous;
// GroupID 0 means the token was segmented independently.
type Token struct {
	Text    string
	Type    kana.CharType
	Start   int
	End     int
	GroupID int
}

// Blank reports whether the token text is empty or whitespace only.
func (t Token) Blank() bool {
	return strings.TrimSpace(t.Text) == ""
}

// JoinText concatenates the text of a token run.
func JoinText(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Tokenize splits text into an ordered, gap-free token list. At each
// position the longest dictionary prefix match wins and is decomposed into
// maximal same-class runs sharing a fresh group id; unmatched text falls
// back to plain same-class runs. Adjacent ungrouped Other tokens are merged
// afterwards so unrelated Latin and punctuation runs stay together.
func Tokenize(text string, trie *lexicon.Trie) []Token {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	n := len(runes)
	var tokens []Token
	groupID := 0

	i := 0
	for i < n {
		matches := trie.PrefixMatches(string(runes[i:]))
		if len(matches) > 0 {
			word := []rune(matches[0].Word)
			groupID++

			// Emit one token per maximal same-class run of the word.
			sub := 0
			for sub < len(word) {
				class := kana.Classify(word[sub])
				end := sub + 1
				for end < len(word) && kana.Classify(word[end]) == class {
					end++
				}
				tokens = append(tokens, Token{
					Text:    string(word[sub:end]),
					Type:    class,
					Start:   i + sub,
					End:     i + end,
					GroupID: groupID,
				})
				sub = end
			}
			i += len(word)
			continue
		}

		class := kana.Classify(runes[i])
		j := i + 1
		for j < n && kana.Classify(runes[j]) == class {
			j++
		}
		tokens = append(tokens, Token{
			Text:  string(runes[i:j]),
			Type:  class,
			Start: i,
			End:   j,
		})
		i = j
	}

	return mergeOther(tokens)
}

// mergeOther joins neighboring ungrouped Other tokens into one.
func mergeOther(tokens []Token) []Token {
	if len(tokens) == 0 {
		return nil
	}
	merged := tokens[:1]
	for _, cur := range tokens[1:] {
		prev := &merged[len(merged)-1]
		if prev.Type == kana.Other && cur.Type == kana.Other &&
			prev.GroupID == 0 && cur.GroupID == 0 {
			prev.Text += cur.Text
			prev.End = cur.End
		} else {
			merged = append(merged, cur)
		}
	}
	return merged
}
