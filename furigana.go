// Package furigana generates ruby annotations for Japanese lyric lines.
// Given a line of original text and a free-form romanization of the same
// line, Generate returns the hiragana reading of every kanji run as rune
// ranges over the original text. The romanization is the only pronunciation
// source; no morphological analyzer is consulted.
package furigana

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/unicode/norm"

	"furigana/internal/align"
	"furigana/internal/kana"
	"furigana/internal/lexicon"
	"furigana/internal/mapper"
	"furigana/internal/tokenizer"
)

// Span is one ruby annotation over the original line: the half-open rune
// range [Start, End) it covers and the hiragana to display there.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Ruby  string `json:"ruby"`
}

// Generator produces ruby spans for lyric lines. It is safe for concurrent
// use; all state is the immutable dictionary index.
type Generator struct {
	trie   *lexicon.Trie
	engine *align.Engine
}

// NewGenerator builds a generator over the given dictionary. A nil trie
// selects the embedded default dictionary.
func NewGenerator(trie *lexicon.Trie) *Generator {
	if trie == nil {
		trie = lexicon.Default()
	}
	return &Generator{trie: trie, engine: align.New(trie)}
}

var (
	spaceRun  = regexp.MustCompile(` +`)
	wideSpace = regexp.MustCompile(` {2,}`)
)

// Generate aligns roma against orig and returns the ruby spans, ordered by
// start position. Lines without kanji, or with a blank romanization, yield
// nil. Coordinates always refer to orig as given, before any normalization.
func (g *Generator) Generate(orig, roma string) []Span {
	m := mapper.New(orig)
	origText := m.Normalized()
	romaText := norm.NFKC.String(roma)

	if !kana.ContainsKanji(origText) {
		log.Debug().Str("line", orig).Msg("no kanji in line, nothing to annotate")
		return nil
	}
	if strings.TrimSpace(romaText) == "" {
		log.Debug().Str("line", orig).Msg("blank romanization, nothing to annotate")
		return nil
	}

	origSegs := spaceRun.Split(origText, -1)
	if len(origSegs) > 1 {
		romaSegs := wideSpace.Split(romaText, -1)
		if len(romaSegs) == len(origSegs) {
			return g.generateSegments(m, origText, origSegs, romaSegs)
		}
		log.Warn().Int("origSegments", len(origSegs)).Int("romaSegments", len(romaSegs)).
			Msg("sentence counts diverge, aligning the whole line")
	}

	tokens := tokenizer.Tokenize(origText, g.trie)
	return g.mapSpans(m, g.engine.ProcessLine(romaText, tokens), 0)
}

// generateSegments aligns each space-separated sentence against its own
// romanization segment, then shifts the results back into whole-line
// coordinates.
func (g *Generator) generateSegments(m *mapper.Mapper, origText string, origSegs, romaSegs []string) []Span {
	seps := spaceRun.FindAllString(origText, -1)

	var all []Span
	offset := 0
	for i, seg := range origSegs {
		tokens := tokenizer.Tokenize(seg, g.trie)
		all = append(all, g.mapSpans(m, g.engine.ProcessLine(romaSegs[i], tokens), offset)...)

		offset += utf8.RuneCountInString(seg)
		if i < len(seps) {
			offset += utf8.RuneCountInString(seps[i])
		}
	}
	return all
}

func (g *Generator) mapSpans(m *mapper.Mapper, spans []align.Span, offset int) []Span {
	var out []Span
	for _, s := range spans {
		start, end := m.ToOriginal(s.Start+offset, s.End+offset)
		out = append(out, Span{Start: start, End: end, Ruby: s.Ruby})
	}
	return out
}

var defaultGenerator = NewGenerator(nil)

// Generate annotates a line using the embedded default dictionary.
func Generate(orig, roma string) []Span {
	return defaultGenerator.Generate(orig, roma)
}
