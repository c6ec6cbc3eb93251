package tokenizer

import (
	"reflect"
	"testing"

	"furigana/internal/kana"
	"furigana/internal/lexicon"
)

func testTrie() *lexicon.Trie {
	t := lexicon.NewTrie()
	t.Insert("世界", "せかい")
	t.Insert("見る", "みる")
	t.Insert("思い出", "おもいで")
	return t
}

func TestTokenize(t *testing.T) {
	trie := testTrie()

	tests := []struct {
		name string
		in   string
		want []Token
	}{
		{
			name: "dictionary word single class",
			in:   "世界",
			want: []Token{
				{Text: "世界", Type: kana.Kanji, Start: 0, End: 2, GroupID: 1},
			},
		},
		{
			name: "dictionary word splits by class",
			in:   "見る",
			want: []Token{
				{Text: "見", Type: kana.Kanji, Start: 0, End: 1, GroupID: 1},
				{Text: "る", Type: kana.Hiragana, Start: 1, End: 2, GroupID: 1},
			},
		},
		{
			name: "kanji kana kanji word",
			in:   "思い出",
			want: []Token{
				{Text: "思", Type: kana.Kanji, Start: 0, End: 1, GroupID: 1},
				{Text: "い", Type: kana.Hiragana, Start: 1, End: 2, GroupID: 1},
				{Text: "出", Type: kana.Kanji, Start: 2, End: 3, GroupID: 1},
			},
		},
		{
			name: "unknown text falls back to class runs",
			in:   "歌が",
			want: []Token{
				{Text: "歌", Type: kana.Kanji, Start: 0, End: 1},
				{Text: "が", Type: kana.Hiragana, Start: 1, End: 2},
			},
		},
		{
			name: "mixed sentence",
			in:   "私が見る世界",
			want: []Token{
				{Text: "私", Type: kana.Kanji, Start: 0, End: 1},
				{Text: "が", Type: kana.Hiragana, Start: 1, End: 2},
				{Text: "見", Type: kana.Kanji, Start: 2, End: 3, GroupID: 1},
				{Text: "る", Type: kana.Hiragana, Start: 3, End: 4, GroupID: 1},
				{Text: "世界", Type: kana.Kanji, Start: 4, End: 6, GroupID: 2},
			},
		},
		{
			name: "latin and digits merge",
			in:   "STAY 2020世界",
			want: []Token{
				{Text: "STAY 2020", Type: kana.Other, Start: 0, End: 9},
				{Text: "世界", Type: kana.Kanji, Start: 9, End: 11, GroupID: 1},
			},
		},
		{
			name: "symbols stay separate",
			in:   "世界、今",
			want: []Token{
				{Text: "世界", Type: kana.Kanji, Start: 0, End: 2, GroupID: 1},
				{Text: "、", Type: kana.Symbol, Start: 2, End: 3},
				{Text: "今", Type: kana.Kanji, Start: 3, End: 4},
			},
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in, trie)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenizeLongestMatchWins(t *testing.T) {
	trie := lexicon.NewTrie()
	trie.Insert("思い", "おもい")
	trie.Insert("思い出", "おもいで")

	got := Tokenize("思い出す", trie)
	want := []Token{
		{Text: "思", Type: kana.Kanji, Start: 0, End: 1, GroupID: 1},
		{Text: "い", Type: kana.Hiragana, Start: 1, End: 2, GroupID: 1},
		{Text: "出", Type: kana.Kanji, Start: 2, End: 3, GroupID: 1},
		{Text: "す", Type: kana.Hiragana, Start: 3, End: 4},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize(思い出す) = %v, want %v", got, want)
	}
}

func TestJoinText(t *testing.T) {
	tokens := []Token{{Text: "見"}, {Text: "る"}}
	if got := JoinText(tokens); got != "見る" {
		t.Errorf("JoinText = %q, want 見る", got)
	}
}

func TestBlank(t *testing.T) {
	if !(Token{Text: "  "}).Blank() {
		t.Error("whitespace token not blank")
	}
	if (Token{Text: "世"}).Blank() {
		t.Error("kanji token reported blank")
	}
}
