package furigana

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"furigana/internal/kana"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		orig string
		roma string
		want []Span
	}{
		{
			name: "basic sentence",
			orig: "私が見る世界",
			roma: "watashi ga miru sekai",
			want: []Span{{0, 1, "わたし"}, {2, 3, "み"}, {4, 6, "せかい"}},
		},
		{
			name: "pure kana needs no ruby",
			orig: "こんにちは",
			roma: "konnichiwa",
			want: nil,
		},
		{
			name: "no japanese at all",
			orig: "Hello World",
			roma: "Hello World",
			want: nil,
		},
		{
			name: "apostrophe splits the moraic nasal",
			orig: "信一",
			roma: "shin'ichi",
			want: []Span{{0, 2, "しんいち"}},
		},
		{
			name: "hyphen long mark on katakana",
			orig: "東京タワー",
			roma: "toukyou tawa-",
			want: []Span{{0, 2, "とうきょう"}},
		},
		{
			name: "kana word then bare kanji",
			orig: "ぎゅっと抱きしめたら",
			roma: "gyu tsu to da ki shi me ta ra",
			want: []Span{{4, 5, "だ"}},
		},
		{
			name: "blank romanization",
			orig: "世界",
			roma: "   ",
			want: nil,
		},
		{
			name: "untranslated latin chunk",
			orig: "STAY 世界",
			roma: "stay sekai",
			want: []Span{{5, 7, "せかい"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.orig, tt.roma))
		})
	}
}

func TestGenerateAnnotatedKanji(t *testing.T) {
	t.Run("hint only", func(t *testing.T) {
		got := Generate("愛(あい)", "ai")
		assert.Equal(t, []Span{{0, 1, "あい"}}, got)
	})

	t.Run("hint with okurigana", func(t *testing.T) {
		got := Generate("抱(だ)きしめて", "da ki shi me te")
		assert.Equal(t, []Span{{0, 1, "だきしめて"}}, got)
	})
}

func TestGenerateSentenceSplit(t *testing.T) {
	got := Generate("世界 世界", "sekai  sekai")
	assert.Equal(t, []Span{{0, 2, "せかい"}, {3, 5, "せかい"}}, got)
}

func TestGenerateCoordinatesAfterNormalization(t *testing.T) {
	// The ellipsis expands to three dots under NFKC; the returned range must
	// still point into the original text.
	got := Generate("…世界", "sekai")
	assert.Equal(t, []Span{{1, 3, "せかい"}}, got)
}

func TestGenerateSpanProperties(t *testing.T) {
	lines := []struct{ orig, roma string }{
		{"私が見る世界", "watashi ga miru sekai"},
		{"ぎゅっと抱きしめたら", "gyu tsu to da ki shi me ta ra"},
		{"東京タワー", "toukyou tawa-"},
		{"信一", "shin'ichi"},
		{"思い出", "omoide"},
		{"…世界", "sekai"},
		{"君が笑う", "kimi ga warau"},
	}

	for _, line := range lines {
		spans := Generate(line.orig, line.roma)
		n := utf8.RuneCountInString(line.orig)

		prevEnd := 0
		for _, s := range spans {
			require.Less(t, s.Start, s.End, "empty span for %q", line.orig)
			require.LessOrEqual(t, s.End, n, "span past end of %q", line.orig)
			require.GreaterOrEqual(t, s.Start, prevEnd, "overlapping spans for %q", line.orig)
			prevEnd = s.End

			require.NotEmpty(t, s.Ruby)
			for _, r := range s.Ruby {
				require.True(t, kana.IsHiragana(r), "non-hiragana %q in ruby for %q", r, line.orig)
			}
		}

		assert.Equal(t, spans, Generate(line.orig, line.roma), "output not deterministic for %q", line.orig)
	}
}

func TestNewGeneratorDefaultsDictionary(t *testing.T) {
	g := NewGenerator(nil)
	require.NotNil(t, g)
	assert.NotEmpty(t, g.Generate("世界", "sekai"))
}
