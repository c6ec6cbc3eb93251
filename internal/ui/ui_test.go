package ui

import (
	"testing"

	"furigana"
)

func TestRenderInline(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		spans []furigana.Span
		want  string
	}{
		{
			name: "multiple spans",
			line: "私が見る世界",
			spans: []furigana.Span{
				{Start: 0, End: 1, Ruby: "わたし"},
				{Start: 2, End: 3, Ruby: "み"},
				{Start: 4, End: 6, Ruby: "せかい"},
			},
			want: "私(わたし)が見(み)る世界(せかい)",
		},
		{
			name:  "no spans",
			line:  "こんにちは",
			spans: nil,
			want:  "こんにちは",
		},
		{
			name: "span at end",
			line: "信一",
			spans: []furigana.Span{
				{Start: 0, End: 2, Ruby: "しんいち"},
			},
			want: "信一(しんいち)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderInline(tt.line, tt.spans, nil)
			if got != tt.want {
				t.Errorf("RenderInline(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}
