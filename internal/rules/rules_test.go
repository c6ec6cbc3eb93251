package rules

import (
	"testing"

	"furigana/internal/kana"
	"furigana/internal/tokenizer"
)

func variantTexts(vs []Variant) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Text
	}
	return out
}

func findVariant(vs []Variant, text string) (Variant, bool) {
	for _, v := range vs {
		if v.Text == text {
			return v, true
		}
	}
	return Variant{}, false
}

func TestVariantsAnchorFirst(t *testing.T) {
	vs := Variants("きしめたら", nil, tokenizer.Token{}, "だきしめたら")
	if len(vs) == 0 {
		t.Fatal("no variants")
	}
	if vs[0].Text != "きしめたら" || vs[0].Cost != 0 {
		t.Errorf("first variant = %+v, want the unmodified anchor at cost 0", vs[0])
	}
}

func TestVariantsParticles(t *testing.T) {
	tests := []struct {
		anchor string
		target string
		want   string
	}{
		{"は", "わ", "わ"},
		{"へ", "え", "え"},
		{"を", "お", "お"},
	}
	for _, tt := range tests {
		vs := Variants(tt.anchor, nil, tokenizer.Token{}, tt.target)
		v, ok := findVariant(vs, tt.want)
		if !ok {
			t.Errorf("Variants(%q): %q missing from %v", tt.anchor, tt.want, variantTexts(vs))
			continue
		}
		if v.Cost != CostEquivalent {
			t.Errorf("Variants(%q): %q has cost %d, want 0", tt.anchor, tt.want, v.Cost)
		}
	}
}

func TestVariantsSokuon(t *testing.T) {
	vs := Variants("ぎゅっと", nil, tokenizer.Token{}, "ぎゅつとだきしめたら")

	v, ok := findVariant(vs, "ぎゅつと")
	if !ok {
		t.Fatalf("sokuon to tsu variant missing from %v", variantTexts(vs))
	}
	if v.Cost != CostCommonVariant {
		t.Errorf("ぎゅつと cost = %d, want %d", v.Cost, CostCommonVariant)
	}

	if v, ok = findVariant(vs, "ぎゅと"); !ok || v.Cost != CostCommonVariant {
		t.Errorf("sokuon omission variant = %+v, ok=%v", v, ok)
	}
}

func TestVariantsLongVowelMark(t *testing.T) {
	// ー resolves from the preceding character inside the anchor.
	vs := Variants("たわー", nil, tokenizer.Token{}, "たわあ")
	if v, ok := findVariant(vs, "たわあ"); !ok || v.Cost != CostEquivalent {
		t.Fatalf("long mark expansion missing from %v", variantTexts(vs))
	}
}

func TestVariantsLongVowelMarkFromPreviousToken(t *testing.T) {
	// An anchor that opens with ー takes its vowel from the previous token.
	prev := tokenizer.Token{Text: "タ", Type: kana.Katakana, Start: 0, End: 1}
	cur := tokenizer.Token{Text: "ー", Type: kana.Katakana, Start: 1, End: 2}
	vs := Variants("ー", []tokenizer.Token{prev, cur}, cur, "たあ")
	if _, ok := findVariant(vs, "あ"); !ok {
		t.Fatalf("cross-token long mark expansion missing from %v", variantTexts(vs))
	}
}

func TestVariantsIntroducedFilter(t *testing.T) {
	// The target contains no つ, so the sokuon_to_tsu rewrite must not run.
	vs := Variants("ぎゅっと", nil, tokenizer.Token{}, "ぎゅとだ")
	if _, ok := findVariant(vs, "ぎゅつと"); ok {
		t.Error("sokuon to tsu generated although つ cannot occur in the target")
	}
	if _, ok := findVariant(vs, "ぎゅと"); !ok {
		t.Errorf("sokuon omission missing from %v", variantTexts(vs))
	}
}

func TestVariantsSortedByCost(t *testing.T) {
	vs := Variants("とった", nil, tokenizer.Token{}, "とつたどっだ")
	for i := 1; i < len(vs); i++ {
		if vs[i].Cost < vs[i-1].Cost {
			t.Fatalf("variants out of cost order: %+v", vs)
		}
	}
}

func TestVariantsRuleTrail(t *testing.T) {
	vs := Variants("は", nil, tokenizer.Token{}, "わ")
	v, ok := findVariant(vs, "わ")
	if !ok {
		t.Fatal("particle variant missing")
	}
	if len(v.Rules) != 1 || v.Rules[0] != "particle_ha_to_wa" {
		t.Errorf("rule trail = %v, want [particle_ha_to_wa]", v.Rules)
	}
}

func TestTableClosed(t *testing.T) {
	for _, r := range Table() {
		if r.IsFunction() == (r.From != "") {
			t.Errorf("rule %s must be either a substitution or a function", r.Name)
		}
		if r.Cost < 0 {
			t.Errorf("rule %s has negative cost", r.Name)
		}
	}
}
