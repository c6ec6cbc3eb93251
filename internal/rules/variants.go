package rules

import (
	"sort"
	"strings"

	"furigana/internal/tokenizer"
)

// Variant is one fuzzy rendering of an anchor with its accumulated cost and
// the names of the rules that produced it.
type Variant struct {
	Text  string
	Cost  int
	Rules []string
}

// Variants expands anchor into the list of phonetically plausible variants,
// cheapest first; the unmodified anchor always leads with cost zero.
//
// Rules whose introduced characters cannot occur in target are skipped up
// front. Each surviving rule is applied once to every variant accumulated
// before it, so the result covers combinations of at most one application
// per rule rather than a full rewrite closure; that bound keeps the search
// small and is enough for the spelling drift found in real romanizations.
func Variants(anchor string, tokens []tokenizer.Token, current tokenizer.Token, target string) []Variant {
	targetSet := make(map[rune]bool, len(target))
	for _, r := range target {
		targetSet[r] = true
	}

	variants := []Variant{{Text: anchor, Cost: 0}}
	seen := map[string]bool{anchor: true}

	for _, rule := range table {
		if rule.Introduced != "" && !intersects(rule.Introduced, targetSet) {
			continue
		}

		// Later rules see the variants of earlier ones, but a rule never
		// feeds its own output.
		snapshot := len(variants)
		for i := 0; i < snapshot; i++ {
			v := variants[i]

			var produced string
			if rule.IsFunction() {
				produced = rule.Transform(v.Text, tokens, current)
				if produced == v.Text {
					continue
				}
			} else {
				if !strings.Contains(v.Text, rule.From) {
					continue
				}
				produced = strings.ReplaceAll(v.Text, rule.From, rule.To)
			}
			if seen[produced] {
				continue
			}
			seen[produced] = true

			applied := make([]string, 0, len(v.Rules)+1)
			applied = append(applied, v.Rules...)
			applied = append(applied, rule.Name)
			variants = append(variants, Variant{Text: produced, Cost: v.Cost + rule.Cost, Rules: applied})
		}
	}

	// Stable: equal costs keep generation order.
	sort.SliceStable(variants, func(i, j int) bool { return variants[i].Cost < variants[j].Cost })
	return variants
}

func intersects(chars string, set map[rune]bool) bool {
	for _, r := range chars {
		if set[r] {
			return true
		}
	}
	return false
}
