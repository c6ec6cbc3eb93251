// Package lexicon provides the read-only word index consulted during
// tokenization and reading lookup. The index is a rune-keyed prefix trie;
// each known word carries one or more candidate hiragana readings.
//
// A Trie is mutable while it is being filled and must not be modified once
// it is shared: every query is a pure read, so a loaded trie is safe for
// any number of concurrent readers.
package lexicon

type Trie struct {
	root *trieNode
	size int
}

type trieNode struct {
	children map[rune]*trieNode
	readings []string // non-nil only on terminal nodes
}

// Match is one prefix hit: a known word and its candidate readings.
type Match struct {
	Word     string
	Readings []string
}

// NewTrie creates an empty trie.
func NewTrie() *Trie {
	return &Trie{root: &trieNode{children: make(map[rune]*trieNode)}}
}

// Insert adds a word with its readings. Repeated inserts of the same word
// append new readings; duplicates are dropped, first occurrence wins.
func (t *Trie) Insert(word string, readings ...string) {
	if word == "" {
		return
	}
	cur := t.root
	for _, r := range word {
		child, ok := cur.children[r]
		if !ok {
			child = &trieNode{children: make(map[rune]*trieNode)}
			cur.children[r] = child
		}
		cur = child
	}
	if cur.readings == nil {
		t.size++
		cur.readings = []string{}
	}
	for _, reading := range readings {
		if reading == "" || contains(cur.readings, reading) {
			continue
		}
		cur.readings = append(cur.readings, reading)
	}
}

// PrefixMatches returns every known word that is a prefix of text, longest
// first. The walk is a single pass down the trie, so the order is stable.
func (t *Trie) PrefixMatches(text string) []Match {
	var found []Match
	cur := t.root
	runes := []rune(text)
	for i, r := range runes {
		child, ok := cur.children[r]
		if !ok {
			break
		}
		cur = child
		if cur.readings != nil {
			found = append(found, Match{
				Word:     string(runes[:i+1]),
				Readings: cur.readings,
			})
		}
	}
	// Collected shortest first; callers want the longest match up front.
	for i, j := 0, len(found)-1; i < j; i, j = i+1, j-1 {
		found[i], found[j] = found[j], found[i]
	}
	return found
}

// Lookup returns the readings of an exact word, or nil when unknown.
func (t *Trie) Lookup(word string) []string {
	cur := t.root
	for _, r := range word {
		child, ok := cur.children[r]
		if !ok {
			return nil
		}
		cur = child
	}
	if len(cur.readings) == 0 {
		return nil
	}
	return cur.readings
}

// Contains reports whether word is in the trie.
func (t *Trie) Contains(word string) bool {
	return t.Lookup(word) != nil
}

// Size returns the number of distinct words.
func (t *Trie) Size() int {
	return t.size
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
