package lexicon

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/rs/zerolog/log"
)

// wordFile is the on-disk lexicon layout:
//
//	[[word]]
//	text = "世界"
//	readings = ["せかい"]
type wordFile struct {
	Words []wordEntry `toml:"word"`
}

type wordEntry struct {
	Text     string   `toml:"text"`
	Readings []string `toml:"readings"`
}

// Load reads a TOML word list from path and builds a trie.
func Load(path string) (*Trie, error) {
	var file wordFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to read lexicon %s: %w", path, err)
	}
	return fromEntries(file.Words), nil
}

// Decode builds a trie from TOML word-list data.
func Decode(data string) (*Trie, error) {
	var file wordFile
	if _, err := toml.Decode(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode lexicon: %w", err)
	}
	return fromEntries(file.Words), nil
}

func fromEntries(entries []wordEntry) *Trie {
	t := NewTrie()
	for _, e := range entries {
		if e.Text == "" || len(e.Readings) == 0 {
			log.Warn().Str("text", e.Text).Msg("skipping lexicon entry without text or readings")
			continue
		}
		t.Insert(e.Text, e.Readings...)
	}
	return t
}

//go:embed words.toml
var defaultWords string

var (
	defaultTrie *Trie
	defaultOnce sync.Once
)

// Default returns the process-wide trie built from the embedded word list.
// It is loaded once and shared; callers must treat it as read-only.
func Default() *Trie {
	defaultOnce.Do(func() {
		t, err := Decode(defaultWords)
		if err != nil {
			log.Error().Err(err).Msg("embedded lexicon is invalid, continuing with an empty index")
			t = NewTrie()
		}
		defaultTrie = t
	})
	return defaultTrie
}
