// furigana-convert - romanization to hiragana conversion helper.
// Usage: furigana-convert [options] <romanized text>
//
// Handy for checking what hiragana stream the aligner will see for a given
// romanization.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"furigana/internal/romaji"
)

func main() {
	// Flags
	jsonOutput := pflag.BoolP("json", "j", false, "Output as JSON")
	stdin := pflag.BoolP("stdin", "s", false, "Read lines from stdin instead of arguments")
	pflag.Parse()

	if !*stdin && pflag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: furigana-convert [options] <romanized text>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		pflag.PrintDefaults()
		os.Exit(1)
	}

	if *stdin {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			emit(scanner.Text(), *jsonOutput)
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "Read error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	emit(strings.Join(pflag.Args(), " "), *jsonOutput)
}

func emit(text string, asJSON bool) {
	hira := romaji.Convert(text)
	if asJSON {
		json.NewEncoder(os.Stdout).Encode(map[string]string{
			"roma": text,
			"hira": hira,
		})
		return
	}
	fmt.Println(hira)
}
