// furigana CLI - annotate romanized Japanese lyrics with ruby readings.
//
// Input is read line by line; each line holds the original text and its
// romanization separated by the configured separator. Output is the line
// with readings rendered inline, or JSON spans with --json.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"furigana"
	"furigana/internal/config"
	"furigana/internal/lexicon"
	"furigana/internal/metrics"
	"furigana/internal/ui"
)

type annotatedLine struct {
	Line  string          `json:"line"`
	Roma  string          `json:"roma"`
	Spans []furigana.Span `json:"spans"`
}

func main() {
	cfg := config.Load().Defaults

	// Flags
	lexiconPath := pflag.StringP("lexicon", "x", cfg.Lexicon, "TOML word list (empty = embedded)")
	input := pflag.StringP("input", "i", "", "Input file (empty = stdin)")
	separator := pflag.StringP("separator", "s", cfg.Separator, "Separator between original and romanization")
	jsonOutput := pflag.BoolP("json", "j", false, "Output spans as JSON lines")
	quiet := pflag.BoolP("quiet", "q", cfg.Quiet, "Suppress progress output")
	verbose := pflag.BoolP("verbose", "v", cfg.Verbose, "Verbose logging")
	writeMetrics := pflag.Bool("metrics", cfg.Metrics, "Write metrics to the output directory")
	metricsDir := pflag.String("metrics-dir", "output", "Directory for metrics files")
	pflag.Parse()

	setupLogging(*quiet, *verbose)

	// Initialize UI
	term := ui.New(*quiet || *jsonOutput, *verbose)
	if !*jsonOutput {
		term.Banner()
	}

	// Initialize metrics collector
	collector := metrics.NewCollector()
	collector.SetConfig("lexicon", *lexiconPath)
	collector.SetConfig("json", *jsonOutput)

	// Load the word index
	collector.StartStage("load")
	trie := lexicon.Default()
	if *lexiconPath != "" {
		loaded, err := lexicon.Load(*lexiconPath)
		if err != nil {
			term.Error(fmt.Sprintf("Cannot load lexicon: %v", err))
			os.Exit(1)
		}
		trie = loaded
	}
	collector.EndStage("load")

	inputName := "stdin"
	in := os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			term.Error(fmt.Sprintf("Cannot open input: %v", err))
			os.Exit(1)
		}
		defer f.Close()
		in = f
		inputName = *input
	}

	if !*jsonOutput {
		term.Config(*lexiconPath, trie.Size(), inputName)
	}

	gen := furigana.NewGenerator(trie)
	enc := json.NewEncoder(os.Stdout)

	collector.StartStage("annotate")
	var lines, spans int64
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}

		orig, roma, ok := strings.Cut(raw, *separator)
		if !ok {
			term.LineStatus(lineNo, "skip", "no separator, line skipped")
			continue
		}

		result := gen.Generate(orig, roma)
		lines++
		spans += int64(len(result))
		collector.IncrementCounter("lines", 1)
		collector.IncrementCounter("spans", int64(len(result)))

		if *jsonOutput {
			enc.Encode(annotatedLine{Line: orig, Roma: roma, Spans: result})
			continue
		}
		term.AnnotatedLine(orig, result)
	}
	collector.EndStage("annotate")

	if err := scanner.Err(); err != nil {
		term.Error(fmt.Sprintf("Read error: %v", err))
		os.Exit(1)
	}

	run := collector.Finalize(lines, spans)
	if !*jsonOutput {
		term.FinalReport(int(lines), int(spans), collector.GetStageDuration("annotate"))
	}

	if *writeMetrics {
		reporter := metrics.NewReporter(*metricsDir)
		previous, _ := reporter.GetLastRun()
		if err := reporter.Write(run); err != nil {
			log.Warn().Err(err).Msg("could not write metrics")
		} else if !*jsonOutput {
			term.Info(metrics.FormatComparison(metrics.CompareRuns(run, previous)))
		}
	}
}

// setupLogging routes zerolog to stderr so annotated output on stdout stays
// machine readable.
func setupLogging(quiet, verbose bool) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if quiet {
		level = zerolog.ErrorLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}
