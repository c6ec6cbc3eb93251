// Package ui provides terminal UI components using pterm.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"furigana"
)

// Theme colors for consistent styling
var (
	ColorPrimary   = pterm.FgCyan
	ColorSecondary = pterm.FgLightBlue
	ColorSuccess   = pterm.FgGreen
	ColorWarning   = pterm.FgYellow
	ColorError     = pterm.FgRed
	ColorMuted     = pterm.FgGray
)

// UI wraps pterm components for the annotation tools.
type UI struct {
	quiet   bool
	verbose bool
}

// New creates a new UI instance.
func New(quiet, verbose bool) *UI {
	if quiet {
		pterm.DisableOutput()
	}
	return &UI{quiet: quiet, verbose: verbose}
}

// Banner prints the application banner.
func (u *UI) Banner() {
	pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("furi", pterm.NewStyle(pterm.FgCyan)),
		pterm.NewLettersFromStringWithStyle("gana", pterm.NewStyle(pterm.FgLightBlue)),
	).Render()

	pterm.DefaultCenter.Println(
		pterm.FgGray.Sprint("Ruby Annotation from Romanized Lyrics"),
	)
	fmt.Println()
}

// Config prints the configuration summary.
func (u *UI) Config(lexicon string, words int, input string) {
	pterm.DefaultSection.Println("Configuration")

	if lexicon == "" {
		lexicon = "embedded"
	}
	data := [][]string{
		{"Lexicon", lexicon},
		{"Words", fmt.Sprintf("%d", words)},
		{"Input", input},
	}

	pterm.DefaultTable.WithData(data).Render()
	fmt.Println()
}

// Spinner creates a spinner for long operations.
func (u *UI) Spinner(message string) *pterm.SpinnerPrinter {
	spinner, _ := pterm.DefaultSpinner.
		WithRemoveWhenDone(true).
		Start(message)
	return spinner
}

// AnnotatedLine prints one line with its ruby rendered inline, readings
// colored so they stand out from the source text.
func (u *UI) AnnotatedLine(line string, spans []furigana.Span) {
	fmt.Println(RenderInline(line, spans, func(ruby string) string {
		return ColorSecondary.Sprintf("(%s)", ruby)
	}))
}

// RenderInline interleaves readings into the line right after the text they
// annotate; decorate wraps each reading for display.
func RenderInline(line string, spans []furigana.Span, decorate func(string) string) string {
	if decorate == nil {
		decorate = func(ruby string) string { return "(" + ruby + ")" }
	}

	runes := []rune(line)
	var b strings.Builder
	next := 0
	for i, r := range runes {
		b.WriteRune(r)
		if next < len(spans) && spans[next].End == i+1 {
			b.WriteString(decorate(spans[next].Ruby))
			next++
		}
	}
	return b.String()
}

// LineStatus prints status for a single line.
func (u *UI) LineStatus(lineNo int, status string, details string) {
	prefix := pterm.FgCyan.Sprintf("[line %d]", lineNo)
	switch status {
	case "ok":
		pterm.Success.Println(prefix, details)
	case "skip":
		pterm.Warning.Println(prefix, details)
	case "error":
		pterm.Error.Println(prefix, details)
	default:
		fmt.Printf("%s %s\n", prefix, details)
	}
}

// FinalReport prints the final summary report.
func (u *UI) FinalReport(lines, spans int, duration time.Duration) {
	pterm.DefaultSection.Println("Summary")

	panel := pterm.DefaultBox.WithTitle("Results").Sprint(
		fmt.Sprintf(
			"  Lines Annotated:  %s\n"+
				"  Spans Emitted:    %s\n"+
				"  Duration:         %s",
			pterm.FgGreen.Sprintf("%d", lines),
			pterm.FgCyan.Sprintf("%d", spans),
			pterm.FgYellow.Sprint(duration.Round(time.Millisecond)),
		),
	)
	fmt.Println(panel)
}

// Success prints a success message.
func (u *UI) Success(message string) {
	pterm.Success.Println(message)
}

// Error prints an error message.
func (u *UI) Error(message string) {
	pterm.Error.Println(message)
}

// Warning prints a warning message.
func (u *UI) Warning(message string) {
	pterm.Warning.Println(message)
}

// Info prints an info message.
func (u *UI) Info(message string) {
	pterm.Info.Println(message)
}

// Debug prints a debug message (only in verbose mode).
func (u *UI) Debug(message string) {
	if u.verbose {
		pterm.Debug.Println(message)
	}
}
