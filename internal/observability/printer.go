package observability

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/job-autofill/internal/scanner"
	"github.com/jonathan/job-autofill/internal/store"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxLogsToShow caps how many log entries a box lists
	maxLogsToShow = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = truncate(line, boxWidth-4)
		pad := boxWidth - 4 - utf8.RuneCountInString(line)
		fmt.Fprintf(p.out, "│ %s%s │\n", line, strings.Repeat(" ", pad))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func stateMark(s scanner.State) string {
	switch s {
	case scanner.StateResolved:
		return "✓"
	case scanner.StateUnresolved:
		return "·"
	default:
		return "?"
	}
}

// PrintReport outputs every field a scan touched with its state, key and
// value source.
func (p *Printer) PrintReport(report *scanner.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Page: %s\n", report.URL))
	counts := report.Counts()
	sb.WriteString(fmt.Sprintf("Fields: %d  filled: %d  unresolved: %d\n",
		len(report.Fields), counts[scanner.StateResolved], counts[scanner.StateUnresolved]))

	if len(report.Fields) > 0 {
		sb.WriteString("\n")
	}
	for _, f := range report.Fields {
		label := f.Label
		if label == "" {
			label = "(no label)"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", stateMark(f.State), label))

		detail := []string{string(f.Kind)}
		if f.Key != "" {
			detail = append(detail, "key="+string(f.Key))
		}
		if f.Source != "" {
			detail = append(detail, "from="+string(f.Source))
		}
		if f.Trigger {
			detail = append(detail, "ai-trigger")
		}
		sb.WriteString("  " + strings.Join(detail, " ") + "\n")
		if !f.LastValue.IsZero() {
			sb.WriteString(fmt.Sprintf("  = %s\n", f.LastValue.String()))
		}
	}

	p.printBox("AUTOFILL REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLogs outputs the most recent autofill log entries, newest last.
func (p *Printer) PrintLogs(entries []store.LogEntry) {
	if len(entries) == 0 {
		p.printBox("AUTOFILL LOG", "No entries")
		return
	}

	var sb strings.Builder
	start := 0
	if len(entries) > maxLogsToShow {
		start = len(entries) - maxLogsToShow
		sb.WriteString(fmt.Sprintf("... %d older entries\n", start))
	}
	for _, e := range entries[start:] {
		sb.WriteString(fmt.Sprintf("%s  %s\n", e.Time.Format("2006-01-02 15:04:05"), summarize(e.Payload)))
	}

	p.printBox(fmt.Sprintf("AUTOFILL LOG (%d)", len(entries)), strings.TrimSuffix(sb.String(), "\n"))
}

// summarize pulls the label and source out of a fill log payload, falling
// back to the raw JSON.
func summarize(payload json.RawMessage) string {
	var entry scanner.FillLog
	if err := json.Unmarshal(payload, &entry); err == nil && entry.Meta.SiteFieldKey != "" {
		name := entry.Meta.SiteFieldKey
		if entry.Meta.CanonicalKey != "" {
			name = entry.Meta.CanonicalKey
		}
		return fmt.Sprintf("%s [%s] %s", name, entry.Meta.Source, entry.Value.String())
	}
	return string(payload)
}
