// Package report turns a completed result set into human and machine
// readable artifacts: an ASCII comparison table, a plain-text summary, a
// JSON export, and a duration-versus-qubits plot.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/qsimbench/qbench/types"
)

// Formatter renders a result set into a string artifact.
type Formatter interface {
	Format(rs *types.ResultSet) (string, error)
}

// Writer delivers a formatted artifact to its destination.
type Writer interface {
	Write(content string) error
}

// StdoutWriter prints the artifact to standard output.
type StdoutWriter struct{}

// NewStdoutWriter creates a writer backed by stdout.
func NewStdoutWriter() *StdoutWriter {
	return &StdoutWriter{}
}

// Write prints the content as-is.
func (sw *StdoutWriter) Write(content string) error {
	_, err := fmt.Print(content)
	return err
}

// FileWriter persists the artifact to a file, creating parent directories
// as needed.
type FileWriter struct {
	path string
}

// NewFileWriter creates a writer targeting the given path.
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Write stores the content at the configured path.
func (fw *FileWriter) Write(content string) error {
	if dir := filepath.Dir(fw.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	return os.WriteFile(fw.path, []byte(content), 0644)
}

// SortByQubitCount returns a copy of the records ordered by ascending qubit
// count. The sort is stable, so circuits with equal counts keep the order
// in which they were discovered.
func SortByQubitCount(records []types.ComparisonRecord) []types.ComparisonRecord {
	sorted := make([]types.ComparisonRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].QubitCount < sorted[j].QubitCount
	})
	return sorted
}

// seconds renders a duration as seconds with six decimal places, the
// resolution the comparison table promises.
func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 6, 64)
}

// TableFormatter formats the result set as an ASCII table, one row per
// circuit, ordered by qubit count.
type TableFormatter struct {
	title string
}

// NewTableFormatter creates a table formatter with the given title.
func NewTableFormatter(title string) *TableFormatter {
	return &TableFormatter{title: title}
}

// Format renders the comparison table.
func (tf *TableFormatter) Format(rs *types.ResultSet) (string, error) {
	var buf bytes.Buffer

	t := table.NewWriter()
	t.SetOutputMirror(&buf)
	t.SetTitle(tf.title)

	t.AppendHeader(table.Row{
		"Circuit", "Qubits", "Candidate (s)", "Reference (s)", "Equivalent",
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Circuit", Align: text.AlignLeft},
		{Name: "Qubits", Align: text.AlignLeft},
		{Name: "Candidate (s)", Align: text.AlignLeft},
		{Name: "Reference (s)", Align: text.AlignLeft},
		{Name: "Equivalent", Align: text.AlignLeft},
	})

	for _, rec := range SortByQubitCount(rs.Records) {
		t.AppendRow(table.Row{
			rec.Circuit,
			rec.QubitCount,
			seconds(rec.CandidateDuration),
			seconds(rec.ReferenceDuration),
			strconv.FormatBool(rec.Equivalent),
		})
	}

	if rs.AllEquivalent() {
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	} else {
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	verdict := "ALL EQUIVALENT"
	if !rs.AllEquivalent() {
		verdict = fmt.Sprintf("%d MISMATCHED", rs.MismatchCount())
	}
	t.AppendFooter(table.Row{
		"TOTAL", rs.Size(), "", "", verdict,
	})

	t.Render()
	return buf.String(), nil
}

// SummaryFormatter formats the result set as a short plain-text summary.
type SummaryFormatter struct{}

// NewSummaryFormatter creates a summary formatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

// Format renders the summary. The output is fully determined by the result
// set contents, so fixed inputs produce byte-identical summaries.
func (sf *SummaryFormatter) Format(rs *types.ResultSet) (string, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "BENCHMARK SUMMARY\n")
	fmt.Fprintf(&buf, "=================\n")
	fmt.Fprintf(&buf, "Run ID:   %s\n", rs.RunID)
	fmt.Fprintf(&buf, "Circuits: %s\n", rs.SourceDir)
	fmt.Fprintf(&buf, "Duration: %s\n\n", rs.Duration())

	fmt.Fprintf(&buf, "Results:\n")
	fmt.Fprintf(&buf, "  Total:      %d\n", rs.Size())
	fmt.Fprintf(&buf, "  Equivalent: %d\n", rs.EquivalentCount())
	fmt.Fprintf(&buf, "  Mismatched: %d\n", rs.MismatchCount())

	if !rs.AllEquivalent() {
		fmt.Fprintf(&buf, "\nMismatched circuits:\n")
		for _, rec := range SortByQubitCount(rs.Records) {
			if !rec.Equivalent {
				fmt.Fprintf(&buf, "  - %s (%d qubits)\n", rec.Circuit, rec.QubitCount)
			}
		}
	}

	return buf.String(), nil
}

// JSONFormatter formats the result set as indented JSON for downstream
// tooling.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format renders the result set as JSON with records sorted the same way
// the table presents them.
func (jf *JSONFormatter) Format(rs *types.ResultSet) (string, error) {
	export := *rs
	export.Records = SortByQubitCount(rs.Records)
	data, err := json.MarshalIndent(&export, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result set: %w", err)
	}
	return string(data) + "\n", nil
}

// Generator pairs a formatter with a writer.
type Generator struct {
	formatter Formatter
	writer    Writer
}

// NewGenerator creates a report generator.
func NewGenerator(formatter Formatter, writer Writer) *Generator {
	return &Generator{formatter: formatter, writer: writer}
}

// Generate formats the result set and delivers it.
func (g *Generator) Generate(rs *types.ResultSet) error {
	content, err := g.formatter.Format(rs)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	if err := g.writer.Write(content); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
