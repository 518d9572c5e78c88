package report

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/sitegrep/internal/model"
)

// MarkdownWriter writes reports as GitHub Flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter writing to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write renders one report.
func (w *MarkdownWriter) Write(report *model.SearchReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeResults(md, report)
	w.writeFailures(md, report)

	return len(md.String()), md.Build()
}

// WriteAll renders reports one after another.
func (w *MarkdownWriter) WriteAll(reports []*model.SearchReport) (int, error) {
	return writeEach(reports, w.Write)
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.SearchReport) {
	md.H1("sitegrep Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed", inlineCode(report.Seed)},
			{"Scope", inlineCode(report.Scope)},
			{"Keyword", inlineCode(report.Keyword)},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", report.Elapsed.Round(time.Millisecond).String()},
			{"Pages Visited", strconv.Itoa(report.VisitedCount)},
			{"Pages Indexed", strconv.Itoa(report.IndexedCount)},
			{"Pages Failed", strconv.Itoa(report.FailedCount())},
			{"Status", statusText(report)},
		},
	})
	md.PlainText("")

	if report.VisitedCount > 0 {
		w.writePieChart(md, report)
	}
}

func statusText(report *model.SearchReport) string {
	switch {
	case report.Interrupted:
		return "⚠️ Interrupted (partial results)"
	case report.Error != "":
		return "❌ Error - " + escapeCell(report.Error)
	default:
		return "✅ Complete"
	}
}

func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.SearchReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Fetch Outcomes"),
		piechart.WithShowData(true),
	)
	if report.IndexedCount > 0 {
		chart.LabelAndIntValue("Indexed", uint64(report.IndexedCount))
	}
	if n := report.FailedCount(); n > 0 {
		chart.LabelAndIntValue("Failed", uint64(n))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeResults(md *markdown.Markdown, report *model.SearchReport) {
	md.H2("Search Results")
	md.PlainText("")

	if !report.HasResults() {
		md.Note(noResults)
		md.PlainText("")
		return
	}

	md.BulletList(report.Results...)
	md.PlainText("")
}

func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *model.SearchReport) {
	if report.FailedCount() == 0 {
		return
	}

	md.H2("Failed Pages")
	md.PlainText("")
	md.Warningf("%d page(s) could not be fetched and are missing from the index.", report.FailedCount())
	md.PlainText("")

	rows := make([][]string, 0, len(report.Failures))
	for _, f := range report.Failures {
		rows = append(rows, []string{inlineCode(f.URL), escapeCell(f.Error)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Error"},
		Rows:   rows,
	})
	md.PlainText("")
}

// inlineCode formats s as a code span for a table cell. The fence is one
// backtick longer than the longest backtick run in s.
func inlineCode(s string) string {
	s = escapeCell(s)

	longest, run := 0, 0
	for _, r := range s {
		if r != '`' {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	if longest == 0 {
		return markdown.Code(s)
	}

	fence := strings.Repeat("`", longest+1)
	return fence + " " + s + " " + fence
}

// escapeCell keeps "|" and newlines from ending a table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
