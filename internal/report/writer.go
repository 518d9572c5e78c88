package report

import (
	"io"

	"github.com/nao1215/sitegrep/internal/model"
)

// Writer renders search reports.
type Writer interface {
	// Write renders a single report.
	Write(report *model.SearchReport) (int, error)

	// WriteAll renders the reports of a batch, in order.
	WriteAll(reports []*model.SearchReport) (int, error)
}

// MultiWriter writes to several Writers in turn, stopping at the first
// error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders report with every writer.
func (m *MultiWriter) Write(report *model.SearchReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteAll renders reports with every writer.
func (m *MultiWriter) WriteAll(reports []*model.SearchReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteAll(reports)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter holds the output destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// writeEach calls write for every report and sums the bytes written.
func writeEach(reports []*model.SearchReport, write func(*model.SearchReport) (int, error)) (int, error) {
	var total int
	for _, r := range reports {
		n, err := write(r)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
