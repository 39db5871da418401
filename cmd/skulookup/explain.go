package main

import (
	"fmt"
	"io"

	"github.com/poiesic/skulookup/core"
	"github.com/poiesic/skulookup/search"
)

// explainMonitor prints what happened to each sheet during a search.
type explainMonitor struct {
	w io.Writer
}

var _ search.SearchMonitor = (*explainMonitor)(nil)

func newExplainMonitor(w io.Writer) *explainMonitor {
	return &explainMonitor{w: w}
}

func (m *explainMonitor) Start(code string, sheets []string) {
	fmt.Fprintf(m.w, "searching %q in %d sheet(s)\n", code, len(sheets))
}

func (m *explainMonitor) SheetSkipped(sheet string, reason error) {
	fmt.Fprintf(m.w, "  %-24s skipped: %v\n", sheet, reason)
}

func (m *explainMonitor) SheetScanned(sheet string, rows, matches int) {
	fmt.Fprintf(m.w, "  %-24s %d rows, %d matches\n", sheet, rows, matches)
}

func (m *explainMonitor) RowFailed(sheet string, row int, err error) {
	fmt.Fprintf(m.w, "  %-24s row %d failed: %v\n", sheet, row, err)
}

func (m *explainMonitor) Finish(total int, results []core.MatchRecord) {
	fmt.Fprintf(m.w, "found %d match(es), returned %d\n", total, len(results))
}
