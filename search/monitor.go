package search

import "github.com/poiesic/skulookup/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track per-sheet outcomes during a search.
type SearchMonitor interface {
	Start(code string, sheets []string)
	SheetSkipped(sheet string, reason error)
	SheetScanned(sheet string, rows, matches int)
	RowFailed(sheet string, row int, err error)
	Finish(total int, results []core.MatchRecord)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ []string)         {}
func (n *noopMonitor) SheetSkipped(_ string, _ error)     {}
func (n *noopMonitor) SheetScanned(_ string, _, _ int)    {}
func (n *noopMonitor) RowFailed(_ string, _ int, _ error) {}
func (n *noopMonitor) Finish(_ int, _ []core.MatchRecord) {}
