package mock

import (
	"context"
	"sync"

	"github.com/poiesic/skulookup/source"
)

// Sheet is an in-memory source.Sheet.
type Sheet struct {
	// RowsFunc is called by Rows if set. A non-nil error fails the fetch.
	RowsFunc func(ctx context.Context) error

	title string
	grid  [][]string

	mu         sync.Mutex
	fetchCount int
}

var _ source.Sheet = (*Sheet)(nil)

// NewSheet creates a sheet whose first grid row is the header row.
func NewSheet(title string, grid [][]string) *Sheet {
	return &Sheet{
		title: title,
		grid:  grid,
	}
}

func (s *Sheet) Title() string {
	return s.title
}

// Rows returns a copy of the grid so callers can never mutate the sheet.
func (s *Sheet) Rows(ctx context.Context) (*source.Table, error) {
	s.mu.Lock()
	s.fetchCount++
	s.mu.Unlock()

	if s.RowsFunc != nil {
		if err := s.RowsFunc(ctx); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	grid := make([][]string, len(s.grid))
	for i, row := range s.grid {
		grid[i] = append([]string(nil), row...)
	}
	return source.NewTable(grid), nil
}

// FetchCount returns the number of Rows calls.
func (s *Sheet) FetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchCount
}
