package mock

import (
	"context"
	"sync"

	"github.com/poiesic/skulookup/source"
)

// Provider is an in-memory source.Provider.
// It is safe for concurrent use once configured.
type Provider struct {
	// OpenFunc is called by Open if set. A non-nil error fails the Open call.
	OpenFunc func(ctx context.Context) error

	title  string
	sheets []*Sheet

	mu        sync.Mutex
	openCount int
	closed    bool
}

var _ source.Provider = (*Provider)(nil)

// NewProvider creates a provider serving the given sheets in order.
// Note: Returns concrete type to allow failure injection and assertions.
func NewProvider(title string, sheets ...*Sheet) *Provider {
	return &Provider{
		title:  title,
		sheets: sheets,
	}
}

// AddSheet appends a sheet to the spreadsheet.
func (p *Provider) AddSheet(sheet *Sheet) {
	p.sheets = append(p.sheets, sheet)
}

// Sheet returns the configured sheet with the given title, or nil.
func (p *Provider) Sheet(title string) *Sheet {
	for _, s := range p.sheets {
		if s.title == title {
			return s
		}
	}
	return nil
}

// Open returns a handle over the configured sheets.
func (p *Provider) Open(ctx context.Context) (source.Spreadsheet, error) {
	p.mu.Lock()
	p.openCount++
	p.mu.Unlock()

	if p.OpenFunc != nil {
		if err := p.OpenFunc(ctx); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := &spreadsheet{
		title:  p.title,
		sheets: make(map[string]*Sheet, len(p.sheets)),
	}
	for _, s := range p.sheets {
		if _, dup := doc.sheets[s.title]; dup {
			continue
		}
		doc.titles = append(doc.titles, s.title)
		doc.sheets[s.title] = s
	}
	return doc, nil
}

// OpenCount returns the number of Open calls.
func (p *Provider) OpenCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.openCount
}

// Closed reports whether Close was called.
func (p *Provider) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

type spreadsheet struct {
	title  string
	titles []string
	sheets map[string]*Sheet
}

func (s *spreadsheet) Title() string {
	return s.title
}

func (s *spreadsheet) Titles() []string {
	out := make([]string, len(s.titles))
	copy(out, s.titles)
	return out
}

func (s *spreadsheet) Sheet(title string) (source.Sheet, bool) {
	sh, ok := s.sheets[title]
	if !ok {
		return nil, false
	}
	return sh, true
}
