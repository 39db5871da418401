package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/skulookup/core"
	"github.com/poiesic/skulookup/source"
)

// Searcher looks up product rows by partial code across a fixed list of sheets.
// A Searcher is immutable after construction and safe for concurrent use;
// every search opens its own spreadsheet handle and builds its own result list.
type Searcher struct {
	provider   source.Provider
	sheetNames []string
	labels     core.HeaderLabels
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithHeaderLabels overrides the header text used to locate columns.
// Fields not present in labels keep their default label.
func WithHeaderLabels(labels core.HeaderLabels) Option {
	return func(s *Searcher) error {
		merged := s.labels.Clone()
		for f, label := range labels {
			if _, ok := core.ParseField(string(f)); !ok {
				return fmt.Errorf("unknown field %q", f)
			}
			merged[f] = strings.TrimSpace(label)
		}
		if err := core.ValidateHeaderLabels(merged); err != nil {
			return err
		}
		s.labels = merged
		return nil
	}
}

// NewSearcher creates a searcher over the named sheets, scanned in the order given.
// Names are trimmed and blank names dropped; at least one must remain.
func NewSearcher(provider source.Provider, sheetNames []string, opts ...Option) (*Searcher, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	names := make([]string, 0, len(sheetNames))
	for _, name := range sheetNames {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, ErrSheetsRequired
	}

	s := &Searcher{
		provider:   provider,
		sheetNames: names,
		labels:     core.DefaultHeaderLabels(),
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// SheetNames returns the configured sheet names in scan order.
func (s *Searcher) SheetNames() []string {
	out := make([]string, len(s.sheetNames))
	copy(out, s.sheetNames)
	return out
}

// HeaderLabels returns the header labels used to resolve columns.
func (s *Searcher) HeaderLabels() core.HeaderLabels {
	return s.labels.Clone()
}

// Search opens the spreadsheet and returns up to core.MaxResults rows whose
// code contains partialCode.
func (s *Searcher) Search(ctx context.Context, partialCode string) (*core.QueryResult, error) {
	return s.SearchWithMonitor(ctx, partialCode, nil)
}

// SearchWithMonitor is Search with callbacks at each stage of the scan.
//
// Returned errors wrap core.ErrInvalidQuery when partialCode is blank and
// core.ErrSourceUnavailable when the spreadsheet cannot be opened.
func (s *Searcher) SearchWithMonitor(ctx context.Context, partialCode string, monitor SearchMonitor) (*core.QueryResult, error) {
	logger := s.requestLogger(ctx)

	code, err := core.ValidateQuery(&core.QueryRequest{PartialCode: partialCode})
	if err != nil {
		logger.Warn("rejected search without code")
		return nil, err
	}

	doc, err := s.provider.Open(ctx)
	if err != nil {
		logger.Error("error opening spreadsheet", "err", err)
		return nil, fmt.Errorf("%w: %w", core.ErrSourceUnavailable, err)
	}

	return s.scan(ctx, doc, code, logger, monitor)
}

// ScanSpreadsheet searches an already opened spreadsheet.
func (s *Searcher) ScanSpreadsheet(ctx context.Context, doc source.Spreadsheet, partialCode string, monitor SearchMonitor) (*core.QueryResult, error) {
	logger := s.requestLogger(ctx)

	code, err := core.ValidateQuery(&core.QueryRequest{PartialCode: partialCode})
	if err != nil {
		return nil, err
	}
	return s.scan(ctx, doc, code, logger, monitor)
}

func (s *Searcher) scan(ctx context.Context, doc source.Spreadsheet, code string, logger *slog.Logger, monitor SearchMonitor) (*core.QueryResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(code, s.SheetNames())
	logger.Info("searching sheets", "code", code, "sheets", len(s.sheetNames))

	var found []core.MatchRecord
	for i, name := range s.sheetNames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logger.Debug("scanning sheet", "sheet", name, "position", i+1, "of", len(s.sheetNames))
		found = append(found, s.scanSheet(ctx, doc, name, code, logger, monitor)...)
	}

	total := len(found)
	if len(found) > core.MaxResults {
		found = found[:core.MaxResults]
	}
	logger.Info("search finished", "code", code, "found", total, "returned", len(found))
	monitor.Finish(total, found)

	return core.Succeeded(found), nil
}

// scanSheet returns the matches of one sheet. Any failure inside the sheet is
// logged and yields no matches for it.
func (s *Searcher) scanSheet(ctx context.Context, doc source.Spreadsheet, name, code string, logger *slog.Logger, monitor SearchMonitor) (matches []core.MatchRecord) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("recovered from panic while scanning sheet", "sheet", name, "panic", r)
			monitor.SheetSkipped(name, fmt.Errorf("panic: %v", r))
			matches = nil
		}
	}()

	sheet, ok := doc.Sheet(name)
	if !ok {
		logger.Warn("sheet not found", "sheet", name)
		monitor.SheetSkipped(name, core.ErrSheetNotFound)
		return nil
	}

	table, err := sheet.Rows(ctx)
	if err != nil {
		logger.Warn("error fetching sheet rows", "sheet", name, "err", err)
		monitor.SheetSkipped(name, err)
		return nil
	}

	columns := ResolveColumns(table.Headers, s.labels)
	if missing := columns.Missing(core.MandatoryFields...); len(missing) > 0 {
		logger.Warn("sheet lacks mandatory columns", "sheet", name, "missing", missing)
		monitor.SheetSkipped(name, fmt.Errorf("%w: %v", core.ErrMissingColumns, missing))
		return nil
	}

	for row := range table.Rows {
		record, ok, err := matchRow(table, row, columns, name, code)
		if err != nil {
			logger.Warn("error reading row", "sheet", name, "row", row+2, "err", err)
			monitor.RowFailed(name, row, err)
			continue
		}
		if ok {
			matches = append(matches, record)
		}
	}
	monitor.SheetScanned(name, len(table.Rows), len(matches))

	return matches
}

// matchRow tests one data row against code and builds its record on a match.
func matchRow(table *source.Table, row int, columns core.ColumnIndex, category, code string) (record core.MatchRecord, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			record, ok, err = core.MatchRecord{}, false, fmt.Errorf("reading row: %v", r)
		}
	}()

	codePos, _ := columns.Position(core.FieldCode)
	raw, present := table.Cell(row, codePos)
	if !present {
		return core.MatchRecord{}, false, nil
	}
	normalized := core.NormalizeCode(raw)
	if normalized == "" || !strings.Contains(normalized, code) {
		return core.MatchRecord{}, false, nil
	}

	record = core.MatchRecord{
		Category:    category,
		Code:        raw,
		Quantity:    cellAt(table, row, columns, core.FieldQuantity),
		DropPrice:   cellAt(table, row, columns, core.FieldDropPrice),
		RetailPrice: core.NotAvailable,
	}
	if pos, found := columns.Position(core.FieldRetailPrice); found {
		record.RetailPrice, _ = table.Cell(row, pos)
	}
	if pos, found := columns.Position(core.FieldImg); found {
		if img, present := table.Cell(row, pos); present {
			img = strings.TrimSpace(img)
			record.Img = &img
		}
	}

	return record, true, nil
}

func cellAt(table *source.Table, row int, columns core.ColumnIndex, f core.Field) string {
	pos, ok := columns.Position(f)
	if !ok {
		return ""
	}
	v, _ := table.Cell(row, pos)
	return v
}

func (s *Searcher) requestLogger(ctx context.Context) *slog.Logger {
	if id, ok := RequestIDFromContext(ctx); ok {
		return s.logger.With("requestId", id)
	}
	return s.logger
}
