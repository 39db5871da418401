// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package skulookup looks up products by partial code across the sheets of a spreadsheet.
package skulookup

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/skulookup/search"
	"github.com/poiesic/skulookup/source"
	"github.com/poiesic/skulookup/source/google"
)

// ErrNoSheets is returned when no sheet names are configured.
var ErrNoSheets = errors.New("no sheets configured for search")

type Lookup struct {
	provider   source.Provider
	sheetNames []string
	logger     *slog.Logger
}

// LookupOption configures a Lookup.
type LookupOption func(*lookupOptions)

type lookupOptions struct {
	sourceConfig *source.Config
	provider     source.Provider
	googleOpts   []google.Option
	logger       *slog.Logger
}

// WithSourceConfig sets the spreadsheet connection used to build a Google Sheets provider.
func WithSourceConfig(cfg *source.Config) LookupOption {
	return func(o *lookupOptions) {
		o.sourceConfig = cfg
	}
}

// WithProvider uses an existing provider instead of building one.
func WithProvider(provider source.Provider) LookupOption {
	return func(o *lookupOptions) {
		o.provider = provider
	}
}

// WithGoogleOptions passes options to the Google Sheets provider.
func WithGoogleOptions(opts ...google.Option) LookupOption {
	return func(o *lookupOptions) {
		o.googleOpts = append(o.googleOpts, opts...)
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) LookupOption {
	return func(o *lookupOptions) {
		o.logger = logger
	}
}

// NewLookup prepares a lookup over sheetNames. An empty list of names is a
// configuration error and is reported here rather than at query time.
func NewLookup(sheetNames []string, opts ...LookupOption) (*Lookup, error) {
	// Apply options
	options := &lookupOptions{
		sourceConfig: source.DefaultConfig(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	var names []string
	for _, name := range sheetNames {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, ErrNoSheets
	}

	provider := options.provider
	if provider == nil {
		googleOpts := append([]google.Option{google.WithLogger(options.logger)}, options.googleOpts...)
		var err error
		provider, err = google.NewProvider(options.sourceConfig, googleOpts...)
		if err != nil {
			return nil, err
		}
	}

	return &Lookup{
		provider:   provider,
		sheetNames: names,
		logger:     options.logger,
	}, nil
}

func (l *Lookup) Close() error {
	if err := l.provider.Close(); err != nil {
		l.logger.Error("error closing data source provider", "err", err)
		return err
	}
	return nil
}

func (l *Lookup) Provider() source.Provider {
	return l.provider
}

func (l *Lookup) SheetNames() []string {
	out := make([]string, len(l.sheetNames))
	copy(out, l.sheetNames)
	return out
}

func (l *Lookup) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	opts = append([]search.Option{search.WithLogger(l.logger)}, opts...)
	return search.NewSearcher(l.provider, l.sheetNames, opts...)
}
