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


package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/poiesic/skulookup/source"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const metadataFields = "properties(title),sheets(properties(title,sheetId,index))"

// Provider implements source.Provider on top of the Google Sheets API.
type Provider struct {
	config  *source.Config
	service *sheets.Service
	logger  *slog.Logger
}

var _ source.Provider = (*Provider)(nil)

// Option configures a Provider.
type Option func(*providerOptions)

type providerOptions struct {
	clientOptions []option.ClientOption
	logger        *slog.Logger
}

// WithClientOptions appends options passed to the Sheets client.
// They are applied after the service account credentials and may replace them.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(o *providerOptions) {
		o.clientOptions = append(o.clientOptions, opts...)
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *providerOptions) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// NewProvider creates a Sheets backed provider.
// The config is validated and normalized before use.
//
// Returns source.Provider so callers stay independent of the Sheets client.
func NewProvider(config *source.Config, opts ...Option) (source.Provider, error) {
	return newProvider(config, opts...)
}

func newProvider(config *source.Config, opts ...Option) (*Provider, error) {
	if config == nil {
		return nil, errors.New("source config required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	options := &providerOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	client, err := credentialsClient(config)
	if err != nil {
		return nil, err
	}

	clientOpts := append([]option.ClientOption{option.WithHTTPClient(client)}, options.clientOptions...)
	service, err := sheets.NewService(context.Background(), clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("building sheets service: %w", err)
	}

	return &Provider{
		config:  config,
		service: service,
		logger:  options.logger.With("component", "google-sheets"),
	}, nil
}

// credentialsClient returns an HTTP client that signs requests as the service account.
func credentialsClient(config *source.Config) (*http.Client, error) {
	if len(config.CredentialsJSON) > 0 {
		jwtConfig, err := google.JWTConfigFromJSON(config.CredentialsJSON, config.Scopes...)
		if err != nil {
			return nil, fmt.Errorf("parsing service account credentials: %w", err)
		}
		return jwtConfig.Client(context.Background()), nil
	}

	jwtConfig := &jwt.Config{
		Email:      config.ClientEmail,
		PrivateKey: []byte(config.PrivateKey),
		Scopes:     config.Scopes,
		TokenURL:   google.JWTTokenURL,
	}
	return jwtConfig.Client(context.Background()), nil
}

// Open fetches the spreadsheet title and its sheet titles.
func (p *Provider) Open(ctx context.Context) (source.Spreadsheet, error) {
	doc, err := p.service.Spreadsheets.
		Get(p.config.SpreadsheetID).
		Fields(metadataFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, describe("fetching spreadsheet metadata", err)
	}

	out := &spreadsheet{
		provider: p,
		sheets:   make(map[string]*sheet, len(doc.Sheets)),
	}
	if doc.Properties != nil {
		out.title = doc.Properties.Title
	}
	for _, s := range doc.Sheets {
		if s.Properties == nil {
			continue
		}
		title := s.Properties.Title
		if _, dup := out.sheets[title]; dup {
			continue
		}
		out.titles = append(out.titles, title)
		out.sheets[title] = &sheet{provider: p, title: title, id: s.Properties.SheetId}
	}

	p.logger.Debug("loaded spreadsheet metadata", "title", out.title, "sheets", len(out.titles))
	return out, nil
}

// Close releases resources held by the provider.
// Currently a no-op as the Sheets client holds no long-lived connections of its own.
func (p *Provider) Close() error {
	p.logger.Debug("closing google sheets provider")
	return nil
}

func (p *Provider) fetchValues(ctx context.Context, title string) ([][]string, error) {
	resp, err := p.service.Spreadsheets.Values.
		Get(p.config.SpreadsheetID, quoteSheetTitle(title)).
		MajorDimension("ROWS").
		ValueRenderOption(p.config.ValueRenderOption).
		Context(ctx).
		Do()
	if err != nil {
		return nil, describe(fmt.Sprintf("fetching values of sheet %q", title), err)
	}

	grid := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellString(v)
		}
		grid[i] = cells
	}
	return grid, nil
}

type spreadsheet struct {
	provider *Provider
	title    string
	titles   []string
	sheets   map[string]*sheet
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

type sheet struct {
	provider *Provider
	title    string
	id       int64
}

func (s *sheet) Title() string {
	return s.title
}

func (s *sheet) Rows(ctx context.Context) (*source.Table, error) {
	grid, err := s.provider.fetchValues(ctx, s.title)
	if err != nil {
		return nil, err
	}
	s.provider.logger.Debug("fetched sheet values", "sheet", s.title, "sheetId", s.id, "rows", len(grid))
	return source.NewTable(grid), nil
}

// quoteSheetTitle renders a sheet title as an A1 range covering the whole sheet.
func quoteSheetTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// cellString renders a decoded JSON cell value as text.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func describe(action string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: HTTP %d: %w", action, apiErr.Code, err)
	}
	return fmt.Errorf("%s: %w", action, err)
}
