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


package main

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/poiesic/skulookup"
	"github.com/poiesic/skulookup/search"
	"github.com/poiesic/skulookup/server"
	"github.com/poiesic/skulookup/source/google"
	"github.com/urfave/cli/v2"
)

func main() {
	// A missing .env file is not an error
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("error loading .env: %v", err)
	}

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "skulookup",
		Usage: "Product lookup by partial code over Google Sheets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before:   setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP lookup service",
				Action: serveCommand,
				Flags:  joinFlags(connectionFlags(), searchFlags(), serveFlags()),
			},
			{
				Name:      "search",
				Usage:     "Run a single search and print the result as JSON",
				ArgsUsage: "<partial code>",
				Action:    searchCommand,
				Flags: joinFlags(connectionFlags(), searchFlags(), []cli.Flag{
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Print per-sheet statistics to stderr",
					},
				}),
			},
			{
				Name:   "sheets",
				Usage:  "List the sheet titles of the spreadsheet",
				Action: sheetsCommand,
				Flags:  connectionFlags(),
			},
		},
	}
}

func joinFlags(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, g := range groups {
		flags = append(flags, g...)
	}
	return flags
}

func connectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "spreadsheet-id",
			Usage:    "Spreadsheet document id",
			EnvVars:  []string{"SPREADSHEET_ID"},
			Required: true,
		},
		&cli.StringFlag{
			Name:    "client-email",
			Usage:   "Service account email",
			EnvVars: []string{"GOOGLE_CLIENT_EMAIL"},
		},
		&cli.StringFlag{
			Name:    "private-key",
			Usage:   "Service account PEM private key; escaped \\n sequences are accepted",
			EnvVars: []string{"GOOGLE_PRIVATE_KEY"},
		},
		&cli.StringFlag{
			Name:    "credentials-file",
			Usage:   "Service account key file, used instead of client-email and private-key",
			EnvVars: []string{"GOOGLE_CREDENTIALS_FILE"},
		},
	}
}

func searchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "sheets",
			Usage:    "Comma separated sheet names, searched in order",
			EnvVars:  []string{"SHEETS_TO_SEARCH"},
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:  "header",
			Usage: "Header label override as field=label, fields: code, quantity, dropPrice, retailPrice, img",
		},
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Port to listen on",
			Value:   3000,
			EnvVars: []string{"PORT"},
		},
		&cli.StringFlag{
			Name:  "static-dir",
			Usage: "Directory of front-end assets",
			Value: server.DefaultStaticDir,
		},
		&cli.StringFlag{
			Name:  "index-file",
			Usage: "File served for GET /",
			Value: server.DefaultIndexFile,
		},
		&cli.IntFlag{
			Name:  "max-concurrent-searches",
			Usage: "Number of searches that run at once",
			Value: server.DefaultMaxConcurrentSearches,
		},
		&cli.IntFlag{
			Name:  "max-queued-searches",
			Usage: "Number of searches that may wait for a worker before requests get 503",
			Value: server.DefaultMaxQueuedSearches,
		},
		&cli.DurationFlag{
			Name:  "shutdown-timeout",
			Usage: "Time allowed for in-flight requests on shutdown",
			Value: server.DefaultShutdownTimeout,
		},
	}
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := sourceConfig(c)
	if err != nil {
		return err
	}
	names := splitSheetNames(c.String("sheets"))
	logStartup(c, cfg, names)

	lookup, err := skulookup.NewLookup(names, skulookup.WithSourceConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create lookup: %w", err)
	}
	defer lookup.Close()

	searcher, err := newSearcher(c, lookup)
	if err != nil {
		return err
	}

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := server.New(searcher,
		server.WithStaticDir(c.String("static-dir")),
		server.WithIndexFile(c.String("index-file")),
		server.WithSearchConcurrency(c.Int("max-concurrent-searches"), c.Int("max-queued-searches")),
		server.WithShutdownTimeout(c.Duration("shutdown-timeout")),
		server.WithEnvironment(server.Environment{
			SheetsAPI:        true,
			Auth:             cfg.ClientEmail != "" || len(cfg.CredentialsJSON) > 0,
			SheetsConfigured: cfg.SpreadsheetID != "",
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer srv.Release()

	return srv.Run(ctx, fmt.Sprintf(":%d", c.Int("port")))
}

func searchCommand(c *cli.Context) error {
	code := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("a partial code is required")
	}

	cfg, err := sourceConfig(c)
	if err != nil {
		return err
	}

	lookup, err := skulookup.NewLookup(splitSheetNames(c.String("sheets")), skulookup.WithSourceConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create lookup: %w", err)
	}
	defer lookup.Close()

	searcher, err := newSearcher(c, lookup)
	if err != nil {
		return err
	}

	var monitor search.SearchMonitor
	if c.Bool("explain") {
		monitor = newExplainMonitor(c.App.ErrWriter)
	}

	start := time.Now()
	res, err := searcher.SearchWithMonitor(c.Context, code, monitor)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	slog.Debug("search complete", "duration", time.Since(start))

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func sheetsCommand(c *cli.Context) error {
	cfg, err := sourceConfig(c)
	if err != nil {
		return err
	}

	provider, err := google.NewProvider(cfg)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	defer provider.Close()

	doc, err := provider.Open(c.Context)
	if err != nil {
		return fmt.Errorf("failed to open spreadsheet: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "%s\n", doc.Title())
	for _, title := range doc.Titles() {
		fmt.Fprintf(c.App.Writer, "  %s\n", title)
	}
	return nil
}

func newSearcher(c *cli.Context, lookup *skulookup.Lookup) (*search.Searcher, error) {
	labels, err := parseHeaderLabels(c.StringSlice("header"))
	if err != nil {
		return nil, err
	}
	searcher, err := lookup.NewSearcher(search.WithHeaderLabels(labels))
	if err != nil {
		return nil, fmt.Errorf("failed to create searcher: %w", err)
	}
	return searcher, nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
