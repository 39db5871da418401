package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/skulookup/core"
	"github.com/poiesic/skulookup/source"
	"github.com/urfave/cli/v2"
)

// visibleSecretChars is how much of a secret is echoed in startup logs.
const visibleSecretChars = 10

// sourceConfig builds and validates the spreadsheet connection from flags.
func sourceConfig(c *cli.Context) (*source.Config, error) {
	opts := []source.ConfigOption{
		source.WithSpreadsheetID(c.String("spreadsheet-id")),
	}

	if path := c.String("credentials-file"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		opts = append(opts, source.WithCredentialsJSON(b))
	} else {
		opts = append(opts, source.WithServiceAccount(c.String("client-email"), c.String("private-key")))
	}

	cfg := source.NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid source configuration: %w", err)
	}
	return cfg, nil
}

// splitSheetNames splits a comma separated list, trimming names and dropping blanks.
func splitSheetNames(list string) []string {
	var names []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// parseHeaderLabels parses field=label overrides.
func parseHeaderLabels(pairs []string) (core.HeaderLabels, error) {
	labels := core.HeaderLabels{}
	for _, pair := range pairs {
		name, label, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid header %q: expected field=label", pair)
		}
		field, ok := core.ParseField(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("invalid header %q: unknown field %q", pair, name)
		}
		labels[field] = label
	}
	return labels, nil
}

// maskSecret keeps only the last visibleSecretChars characters of s.
func maskSecret(s string) string {
	if s == "" {
		return "<not set>"
	}
	r := []rune(s)
	if len(r) <= visibleSecretChars {
		return strings.Repeat("*", len(r))
	}
	return "..." + string(r[len(r)-visibleSecretChars:])
}

func logStartup(c *cli.Context, cfg *source.Config, sheets []string) {
	slog.Info("starting skulookup",
		"spreadsheetId", maskSecret(cfg.SpreadsheetID),
		"clientEmail", maskSecret(cfg.ClientEmail),
		"privateKey", maskSecret(strings.TrimSpace(cfg.PrivateKey)),
		"credentialsFile", c.String("credentials-file"),
		"sheets", strings.Join(sheets, ", "),
		"port", c.Int("port"),
		"staticDir", c.String("static-dir"))
}
