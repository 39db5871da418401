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


package source

import (
	"errors"
	"strings"
)

// Config describes how to reach and authenticate to a spreadsheet.
type Config struct {
	// SpreadsheetID identifies the spreadsheet document.
	// Example: "1s7S1Abp8kAJEkReV10omef_ETZXKB2vHKPook49HpFk"
	SpreadsheetID string

	// ClientEmail is the service account email identifier.
	ClientEmail string

	// PrivateKey is the PEM encoded service account private key.
	// Escaped "\n" sequences, as found in environment variables, are unescaped by Normalize.
	PrivateKey string

	// CredentialsJSON is a service account key file. When set it takes
	// precedence over ClientEmail and PrivateKey.
	CredentialsJSON []byte

	// Scopes are the OAuth2 scopes requested for the service account.
	// Default: read/write access to spreadsheets
	Scopes []string

	// ValueRenderOption controls how cell values are rendered.
	// Default: "FORMATTED_VALUE"
	ValueRenderOption string
}

type ConfigOption func(*Config)

func WithSpreadsheetID(id string) ConfigOption {
	return func(c *Config) {
		c.SpreadsheetID = id
	}
}

func WithServiceAccount(email, privateKey string) ConfigOption {
	return func(c *Config) {
		c.ClientEmail = email
		c.PrivateKey = privateKey
	}
}

func WithCredentialsJSON(b []byte) ConfigOption {
	return func(c *Config) {
		c.CredentialsJSON = b
	}
}

func WithScopes(scopes ...string) ConfigOption {
	return func(c *Config) {
		c.Scopes = scopes
	}
}

func WithValueRenderOption(option string) ConfigOption {
	return func(c *Config) {
		c.ValueRenderOption = option
	}
}

// SpreadsheetsScope grants read/write access to spreadsheets.
const SpreadsheetsScope = "https://www.googleapis.com/auth/spreadsheets"

func DefaultConfig() *Config {
	return &Config{
		Scopes:            []string{SpreadsheetsScope},
		ValueRenderOption: "FORMATTED_VALUE",
	}
}

func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *Config) Normalize() {
	c.SpreadsheetID = strings.TrimSpace(c.SpreadsheetID)
	c.ClientEmail = strings.TrimSpace(c.ClientEmail)
	// Keys pasted into a single-line environment variable carry literal \n
	c.PrivateKey = strings.ReplaceAll(c.PrivateKey, `\n`, "\n")
	if len(c.Scopes) == 0 {
		c.Scopes = []string{SpreadsheetsScope}
	}
	if c.ValueRenderOption == "" {
		c.ValueRenderOption = "FORMATTED_VALUE"
	}
}

func (c *Config) Validate() error {
	c.Normalize()

	if c.SpreadsheetID == "" {
		return errors.New("source config: SpreadsheetID is required")
	}
	if len(c.CredentialsJSON) > 0 {
		return nil
	}
	if c.ClientEmail == "" {
		return errors.New("source config: ClientEmail is required")
	}
	if strings.TrimSpace(c.PrivateKey) == "" {
		return errors.New("source config: PrivateKey is required")
	}
	return nil
}
