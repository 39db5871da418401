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


// Package source provides abstractions for the spreadsheet data sources searched by skulookup.
//
// The search engine never talks to a spreadsheet API directly. It depends on
// three small interfaces defined here:
//
//   - Provider: Opens a spreadsheet handle (authenticating as needed)
//   - Spreadsheet: Resolves sheets by title within a loaded spreadsheet
//   - Sheet: Fetches the header row and data rows of one sheet
//
// # Implementation Packages
//
//   - source/google: Production implementation using the Google Sheets API
//   - source/mock: In-memory spreadsheets for tests and local demos
//
// Public constructors in implementation packages return the Provider
// interface; the mock package returns concrete types so tests can inject
// failures and inspect call counts.
//
// # Usage Example
//
//	cfg := source.NewConfig(
//	    source.WithSpreadsheetID("1s7S1Abp8kAJEkReV10omef_ETZXKB2vHKPook49HpFk"),
//	    source.WithServiceAccount(email, privateKey),
//	)
//	provider, err := google.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	doc, err := provider.Open(ctx)
//	sheet, ok := doc.Sheet("Phones")
//	table, err := sheet.Rows(ctx)
//
// Every call to Open and Rows goes to the data source; nothing is cached
// between calls.
package source
