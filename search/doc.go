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


// Package search implements product code lookup over spreadsheet sheets.
//
// The Searcher scans a fixed, ordered list of sheets and returns every row
// whose code cell contains the requested partial code:
//   - Sheets are scanned one after another in configured order
//   - Column positions are resolved per sheet from the header row
//   - Rows are matched by case-insensitive substring on the code column
//
// Results keep sheet order, then row order, and are capped at
// core.MaxResults. Missing sheets, sheets without the mandatory columns and
// unreadable rows are logged and skipped; only an invalid query or an
// unreachable data source fails a search.
package search
