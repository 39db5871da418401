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


package core

import "errors"

// Query errors
var (
	// ErrInvalidQuery indicates a QueryRequest failed validation.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrEmptyQuery indicates no search code was supplied.
	ErrEmptyQuery = errors.New("no search code supplied")
)

// Data source errors
var (
	// ErrSourceUnavailable indicates the spreadsheet could not be reached or authenticated.
	ErrSourceUnavailable = errors.New("data source unavailable")

	// ErrSheetNotFound indicates a configured sheet does not exist in the spreadsheet.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrMissingColumns indicates a sheet lacks one or more mandatory columns.
	ErrMissingColumns = errors.New("missing mandatory columns")
)
