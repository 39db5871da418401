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

import (
	"fmt"
	"strings"
)

// NormalizeCode trims and lower-cases a partial code.
// Both the query and every code cell are normalized this way before matching.
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// ValidateQuery validates a QueryRequest and returns its normalized partial code.
//
// Validation rules:
//   - PartialCode must not be empty after trimming
func ValidateQuery(req *QueryRequest) (string, error) {
	if req == nil {
		return "", fmt.Errorf("%w: request is nil", ErrInvalidQuery)
	}

	code := req.Normalized()
	if code == "" {
		return "", fmt.Errorf("%w: %w", ErrInvalidQuery, ErrEmptyQuery)
	}

	return code, nil
}

// ValidateHeaderLabels checks that every mandatory field has a non-empty label.
func ValidateHeaderLabels(labels HeaderLabels) error {
	for _, f := range MandatoryFields {
		if strings.TrimSpace(labels[f]) == "" {
			return fmt.Errorf("header label for %q cannot be empty", f)
		}
	}
	return nil
}
