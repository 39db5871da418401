package search

import (
	"strings"

	"github.com/poiesic/skulookup/core"
)

// ResolveColumns locates each labelled field in a header row.
//
// Header cells and labels are compared lower-cased and otherwise exactly;
// the first matching header wins. Fields without a label or without a
// matching header are absent from the returned index.
func ResolveColumns(headers []string, labels core.HeaderLabels) core.ColumnIndex {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(h)
	}

	columns := make(core.ColumnIndex, len(core.Fields))
	for _, f := range core.Fields {
		label := labels[f]
		if label == "" {
			continue
		}
		want := strings.ToLower(label)
		for i, h := range lowered {
			if h == want {
				columns[f] = i
				break
			}
		}
	}
	return columns
}
