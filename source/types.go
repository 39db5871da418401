package source

// Table is the contents of one sheet: the header row followed by the data rows.
// Rows may be ragged; trailing empty cells are usually omitted by the source.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable splits a grid into a header row and data rows.
// An empty grid yields an empty table.
func NewTable(grid [][]string) *Table {
	if len(grid) == 0 {
		return &Table{}
	}
	return &Table{
		Headers: grid[0],
		Rows:    grid[1:],
	}
}

// Cell returns the value at row, col, or false if the row is too short.
func (t *Table) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return "", false
	}
	r := t.Rows[row]
	if col >= len(r) {
		return "", false
	}
	return r[col], true
}
