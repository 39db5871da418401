// Package mock provides in-memory implementations of the source interfaces.
//
// Spreadsheets are assembled from plain string grids, so tests and local demos
// can exercise the search engine without network access or credentials.
//
// # Usage in Tests
//
//	provider := mock.NewProvider("Stock",
//	    mock.NewSheet("A", [][]string{
//	        {"код", "кількість", "ціна дроп"},
//	        {"x1", "5", "10"},
//	    }),
//	)
//
//	// Failure injection
//	provider.OpenFunc = func(ctx context.Context) error { return errors.New("offline") }
//	provider.Sheet("A").RowsFunc = func(ctx context.Context) error { return errors.New("quota") }
//
//	// Call counts
//	opens := provider.OpenCount()
//	fetches := provider.Sheet("A").FetchCount()
//
// # Default Behavior
//
//   - Provider.Open: Returns a snapshot of the configured sheets
//   - Sheet.Rows: Returns a deep copy of the grid, header row first
package mock
