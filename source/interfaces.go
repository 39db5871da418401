package source

import "context"

type Provider interface {
	// Open loads the spreadsheet metadata and returns a handle to it.
	// Any error here means the data source is unreachable as a whole.
	Open(ctx context.Context) (Spreadsheet, error)

	// Close releases resources held by the provider.
	Close() error
}

type Spreadsheet interface {
	// Title returns the spreadsheet title.
	Title() string

	// Titles returns the sheet titles in spreadsheet order.
	Titles() []string

	// Sheet resolves a sheet by its exact title.
	Sheet(title string) (Sheet, bool)
}

type Sheet interface {
	// Title returns the sheet title.
	Title() string

	// Rows fetches the sheet contents. Each call performs one fetch.
	Rows(ctx context.Context) (*Table, error)
}
