package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider(t *testing.T) {
	ctx := context.Background()
	provider := NewProvider("Stock",
		NewSheet("A", [][]string{{"код"}, {"x1"}}),
		NewSheet("B", [][]string{{"код"}}),
	)
	provider.AddSheet(NewSheet("A", [][]string{{"ignored"}}))

	doc, err := provider.Open(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Stock", doc.Title())
	assert.Equal(t, []string{"A", "B"}, doc.Titles())
	assert.Equal(t, 1, provider.OpenCount())

	sh, ok := doc.Sheet("A")
	require.True(t, ok)

	table, err := sh.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"код"}, table.Headers)
	assert.Equal(t, [][]string{{"x1"}}, table.Rows)

	// Mutating the returned table must not leak into the sheet.
	table.Rows[0][0] = "changed"
	again, err := sh.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x1", again.Rows[0][0])
	assert.Equal(t, 2, provider.Sheet("A").FetchCount())

	_, ok = doc.Sheet("C")
	assert.False(t, ok)
	assert.Nil(t, provider.Sheet("C"))

	require.NoError(t, provider.Close())
	assert.True(t, provider.Closed())
}

func TestProvider_FailureInjection(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	provider := NewProvider("Stock", NewSheet("A", [][]string{{"код"}}))
	provider.OpenFunc = func(context.Context) error { return boom }

	_, err := provider.Open(ctx)
	assert.ErrorIs(t, err, boom)

	provider.OpenFunc = nil
	provider.Sheet("A").RowsFunc = func(context.Context) error { return boom }

	doc, err := provider.Open(ctx)
	require.NoError(t, err)
	sh, _ := doc.Sheet("A")
	_, err = sh.Rows(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestProvider_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := NewProvider("Stock")
	_, err := provider.Open(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
