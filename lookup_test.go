package skulookup

import (
	"context"
	"testing"

	"github.com/poiesic/skulookup/source"
	"github.com/poiesic/skulookup/source/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLookup(t *testing.T) {
	t.Run("with mock provider", func(t *testing.T) {
		provider := mock.NewProvider("Stock")
		lookup, err := NewLookup([]string{"A", "B"}, WithProvider(provider))
		require.NoError(t, err)
		require.NotNil(t, lookup)
		defer lookup.Close()

		assert.Equal(t, provider, lookup.Provider())
		assert.Equal(t, []string{"A", "B"}, lookup.SheetNames())
		assert.NotNil(t, lookup.logger)
	})

	t.Run("with google provider", func(t *testing.T) {
		cfg := source.NewConfig(
			source.WithSpreadsheetID("sheet-id"),
			source.WithServiceAccount("bot@example.com", "key"),
		)
		lookup, err := NewLookup([]string{"A"}, WithSourceConfig(cfg), WithLogger(nil))
		require.NoError(t, err)
		require.NotNil(t, lookup)
		assert.NoError(t, lookup.Close())
	})

	t.Run("error without sheets", func(t *testing.T) {
		lookup, err := NewLookup([]string{"", "  "}, WithProvider(mock.NewProvider("Stock")))
		assert.ErrorIs(t, err, ErrNoSheets)
		assert.Nil(t, lookup)
	})

	t.Run("error with invalid source config", func(t *testing.T) {
		lookup, err := NewLookup([]string{"A"}, WithSourceConfig(source.NewConfig()))
		assert.Error(t, err)
		assert.Nil(t, lookup)
	})
}

func TestLookup_Close(t *testing.T) {
	provider := mock.NewProvider("Stock")
	lookup, err := NewLookup([]string{"A"}, WithProvider(provider))
	require.NoError(t, err)

	assert.NoError(t, lookup.Close())
	assert.True(t, provider.Closed())
}

func TestLookup_NewSearcher(t *testing.T) {
	provider := mock.NewProvider("Stock",
		mock.NewSheet("A", [][]string{
			{"код", "кількість", "ціна дроп"},
			{"x1", "5", "10"},
		}),
	)
	lookup, err := NewLookup([]string{"A"}, WithProvider(provider))
	require.NoError(t, err)
	defer lookup.Close()

	searcher, err := lookup.NewSearcher()
	require.NoError(t, err)
	require.NotNil(t, searcher)

	res, err := searcher.Search(context.Background(), "X1")
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "A", res.Data[0].Category)
}
