package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/envhunter/pkg/types"
)

func TestNewMemory(t *testing.T) {
	// Act
	store := NewMemory()

	// Assert
	require.NotNil(t, store)
	require.NotNil(t, store.records)
	require.NotNil(t, store.ids)
	assert.Equal(t, 0, store.Len())
}

func TestMemory_KeepsDuplicates(t *testing.T) {
	// Arrange
	store := NewMemory()
	rec := testRecord(t, "octocat/hello", ".env", types.ExtractedSecret{"API_KEY": "aB3$dE6&gH9*jK2@mN5"})

	// Act - the accumulator mirrors every match the scan reported
	require.NoError(t, store.AddRecord(rec))
	require.NoError(t, store.AddRecord(rec))

	// Assert
	assert.Equal(t, 2, store.Len())
	records, err := store.GetRecords()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestMemory_GetRecordsReturnsCopy(t *testing.T) {
	store := NewMemory()
	require.NoError(t, store.AddRecord(testRecord(t, "a/b", ".env", types.ExtractedSecret{"K_KEY": "v"})))

	records, err := store.GetRecords()
	require.NoError(t, err)
	records[0] = nil

	again, err := store.GetRecords()
	require.NoError(t, err)
	assert.NotNil(t, again[0])
}

func TestMemory_Close(t *testing.T) {
	assert.NoError(t, NewMemory().Close())
}
