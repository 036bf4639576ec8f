package localstate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataDirHonorsOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(envHome, tmp)

	dir, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, tmp, dir)

	db, err := DBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, dbFilename), db)
}

func TestCachedLocationRoundTrip(t *testing.T) {
	t.Setenv(envHome, t.TempDir())

	assert.Nil(t, ReadCachedLocation())

	require.NoError(t, WriteCachedLocation(CachedLocation{City: "Springfield", State: "IL"}))
	got := ReadCachedLocation()
	require.NotNil(t, got)
	assert.Equal(t, "Springfield", got.City)
	assert.Equal(t, "IL", got.State)

	// Overwritten on every successful geocode.
	require.NoError(t, WriteCachedLocation(CachedLocation{City: "Portland", State: "OR"}))
	got = ReadCachedLocation()
	require.NotNil(t, got)
	assert.Equal(t, "Portland", got.City)
}

func TestReadCachedLocationIgnoresCorruptCache(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(envHome, tmp)

	require.NoError(t, os.WriteFile(filepath.Join(tmp, locationFile), []byte("{not json"), 0o600))
	assert.Nil(t, ReadCachedLocation())
}
