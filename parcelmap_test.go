//go:build unit

package parcelmap

import (
	"github.com/gostonefire/parcelmap/internal/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"testing"
)

func TestNewParcelIndex(t *testing.T) {
	t.Run("creates an empty index with defaults", func(t *testing.T) {
		// Execute
		pi, err := NewParcelIndex()

		// Check
		require.NoError(t, err, "create new parcel index")
		assert.Equal(t, int64(127), pi.NumberOfBuckets(), "default number of buckets")
		assert.True(t, pi.InternalAlgorithm(), "internal algorithm used")
		assert.Equal(t, 0, pi.Len(), "no records")
		for _, b := range pi.buckets {
			assert.True(t, b.IsEmpty(), "bucket empty")
		}
	})

	t.Run("applies options", func(t *testing.T) {
		// Execute
		pi, err := NewParcelIndex(WithTableSize(31), WithHashAlgorithm(hash.NewXXHashAlgorithm(5)), WithMaxRecords(10))

		// Check
		require.NoError(t, err, "create new parcel index")
		assert.Equal(t, int64(31), pi.NumberOfBuckets(), "table size set")
		assert.Equal(t, int64(31), pi.hashAlgorithm.GetTableSize(), "table size pushed to hash algorithm")
		assert.False(t, pi.InternalAlgorithm(), "custom algorithm used")
		assert.Equal(t, 10, pi.maxRecords, "record limit set")
	})

	t.Run("rejects invalid options", func(t *testing.T) {
		_, err := NewParcelIndex(WithTableSize(0))
		assert.Error(t, err, "zero table size")

		_, err = NewParcelIndex(WithMaxRecords(-1))
		assert.Error(t, err, "negative record limit")
	})
}

func TestParcelIndex_Teardown(t *testing.T) {
	t.Run("frees every allocated record exactly once", func(t *testing.T) {
		// Prepare
		pi, err := NewParcelIndex()
		require.NoError(t, err, "create new parcel index")
		countries := []string{"Kenya", "Chile", "France", "Norway", "Germany", "Peru", "Japan"}
		for i := 0; i < 700; i++ {
			require.NoError(t, pi.Insert(countries[i%len(countries)], i%50, float64(i)), "insert record")
		}

		// Execute
		freed := pi.Teardown()

		// Check
		assert.Equal(t, 700, pi.Allocated(), "records allocated")
		assert.Equal(t, 700, freed, "records freed")
		assert.Equal(t, pi.Allocated(), pi.Freed(), "insert count equals free count")
		assert.Equal(t, 0, pi.Len(), "nothing left")
		assert.Nil(t, pi.LookupBucket("Kenya"), "buckets empty")
	})

	t.Run("is safe to repeat and on an empty index", func(t *testing.T) {
		pi, err := NewParcelIndex()
		require.NoError(t, err, "create new parcel index")

		assert.Equal(t, 0, pi.Teardown(), "empty index frees nothing")
		assert.Equal(t, 0, pi.Teardown(), "second teardown frees nothing")
		assert.Equal(t, 0, pi.Freed(), "free count unchanged")
	})

	t.Run("refuses inserts afterwards", func(t *testing.T) {
		pi, err := NewParcelIndex()
		require.NoError(t, err, "create new parcel index")
		pi.Teardown()

		err = pi.Insert("Kenya", 1, 1)
		assert.ErrorIs(t, err, AllocationFailure{}, "allocation failure")
	})

	t.Run("logs the teardown once", func(t *testing.T) {
		// Prepare
		core, logs := observer.New(zap.DebugLevel)
		pi, err := NewParcelIndex(WithLogger(zap.New(core).Sugar()))
		require.NoError(t, err, "create new parcel index")
		require.NoError(t, pi.Insert("Kenya", 1, 1), "insert record")

		// Execute
		pi.Teardown()
		pi.Teardown()

		// Check
		entries := logs.FilterMessage("parcel index torn down").All()
		require.Len(t, entries, 1, "logged once")
		assert.Equal(t, int64(1), entries[0].ContextMap()["freed"], "freed count logged")
	})
}
