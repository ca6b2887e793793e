//go:build unit

package hash

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestDjb2(t *testing.T) {
	t.Run("reproduces djb2 raw values", func(t *testing.T) {
		assert.Equal(t, uint64(5381), Djb2(nil), "seed for empty key")
		assert.Equal(t, uint64(5381*33+'a'), Djb2([]byte("a")), "one step")
		assert.Equal(t, uint64((5381*33+'a')*33+'b'), Djb2([]byte("ab")), "two steps")
	})

	t.Run("is case-insensitive", func(t *testing.T) {
		assert.Equal(t, Djb2([]byte("kenya")), Djb2([]byte("Kenya")), "title case")
		assert.Equal(t, Djb2([]byte("kenya")), Djb2([]byte("KENYA")), "upper case")
	})
}

func TestDjb2HashAlgorithm_BucketNumber(t *testing.T) {
	t.Run("creates known bucket numbers", func(t *testing.T) {
		// Prepare
		h := NewDjb2HashAlgorithm(DefaultTableSize)

		// Check
		assert.Equal(t, int64(47), h.BucketNumber([]byte("")), "empty key")
		assert.Equal(t, int64(124), h.BucketNumber([]byte("kenya")), "kenya")
		assert.Equal(t, int64(77), h.BucketNumber([]byte("france")), "france")
		assert.Equal(t, int64(67), h.BucketNumber([]byte("germany")), "germany")
	})

	t.Run("places colliding destinations in the same bucket", func(t *testing.T) {
		h := NewDjb2HashAlgorithm(DefaultTableSize)
		assert.Equal(t, h.BucketNumber([]byte("kenya")), h.BucketNumber([]byte("chile")), "kenya and chile collide")
	})

	t.Run("is case-insensitive", func(t *testing.T) {
		h := NewDjb2HashAlgorithm(DefaultTableSize)
		assert.Equal(t, h.BucketNumber([]byte("kenya")), h.BucketNumber([]byte("Kenya")), "title case")
		assert.Equal(t, h.BucketNumber([]byte("kenya")), h.BucketNumber([]byte("KENYA")), "upper case")
	})
}

func TestDjb2HashAlgorithm_SetTableSize(t *testing.T) {
	t.Run("sets table size", func(t *testing.T) {
		// Prepare
		h := NewDjb2HashAlgorithm(10)
		assert.Equal(t, int64(10), h.GetTableSize(), "correct tableSize value")

		// Execute
		h.SetTableSize(0)

		// Check
		assert.Equal(t, DefaultTableSize, h.GetTableSize(), "falls back to default")
	})
}

func TestByName(t *testing.T) {
	t.Run("every algorithm stays within the table and ignores case", func(t *testing.T) {
		keys := []string{"", "kenya", "france", "germany", "united arab emirates", "côte d'ivoire"}

		for _, name := range []string{"", Djb2Name, XXHashName, "MURMUR3"} {
			// Prepare
			h, err := ByName(name, DefaultTableSize)
			require.NoErrorf(t, err, "get algorithm %q", name)
			require.Equal(t, DefaultTableSize, h.GetTableSize(), "table size set")

			for _, k := range keys {
				// Execute
				b := h.BucketNumber([]byte(k))

				// Check
				assert.GreaterOrEqualf(t, b, int64(0), "%s: bucket for %q not negative", name, k)
				assert.Lessf(t, b, DefaultTableSize, "%s: bucket for %q less than table size", name, k)
			}
			assert.Equalf(t, h.BucketNumber([]byte("kenya")), h.BucketNumber([]byte("KeNyA")), "%s: case-insensitive", name)
		}
	})

	t.Run("returns the right type", func(t *testing.T) {
		h, err := ByName("xxhash", 10)
		require.NoError(t, err)
		assert.IsType(t, &XXHashAlgorithm{}, h, "xxhash algorithm")

		h, err = ByName("murmur3", 10)
		require.NoError(t, err)
		assert.IsType(t, &Murmur3HashAlgorithm{}, h, "murmur3 algorithm")

		h, err = ByName("", 10)
		require.NoError(t, err)
		assert.IsType(t, &Djb2HashAlgorithm{}, h, "default algorithm")
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := ByName("crc32", 10)
		assert.Error(t, err, "unknown algorithm")
	})
}
