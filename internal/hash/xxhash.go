package hash

import (
	"github.com/cespare/xxhash/v2"
	"github.com/gostonefire/parcelmap/internal/normalize"
)

// XXHashAlgorithm - Alternative bucket selection algorithm using xxhash64 over the normalized key and then
// applying bucket = hash % tableSize.
type XXHashAlgorithm struct {
	tableSize int64
}

// NewXXHashAlgorithm - Returns a pointer to a new XXHashAlgorithm instance
func NewXXHashAlgorithm(tableSize int64) *XXHashAlgorithm {
	ha := &XXHashAlgorithm{}
	ha.SetTableSize(tableSize)
	return ha
}

// SetTableSize - Sets the table size for the hash algorithm, values below 1 falls back to DefaultTableSize.
func (X *XXHashAlgorithm) SetTableSize(tableSize int64) {
	if tableSize < 1 {
		tableSize = DefaultTableSize
	}
	X.tableSize = tableSize
}

// BucketNumber - Given key it generates an index (bucket) between 0 and table size - 1
func (X *XXHashAlgorithm) BucketNumber(key []byte) int64 {
	h := xxhash.Sum64String(normalize.Key(string(key)))
	return int64(h % uint64(X.tableSize))
}

// GetTableSize - Returns the table size the implemented hash function is supporting
func (X *XXHashAlgorithm) GetTableSize() int64 {
	return X.tableSize
}
