package hash

import (
	"github.com/gostonefire/parcelmap/internal/normalize"
	"github.com/spaolacci/murmur3"
)

// Murmur3HashAlgorithm - Alternative bucket selection algorithm using the 64 bit murmur3 hash over the normalized
// key and then applying bucket = hash % tableSize.
type Murmur3HashAlgorithm struct {
	tableSize int64
}

// NewMurmur3HashAlgorithm - Returns a pointer to a new Murmur3HashAlgorithm instance
func NewMurmur3HashAlgorithm(tableSize int64) *Murmur3HashAlgorithm {
	ha := &Murmur3HashAlgorithm{}
	ha.SetTableSize(tableSize)
	return ha
}

// SetTableSize - Sets the table size for the hash algorithm, values below 1 falls back to DefaultTableSize.
func (M *Murmur3HashAlgorithm) SetTableSize(tableSize int64) {
	if tableSize < 1 {
		tableSize = DefaultTableSize
	}
	M.tableSize = tableSize
}

// BucketNumber - Given key it generates an index (bucket) between 0 and table size - 1
func (M *Murmur3HashAlgorithm) BucketNumber(key []byte) int64 {
	h := murmur3.Sum64([]byte(normalize.Key(string(key))))
	return int64(h % uint64(M.tableSize))
}

// GetTableSize - Returns the table size the implemented hash function is supporting
func (M *Murmur3HashAlgorithm) GetTableSize() int64 {
	return M.tableSize
}
