package hash

import "github.com/gostonefire/parcelmap/internal/normalize"

// DefaultTableSize - Number of buckets in a parcel index unless configured otherwise
const DefaultTableSize int64 = 127

const (
	djb2Seed       uint64 = 5381
	djb2Multiplier uint64 = 33
)

// Djb2HashAlgorithm - The default bucket selection algorithm. It implements djb2 (seed 5381, multiplier 33) with
// uint64 wraparound over the case folded key and then applies bucket = hash % tableSize.
type Djb2HashAlgorithm struct {
	tableSize int64
}

// NewDjb2HashAlgorithm - Returns a pointer to a new Djb2HashAlgorithm instance
func NewDjb2HashAlgorithm(tableSize int64) *Djb2HashAlgorithm {
	ha := &Djb2HashAlgorithm{}
	ha.SetTableSize(tableSize)
	return ha
}

// SetTableSize - Sets the table size for the hash algorithm, values below 1 falls back to DefaultTableSize.
func (D *Djb2HashAlgorithm) SetTableSize(tableSize int64) {
	if tableSize < 1 {
		tableSize = DefaultTableSize
	}
	D.tableSize = tableSize
}

// BucketNumber - Given key it generates an index (bucket) between 0 and table size - 1
func (D *Djb2HashAlgorithm) BucketNumber(key []byte) int64 {
	return int64(Djb2(key) % uint64(D.tableSize))
}

// GetTableSize - Returns the table size the implemented hash function is supporting
func (D *Djb2HashAlgorithm) GetTableSize() int64 {
	return D.tableSize
}

// Djb2 - Returns the raw djb2 hash of key. Every byte is folded again so the value is the same for any casing.
func Djb2(key []byte) uint64 {
	h := djb2Seed
	for _, c := range key {
		h = h*djb2Multiplier + uint64(normalize.Fold(c))
	}

	return h
}
