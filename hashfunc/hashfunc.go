package hashfunc

// HashAlgorithm - Interface that permits a ParcelIndex to be given a custom bucket selection algorithm suited for
// its particular distribution of destinations.
type HashAlgorithm interface {
	// SetTableSize - Sets the table size for the hash algorithm.
	// It is called when a ParcelIndex is created, so a table size already held by the instance will be overwritten
	// by the number of buckets the index was configured with.
	//   - tableSize is the number of buckets the index will address
	SetTableSize(tableSize int64)

	// BucketNumber - Given a destination key it generates an index (bucket) between 0 and table size - 1.
	// The key handed in is already normalized, but implementations must still be case-insensitive on their own.
	// Any number returned outside the table size (0 -> table size - 1) will result in an error down stream.
	BucketNumber(key []byte) int64

	// GetTableSize - Returns the table size the implemented hash function is supporting
	GetTableSize() int64
}
