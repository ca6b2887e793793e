package parcelmap

import (
	"github.com/gostonefire/parcelmap/hashfunc"
	"go.uber.org/zap"
)

type options struct {
	tableSize     int64
	hashAlgorithm hashfunc.HashAlgorithm
	maxRecords    int
	log           *zap.SugaredLogger
}

// Option - Configures a ParcelIndex in the call to NewParcelIndex
type Option func(*options)

// WithTableSize - Sets the number of buckets
func WithTableSize(tableSize int64) Option {
	return func(o *options) {
		o.tableSize = tableSize
	}
}

// WithHashAlgorithm - Supplies a custom bucket selection algorithm, its table size is overwritten by the
// index table size
func WithHashAlgorithm(hashAlgorithm hashfunc.HashAlgorithm) Option {
	return func(o *options) {
		o.hashAlgorithm = hashAlgorithm
	}
}

// WithMaxRecords - Limits the number of records the index will allocate, inserts beyond it fail with
// AllocationFailure. Zero means no limit.
func WithMaxRecords(maxRecords int) Option {
	return func(o *options) {
		o.maxRecords = maxRecords
	}
}

// WithLogger - Sets the logger, by default nothing is logged
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) {
		o.log = log
	}
}
