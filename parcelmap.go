package parcelmap

import (
	"fmt"
	"github.com/gostonefire/parcelmap/hashfunc"
	"github.com/gostonefire/parcelmap/internal/hash"
	"github.com/gostonefire/parcelmap/internal/loader"
	"github.com/gostonefire/parcelmap/internal/model"
	"github.com/gostonefire/parcelmap/internal/tree"
	"go.uber.org/zap"
)

// DefaultTableSize - Number of buckets in a ParcelIndex unless WithTableSize says otherwise
const DefaultTableSize = hash.DefaultTableSize

// Parcel - One stored parcel, Destination is always normalized
type Parcel = model.Parcel

// Totals - Aggregated number of parcels, weight and valuation
type Totals = model.Totals

// Condition - Selects heavier (Higher) or lighter (Lower) parcels in ListByCondition
type Condition = model.Condition

// Conditions accepted by ListByCondition
const (
	Higher = model.Higher
	Lower  = model.Lower
)

// MalformedLine - A load file line that was skipped, Err is of type MalformedInput
type MalformedLine = loader.MalformedLine

// HashMapStat - Statistics on the overall usage and distribution over buckets
//   - Records is the total number of records stored
//   - Buckets is the number of buckets in the index
//   - UsedBuckets is the number of buckets holding at least one record
//   - CollisionBuckets is the number of buckets holding records for more than one destination
//   - MaxHeight is the height of the highest bucket tree
//   - BucketDistribution is the number of records stored in each bucket
type HashMapStat struct {
	Records            int64
	Buckets            int64
	UsedBuckets        int64
	CollisionBuckets   int64
	MaxHeight          int64
	BucketDistribution []int64
}

// LoadReport - Outcome of a Load or LoadFile
//   - Inserted is the number of records added to the index
//   - Malformed is every line that was skipped, in file order
type LoadReport struct {
	Inserted  int
	Malformed []MalformedLine
}

// Bucket - One slot of the index as handed out by LookupBucket. A bucket may hold records for several destinations
// that hash to the same slot, every destination scoped query filters on the exact normalized destination.
type Bucket struct {
	no   int64
	tree *tree.Tree
}

// No - Returns the bucket number
func (B *Bucket) No() int64 {
	return B.no
}

// Len - Returns the number of records in the bucket, whatever their destination
func (B *Bucket) Len() int {
	if B == nil {
		return 0
	}
	return B.tree.Len()
}

// ParcelIndex - The main implementation struct, a fixed array of bucket trees addressed by a hash over the
// normalized destination.
type ParcelIndex struct {
	buckets           []*tree.Tree
	numberOfBuckets   int64
	hashAlgorithm     hashfunc.HashAlgorithm
	internalAlgorithm bool
	maxRecords        int
	allocated         int
	freed             int
	tornDown          bool
	log               *zap.SugaredLogger
}

// NewParcelIndex - Returns a new ParcelIndex with every bucket empty.
// Without options it has DefaultTableSize buckets, uses the djb2 hash algorithm, has no record limit and logs
// nothing.
//
// It returns:
//   - parcelIndex is a pointer to a ParcelIndex struct
//   - err is a normal go Error which should be nil if everything went ok
func NewParcelIndex(opts ...Option) (parcelIndex *ParcelIndex, err error) {
	o := options{tableSize: DefaultTableSize}
	for _, opt := range opts {
		opt(&o)
	}

	if o.tableSize <= 0 {
		err = fmt.Errorf("table size must be a positive value higher than 0 (zero)")
		return
	}
	if o.maxRecords < 0 {
		err = fmt.Errorf("max records can not be negative, use 0 (zero) for no limit")
		return
	}

	// If no HashAlgorithm was given then use the default internal
	internalAlg := false
	if o.hashAlgorithm == nil {
		o.hashAlgorithm = hash.NewDjb2HashAlgorithm(o.tableSize)
		internalAlg = true
	} else {
		o.hashAlgorithm.SetTableSize(o.tableSize)
	}
	if o.hashAlgorithm.GetTableSize() != o.tableSize {
		err = fmt.Errorf("hash algorithm reports table size %d, expected %d", o.hashAlgorithm.GetTableSize(), o.tableSize)
		return
	}

	if o.log == nil {
		o.log = zap.NewNop().Sugar()
	}

	buckets := make([]*tree.Tree, o.tableSize)
	for i := range buckets {
		buckets[i] = tree.New()
	}

	parcelIndex = &ParcelIndex{
		buckets:           buckets,
		numberOfBuckets:   o.tableSize,
		hashAlgorithm:     o.hashAlgorithm,
		internalAlgorithm: internalAlg,
		maxRecords:        o.maxRecords,
		log:               o.log,
	}

	return
}

// NumberOfBuckets - Returns the number of buckets in the index
func (P *ParcelIndex) NumberOfBuckets() int64 {
	return P.numberOfBuckets
}

// InternalAlgorithm - Returns true if the index uses the internal djb2 hash algorithm
func (P *ParcelIndex) InternalAlgorithm() bool {
	return P.internalAlgorithm
}

// Len - Returns the number of records currently held
func (P *ParcelIndex) Len() int {
	return P.allocated - P.freed
}

// Allocated - Returns the number of records ever inserted
func (P *ParcelIndex) Allocated() int {
	return P.allocated
}

// Freed - Returns the number of records released by Teardown
func (P *ParcelIndex) Freed() int {
	return P.freed
}

// Teardown - Releases every record in every bucket exactly once. Empty buckets are skipped and calling it again is
// a no-op. After a teardown the index answers every query with nothing and refuses inserts.
//
// It returns:
//   - freed is the number of records released by this call
func (P *ParcelIndex) Teardown() (freed int) {
	for _, b := range P.buckets {
		freed += b.Free()
	}
	P.freed += freed

	if !P.tornDown {
		P.tornDown = true
		P.log.Debugw("parcel index torn down", "freed", freed, "allocated", P.allocated)
	}

	return
}
