package parcelmap

import (
	"fmt"
	"github.com/gostonefire/parcelmap/internal/loader"
	"github.com/gostonefire/parcelmap/internal/model"
	"github.com/gostonefire/parcelmap/internal/normalize"
	"io"
	"iter"
)

// Insert - Adds a parcel to the index. The destination is normalized, hashed to a bucket and inserted into that
// bucket's tree by weight. Nothing is ever merged, inserting the same parcel twice stores it twice.
//   - destination is the destination country, any casing
//   - weight is the parcel weight
//   - valuation is the parcel value
//
// It returns:
//   - err is of type MalformedInput for an empty destination, of type AllocationFailure if the record limit is
//     reached or the index has been torn down, or a standard error if the hash algorithm misbehaves
func (P *ParcelIndex) Insert(destination string, weight int, valuation float64) (err error) {
	if destination == "" {
		err = MalformedInput{Msg: "destination can not be empty"}
		return
	}
	if P.tornDown {
		err = AllocationFailure{Msg: "parcel index has been torn down"}
		return
	}
	if P.maxRecords > 0 && P.Len() >= P.maxRecords {
		err = AllocationFailure{Msg: fmt.Sprintf("record limit of %d reached", P.maxRecords)}
		return
	}

	key := normalize.Key(destination)
	bucketNo, err := P.GetBucketNo(key)
	if err != nil {
		return
	}

	P.buckets[bucketNo].Insert(model.Parcel{Destination: key, Weight: weight, Valuation: valuation})
	P.allocated++

	return
}

// Load - Reads comma-delimited destination,weight,valuation lines from r and inserts every well-formed one.
// Malformed lines are logged, reported and skipped. Loading stops at the first failing insert.
//
// It returns:
//   - report holds the number of inserted records and the skipped lines
//   - err is a standard error wrapping the cause if reading or an insert failed
func (P *ParcelIndex) Load(r io.Reader) (report LoadReport, err error) {
	report.Malformed, err = loader.ParseReader(r, P.loadLine(&report))
	P.logLoad(report)

	return
}

// LoadFile - Same as Load but reads the named file
func (P *ParcelIndex) LoadFile(name string) (report LoadReport, err error) {
	report.Malformed, err = loader.ParseFile(name, P.loadLine(&report))
	P.logLoad(report)

	return
}

// GetBucketNo - Returns which bucket number that the given destination results in
//   - destination is the destination country, any casing
func (P *ParcelIndex) GetBucketNo(destination string) (bucketNo int64, err error) {
	bucketNo = P.hashAlgorithm.BucketNumber([]byte(normalize.Key(destination)))
	if bucketNo < 0 || bucketNo >= P.numberOfBuckets {
		err = fmt.Errorf("recieved bucket number from hash algorithm is outside permitted range")
		return
	}

	return
}

// LookupBucket - Returns the bucket the country hashes to, or nil if that bucket is empty.
// A non-nil bucket does not mean the country has records, the bucket may only hold colliding destinations.
func (P *ParcelIndex) LookupBucket(country string) (bucket *Bucket) {
	bucketNo, err := P.GetBucketNo(country)
	if err != nil {
		P.log.Warnw("bucket lookup failed", "country", country, "error", err)
		return
	}
	if P.buckets[bucketNo].IsEmpty() {
		return
	}

	return &Bucket{no: bucketNo, tree: P.buckets[bucketNo]}
}

// ListAll - Returns an iterator over the records in bucket going to country, lightest first.
// The iterator can be ranged over any number of times, a nil bucket yields nothing.
func (P *ParcelIndex) ListAll(bucket *Bucket, country string) iter.Seq[Parcel] {
	if bucket == nil {
		return empty
	}

	return bucket.tree.Matching(country)
}

// ListByCondition - Returns an iterator over the records in bucket going to country that are strictly heavier
// (Higher) or strictly lighter (Lower) than weight, lightest first. Records of exactly weight are never included.
func (P *ParcelIndex) ListByCondition(bucket *Bucket, weight int, condition Condition, country string) iter.Seq[Parcel] {
	if bucket == nil {
		return empty
	}

	return bucket.tree.Filter(country, weight, condition)
}

// Aggregate - Returns totals over every record in bucket, whatever its destination.
// This is only the total for a single country when no other destination collides into the bucket, use TotalsFor
// for an exact per country total.
func (P *ParcelIndex) Aggregate(bucket *Bucket) (totals Totals) {
	if bucket == nil {
		return
	}

	return bucket.tree.Aggregate()
}

// FindMin - Returns the lightest record in bucket, whatever its destination. found is false for a nil bucket.
func (P *ParcelIndex) FindMin(bucket *Bucket) (parcel Parcel, found bool) {
	if bucket == nil {
		return
	}

	return bucket.tree.Min()
}

// FindMax - Returns the heaviest record in bucket, whatever its destination. found is false for a nil bucket.
func (P *ParcelIndex) FindMax(bucket *Bucket) (parcel Parcel, found bool) {
	if bucket == nil {
		return
	}

	return bucket.tree.Max()
}

// SearchByWeight - Probes bucket for a record of exactly weight along its search path, see tree.SearchByWeight.
// The record found may belong to any destination in the bucket.
func (P *ParcelIndex) SearchByWeight(bucket *Bucket, weight int) (parcel Parcel, found bool) {
	if bucket == nil {
		return
	}

	return bucket.tree.SearchByWeight(weight)
}

// SearchByDestination - Returns the lightest record in bucket going to country
func (P *ParcelIndex) SearchByDestination(bucket *Bucket, country string) (parcel Parcel, found bool) {
	if bucket == nil {
		return
	}

	return bucket.tree.SearchByDestination(country)
}

// Parcels - Returns an iterator over every record going to country, lightest first
func (P *ParcelIndex) Parcels(country string) iter.Seq[Parcel] {
	return P.ListAll(P.LookupBucket(country), country)
}

// TotalsFor - Returns totals over the records going to country only
//
// It returns:
//   - totals is the aggregate, zero valued if nothing was found
//   - err is of type NoRecordFound if country has no records
func (P *ParcelIndex) TotalsFor(country string) (totals Totals, err error) {
	bucket := P.LookupBucket(country)
	if bucket == nil {
		err = NoRecordFound{Msg: fmt.Sprintf("no parcels for %s", country)}
		return
	}

	totals = bucket.tree.AggregateFor(country)
	if totals.Parcels == 0 {
		err = NoRecordFound{Msg: fmt.Sprintf("no parcels for %s", country)}
	}

	return
}

// LightestFor - Returns the lightest record going to country, or an error of type NoRecordFound
func (P *ParcelIndex) LightestFor(country string) (parcel Parcel, err error) {
	bucket := P.LookupBucket(country)
	found := false
	if bucket != nil {
		parcel, found = bucket.tree.MinFor(country)
	}
	if !found {
		err = NoRecordFound{Msg: fmt.Sprintf("no parcels for %s", country)}
	}

	return
}

// HeaviestFor - Returns the heaviest record going to country, or an error of type NoRecordFound
func (P *ParcelIndex) HeaviestFor(country string) (parcel Parcel, err error) {
	bucket := P.LookupBucket(country)
	found := false
	if bucket != nil {
		parcel, found = bucket.tree.MaxFor(country)
	}
	if !found {
		err = NoRecordFound{Msg: fmt.Sprintf("no parcels for %s", country)}
	}

	return
}

// Stat - Walks through the entire set of buckets and produce a HashMapStat struct with information.
//   - includeDistribution set to true will include a slice of length NumberOfBuckets with number of records per bucket, false will set HashMapStat.BucketDistribution to nil.
func (P *ParcelIndex) Stat(includeDistribution bool) (hashMapStat HashMapStat) {
	hashMapStat.Buckets = P.numberOfBuckets
	if includeDistribution {
		hashMapStat.BucketDistribution = make([]int64, P.numberOfBuckets)
	}

	for i, b := range P.buckets {
		n := int64(b.Len())
		if n == 0 {
			continue
		}

		hashMapStat.Records += n
		hashMapStat.UsedBuckets++
		if h := int64(b.Height()); h > hashMapStat.MaxHeight {
			hashMapStat.MaxHeight = h
		}
		if includeDistribution {
			hashMapStat.BucketDistribution[i] = n
		}

		// A bucket collides when any record differs from the first one seen
		var first string
		for p := range b.All() {
			if first == "" {
				first = p.Destination
			} else if p.Destination != first {
				hashMapStat.CollisionBuckets++
				break
			}
		}
	}

	return
}

// loadLine - Returns the emit function used while loading, it counts inserted records in report
func (P *ParcelIndex) loadLine(report *LoadReport) func(loader.Line) error {
	return func(line loader.Line) error {
		if err := P.Insert(line.Destination, line.Weight, line.Valuation); err != nil {
			return err
		}
		report.Inserted++
		return nil
	}
}

// logLoad - Logs every skipped line and a summary
func (P *ParcelIndex) logLoad(report LoadReport) {
	for _, m := range report.Malformed {
		P.log.Warnw("skipped malformed line", "line", m.No, "text", m.Text, "reason", m.Err)
	}
	P.log.Infow("parcels loaded", "inserted", report.Inserted, "skipped", len(report.Malformed))
}

// empty - Yields nothing
func empty(func(Parcel) bool) {}
