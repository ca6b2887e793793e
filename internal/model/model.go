package model

// Condition - Selects which side of a weight threshold a filter keeps
type Condition int

const (
	// Higher - Keeps records strictly heavier than the threshold
	Higher Condition = iota + 1
	// Lower - Keeps records strictly lighter than the threshold
	Lower
)

// String - Returns the condition name as used in menus and query strings
func (C Condition) String() string {
	switch C {
	case Higher:
		return "higher"
	case Lower:
		return "lower"
	default:
		return "unknown"
	}
}

// Parcel - Represents one shipped parcel. Destination is always stored normalized.
type Parcel struct {
	Destination string
	Weight      int
	Valuation   float64
}

// Totals - Aggregated weight and valuation over a set of parcels
type Totals struct {
	Parcels   int
	Weight    int
	Valuation float64
}

// Add - Adds a parcel to the totals
func (T *Totals) Add(p Parcel) {
	T.Parcels++
	T.Weight += p.Weight
	T.Valuation += p.Valuation
}
