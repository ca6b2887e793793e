package hash

import (
	"fmt"
	"github.com/gostonefire/parcelmap/hashfunc"
	"strings"
)

// Algorithm names accepted by ByName
const (
	Djb2Name    = "djb2"
	XXHashName  = "xxhash"
	Murmur3Name = "murmur3"
)

// ByName - Returns a hash algorithm given its name, an empty name gives the default djb2 algorithm
//   - name is one of djb2, xxhash or murmur3 (case-insensitive)
//   - tableSize is the number of buckets to address
func ByName(name string, tableSize int64) (hashAlgorithm hashfunc.HashAlgorithm, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Djb2Name, "":
		hashAlgorithm = NewDjb2HashAlgorithm(tableSize)
	case XXHashName:
		hashAlgorithm = NewXXHashAlgorithm(tableSize)
	case Murmur3Name:
		hashAlgorithm = NewMurmur3HashAlgorithm(tableSize)
	default:
		err = fmt.Errorf("unknown hash algorithm %q, use one of %s, %s or %s", name, Djb2Name, XXHashName, Murmur3Name)
	}

	return
}
