package parcelmap

import "github.com/gostonefire/parcelmap/errs"

// NoRecordFound - Returned when a destination or weight is not in the index
type NoRecordFound = errs.NoRecordFound

// MalformedInput - Returned for records or load file lines that can not be stored
type MalformedInput = errs.MalformedInput

// AllocationFailure - Returned when a record can not be allocated, the insert is aborted
type AllocationFailure = errs.AllocationFailure

// InvalidUserInput - Returned by interactive layers for rejected input, it never reaches the index
type InvalidUserInput = errs.InvalidUserInput
