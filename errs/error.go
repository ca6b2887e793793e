package errs

// NoRecordFound - Custom error to inform that no record was found
type NoRecordFound struct {
	Msg string
}

// Error - Used to notify that no record was found
func (E NoRecordFound) Error() string {
	if E.Msg == "" {
		return "no record found"
	}
	return E.Msg
}

// Is - Makes errors.Is match on the error type regardless of message
func (E NoRecordFound) Is(target error) bool {
	_, ok := target.(NoRecordFound)
	return ok
}

// MalformedInput - Custom error to inform that a line or field could not be parsed
type MalformedInput struct {
	Msg string
}

// Error - Used to notify that input was malformed
func (M MalformedInput) Error() string {
	if M.Msg == "" {
		return "malformed input"
	}
	return M.Msg
}

// Is - Makes errors.Is match on the error type regardless of message
func (M MalformedInput) Is(target error) bool {
	_, ok := target.(MalformedInput)
	return ok
}

// AllocationFailure - Custom error to inform that a record could not be allocated, either because the
// configured record limit is exhausted or because the index has been torn down
type AllocationFailure struct {
	Msg string
}

// Error - Used to notify that a record could not be allocated
func (A AllocationFailure) Error() string {
	if A.Msg == "" {
		return "record allocation failed"
	}
	return A.Msg
}

// Is - Makes errors.Is match on the error type regardless of message
func (A AllocationFailure) Is(target error) bool {
	_, ok := target.(AllocationFailure)
	return ok
}

// InvalidUserInput - Custom error to inform that interactive input was rejected
type InvalidUserInput struct {
	Msg string
}

// Error - Used to notify that user input was rejected
func (I InvalidUserInput) Error() string {
	if I.Msg == "" {
		return "invalid input"
	}
	return I.Msg
}

// Is - Makes errors.Is match on the error type regardless of message
func (I InvalidUserInput) Is(target error) bool {
	_, ok := target.(InvalidUserInput)
	return ok
}
