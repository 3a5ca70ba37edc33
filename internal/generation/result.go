package generation

import "fmt"

// ResultKind tags the outcome of a single generation attempt.
type ResultKind int

const (
	// KindSuccess means the backend returned a parsable batch of candidates.
	KindSuccess ResultKind = iota + 1

	// KindSoftFailure means the backend answered, but the answer did not contain
	// a usable hashtags array. The attempt contributes nothing.
	KindSoftFailure

	// KindHardFailure means the backend could not be reached, answered with a
	// non-success status, or the call was cancelled.
	KindHardFailure
)

// String returns a short name for the kind, suitable for logging.
func (k ResultKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindSoftFailure:
		return "soft_failure"
	case KindHardFailure:
		return "hard_failure"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Result is the outcome of one call to Generator.Generate. Exactly one of
// Batch (for KindSuccess) or Err (for failures) is meaningful.
type Result struct {
	Kind  ResultKind
	Batch []string
	Err   error
}

// Success creates a successful Result carrying the raw candidates.
func Success(batch []string) Result {
	return Result{Kind: KindSuccess, Batch: batch}
}

// SoftFailure creates a Result for an unparsable backend answer. A nil err is
// replaced by ErrInvalidResponse.
func SoftFailure(err error) Result {
	if err == nil {
		err = ErrInvalidResponse
	}
	return Result{Kind: KindSoftFailure, Err: err}
}

// HardFailure creates a Result for a failed round-trip. A nil err is replaced
// by ErrGenerationFailed.
func HardFailure(err error) Result {
	if err == nil {
		err = ErrGenerationFailed
	}
	return Result{Kind: KindHardFailure, Err: err}
}
