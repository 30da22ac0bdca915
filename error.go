package respool

import (
	"fmt"
)

// Make sure *BadResourceError satisfies error interface.
var _ error = (*BadResourceError)(nil)

// BadResourceError is the error returned by an Op to tell the pool that the
// resource it was given is no longer usable.
//
// When Take receives it from its op,
// the member is torn down and removed from the pool instead of being
// released, then the error is returned to the caller of Take.
// The pool never retries the op on another member.
type BadResourceError struct {
	// Reason is the underlying error. It's optional.
	Reason error
}

func (err *BadResourceError) Error() string {
	if err.Reason == nil {
		return "respool: bad resource"
	}
	return fmt.Sprintf("respool: bad resource: %v", err.Reason)
}

// IsBadResource checks whether a given error is BadResourceError.
func IsBadResource(err error) bool {
	_, ok := err.(*BadResourceError)
	return ok
}
