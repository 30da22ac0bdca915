package keyed

import (
	"fmt"
)

// Make sure *NoSuchPoolError satisfies error interface.
var _ error = (*NoSuchPoolError)(nil)

// NoSuchPoolError is the error returned by Drop when the key requested has
// no pool.
type NoSuchPoolError struct {
	Key string
}

func (err *NoSuchPoolError) Error() string {
	return fmt.Sprintf("keyed: no pool for key: %q", err.Key)
}

// IsNoSuchPoolError checks whether a given error is NoSuchPoolError.
func IsNoSuchPoolError(err error) bool {
	_, ok := err.(*NoSuchPoolError)
	return ok
}
