package region

import "github.com/cockroachdb/errors"

// ErrRegionNotFound indicates that no qualifying descriptor can host the
// new list. Retrying with the same list cannot succeed.
var ErrRegionNotFound = errors.New("region: no tested memory large enough for the hob list")
