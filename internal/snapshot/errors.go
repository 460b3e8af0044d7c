package snapshot

import "errors"

// Configuration errors. These indicate the caller wired the subsystem
// wrong and propagate to whatever drives initialization.
var (
	ErrRegionRequired   = errors.New("region must not be nil")
	ErrPropertyRequired = errors.New("property name must not be blank")
)

// State errors. Imports fail fast on these; the wrapping message carries
// the offending location and the region's full path.
var (
	ErrResourceMissing    = errors.New("resource does not exist")
	ErrResourceUnreadable = errors.New("resource is not readable")
)
