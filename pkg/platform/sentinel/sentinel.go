package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
// For validation failures and domain outcomes, use pkg/domain-errors directly.
var (
	// ErrNotFound: key does not exist in the store.
	ErrNotFound = errors.New("not found")
)
