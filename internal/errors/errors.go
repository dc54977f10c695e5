// internal/errors/errors.go
package errors

import "fmt"

// MalformedRecordError is returned when a raw platform record cannot be
// normalized because a required field (URL or stable identifier) is missing.
// It is row-level: the record is skipped and counted, the batch continues.
type MalformedRecordError struct {
	Platform string
	Reason   string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record: %s", e.Platform, e.Reason)
}

// DuplicateExternalIDError is returned when an upsert target collides with an
// existing (platform, external_id) row that the preceding lookup did not see.
// It is fatal for the record but not for the batch.
type DuplicateExternalIDError struct {
	Platform   string
	ExternalID string
}

func (e *DuplicateExternalIDError) Error() string {
	return fmt.Sprintf("duplicate external id %q on platform %s", e.ExternalID, e.Platform)
}

// StoreUnavailableError is returned when the persistence layer cannot be
// reached or written. It aborts the whole batch; rows committed before the
// failure remain committed.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }
