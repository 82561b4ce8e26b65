/*
Package store - client-side state containers the admin views read from

Every resource has one container holding the last fetched page, a single
lifecycle Status and the last error message. Containers are safe for
concurrent use.

Lifecycle of a list fetch:

	idle ──Fetch──▶ loading ──ok──▶ succeeded   (items, pagination replaced)
	                        └─err─▶ failed      (error set, items kept)

Mutations (create, update, delete) leave Status alone and patch items only
after the backend confirmed success, so a failed mutation leaves state as it
was. Created records go to the front of the list.

A fetch whose response arrives after a newer fetch was issued is discarded
with a STALE_RESPONSE error and does not touch state.
*/
package store

// Status lifecycle shared by every container
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Settled reports whether the last fetch has finished, either way.
func (s Status) Settled() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Keyed is implemented by every record a container holds.
type Keyed interface {
	Key() int64
}
