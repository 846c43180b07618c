package domain

import "fmt"

// MalformedEntryError marks an entry that cannot participate in a
// computation, e.g. one whose start lies after its stop. Such entries are
// skipped with a warning, never reordered or repaired.
type MalformedEntryError struct {
	EntryID int64
	Reason  string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("malformed entry %d: %s", e.EntryID, e.Reason)
}

// SkippedEntry pairs an excluded entry with the reason it was excluded.
type SkippedEntry struct {
	Entry TimeEntry
	Err   error
}

// RemoteWriteError is returned by the API adapter when a create, update or
// delete call is rejected with a non-2xx response.
type RemoteWriteError struct {
	Op     string // e.g. "create time entry"
	Status int
	Body   string
}

func (e *RemoteWriteError) Error() string {
	return fmt.Sprintf("toggl: %s: unexpected status %d: %s", e.Op, e.Status, e.Body)
}
