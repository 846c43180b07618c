package domain

// SplitPlan describes how one entry is replaced by boundary-respecting
// sub-entries. Replacements carry no IDs; they are assigned on creation.
// DeleteOriginal must only be honored after every replacement exists
// remotely, so a failed create leaves the original in place.
type SplitPlan struct {
	Original       TimeEntry
	Replacements   []TimeEntry
	DeleteOriginal bool
}
