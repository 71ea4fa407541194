package face

import "time"

// Snapshot is a complete normalized expression set published by the ingest loop.
// A published snapshot is never modified; readers may keep it as long as they need.
type Snapshot struct {
	// Set is the normalized expression set.
	Set ExpressionSet
	// Activity is the ingest-side tracking activity at publish time.
	Activity Activity
	// Seq counts normalization passes since the loop started.
	Seq uint64
	// UpdatedAt is when Set was last renormalized.
	UpdatedAt time.Time
}

// WithActivity returns a copy of s carrying a different activity.
func (s *Snapshot) WithActivity(a Activity) *Snapshot {
	next := *s
	next.Activity = a

	return &next
}
