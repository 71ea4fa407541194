package face

// Activity is the coarse tracking state derived by the ingest loop.
type Activity int32

// Activity values. Unknown is the state before the first tick and after teardown.
const (
	ActivityUnknown Activity = iota
	ActivityInactive
	ActivityActive
)

// String returns the lowercase name of the activity.
func (a Activity) String() string {
	switch a {
	case ActivityInactive:
		return "inactive"
	case ActivityActive:
		return "active"
	default:
		return "unknown"
	}
}

// ActivityFrom maps a boolean tracking result to Active or Inactive.
func ActivityFrom(tracking bool) Activity {
	if tracking {
		return ActivityActive
	}

	return ActivityInactive
}
