package interpret

// ResultState classifies the outcome of interpreting a verbatim date.
type ResultState string

const (
	// StateNotRun means no recognizer produced a value.
	StateNotRun ResultState = "NOT_RUN"
	// StateDate is a single calendar day.
	StateDate ResultState = "DATE"
	// StateRange is a contiguous span, possibly at reduced precision.
	StateRange ResultState = "RANGE"
	// StateAmbiguous carries two plausible single-day readings as earliest/latest.
	StateAmbiguous ResultState = "AMBIGUOUS"
	// StateDisjunctRange joins two endpoints that need not be contiguous.
	StateDisjunctRange ResultState = "DISJUNCT_RANGE"
	// StateSuspect is a successful parse flagged for manual review.
	StateSuspect ResultState = "SUSPECT"
	// StateInternalPrerequisitesNotMet means a recognizer matched but its
	// value failed re-canonicalization.
	StateInternalPrerequisitesNotMet ResultState = "INTERNAL_PREREQUISITES_NOT_MET"
)

// Successful reports whether the state carries a usable value.
func (s ResultState) Successful() bool {
	switch s {
	case StateDate, StateRange, StateAmbiguous, StateDisjunctRange, StateSuspect:
		return true
	default:
		return false
	}
}

// EventResult is the outcome of one interpretation call. Value is empty
// unless State is successful, and is always in the canonical grammar:
// yyyy, yyyy-MM, yyyy-MM-dd, or two of those joined by "/".
type EventResult struct {
	State    ResultState `json:"state" yaml:"state"`
	Value    string      `json:"value,omitempty" yaml:"value,omitempty"`
	Comments []string    `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// HasValue reports whether the result carries a usable value.
func (r EventResult) HasValue() bool {
	return r.State.Successful() && r.Value != ""
}

func notRun() EventResult {
	return EventResult{State: StateNotRun}
}

func result(state ResultState, value string, comments ...string) EventResult {
	return EventResult{State: state, Value: value, Comments: comments}
}

// withComment returns a copy of r with comment appended. The comment slice
// is copied so that results never share backing arrays.
func (r EventResult) withComment(comment string) EventResult {
	comments := make([]string, 0, len(r.Comments)+1)
	comments = append(comments, r.Comments...)
	r.Comments = append(comments, comment)
	return r
}
