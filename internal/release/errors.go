package release

// InvariantError reports a broken internal assumption, such as a reconciled
// version arriving without a tracker-assigned id. It should be unreachable
// in correct operation and is treated as fatal, not recoverable.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "invariant violation: " + e.Msg
}
