package dispatch

// DefaultRecursionLimit is the number of nested dispatches allowed
// for a single message name when no limit is configured.
const DefaultRecursionLimit = 5

// RecursionDepthList counts, per message name, the dispatches currently
// in progress down the call stack, and tells when a new one would
// exceed the configured limit.
type RecursionDepthList struct {
	limit  int
	depths map[string]int
}

// NewRecursionDepthList returns a RecursionDepthList allowing up to limit
// nested dispatches per message name.
//
// ErrInvalidRecursionLimit is returned if limit is lower than 1.
func NewRecursionDepthList(limit int) (*RecursionDepthList, error) {
	if limit < 1 {
		return nil, ErrInvalidRecursionLimit
	}

	return &RecursionDepthList{
		limit:  limit,
		depths: make(map[string]int),
	}, nil
}

// Limit returns the configured recursion limit.
func (l *RecursionDepthList) Limit() int { return l.limit }

// IsDepthLimitReached reports whether the message name is tracked and its
// depth is at least the limit. Message names never seen are never at the limit.
func (l *RecursionDepthList) IsDepthLimitReached(messageName string) bool {
	depth, ok := l.depths[messageName]
	return ok && depth >= l.limit
}

// IncreaseDepth records a new dispatch in progress for the message name.
func (l *RecursionDepthList) IncreaseDepth(messageName string) {
	l.depths[messageName]++
}

// DecreaseDepth records the end of a dispatch for the message name.
// The depth never goes below zero.
func (l *RecursionDepthList) DecreaseDepth(messageName string) {
	if depth := l.depths[messageName]; depth > 0 {
		l.depths[messageName] = depth - 1
		return
	}

	l.depths[messageName] = 0
}

// Depth returns the number of dispatches in progress for the message name.
func (l *RecursionDepthList) Depth(messageName string) int {
	return l.depths[messageName]
}
