package types

// DefaultLimit is the number of matches after which a scan stops paging.
const DefaultLimit = 100

// Session tracks the progress of one scan invocation.
// It is owned by the paginator and only touched from the scanning goroutine.
type Session struct {
	Page        int  // last page requested (1-based, 0 before the first request)
	Found       int  // number of ScanRecords created so far
	Limit       int  // soft ceiling on Found, checked after each full page
	Interrupted bool // scan stopped because the context was cancelled
}

// NewSession creates a session with the given limit.
// A non-positive limit falls back to DefaultLimit.
func NewSession(limit int) *Session {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Session{Limit: limit}
}

// NextPage advances to the next page and returns its number.
func (s *Session) NextPage() int {
	s.Page++
	return s.Page
}

// Record counts one newly created ScanRecord.
func (s *Session) Record() {
	s.Found++
}

// LimitReached reports whether the found counter has reached the limit.
func (s *Session) LimitReached() bool {
	return s.Found >= s.Limit
}
