package service

// Actor identifies the authenticated caller. It is produced solely by
// token verification and threaded explicitly through every service call;
// services never read ambient request state.
type Actor struct {
	ID    string
	Email string
	Role  string
}
