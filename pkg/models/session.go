package models

// SessionRequest represents the CLI-level inputs for one wizard session
type SessionRequest struct {
	// FileName is a pre-chosen configuration file name. Empty means the
	// operator is prompted for one during the session.
	FileName string

	ConfigPath string
	Target     string
}

// NewSessionRequest creates a request with defaults.
func NewSessionRequest() *SessionRequest {
	return &SessionRequest{}
}
