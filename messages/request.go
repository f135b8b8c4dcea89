package messages

// DefaultSessionID is used when the caller does not supply a session id
const DefaultSessionID = "default"

// AskRequest is an inbound question, over HTTP POST or a WebSocket frame
type AskRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
}

// Normalize fills in the default session id
func (r *AskRequest) Normalize() {
	if r.SessionID == "" {
		r.SessionID = DefaultSessionID
	}
}
