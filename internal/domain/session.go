package domain

import "time"

// Session identifies the caller of an activity service. It replaces any
// process-wide notion of a "current user".
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id,omitempty"`
	Admin     bool      `json:"admin"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
