package domain

import (
	"strings"
	"time"
)

type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Date         time.Time `json:"date"`
	Description  string    `json:"description"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}

func (e *Event) HasParticipant(userID string) bool {
	for _, id := range e.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

func (e *Event) Validate() error {
	switch {
	case e.ID == "":
		return Invalid("id", "required")
	case strings.TrimSpace(e.Title) == "":
		return Invalid("title", "required")
	case e.Date.IsZero():
		return Invalid("date", "required")
	}
	seen := make(map[string]struct{}, len(e.Participants))
	for _, id := range e.Participants {
		if _, dup := seen[id]; dup {
			return Invalid("participants", "duplicate participant "+id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
