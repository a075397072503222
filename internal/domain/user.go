package domain

import (
	"strings"
	"time"
)

type User struct {
	ID               string        `json:"id"`
	Username         string        `json:"username"`
	Email            string        `json:"email,omitempty"`
	FullName         string        `json:"full_name"`
	PasswordHash     string        `json:"password_hash,omitempty"`
	Phone            string        `json:"phone,omitempty"`
	School           string        `json:"school,omitempty"`
	Grade            string        `json:"grade,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	Points           int           `json:"points"`
	Badges           []string      `json:"badges"`
	QuizzesTaken     []QuizAttempt `json:"quizzes_taken"`
	Submissions      []string      `json:"submissions"`
	JoinedEvents     []string      `json:"joined_events"`
	WateringStreak   int           `json:"watering_streak"`
	LastWateringDate *time.Time    `json:"last_watering_date,omitempty"`
}

// QuizAttempt is one entry of a user's append-only quiz history.
type QuizAttempt struct {
	QuizID         string    `json:"quiz_id"`
	PointsEarned   int       `json:"points_earned"`
	CorrectCount   int       `json:"correct_count"`
	TotalQuestions int       `json:"total_questions"`
	TakenAt        time.Time `json:"taken_at"`
}

func (u *User) Validate() error {
	if u.ID == "" {
		return Invalid("id", "required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return Invalid("username", "required")
	}
	if u.Points < 0 {
		return Invalid("points", "must not be negative")
	}
	if u.WateringStreak < 0 {
		return Invalid("watering_streak", "must not be negative")
	}
	for _, a := range u.QuizzesTaken {
		if a.QuizID == "" || a.PointsEarned < 0 || a.CorrectCount > a.TotalQuestions {
			return Invalid("quizzes_taken", "malformed attempt")
		}
	}
	return nil
}

func (u *User) HasBadge(name string) bool {
	for _, b := range u.Badges {
		if b == name {
			return true
		}
	}
	return false
}

func (u *User) HasJoined(eventID string) bool {
	for _, id := range u.JoinedEvents {
		if id == eventID {
			return true
		}
	}
	return false
}

// DisplayName falls back to the username when no full name was given.
func (u *User) DisplayName() string {
	if strings.TrimSpace(u.FullName) != "" {
		return u.FullName
	}
	return u.Username
}
