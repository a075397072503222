package domain

import (
	"strings"
	"time"
)

// SubmissionBasePoints is awarded immediately, before any verification.
const SubmissionBasePoints = 10

type ActivityType string

const (
	ActivityPlanting     ActivityType = "planting"
	ActivityCleanup      ActivityType = "cleanup"
	ActivityRecycling    ActivityType = "recycling"
	ActivityConservation ActivityType = "conservation"
	ActivityWatering     ActivityType = "watering"
)

var activityTypes = []ActivityType{
	ActivityPlanting, ActivityCleanup, ActivityRecycling, ActivityConservation, ActivityWatering,
}

func ActivityTypes() []ActivityType {
	return append([]ActivityType(nil), activityTypes...)
}

// ParseActivityType is case-insensitive.
func ParseActivityType(s string) (ActivityType, error) {
	t := ActivityType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range activityTypes {
		if t == known {
			return t, nil
		}
	}
	return "", Invalid("type", "unknown activity type "+s)
}

// Submission keeps the immediate award and the verified award apart so that
// verification can always credit an exact delta.
type Submission struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	Type         ActivityType `json:"type"`
	Note         string       `json:"note"`
	PhotoRef     string       `json:"photo_ref"`
	CreatedAt    time.Time    `json:"created_at"`
	Verified     bool         `json:"verified"`
	InitialAward int          `json:"initial_award"`
	FinalAward   *int         `json:"final_award,omitempty"`
	VerifiedAt   *time.Time   `json:"verified_at,omitempty"`
}

// PointsAwarded is what the user currently holds for this submission.
func (s *Submission) PointsAwarded() int {
	if s.FinalAward != nil {
		return *s.FinalAward
	}
	return s.InitialAward
}

func (s *Submission) Validate() error {
	switch {
	case s.ID == "":
		return Invalid("id", "required")
	case s.UserID == "":
		return Invalid("user_id", "required")
	case s.InitialAward < 0:
		return Invalid("initial_award", "must not be negative")
	case s.FinalAward != nil && *s.FinalAward < 0:
		return Invalid("final_award", "must not be negative")
	}
	if _, err := ParseActivityType(string(s.Type)); err != nil {
		return err
	}
	return nil
}
