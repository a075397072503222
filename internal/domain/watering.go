package domain

import "time"

// WateringPoints is the fixed reward for one daily watering submission.
const WateringPoints = 15

type WateringRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
	PhotoRef  string    `json:"photo_ref"`
	Note      string    `json:"note"`
	Points    int       `json:"points"`
	Verified  bool      `json:"verified"`
}

func (r *WateringRecord) Validate() error {
	switch {
	case r.ID == "":
		return Invalid("id", "required")
	case r.UserID == "":
		return Invalid("user_id", "required")
	case r.Timestamp.IsZero():
		return Invalid("timestamp", "required")
	case r.Points < 0:
		return Invalid("points", "must not be negative")
	}
	return nil
}
