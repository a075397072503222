package domain

import "time"

// Outcome is returned by every activity service: the updated user plus the
// badges unlocked by this call.
type Outcome struct {
	User          User     `json:"user"`
	PointsAwarded int      `json:"points_awarded"`
	NewBadges     []string `json:"new_badges,omitempty"`
}

type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Points       int    `json:"points"`
	Streak       int    `json:"streak"`
	StreakActive bool   `json:"streak_active"`
}

type BadgeProgress struct {
	Name      string `json:"name"`
	Metric    string `json:"metric"`
	Threshold int    `json:"threshold"`
	Current   int    `json:"current"`
	Earned    bool   `json:"earned"`
}

type ActivityItem struct {
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	Pending     bool      `json:"pending,omitempty"`
	At          time.Time `json:"at"`
}

type Certificate struct {
	Name          string    `json:"name"`
	Points        int       `json:"points"`
	WateringCount int       `json:"watering_count"`
	QuizCount     int       `json:"quiz_count"`
	IssuedAt      time.Time `json:"issued_at"`
}

type Profile struct {
	User            User            `json:"user"`
	Streak          int             `json:"streak"`
	WateredToday    bool            `json:"watered_today"`
	WateringCount   int             `json:"watering_count"`
	QuizCount       int             `json:"quiz_count"`
	Badges          []BadgeProgress `json:"badges"`
	Redemptions     []Redemption    `json:"redemptions"`
	RecentActivity  []ActivityItem  `json:"recent_activity"`
	Certificate     Certificate     `json:"certificate"`
	LedgerBalanced  bool            `json:"ledger_balanced"`
	ExpectedBalance int             `json:"expected_balance"`
}
