package ledger

import "github.com/fardannozami/ecoplay/internal/domain"

type Metric string

const (
	MetricPoints  Metric = "points"
	MetricStreak  Metric = "streak"
	MetricQuizzes Metric = "quizzes"
)

type BadgeRule struct {
	Name        string
	Metric      Metric
	Threshold   int
	Description string
}

// DefaultBadgeRules is ascending by threshold within each metric.
var DefaultBadgeRules = []BadgeRule{
	{Name: "Bronze Sapling", Metric: MetricPoints, Threshold: 50, Description: "First commitment to green."},
	{Name: "Point Collector", Metric: MetricPoints, Threshold: 100, Description: "Earn 100 points."},
	{Name: "Silver Sprout", Metric: MetricPoints, Threshold: 150, Description: "Active contributor."},
	{Name: "Gold Tree", Metric: MetricPoints, Threshold: 400, Description: "Community leader."},
	{Name: "Eco Warrior", Metric: MetricPoints, Threshold: 500, Description: "Earn 500 points."},
	{Name: "Seedling Streak", Metric: MetricStreak, Threshold: 3, Description: "3-day watering streak."},
	{Name: "Green Thumb", Metric: MetricStreak, Threshold: 7, Description: "7-day watering streak."},
	{Name: "Plant Master", Metric: MetricStreak, Threshold: 30, Description: "30-day watering streak."},
	{Name: "Quiz Master", Metric: MetricQuizzes, Threshold: 3, Description: "Complete 3 quizzes."},
}

func (r BadgeRule) measure(u *domain.User) int {
	switch r.Metric {
	case MetricPoints:
		return u.Points
	case MetricStreak:
		return u.WateringStreak
	case MetricQuizzes:
		return len(u.QuizzesTaken)
	}
	return 0
}

// EvaluateBadges returns the names of badges u qualifies for but does not
// hold yet. It never reports a held badge and never revokes one.
func EvaluateBadges(u domain.User, rules []BadgeRule) []string {
	var unlocked []string
	for _, r := range rules {
		if r.measure(&u) >= r.Threshold && !u.HasBadge(r.Name) {
			unlocked = append(unlocked, r.Name)
		}
	}
	return unlocked
}

// UnlockBadges appends newly earned badges to u and returns them.
func UnlockBadges(u *domain.User, rules []BadgeRule) []string {
	unlocked := EvaluateBadges(*u, rules)
	u.Badges = append(u.Badges, unlocked...)
	return unlocked
}

func BadgeProgress(u domain.User, rules []BadgeRule) []domain.BadgeProgress {
	out := make([]domain.BadgeProgress, 0, len(rules))
	for _, r := range rules {
		out = append(out, domain.BadgeProgress{
			Name:      r.Name,
			Metric:    string(r.Metric),
			Threshold: r.Threshold,
			Current:   r.measure(&u),
			Earned:    u.HasBadge(r.Name),
		})
	}
	return out
}
