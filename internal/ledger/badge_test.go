package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fardannozami/ecoplay/internal/domain"
	"github.com/fardannozami/ecoplay/internal/ledger"
)

func TestEvaluateBadges_PointThresholds(t *testing.T) {
	u := domain.User{ID: "u1", Username: "alice", Points: 160}

	got := ledger.EvaluateBadges(u, ledger.DefaultBadgeRules)
	require.Equal(t, []string{"Bronze Sapling", "Point Collector", "Silver Sprout"}, got)
}

func TestEvaluateBadges_SkipsHeldBadges(t *testing.T) {
	u := domain.User{ID: "u1", Username: "alice", Points: 60, Badges: []string{"Bronze Sapling"}}

	require.Empty(t, ledger.EvaluateBadges(u, ledger.DefaultBadgeRules))
}

func TestEvaluateBadges_StreakAndQuizMetrics(t *testing.T) {
	u := domain.User{
		ID:             "u1",
		Username:       "alice",
		WateringStreak: 7,
		QuizzesTaken:   make([]domain.QuizAttempt, 3),
	}

	got := ledger.EvaluateBadges(u, ledger.DefaultBadgeRules)
	require.ElementsMatch(t, []string{"Seedling Streak", "Green Thumb", "Quiz Master"}, got)
}

func TestUnlockBadges_NeverRevokes(t *testing.T) {
	u := &domain.User{ID: "u1", Username: "alice", Points: 200}
	ledger.UnlockBadges(u, ledger.DefaultBadgeRules)
	require.Contains(t, u.Badges, "Silver Sprout")

	require.NoError(t, ledger.Spend(u, 200))
	unlocked := ledger.UnlockBadges(u, ledger.DefaultBadgeRules)

	require.Empty(t, unlocked)
	require.Contains(t, u.Badges, "Silver Sprout")
	require.Contains(t, u.Badges, "Bronze Sapling")
}

func TestBadgeProgress(t *testing.T) {
	u := domain.User{ID: "u1", Username: "alice", Points: 75, Badges: []string{"Bronze Sapling"}}

	progress := ledger.BadgeProgress(u, ledger.DefaultBadgeRules)
	require.Len(t, progress, len(ledger.DefaultBadgeRules))
	require.True(t, progress[0].Earned)
	require.Equal(t, 75, progress[1].Current)
	require.False(t, progress[1].Earned)
}
