package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fardannozami/ecoplay/internal/domain"
	"github.com/fardannozami/ecoplay/internal/ledger"
	"github.com/fardannozami/ecoplay/internal/store"
)

type GetLeaderboardUsecase struct {
	d Deps
}

func NewGetLeaderboardUsecase(d Deps) *GetLeaderboardUsecase {
	return &GetLeaderboardUsecase{d: d.withDefaults()}
}

// Entries ranks users by points. A streak counts as kept when the last
// watering was today or yesterday (still time to water today); otherwise it
// is lost and reported as zero.
func (uc *GetLeaderboardUsecase) Entries(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	var users []domain.User
	err := uc.d.Store.View(ctx, func(tx *store.Tx) error {
		var err error
		users, err = tx.Users()
		return err
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(users, func(i, j int) bool {
		if users[i].Points != users[j].Points {
			return users[i].Points > users[j].Points
		}
		if users[i].WateringStreak != users[j].WateringStreak {
			return users[i].WateringStreak > users[j].WateringStreak
		}
		return strings.ToLower(users[i].Username) < strings.ToLower(users[j].Username)
	})

	today := uc.d.Now()
	entries := make([]domain.LeaderboardEntry, 0, len(users))
	for i := range users {
		u := &users[i]
		active := ledger.StreakAlive(u.LastWateringDate, today, uc.d.Location)
		streak := 0
		if active {
			streak = u.WateringStreak
		}
		entries = append(entries, domain.LeaderboardEntry{
			Rank:         i + 1,
			UserID:       u.ID,
			Name:         u.DisplayName(),
			Username:     u.Username,
			Points:       u.Points,
			Streak:       streak,
			StreakActive: active,
		})
	}
	return entries, nil
}

// Execute renders the leaderboard as a chat message.
func (uc *GetLeaderboardUsecase) Execute(ctx context.Context) (string, error) {
	entries, err := uc.Entries(ctx)
	if err != nil {
		return "", err
	}

	keep, lose := 0, 0
	for _, e := range entries {
		if e.StreakActive {
			keep++
		} else {
			lose++
		}
	}

	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("EcoPlay Leaderboard (%s)\n\n", uc.d.Now().In(uc.d.Location).Format("02-01-2006")))
	sb.WriteString(fmt.Sprintf("%d people keep their watering streak 🔥\n", keep))
	sb.WriteString(fmt.Sprintf("%d lost the streak 💔\n", lose))
	sb.WriteString("\nStandings:\n")

	if len(entries) == 0 {
		sb.WriteString("No players yet. Send #water with a photo to get started 🌱\n")
	}
	for _, e := range entries {
		if e.StreakActive {
			sb.WriteString(fmt.Sprintf("%d. %s - %d pts, %d days streak 🔥\n", e.Rank, e.Name, e.Points, e.Streak))
		} else {
			sb.WriteString(fmt.Sprintf("%d. %s - %d pts 💔\n", e.Rank, e.Name, e.Points))
		}
	}

	sb.WriteString("\nWater your plant today and keep the streak alive 💧")
	return sb.String(), nil
}
