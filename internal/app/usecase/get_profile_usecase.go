package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/fardannozami/ecoplay/internal/domain"
	"github.com/fardannozami/ecoplay/internal/ledger"
	"github.com/fardannozami/ecoplay/internal/store"
)

const recentActivityLimit = 10

type GetProfileUsecase struct {
	d Deps
}

func NewGetProfileUsecase(d Deps) *GetProfileUsecase {
	return &GetProfileUsecase{d: d.withDefaults()}
}

// Execute assembles the dashboard of the session user, including a ledger
// audit that recomputes the balance from the user's records.
func (uc *GetProfileUsecase) Execute(ctx context.Context, sess domain.Session) (domain.Profile, error) {
	if err := requireUser(sess); err != nil {
		return domain.Profile{}, err
	}

	var (
		u           domain.User
		watering    []domain.WateringRecord
		submissions []domain.Submission
		redemptions []domain.Redemption
		quizzes     []domain.Quiz
	)
	err := uc.d.Store.View(ctx, func(tx *store.Tx) error {
		var err error
		if u, err = tx.User(sess.UserID); err != nil {
			return err
		}
		if watering, err = tx.UserWateringRecords(u.ID); err != nil {
			return err
		}
		if submissions, err = tx.Submissions(); err != nil {
			return err
		}
		if redemptions, err = tx.Redemptions(); err != nil {
			return err
		}
		quizzes, err = tx.Quizzes()
		return err
	})
	if err != nil {
		return domain.Profile{}, err
	}

	mySubs := submissions[:0:0]
	for _, s := range submissions {
		if s.UserID == u.ID {
			mySubs = append(mySubs, s)
		}
	}
	myRedemptions := redemptions[:0:0]
	for _, r := range redemptions {
		if r.UserID == u.ID {
			myRedemptions = append(myRedemptions, r)
		}
	}
	sort.SliceStable(myRedemptions, func(i, j int) bool {
		return myRedemptions[i].CreatedAt.After(myRedemptions[j].CreatedAt)
	})

	now := uc.d.Now()
	expected := ledger.ExpectedPoints(u, watering, mySubs, myRedemptions)
	return domain.Profile{
		User:            u,
		Streak:          ledger.LiveStreak(watering, now, uc.d.Location),
		WateredToday:    ledger.WateredOn(watering, now, uc.d.Location),
		WateringCount:   len(watering),
		QuizCount:       len(u.QuizzesTaken),
		Badges:          ledger.BadgeProgress(u, uc.d.Badges),
		Redemptions:     myRedemptions,
		RecentActivity:  recentActivity(u, watering, mySubs, myRedemptions, quizzes),
		LedgerBalanced:  expected == u.Points,
		ExpectedBalance: expected,
		Certificate: domain.Certificate{
			Name:          u.DisplayName(),
			Points:        u.Points,
			WateringCount: len(watering),
			QuizCount:     len(u.QuizzesTaken),
			IssuedAt:      now,
		},
	}, nil
}

// recentActivity merges the user's history newest first.
func recentActivity(u domain.User, watering []domain.WateringRecord, subs []domain.Submission, reds []domain.Redemption, quizzes []domain.Quiz) []domain.ActivityItem {
	titles := make(map[string]string, len(quizzes))
	for _, q := range quizzes {
		titles[q.ID] = q.Title
	}

	var items []domain.ActivityItem
	for _, r := range watering {
		items = append(items, domain.ActivityItem{Kind: "watering", Description: "Watered a plant", Points: r.Points, At: r.Timestamp})
	}
	for _, a := range u.QuizzesTaken {
		title := titles[a.QuizID]
		if title == "" {
			title = a.QuizID
		}
		items = append(items, domain.ActivityItem{
			Kind:        "quiz",
			Description: fmt.Sprintf("Quiz %s (%d/%d correct)", title, a.CorrectCount, a.TotalQuestions),
			Points:      a.PointsEarned,
			At:          a.TakenAt,
		})
	}
	for i := range subs {
		s := &subs[i]
		items = append(items, domain.ActivityItem{
			Kind:        "activity",
			Description: fmt.Sprintf("%s: %s", s.Type, s.Note),
			Points:      s.PointsAwarded(),
			Pending:     !s.Verified,
			At:          s.CreatedAt,
		})
	}
	for _, r := range reds {
		items = append(items, domain.ActivityItem{Kind: "redemption", Description: "Redeemed " + r.RewardName, Points: -r.Cost, At: r.CreatedAt})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].At.After(items[j].At) })
	if len(items) > recentActivityLimit {
		items = items[:recentActivityLimit]
	}
	return items
}
