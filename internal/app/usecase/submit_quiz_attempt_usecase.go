package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fardannozami/ecoplay/internal/domain"
	"github.com/fardannozami/ecoplay/internal/ledger"
	"github.com/fardannozami/ecoplay/internal/metrics"
	"github.com/fardannozami/ecoplay/internal/store"
)

type SubmitQuizAttemptUsecase struct {
	d Deps
}

func NewSubmitQuizAttemptUsecase(d Deps) *SubmitQuizAttemptUsecase {
	return &SubmitQuizAttemptUsecase{d: d.withDefaults()}
}

// Execute scores answers (option indices, in question order) against the
// quiz and records the attempt. Quizzes may be retaken.
func (uc *SubmitQuizAttemptUsecase) Execute(ctx context.Context, sess domain.Session, quizID string, answers []int) (out domain.Outcome, err error) {
	defer func() { observe("quiz", err) }()

	if err := requireUser(sess); err != nil {
		return out, err
	}
	quizID = strings.TrimSpace(quizID)
	now := uc.d.Now()

	var attempt domain.QuizAttempt
	err = uc.d.Store.Update(ctx, func(tx *store.Tx) error {
		q, err := tx.Quiz(quizID)
		if err != nil {
			return err
		}
		u, err := tx.User(sess.UserID)
		if err != nil {
			return err
		}

		earned, correct := ledger.ScoreQuiz(q, answers)
		attempt = domain.QuizAttempt{
			QuizID:         q.ID,
			PointsEarned:   earned,
			CorrectCount:   correct,
			TotalQuestions: len(q.Questions),
			TakenAt:        now,
		}
		u.QuizzesTaken = append(u.QuizzesTaken, attempt)
		ledger.Award(&u, earned)
		badges := ledger.UnlockBadges(&u, uc.d.Badges)
		if err := tx.SaveUser(u); err != nil {
			return err
		}

		out = domain.Outcome{User: u, PointsAwarded: earned, NewBadges: badges}
		return nil
	})
	if err != nil {
		return domain.Outcome{}, err
	}

	metrics.PointsAwarded.WithLabelValues("quiz").Add(float64(out.PointsAwarded))
	uc.d.Log.Info("quiz_attempt_submitted",
		zap.String("user_id", out.User.ID),
		zap.String("quiz_id", attempt.QuizID),
		zap.Int("correct", attempt.CorrectCount),
		zap.Int("total", attempt.TotalQuestions),
		zap.Int("earned", attempt.PointsEarned),
	)
	return out, nil
}
