package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fardannozami/ecoplay/internal/domain"
	"github.com/fardannozami/ecoplay/internal/ledger"
	"github.com/fardannozami/ecoplay/internal/metrics"
	"github.com/fardannozami/ecoplay/internal/store"
)

type QuizInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Questions   []domain.Question `json:"questions"`
}

type EventInput struct {
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// AdminUsecase holds the management operations. Every call needs an admin
// session.
type AdminUsecase struct {
	d Deps
}

func NewAdminUsecase(d Deps) *AdminUsecase {
	return &AdminUsecase{d: d.withDefaults()}
}

func (uc *AdminUsecase) CreateQuiz(ctx context.Context, sess domain.Session, in QuizInput) (domain.Quiz, error) {
	if err := requireAdmin(sess); err != nil {
		return domain.Quiz{}, err
	}

	q := domain.Quiz{
		ID:          uc.d.NewID("q"),
		Title:       cleanText(in.Title),
		Description: cleanText(in.Description),
		CreatedAt:   uc.d.Now(),
	}
	for _, qq := range in.Questions {
		qq.Prompt = cleanText(qq.Prompt)
		opts := make([]string, 0, len(qq.Options))
		for _, o := range qq.Options {
			opts = append(opts, cleanText(o))
		}
		qq.Options = opts
		if qq.Points == 0 {
			qq.Points = domain.DefaultQuestionPoints
		}
		q.Questions = append(q.Questions, qq)
	}
	if err := q.Validate(); err != nil {
		return domain.Quiz{}, err
	}

	err := uc.d.Store.Update(ctx, func(tx *store.Tx) error {
		quizzes, err := tx.Quizzes()
		if err != nil {
			return err
		}
		return tx.PutQuizzes(append(quizzes, q))
	})
	if err != nil {
		return domain.Quiz{}, err
	}

	uc.d.Log.Info("quiz_created", zap.String("quiz_id", q.ID), zap.Int("questions", len(q.Questions)))
	return q, nil
}

// DeleteQuiz removes a quiz. Attempts already recorded on users stay.
func (uc *AdminUsecase) DeleteQuiz(ctx context.Context, sess domain.Session, quizID string) error {
	if err := requireAdmin(sess); err != nil {
		return err
	}

	err := uc.d.Store.Update(ctx, func(tx *store.Tx) error {
		quizzes, err := tx.Quizzes()
		if err != nil {
			return err
		}
		kept := make([]domain.Quiz, 0, len(quizzes))
		for _, q := range quizzes {
			if q.ID != quizID {
				kept = append(kept, q)
			}
		}
		if len(kept) == len(quizzes) {
			return domain.ErrQuizNotFound
		}
		return tx.PutQuizzes(kept)
	})
	if err != nil {
		return err
	}

	uc.d.Log.Info("quiz_deleted", zap.String("quiz_id", quizID))
	return nil
}

func (uc *AdminUsecase) CreateEvent(ctx context.Context, sess domain.Session, in EventInput) (domain.Event, error) {
	if err := requireAdmin(sess); err != nil {
		return domain.Event{}, err
	}

	e := domain.Event{
		ID:          uc.d.NewID("e"),
		Title:       cleanText(in.Title),
		Date:        in.Date,
		Description: cleanText(in.Description),
		CreatedAt:   uc.d.Now(),
	}
	if err := e.Validate(); err != nil {
		return domain.Event{}, err
	}

	err := uc.d.Store.Update(ctx, func(tx *store.Tx) error {
		return tx.SaveEvent(e)
	})
	if err != nil {
		return domain.Event{}, err
	}

	uc.d.Log.Info("event_created", zap.String("event_id", e.ID), zap.Time("date", e.Date))
	return e, nil
}

// VerifySubmission settles a submission at finalAward. Only the difference
// from what the user already holds for it is applied, so re-verifying never
// double counts.
func (uc *AdminUsecase) VerifySubmission(ctx context.Context, sess domain.Session, submissionID string, finalAward int) (out domain.Outcome, err error) {
	defer func() { observe("verification", err) }()

	if err := requireAdmin(sess); err != nil {
		return out, err
	}
	if finalAward < 0 {
		return out, domain.Invalid("final_award", "must not be negative")
	}

	err = uc.d.Store.Update(ctx, func(tx *store.Tx) error {
		sub, err := tx.Submission(submissionID)
		if err != nil {
			return err
		}
		u, err := tx.User(sub.UserID)
		if err != nil {
			return err
		}

		delta := finalAward - sub.PointsAwarded()
		if err := ledger.Adjust(&u, delta); err != nil {
			return err
		}

		now := uc.d.Now()
		award := finalAward
		sub.Verified = true
		sub.FinalAward = &award
		sub.VerifiedAt = &now
		if err := tx.SaveSubmission(sub); err != nil {
			return err
		}

		badges := ledger.UnlockBadges(&u, uc.d.Badges)
		if err := tx.SaveUser(u); err != nil {
			return err
		}

		out = domain.Outcome{User: u, PointsAwarded: delta, NewBadges: badges}
		return nil
	})
	if err != nil {
		return domain.Outcome{}, err
	}

	if out.PointsAwarded > 0 {
		metrics.PointsAwarded.WithLabelValues("verification").Add(float64(out.PointsAwarded))
	}
	uc.d.Log.Info("submission_verified",
		zap.String("submission_id", submissionID),
		zap.String("user_id", out.User.ID),
		zap.Int("final_award", finalAward),
		zap.Int("delta", out.PointsAwarded),
	)
	return out, nil
}
