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

type SubmitActivityUsecase struct {
	d Deps
}

func NewSubmitActivityUsecase(d Deps) *SubmitActivityUsecase {
	return &SubmitActivityUsecase{d: d.withDefaults()}
}

// Execute stores a generic eco activity and credits the base award right
// away. An administrator settles the final award later (VerifySubmission).
func (uc *SubmitActivityUsecase) Execute(ctx context.Context, sess domain.Session, activityType, note, photoRef string) (out domain.Outcome, err error) {
	defer func() { observe("activity", err) }()

	if err := requireUser(sess); err != nil {
		return out, err
	}
	typ, err := domain.ParseActivityType(activityType)
	if err != nil {
		return out, err
	}
	photoRef = strings.TrimSpace(photoRef)
	if photoRef == "" {
		return out, domain.ErrMissingEvidence
	}
	note = cleanText(note)
	if note == "" {
		return out, domain.ErrMissingNote
	}

	var sub domain.Submission
	err = uc.d.Store.Update(ctx, func(tx *store.Tx) error {
		u, err := tx.User(sess.UserID)
		if err != nil {
			return err
		}

		sub = domain.Submission{
			ID:           uc.d.NewID("s"),
			UserID:       u.ID,
			Type:         typ,
			Note:         note,
			PhotoRef:     photoRef,
			CreatedAt:    uc.d.Now(),
			InitialAward: domain.SubmissionBasePoints,
		}
		if err := tx.SaveSubmission(sub); err != nil {
			return err
		}

		u.Submissions = append(u.Submissions, sub.ID)
		ledger.Award(&u, sub.InitialAward)
		badges := ledger.UnlockBadges(&u, uc.d.Badges)
		if err := tx.SaveUser(u); err != nil {
			return err
		}

		out = domain.Outcome{User: u, PointsAwarded: sub.InitialAward, NewBadges: badges}
		return nil
	})
	if err != nil {
		return domain.Outcome{}, err
	}

	metrics.PointsAwarded.WithLabelValues("activity").Add(float64(out.PointsAwarded))
	uc.d.Log.Info("activity_submitted",
		zap.String("user_id", out.User.ID),
		zap.String("submission_id", sub.ID),
		zap.String("type", string(sub.Type)),
	)
	return out, nil
}
