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

type SubmitWateringUsecase struct {
	d Deps
}

func NewSubmitWateringUsecase(d Deps) *SubmitWateringUsecase {
	return &SubmitWateringUsecase{d: d.withDefaults()}
}

// Execute records today's watering for the session user. One watering per
// calendar day; a second one fails with ErrDuplicateSubmission.
func (uc *SubmitWateringUsecase) Execute(ctx context.Context, sess domain.Session, photoRef, note string) (out domain.Outcome, err error) {
	defer func() { observe("watering", err) }()

	if err := requireUser(sess); err != nil {
		return out, err
	}
	photoRef = strings.TrimSpace(photoRef)
	if photoRef == "" {
		return out, domain.ErrMissingEvidence
	}
	note = cleanText(note)
	now := uc.d.Now()

	err = uc.d.Store.Update(ctx, func(tx *store.Tx) error {
		u, err := tx.User(sess.UserID)
		if err != nil {
			return err
		}
		records, err := tx.UserWateringRecords(u.ID)
		if err != nil {
			return err
		}
		if ledger.WateredOn(records, now, uc.d.Location) {
			return domain.ErrDuplicateSubmission
		}

		rec := domain.WateringRecord{
			ID:        uc.d.NewID("w"),
			UserID:    u.ID,
			Timestamp: now,
			PhotoRef:  photoRef,
			Note:      note,
			Points:    domain.WateringPoints,
		}
		if err := tx.AppendWateringRecord(rec); err != nil {
			return err
		}

		ledger.Award(&u, rec.Points)
		u.WateringStreak = ledger.ComputeStreak(append(records, rec), uc.d.Location)
		last := now
		u.LastWateringDate = &last
		badges := ledger.UnlockBadges(&u, uc.d.Badges)
		if err := tx.SaveUser(u); err != nil {
			return err
		}

		out = domain.Outcome{User: u, PointsAwarded: rec.Points, NewBadges: badges}
		return nil
	})
	if err != nil {
		return domain.Outcome{}, err
	}

	metrics.PointsAwarded.WithLabelValues("watering").Add(float64(out.PointsAwarded))
	uc.d.Log.Info("watering_submitted",
		zap.String("user_id", out.User.ID),
		zap.Int("streak", out.User.WateringStreak),
		zap.Int("points", out.User.Points),
		zap.Strings("new_badges", out.NewBadges),
	)
	return out, nil
}
