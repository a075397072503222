package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fardannozami/ecoplay/internal/domain"
	"github.com/fardannozami/ecoplay/internal/store"
)

type JoinEventUsecase struct {
	d Deps
}

func NewJoinEventUsecase(d Deps) *JoinEventUsecase {
	return &JoinEventUsecase{d: d.withDefaults()}
}

func (uc *JoinEventUsecase) Execute(ctx context.Context, sess domain.Session, eventID string) (out domain.Outcome, err error) {
	defer func() { observe("event", err) }()

	if err := requireUser(sess); err != nil {
		return out, err
	}
	eventID = strings.TrimSpace(eventID)

	err = uc.d.Store.Update(ctx, func(tx *store.Tx) error {
		e, err := tx.Event(eventID)
		if err != nil {
			return err
		}
		u, err := tx.User(sess.UserID)
		if err != nil {
			return err
		}
		if e.HasParticipant(u.ID) || u.HasJoined(e.ID) {
			return domain.ErrAlreadyJoined
		}

		e.Participants = append(e.Participants, u.ID)
		if err := tx.SaveEvent(e); err != nil {
			return err
		}
		u.JoinedEvents = append(u.JoinedEvents, e.ID)
		if err := tx.SaveUser(u); err != nil {
			return err
		}

		out = domain.Outcome{User: u}
		return nil
	})
	if err != nil {
		return domain.Outcome{}, err
	}

	uc.d.Log.Info("event_joined", zap.String("user_id", out.User.ID), zap.String("event_id", eventID))
	return out, nil
}
