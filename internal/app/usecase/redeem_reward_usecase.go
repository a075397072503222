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

type RedeemRewardUsecase struct {
	d Deps
}

func NewRedeemRewardUsecase(d Deps) *RedeemRewardUsecase {
	return &RedeemRewardUsecase{d: d.withDefaults()}
}

// Execute spends cost points on rewardName. Points never go negative: an
// unaffordable reward fails with ErrInsufficientPoints and nothing changes.
func (uc *RedeemRewardUsecase) Execute(ctx context.Context, sess domain.Session, rewardName string, cost int) (out domain.Outcome, err error) {
	defer func() { observe("redemption", err) }()

	if err := requireUser(sess); err != nil {
		return out, err
	}
	rewardName = strings.TrimSpace(rewardName)
	if rewardName == "" {
		return out, domain.Invalid("reward_name", "required")
	}
	if cost <= 0 {
		return out, domain.Invalid("cost", "must be positive")
	}

	var red domain.Redemption
	err = uc.d.Store.Update(ctx, func(tx *store.Tx) error {
		u, err := tx.User(sess.UserID)
		if err != nil {
			return err
		}
		if err := ledger.Spend(&u, cost); err != nil {
			return err
		}

		red = domain.Redemption{
			ID:         uc.d.NewID("r"),
			UserID:     u.ID,
			RewardName: rewardName,
			Cost:       cost,
			CreatedAt:  uc.d.Now(),
		}
		if err := tx.AppendRedemption(red); err != nil {
			return err
		}
		if err := tx.SaveUser(u); err != nil {
			return err
		}

		out = domain.Outcome{User: u}
		return nil
	})
	if err != nil {
		return domain.Outcome{}, err
	}

	metrics.PointsRedeemed.Add(float64(cost))
	uc.d.Log.Info("reward_redeemed",
		zap.String("user_id", out.User.ID),
		zap.String("reward", red.RewardName),
		zap.Int("cost", red.Cost),
		zap.Int("points", out.User.Points),
	)
	return out, nil
}
