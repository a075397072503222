package usecase

import (
	"context"
	"sort"

	"github.com/fardannozami/ecoplay/internal/domain"
	"github.com/fardannozami/ecoplay/internal/store"
)

// CatalogUsecase lists what users can act on: quizzes, events and rewards.
type CatalogUsecase struct {
	d Deps
}

func NewCatalogUsecase(d Deps) *CatalogUsecase {
	return &CatalogUsecase{d: d.withDefaults()}
}

func (uc *CatalogUsecase) Quizzes(ctx context.Context) ([]domain.Quiz, error) {
	var quizzes []domain.Quiz
	err := uc.d.Store.View(ctx, func(tx *store.Tx) error {
		var err error
		quizzes, err = tx.Quizzes()
		return err
	})
	return quizzes, err
}

// Events returns events ordered by date.
func (uc *CatalogUsecase) Events(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	err := uc.d.Store.View(ctx, func(tx *store.Tx) error {
		var err error
		events, err = tx.Events()
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

func (uc *CatalogUsecase) Rewards() []domain.Reward {
	return domain.RewardCatalog()
}
