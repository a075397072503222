package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/fardannozami/ecoplay/internal/app/usecase"
	"github.com/fardannozami/ecoplay/internal/domain"
	"github.com/fardannozami/ecoplay/internal/infra/memory"
	"github.com/fardannozami/ecoplay/internal/session"
	"github.com/fardannozami/ecoplay/internal/store"
)

// demoAnswers scores 25 on the seeded quiz (10,10,10,5,5): questions 1, 2
// and 5 right.
var demoAnswers = []int{0, 3, 0, 1, 1}

var adminSession = domain.Session{Token: "admin", Admin: true}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time        { return c.now }
func (c *clock) advance(days int)      { c.now = c.now.AddDate(0, 0, days) }
func (c *clock) later(d time.Duration) { c.now = c.now.Add(d) }

// failingBackend fails writes to one collection once armed.
type failingBackend struct {
	*memory.CollectionBackend
	failOn string
}

func (b *failingBackend) Put(ctx context.Context, collection string, data []byte) error {
	if collection == b.failOn {
		return errors.New("quota exceeded")
	}
	return b.CollectionBackend.Put(ctx, collection, data)
}

type fixture struct {
	ctx     context.Context
	clock   *clock
	backend *failingBackend
	store   *store.Store
	deps    usecase.Deps

	auth        *usecase.AuthUsecase
	watering    *usecase.SubmitWateringUsecase
	quiz        *usecase.SubmitQuizAttemptUsecase
	activity    *usecase.SubmitActivityUsecase
	redeem      *usecase.RedeemRewardUsecase
	join        *usecase.JoinEventUsecase
	admin       *usecase.AdminUsecase
	leaderboard *usecase.GetLeaderboardUsecase
	profile     *usecase.GetProfileUsecase
	catalog     *usecase.CatalogUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := zaptest.NewLogger(t)
	backend := &failingBackend{CollectionBackend: memory.NewCollectionBackend()}
	st := store.New(backend, logger)
	ctx := context.Background()
	require.NoError(t, st.Init(ctx))

	clk := &clock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	seq := 0
	d := usecase.Deps{
		Store:    st,
		Log:      logger,
		Location: time.UTC,
		Now:      clk.Now,
		NewID: func(prefix string) string {
			seq++
			return fmt.Sprintf("%s_%d", prefix, seq)
		},
	}

	return &fixture{
		ctx:         ctx,
		clock:       clk,
		backend:     backend,
		store:       st,
		deps:        d,
		auth:        usecase.NewAuthUsecase(d, session.NewRegistry(time.Hour), "s3cret").WithHashCost(bcrypt.MinCost),
		watering:    usecase.NewSubmitWateringUsecase(d),
		quiz:        usecase.NewSubmitQuizAttemptUsecase(d),
		activity:    usecase.NewSubmitActivityUsecase(d),
		redeem:      usecase.NewRedeemRewardUsecase(d),
		join:        usecase.NewJoinEventUsecase(d),
		admin:       usecase.NewAdminUsecase(d),
		leaderboard: usecase.NewGetLeaderboardUsecase(d),
		profile:     usecase.NewGetProfileUsecase(d),
		catalog:     usecase.NewCatalogUsecase(d),
	}
}

func (f *fixture) chatUser(t *testing.T, phone, name string) domain.Session {
	t.Helper()
	sess, err := f.auth.EnsureChatUser(f.ctx, phone, name)
	require.NoError(t, err)
	return sess
}

func (f *fixture) user(t *testing.T, id string) domain.User {
	t.Helper()
	var u domain.User
	require.NoError(t, f.store.View(f.ctx, func(tx *store.Tx) error {
		var err error
		u, err = tx.User(id)
		return err
	}))
	return u
}

func (f *fixture) event(t *testing.T, title string) domain.Event {
	t.Helper()
	e, err := f.admin.CreateEvent(f.ctx, adminSession, usecase.EventInput{
		Title: title,
		Date:  f.clock.now.AddDate(0, 0, 7),
	})
	require.NoError(t, err)
	return e
}
