package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fardannozami/ecoplay/internal/domain"
	"github.com/fardannozami/ecoplay/internal/store"
)

func TestSubmitWatering_FirstWatering(t *testing.T) {
	f := newFixture(t)
	sess := f.chatUser(t, "6281100", "Alice")

	out, err := f.watering.Execute(f.ctx, sess, "wa:msg1", "roses")
	require.NoError(t, err)
	require.Equal(t, 15, out.PointsAwarded)
	require.Equal(t, 15, out.User.Points)
	require.Equal(t, 1, out.User.WateringStreak)
	require.NotNil(t, out.User.LastWateringDate)
	require.True(t, out.User.LastWateringDate.Equal(f.clock.now))

	// Persisted, not just returned
	require.Equal(t, out.User, f.user(t, sess.UserID))
}

func TestSubmitWatering_SameDayRejected(t *testing.T) {
	f := newFixture(t)
	sess := f.chatUser(t, "6281100", "Alice")

	_, err := f.watering.Execute(f.ctx, sess, "wa:msg1", "")
	require.NoError(t, err)

	f.clock.later(10 * time.Hour)
	_, err = f.watering.Execute(f.ctx, sess, "wa:msg2", "again")
	require.ErrorIs(t, err, domain.ErrDuplicateSubmission)

	u := f.user(t, sess.UserID)
	require.Equal(t, 15, u.Points)
	require.Equal(t, 1, u.WateringStreak)

	var records []domain.WateringRecord
	require.NoError(t, f.store.View(f.ctx, func(tx *store.Tx) error {
		var err error
		records, err = tx.WateringRecords()
		return err
	}))
	require.Len(t, records, 1)
}

func TestSubmitWatering_GapResetsStreak(t *testing.T) {
	f := newFixture(t)
	sess := f.chatUser(t, "6281100", "Alice")

	steps := []struct {
		advance    int
		wantPoints int
		wantStreak int
	}{
		{advance: 0, wantPoints: 15, wantStreak: 1},
		{advance: 1, wantPoints: 30, wantStreak: 2},
		{advance: 2, wantPoints: 45, wantStreak: 1}, // day 3 skipped
	}
	for i, s := range steps {
		f.clock.advance(s.advance)
		out, err := f.watering.Execute(f.ctx, sess, "wa:photo", "")
		require.NoError(t, err, "step %d", i)
		require.Equal(t, s.wantPoints, out.User.Points, "step %d", i)
		require.Equal(t, s.wantStreak, out.User.WateringStreak, "step %d", i)
	}
}

func TestSubmitWatering_StreakUnlocksBadge(t *testing.T) {
	f := newFixture(t)
	sess := f.chatUser(t, "6281100", "Alice")

	var out domain.Outcome
	for day := 0; day < 3; day++ {
		var err error
		out, err = f.watering.Execute(f.ctx, sess, "wa:photo", "")
		require.NoError(t, err)
		f.clock.advance(1)
	}
	require.Equal(t, []string{"Seedling Streak"}, out.NewBadges)
	require.Contains(t, out.User.Badges, "Seedling Streak")
}

func TestSubmitWatering_RequiresPhoto(t *testing.T) {
	f := newFixture(t)
	sess := f.chatUser(t, "6281100", "Alice")

	_, err := f.watering.Execute(f.ctx, sess, "  ", "no photo")
	require.ErrorIs(t, err, domain.ErrMissingEvidence)
	require.Zero(t, f.user(t, sess.UserID).Points)
}

func TestSubmitWatering_UnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.watering.Execute(f.ctx, domain.Session{UserID: "u_missing"}, "wa:photo", "")
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = f.watering.Execute(f.ctx, domain.Session{}, "wa:photo", "")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSubmitWatering_StorageFailureLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	sess := f.chatUser(t, "6281100", "Alice")

	f.backend.failOn = domain.CollectionUsers
	_, err := f.watering.Execute(f.ctx, sess, "wa:photo", "")
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)

	f.backend.failOn = ""
	var records []domain.WateringRecord
	require.NoError(t, f.store.View(f.ctx, func(tx *store.Tx) error {
		var err error
		records, err = tx.WateringRecords()
		return err
	}))
	require.Empty(t, records)
	require.Zero(t, f.user(t, sess.UserID).Points)

	// The day is still open once storage recovers
	out, err := f.watering.Execute(f.ctx, sess, "wa:photo", "")
	require.NoError(t, err)
	require.Equal(t, 15, out.User.Points)
}

func TestSubmitWatering_NoteIsSanitized(t *testing.T) {
	f := newFixture(t)
	sess := f.chatUser(t, "6281100", "Alice")

	_, err := f.watering.Execute(f.ctx, sess, "wa:photo", "<b>tomatoes</b><script>x()</script>")
	require.NoError(t, err)

	var records []domain.WateringRecord
	require.NoError(t, f.store.View(f.ctx, func(tx *store.Tx) error {
		var err error
		records, err = tx.UserWateringRecords(sess.UserID)
		return err
	}))
	require.Len(t, records, 1)
	require.Equal(t, "tomatoes", records[0].Note)
}
