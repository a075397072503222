package usecase

import (
	"errors"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/fardannozami/ecoplay/internal/domain"
	"github.com/fardannozami/ecoplay/internal/ledger"
	"github.com/fardannozami/ecoplay/internal/metrics"
	"github.com/fardannozami/ecoplay/internal/store"
)

// Deps is shared by every usecase. Zero fields get defaults.
type Deps struct {
	Store    *store.Store
	Log      *zap.Logger
	Location *time.Location // defines the calendar day
	Badges   []ledger.BadgeRule
	Now      func() time.Time
	NewID    func(prefix string) string
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.Badges == nil {
		d.Badges = ledger.DefaultBadgeRules
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = func(prefix string) string { return prefix + "_" + uuid.NewString() }
	}
	return d
}

var textPolicy = bluemonday.StrictPolicy()

// cleanText strips markup from free text typed by users.
func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

func requireUser(sess domain.Session) error {
	if sess.UserID == "" {
		return domain.ErrUserNotFound
	}
	return nil
}

func requireAdmin(sess domain.Session) error {
	if !sess.Admin {
		return domain.ErrForbidden
	}
	return nil
}

func observe(kind string, err error) {
	metrics.Activities.WithLabelValues(kind, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrDuplicateSubmission):
		return "duplicate"
	case errors.Is(err, domain.ErrInsufficientPoints):
		return "insufficient_points"
	case errors.Is(err, domain.ErrAlreadyJoined):
		return "already_joined"
	case errors.Is(err, domain.ErrStorageUnavailable):
		return "storage_unavailable"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrMissingEvidence),
		errors.Is(err, domain.ErrMissingNote):
		return "invalid"
	}
	return "error"
}
