package ledger

import "github.com/fardannozami/ecoplay/internal/domain"

func CanAfford(u domain.User, cost int) bool {
	return cost >= 0 && u.Points >= cost
}

// Award credits pts to u. Negative amounts are ignored; use Spend or Adjust.
func Award(u *domain.User, pts int) {
	if pts > 0 {
		u.Points += pts
	}
}

// Spend debits cost from u, refusing to go below zero.
func Spend(u *domain.User, cost int) error {
	if cost < 0 {
		return domain.Invalid("cost", "must not be negative")
	}
	if !CanAfford(*u, cost) {
		return domain.ErrInsufficientPoints
	}
	u.Points -= cost
	return nil
}

// Adjust applies a signed correction, as produced by submission verification.
func Adjust(u *domain.User, delta int) error {
	if delta >= 0 {
		Award(u, delta)
		return nil
	}
	return Spend(u, -delta)
}

// ScoreQuiz compares answers position by position. Missing or wrong answers
// score nothing.
func ScoreQuiz(q domain.Quiz, answers []int) (earned, correct int) {
	for i, question := range q.Questions {
		if i >= len(answers) {
			break
		}
		if answers[i] == question.Correct {
			earned += question.Value()
			correct++
		}
	}
	return earned, correct
}

// ExpectedPoints recomputes u's balance from the records it owns: every award
// minus every redemption.
func ExpectedPoints(u domain.User, watering []domain.WateringRecord, submissions []domain.Submission, redemptions []domain.Redemption) int {
	total := 0
	for _, r := range watering {
		if r.UserID == u.ID {
			total += r.Points
		}
	}
	for _, a := range u.QuizzesTaken {
		total += a.PointsEarned
	}
	for i := range submissions {
		if submissions[i].UserID == u.ID {
			total += submissions[i].PointsAwarded()
		}
	}
	for _, r := range redemptions {
		if r.UserID == u.ID {
			total -= r.Cost
		}
	}
	return total
}
