package store

import (
	"strings"

	"github.com/fardannozami/ecoplay/internal/domain"
)

func (tx *Tx) Users() ([]domain.User, error) {
	return load[domain.User](tx, domain.CollectionUsers, nil)
}

func (tx *Tx) PutUsers(users []domain.User) error {
	return stage[domain.User](tx, domain.CollectionUsers, users)
}

func (tx *Tx) Quizzes() ([]domain.Quiz, error) {
	return load[domain.Quiz](tx, domain.CollectionQuizzes, func() []domain.Quiz {
		return DefaultQuizzes(tx.store.now())
	})
}

func (tx *Tx) PutQuizzes(quizzes []domain.Quiz) error {
	return stage[domain.Quiz](tx, domain.CollectionQuizzes, quizzes)
}

func (tx *Tx) Submissions() ([]domain.Submission, error) {
	return load[domain.Submission](tx, domain.CollectionSubmissions, nil)
}

func (tx *Tx) PutSubmissions(subs []domain.Submission) error {
	return stage[domain.Submission](tx, domain.CollectionSubmissions, subs)
}

func (tx *Tx) Redemptions() ([]domain.Redemption, error) {
	return load[domain.Redemption](tx, domain.CollectionRedemptions, nil)
}

func (tx *Tx) PutRedemptions(rs []domain.Redemption) error {
	return stage[domain.Redemption](tx, domain.CollectionRedemptions, rs)
}

func (tx *Tx) WateringRecords() ([]domain.WateringRecord, error) {
	return load[domain.WateringRecord](tx, domain.CollectionWateringRecords, nil)
}

func (tx *Tx) PutWateringRecords(rs []domain.WateringRecord) error {
	return stage[domain.WateringRecord](tx, domain.CollectionWateringRecords, rs)
}

func (tx *Tx) Events() ([]domain.Event, error) {
	return load[domain.Event](tx, domain.CollectionEvents, nil)
}

func (tx *Tx) PutEvents(events []domain.Event) error {
	return stage[domain.Event](tx, domain.CollectionEvents, events)
}

// User returns a copy of the user with the given id.
func (tx *Tx) User(id string) (domain.User, error) {
	users, err := tx.Users()
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

// FindUserByLogin matches username or email, case-insensitively.
func (tx *Tx) FindUserByLogin(login string) (domain.User, bool, error) {
	users, err := tx.Users()
	if err != nil {
		return domain.User{}, false, err
	}
	login = strings.TrimSpace(login)
	for _, u := range users {
		if strings.EqualFold(u.Username, login) || (u.Email != "" && strings.EqualFold(u.Email, login)) {
			return u, true, nil
		}
	}
	return domain.User{}, false, nil
}

func (tx *Tx) FindUserByPhone(phone string) (domain.User, bool, error) {
	users, err := tx.Users()
	if err != nil {
		return domain.User{}, false, err
	}
	for _, u := range users {
		if u.Phone != "" && u.Phone == phone {
			return u, true, nil
		}
	}
	return domain.User{}, false, nil
}

// SaveUser replaces the stored user with the same id, or appends it.
func (tx *Tx) SaveUser(u domain.User) error {
	users, err := tx.Users()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = u
			return tx.PutUsers(users)
		}
	}
	return tx.PutUsers(append(users, u))
}

func (tx *Tx) Quiz(id string) (domain.Quiz, error) {
	quizzes, err := tx.Quizzes()
	if err != nil {
		return domain.Quiz{}, err
	}
	for _, q := range quizzes {
		if q.ID == id {
			return q, nil
		}
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func (tx *Tx) Event(id string) (domain.Event, error) {
	events, err := tx.Events()
	if err != nil {
		return domain.Event{}, err
	}
	for _, e := range events {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Event{}, domain.ErrEventNotFound
}

func (tx *Tx) SaveEvent(e domain.Event) error {
	events, err := tx.Events()
	if err != nil {
		return err
	}
	for i := range events {
		if events[i].ID == e.ID {
			events[i] = e
			return tx.PutEvents(events)
		}
	}
	return tx.PutEvents(append(events, e))
}

func (tx *Tx) Submission(id string) (domain.Submission, error) {
	subs, err := tx.Submissions()
	if err != nil {
		return domain.Submission{}, err
	}
	for _, s := range subs {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Submission{}, domain.ErrSubmissionNotFound
}

func (tx *Tx) SaveSubmission(s domain.Submission) error {
	subs, err := tx.Submissions()
	if err != nil {
		return err
	}
	for i := range subs {
		if subs[i].ID == s.ID {
			subs[i] = s
			return tx.PutSubmissions(subs)
		}
	}
	return tx.PutSubmissions(append(subs, s))
}

func (tx *Tx) AppendWateringRecord(r domain.WateringRecord) error {
	records, err := tx.WateringRecords()
	if err != nil {
		return err
	}
	return tx.PutWateringRecords(append(records, r))
}

func (tx *Tx) AppendRedemption(r domain.Redemption) error {
	rs, err := tx.Redemptions()
	if err != nil {
		return err
	}
	return tx.PutRedemptions(append(rs, r))
}

// UserWateringRecords returns the user's records in creation order.
func (tx *Tx) UserWateringRecords(userID string) ([]domain.WateringRecord, error) {
	all, err := tx.WateringRecords()
	if err != nil {
		return nil, err
	}
	var out []domain.WateringRecord
	for _, r := range all {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}
