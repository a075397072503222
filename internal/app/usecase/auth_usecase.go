package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/mail"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fardannozami/ecoplay/internal/domain"
	"github.com/fardannozami/ecoplay/internal/session"
	"github.com/fardannozami/ecoplay/internal/store"
)

const minPasswordLength = 6

type SignUpInput struct {
	FullName        string `json:"full_name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	School          string `json:"school"`
	Grade           string `json:"grade"`
}

// AuthUsecase registers users and hands out sessions.
type AuthUsecase struct {
	d             Deps
	sessions      *session.Registry
	adminPassword string
	hashCost      int
}

func NewAuthUsecase(d Deps, sessions *session.Registry, adminPassword string) *AuthUsecase {
	return &AuthUsecase{
		d:             d.withDefaults(),
		sessions:      sessions,
		adminPassword: adminPassword,
		hashCost:      bcrypt.DefaultCost,
	}
}

// WithHashCost lowers the bcrypt cost, for tests.
func (uc *AuthUsecase) WithHashCost(cost int) *AuthUsecase {
	uc.hashCost = cost
	return uc
}

func (uc *AuthUsecase) SignUp(ctx context.Context, in SignUpInput) (u domain.User, err error) {
	defer func() { observe("signup", err) }()

	in.FullName = cleanText(in.FullName)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.School = cleanText(in.School)
	in.Grade = cleanText(in.Grade)

	switch {
	case in.FullName == "":
		return u, domain.Invalid("full_name", "required")
	case in.Username == "":
		return u, domain.Invalid("username", "required")
	case strings.ContainsAny(in.Username, " \t\n"):
		return u, domain.Invalid("username", "must not contain spaces")
	case in.Email == "":
		return u, domain.Invalid("email", "required")
	case len(in.Password) < minPasswordLength:
		return u, domain.Invalid("password", "must be at least 6 characters")
	case in.Password != in.ConfirmPassword:
		return u, domain.Invalid("confirm_password", "passwords do not match")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return u, domain.Invalid("email", "malformed address")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return u, err
	}

	err = uc.d.Store.Update(ctx, func(tx *store.Tx) error {
		users, err := tx.Users()
		if err != nil {
			return err
		}
		for _, existing := range users {
			if strings.EqualFold(existing.Username, in.Username) {
				return domain.ErrUsernameTaken
			}
			if existing.Email != "" && strings.EqualFold(existing.Email, in.Email) {
				return domain.ErrEmailTaken
			}
		}

		u = domain.User{
			ID:           uc.d.NewID("u"),
			Username:     in.Username,
			Email:        in.Email,
			FullName:     in.FullName,
			PasswordHash: string(hash),
			School:       in.School,
			Grade:        in.Grade,
			CreatedAt:    uc.d.Now(),
		}
		return tx.PutUsers(append(users, u))
	})
	if err != nil {
		return domain.User{}, err
	}

	uc.d.Log.Info("user_signed_up", zap.String("user_id", u.ID), zap.String("username", u.Username))
	return u, nil
}

// SignIn accepts a username or an email, case-insensitively.
func (uc *AuthUsecase) SignIn(ctx context.Context, login, password string) (domain.Session, domain.User, error) {
	var u domain.User
	err := uc.d.Store.View(ctx, func(tx *store.Tx) error {
		found, ok, err := tx.FindUserByLogin(login)
		if err != nil {
			return err
		}
		if !ok || found.PasswordHash == "" {
			return domain.ErrInvalidCredentials
		}
		u = found
		return nil
	})
	if err != nil {
		return domain.Session{}, domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return domain.Session{}, domain.User{}, domain.ErrInvalidCredentials
		}
		return domain.Session{}, domain.User{}, err
	}

	sess := uc.sessions.Create(u.ID, false)
	uc.d.Log.Info("user_signed_in", zap.String("user_id", u.ID))
	return sess, u, nil
}

// SignInAdmin is disabled when no admin password is configured.
func (uc *AuthUsecase) SignInAdmin(password string) (domain.Session, error) {
	if uc.adminPassword == "" || subtle.ConstantTimeCompare([]byte(password), []byte(uc.adminPassword)) != 1 {
		uc.d.Log.Warn("admin_sign_in_rejected")
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	sess := uc.sessions.Create("", true)
	uc.d.Log.Info("admin_signed_in")
	return sess, nil
}

func (uc *AuthUsecase) SignOut(token string) {
	uc.sessions.Revoke(token)
}

// Authenticate resolves a session token.
func (uc *AuthUsecase) Authenticate(token string) (domain.Session, bool) {
	if token == "" {
		return domain.Session{}, false
	}
	return uc.sessions.Get(token)
}

// EnsureChatUser returns the session of the chat user behind phone,
// registering them on first contact. Chat users have no password.
func (uc *AuthUsecase) EnsureChatUser(ctx context.Context, phone, displayName string) (domain.Session, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return domain.Session{}, domain.Invalid("phone", "required")
	}
	displayName = cleanText(displayName)
	if displayName == "" {
		displayName = phone
	}

	var u domain.User
	created := false
	err := uc.d.Store.Update(ctx, func(tx *store.Tx) error {
		found, ok, err := tx.FindUserByPhone(phone)
		if err != nil {
			return err
		}
		if ok {
			u = found
			if u.FullName == displayName {
				return nil
			}
			u.FullName = displayName
			return tx.SaveUser(u)
		}

		username := phone
		if _, taken, err := tx.FindUserByLogin(username); err != nil {
			return err
		} else if taken {
			username = "wa_" + phone
		}
		u = domain.User{
			ID:        uc.d.NewID("u"),
			Username:  username,
			FullName:  displayName,
			Phone:     phone,
			CreatedAt: uc.d.Now(),
		}
		created = true
		return tx.SaveUser(u)
	})
	if err != nil {
		return domain.Session{}, err
	}

	if created {
		uc.d.Log.Info("chat_user_registered", zap.String("user_id", u.ID), zap.String("phone", phone))
	}
	return domain.Session{UserID: u.ID}, nil
}
