package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/fault"
	"github.com/carrybid/carrybid/internal/domain/media"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultCacheSize  = 1024
	minPasswordLength = 8
)

type Service interface {
	Register(ctx context.Context, name, email, password string) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	SignIn(ctx context.Context, identity Identity) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, by actor.Actor, id string, profile Profile) (*User, error)
	SubmitVerification(ctx context.Context, userID string, idType IDType, front, back media.Object) (*User, error)
	List(ctx context.Context, filter Filter) ([]User, error)
	SetBanned(ctx context.Context, id string, banned bool) (*User, error)
	ReviewVerification(ctx context.Context, id string, approve bool, reason string) (*User, VerificationStatus, error)
}

type Option func(*service)

// WithAdmins marks users signing in with one of emails as admins.
func WithAdmins(emails ...string) Option {
	return func(s *service) {
		for _, e := range emails {
			s.admins[normalizeEmail(e)] = true
		}
	}
}

func WithCacheSize(size int) Option {
	return func(s *service) { s.cacheSize = size }
}

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	repository Repository
	store      media.Store
	cache      *lru.Cache
	cacheSize  int
	admins     map[string]bool
	now        func() time.Time
}

func NewService(repository Repository, store media.Store, opts ...Option) *service {
	s := &service{
		repository: repository,
		store:      store,
		cacheSize:  defaultCacheSize,
		admins:     make(map[string]bool),
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache, _ = lru.New(s.cacheSize)
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) newUser(name, email, avatar string, verified bool) *User {
	return &User{
		ID:            uuid.NewString(),
		Name:          name,
		Avatar:        avatar,
		Email:         email,
		EmailVerified: verified,
		IsAdmin:       s.admins[email],
		Verification:  Verification{Status: VerificationUnsubmitted},
		CreatedAt:     s.now(),
	}
}

// Register creates a credential user.
func (s *service) Register(ctx context.Context, name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return nil, fault.Validation("name", "name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fault.Validation("email", "a valid email is required")
	}
	if len(password) < minPasswordLength {
		return nil, fault.Validation("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	if _, err := s.repository.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := s.newUser(name, email, "", false)
	user.PasswordHash = string(hash)
	if err := s.repository.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.cache.Add(user.ID, *user)
	return user, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repository.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Banned {
		return nil, ErrBanned
	}
	return user, nil
}

// SignIn upserts the user for a federated identity, matched by email.
func (s *service) SignIn(ctx context.Context, identity Identity) (*User, error) {
	email := normalizeEmail(identity.Email)
	if email == "" {
		return nil, fault.Validation("email", "identity has no email")
	}

	user, err := s.repository.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrNotFound):
		name := strings.TrimSpace(identity.Name)
		if name == "" {
			name = strings.SplitN(email, "@", 2)[0]
		}
		user = s.newUser(name, email, identity.Avatar, identity.EmailVerified)
		if err := s.repository.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		slog.Info("User created",
			slog.String("type", "sys"),
			slog.String("user_id", user.ID),
			slog.Bool("admin", user.IsAdmin))
	case err != nil:
		return nil, err
	default:
		if user.Banned {
			return nil, ErrBanned
		}
		if user.Avatar == "" {
			user.Avatar = identity.Avatar
		}
		user.EmailVerified = user.EmailVerified || identity.EmailVerified
		user.IsAdmin = user.IsAdmin || s.admins[email]
		if err := s.repository.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	s.cache.Add(user.ID, *user)
	return user, nil
}

func (s *service) Get(ctx context.Context, id string) (*User, error) {
	if v, ok := s.cache.Get(id); ok {
		u := v.(User)
		return &u, nil
	}
	user, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Add(id, *user)
	return user, nil
}

func (s *service) update(ctx context.Context, id string, fn func(*User) error) (*User, error) {
	user, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(user); err != nil {
		return nil, err
	}
	if err := s.repository.Update(ctx, user); err != nil {
		s.cache.Remove(id)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	s.cache.Add(id, *user)
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, by actor.Actor, id string, profile Profile) (*User, error) {
	if !by.Owns(id) {
		return nil, ErrNotSelf
	}
	return s.update(ctx, id, func(u *User) error {
		if profile.Name != nil {
			name := strings.TrimSpace(*profile.Name)
			if name == "" {
				return fault.Validation("name", "name cannot be empty")
			}
			u.Name = name
		}
		set := func(dst *string, v *string) {
			if v != nil {
				*dst = strings.TrimSpace(*v)
			}
		}
		set(&u.Avatar, profile.Avatar)
		set(&u.Profession, profile.Profession)
		set(&u.Education, profile.Education)
		set(&u.Hometown, profile.Hometown)
		set(&u.Bio, profile.Bio)
		return nil
	})
}

// SubmitVerification uploads both ID images and moves the user to pending.
// A new submission overwrites a rejected or pending one.
func (s *service) SubmitVerification(ctx context.Context, userID string, idType IDType, front, back media.Object) (*User, error) {
	if !idTypes[idType] {
		return nil, fault.Validation("id_type", "choose a valid ID type")
	}
	front.Category, back.Category = media.CategoryIdentity, media.CategoryIdentity
	if err := media.Validate("front_image", &front); err != nil {
		return nil, err
	}
	if err := media.Validate("back_image", &back); err != nil {
		return nil, err
	}

	current, err := s.repository.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current.Verification.Status == VerificationApproved {
		return nil, ErrAlreadyVerified
	}

	urls, err := media.PutAll(ctx, s.store, front, back)
	if err != nil {
		return nil, err
	}

	return s.update(ctx, userID, func(u *User) error {
		if u.Verification.Status == VerificationApproved {
			return ErrAlreadyVerified
		}
		now := s.now()
		u.Verification = Verification{
			Type:        idType,
			FrontImage:  urls[0],
			BackImage:   urls[1],
			Status:      VerificationPending,
			SubmittedAt: &now,
		}
		return nil
	})
}

func (s *service) List(ctx context.Context, filter Filter) ([]User, error) {
	return s.repository.List(ctx, filter)
}

// SetBanned toggles the ban flag. Existing content stays visible.
func (s *service) SetBanned(ctx context.Context, id string, banned bool) (*User, error) {
	return s.update(ctx, id, func(u *User) error {
		u.Banned = banned
		return nil
	})
}

// ReviewVerification approves or rejects a pending submission and returns
// the status it moved from.
func (s *service) ReviewVerification(ctx context.Context, id string, approve bool, reason string) (*User, VerificationStatus, error) {
	reason = strings.TrimSpace(reason)
	if !approve && reason == "" {
		return nil, "", ErrReasonRequired
	}

	var from VerificationStatus
	user, err := s.update(ctx, id, func(u *User) error {
		from = u.Verification.Status
		if from != VerificationPending {
			return ErrNotPending
		}
		now := s.now()
		u.Verification.ReviewedAt = &now
		if approve {
			u.Verification.Status = VerificationApproved
			u.Verification.RejectionReason = ""
		} else {
			u.Verification.Status = VerificationRejected
			u.Verification.RejectionReason = reason
		}
		return nil
	})
	return user, from, err
}
