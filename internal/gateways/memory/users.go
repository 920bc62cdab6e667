package memory

import (
	"context"
	"strings"

	"github.com/carrybid/carrybid/internal/domain/users"
)

type Users struct{ s *Store }

var _ users.Repository = (*Users)(nil)

func (r *Users) Create(_ context.Context, user *users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return users.ErrEmailTaken
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *Users) Get(_ context.Context, id string) (*users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	return &u, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, users.ErrNotFound
}

func (r *Users) Update(_ context.Context, user *users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return users.ErrNotFound
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *Users) List(_ context.Context, filter users.Filter) ([]users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]users.User, 0)
	for _, u := range r.s.users {
		if filter.Verification != "" && u.Verification.Status != filter.Verification {
			continue
		}
		if filter.Banned != nil && u.Banned != *filter.Banned {
			continue
		}
		if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" &&
			!strings.Contains(strings.ToLower(u.Name), q) && !strings.Contains(u.Email, q) {
			continue
		}
		out = append(out, u)
	}
	sortNewest(out, func(u users.User) int64 { return u.CreatedAt.UnixNano() })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
