package repositories

import (
	"context"
	"fmt"

	"github.com/carrybid/carrybid/internal/domain/users"
	"github.com/carrybid/carrybid/internal/gateways/database/models"
	"github.com/uptrace/bun"
)

type userRepository struct {
	db *bun.DB
}

var _ users.Repository = &userRepository{}

func NewUserRepository(db *bun.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *users.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.db.NewInsert().Model(models.NewUser(user)).Exec(ctx)
	if isUniqueViolation(err) {
		return users.ErrEmailTaken
	}
	return handleError("create", "user", users.ErrNotFound, err)
}

func (r *userRepository) get(ctx context.Context, column, value string) (*users.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := new(models.User)
	if err := r.db.NewSelect().Model(m).Where("? = ?", bun.Ident(column), value).Scan(ctx); err != nil {
		return nil, handleError("get", "user", users.ErrNotFound, err)
	}
	u := m.Domain()
	return &u, nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*users.User, error) {
	return r.get(ctx, "id", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.get(ctx, "email", email)
}

func (r *userRepository) Update(ctx context.Context, user *users.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.NewUpdate().Model(models.NewUser(user)).WherePK().Exec(ctx)
	if err != nil {
		return handleError("update", "user", users.ErrNotFound, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, filter users.Filter) ([]users.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []models.User
	q := r.db.NewSelect().Model(&rows).Order("created_at DESC")
	if filter.Verification != "" {
		q = q.Where("verification->>'status' = ?", filter.Verification)
	}
	if filter.Banned != nil {
		q = q.Where("banned = ?", *filter.Banned)
	}
	if filter.Query != "" {
		like := fmt.Sprintf("%%%s%%", filter.Query)
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("name ILIKE ?", like).WhereOr("email ILIKE ?", like)
		})
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, handleError("list", "user", users.ErrNotFound, err)
	}

	out := make([]users.User, len(rows))
	for i := range rows {
		out[i] = rows[i].Domain()
	}
	return out, nil
}
