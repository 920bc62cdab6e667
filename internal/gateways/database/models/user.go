package models

import (
	"time"

	"github.com/carrybid/carrybid/internal/domain/users"
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID            string             `bun:"id,pk,type:text"`
	Name          string             `bun:"name,notnull"`
	Avatar        string             `bun:"avatar"`
	Email         string             `bun:"email,notnull,unique"`
	EmailVerified bool               `bun:"email_verified,notnull,default:false"`
	Profession    string             `bun:"profession"`
	Education     string             `bun:"education"`
	Hometown      string             `bun:"hometown"`
	Bio           string             `bun:"bio"`
	Banned        bool               `bun:"banned,notnull,default:false"`
	IsAdmin       bool               `bun:"is_admin,notnull,default:false"`
	PasswordHash  string             `bun:"password_hash"`
	Verification  users.Verification `bun:"verification,type:jsonb"`
	CreatedAt     time.Time          `bun:"created_at,notnull,default:current_timestamp"`
}

func NewUser(u *users.User) *User {
	return &User{
		ID:            u.ID,
		Name:          u.Name,
		Avatar:        u.Avatar,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Profession:    u.Profession,
		Education:     u.Education,
		Hometown:      u.Hometown,
		Bio:           u.Bio,
		Banned:        u.Banned,
		IsAdmin:       u.IsAdmin,
		PasswordHash:  u.PasswordHash,
		Verification:  u.Verification,
		CreatedAt:     u.CreatedAt,
	}
}

func (m *User) Domain() users.User {
	return users.User{
		ID:            m.ID,
		Name:          m.Name,
		Avatar:        m.Avatar,
		Email:         m.Email,
		EmailVerified: m.EmailVerified,
		Profession:    m.Profession,
		Education:     m.Education,
		Hometown:      m.Hometown,
		Bio:           m.Bio,
		Banned:        m.Banned,
		IsAdmin:       m.IsAdmin,
		PasswordHash:  m.PasswordHash,
		Verification:  m.Verification,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}
