package users

import (
	"fmt"
	"time"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/fault"
)

type VerificationStatus string

const (
	VerificationUnsubmitted VerificationStatus = "unsubmitted"
	VerificationPending     VerificationStatus = "pending"
	VerificationApproved    VerificationStatus = "approved"
	VerificationRejected    VerificationStatus = "rejected"
)

type IDType string

const (
	IDAadhaar        IDType = "aadhaar"
	IDPassport       IDType = "passport"
	IDDrivingLicense IDType = "driving_license"
	IDVoterID        IDType = "voter_id"
	IDOther          IDType = "other"
)

var idTypes = map[IDType]bool{
	IDAadhaar:        true,
	IDPassport:       true,
	IDDrivingLicense: true,
	IDVoterID:        true,
	IDOther:          true,
}

var (
	ErrNotFound           = fmt.Errorf("user %w", fault.ErrNotFound)
	ErrBanned             = fmt.Errorf("%w: account is banned", fault.ErrForbidden)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", fault.ErrForbidden)
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", fault.ErrConflict)
	ErrNotSelf            = fmt.Errorf("%w: cannot change another user's profile", fault.ErrForbidden)
	ErrAlreadyVerified    = fmt.Errorf("%w: identity already approved", fault.ErrInvalidState)
	ErrNotPending         = fmt.Errorf("%w: identity verification is not pending", fault.ErrInvalidState)
	ErrReasonRequired     = fault.Validation("reason", "a rejection reason is required")
)

type Verification struct {
	Type            IDType             `json:"type,omitempty"`
	FrontImage      string             `json:"front_image,omitempty"`
	BackImage       string             `json:"back_image,omitempty"`
	Status          VerificationStatus `json:"status"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
	SubmittedAt     *time.Time         `json:"submitted_at,omitempty"`
	ReviewedAt      *time.Time         `json:"reviewed_at,omitempty"`
}

type User struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Avatar        string       `json:"avatar,omitempty"`
	Email         string       `json:"email"`
	EmailVerified bool         `json:"email_verified"`
	Profession    string       `json:"profession,omitempty"`
	Education     string       `json:"education,omitempty"`
	Hometown      string       `json:"hometown,omitempty"`
	Bio           string       `json:"bio,omitempty"`
	Banned        bool         `json:"banned"`
	IsAdmin       bool         `json:"is_admin"`
	PasswordHash  string       `json:"-"`
	Verification  Verification `json:"verification"`
	CreatedAt     time.Time    `json:"created_at"`
}

func (u User) Actor() actor.Actor {
	return actor.Actor{ID: u.ID, Name: u.Name, Avatar: u.Avatar, Admin: u.IsAdmin}
}

func (u User) Ref() actor.Ref {
	return actor.Ref{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}

// Identity is what the auth provider reports for a signed-in user.
type Identity struct {
	Subject       string
	Name          string
	Avatar        string
	Email         string
	EmailVerified bool
}

type Profile struct {
	Name       *string `json:"name,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
	Profession *string `json:"profession,omitempty"`
	Education  *string `json:"education,omitempty"`
	Hometown   *string `json:"hometown,omitempty"`
	Bio        *string `json:"bio,omitempty"`
}

type Filter struct {
	Query        string
	Verification VerificationStatus
	Banned       *bool
	Limit        int
}
