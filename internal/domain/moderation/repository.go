package moderation

import (
	"context"

	"github.com/carrybid/carrybid/internal/domain/actor"
	"github.com/carrybid/carrybid/internal/domain/users"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	// Archive copies the post and its bids into entry and deletes the live
	// records in one atomic write.
	Archive(ctx context.Context, postID string, entry Archive) (*Archive, error)
	// Restore recreates the archived post and bids with their original ids
	// and removes the entry in one atomic write.
	Restore(ctx context.Context, archiveID string) (*Archive, error)
	GetArchive(ctx context.Context, id string) (*Archive, error)
	ListArchive(ctx context.Context) ([]Archive, error)
}

type Users interface {
	SetBanned(ctx context.Context, id string, banned bool) (*users.User, error)
	ReviewVerification(ctx context.Context, id string, approve bool, reason string) (*users.User, users.VerificationStatus, error)
}

type Bids interface {
	Delete(ctx context.Context, by actor.Actor, bidID string) error
}
