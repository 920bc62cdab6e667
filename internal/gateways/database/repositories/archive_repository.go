package repositories

import (
	"context"
	"errors"

	"github.com/carrybid/carrybid/internal/domain/listings"
	"github.com/carrybid/carrybid/internal/domain/moderation"
	"github.com/carrybid/carrybid/internal/feed"
	"github.com/carrybid/carrybid/internal/gateways/database/models"
	"github.com/uptrace/bun"
)

type archiveRepository struct {
	db *bun.DB
}

var _ moderation.Repository = &archiveRepository{}

func NewArchiveRepository(db *bun.DB) *archiveRepository {
	return &archiveRepository{db: db}
}

// Archive moves the post and all of its bids into deleted_posts in one
// transaction.
func (r *archiveRepository) Archive(ctx context.Context, postID string, entry moderation.Archive) (*moderation.Archive, error) {
	err := writeTx(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		post := new(models.Post)
		if err := tx.NewSelect().Model(post).Where("id = ?", postID).For("UPDATE").Scan(ctx); err != nil {
			return handleError("archive", "post", listings.ErrNotFound, err)
		}

		var rows []models.Bid
		if err := tx.NewSelect().Model(&rows).Where("post_id = ?", postID).Order("created_at ASC").Scan(ctx); err != nil {
			return err
		}

		entry.PostID = postID
		entry.Post = post.Domain()
		entry.Bids = models.BidsDomain(rows)
		if _, err := tx.NewInsert().Model(models.NewDeletedPost(&entry)).Exec(ctx); err != nil {
			return err
		}

		if _, err := tx.NewDelete().Model((*models.Bid)(nil)).Where("post_id = ?", postID).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*models.Post)(nil)).Where("id = ?", postID).Exec(ctx); err != nil {
			return err
		}

		for _, b := range rows {
			if err := notify(ctx, tx, feed.Bids, feed.KindRemoved, b.ID); err != nil {
				return err
			}
		}
		return notify(ctx, tx, feed.Posts, feed.KindRemoved, postID)
	})
	if errors.Is(err, listings.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, handleError("archive", "post", listings.ErrNotFound, err)
	}
	return &entry, nil
}

// Restore reinserts the archived post and bids with their original ids and
// drops the archive entry.
func (r *archiveRepository) Restore(ctx context.Context, archiveID string) (*moderation.Archive, error) {
	var entry moderation.Archive
	err := writeTx(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		m := new(models.DeletedPost)
		if err := tx.NewSelect().Model(m).Where("id = ?", archiveID).For("UPDATE").Scan(ctx); err != nil {
			return handleError("restore", "archive", moderation.ErrArchiveNotFound, err)
		}
		entry = m.Domain()

		if _, err := tx.NewInsert().Model(models.NewPost(&entry.Post)).Exec(ctx); err != nil {
			return err
		}
		if len(entry.Bids) > 0 {
			rows := make([]*models.Bid, len(entry.Bids))
			for i := range entry.Bids {
				rows[i] = models.NewBid(&entry.Bids[i])
			}
			if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
				return err
			}
		}
		if _, err := tx.NewDelete().Model((*models.DeletedPost)(nil)).Where("id = ?", archiveID).Exec(ctx); err != nil {
			return err
		}

		if err := notify(ctx, tx, feed.Posts, feed.KindAdded, entry.PostID); err != nil {
			return err
		}
		for _, b := range entry.Bids {
			if err := notify(ctx, tx, feed.Bids, feed.KindAdded, b.ID); err != nil {
				return err
			}
		}
		return nil
	})
	switch {
	case err == nil:
		return &entry, nil
	case errors.Is(err, moderation.ErrArchiveNotFound):
		return nil, err
	case isUniqueViolation(err):
		return nil, moderation.ErrPostExists
	default:
		return nil, handleError("restore", "archive", moderation.ErrArchiveNotFound, err)
	}
}

func (r *archiveRepository) GetArchive(ctx context.Context, id string) (*moderation.Archive, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := new(models.DeletedPost)
	if err := r.db.NewSelect().Model(m).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, handleError("get", "archive", moderation.ErrArchiveNotFound, err)
	}
	a := m.Domain()
	return &a, nil
}

func (r *archiveRepository) ListArchive(ctx context.Context) ([]moderation.Archive, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []models.DeletedPost
	if err := r.db.NewSelect().Model(&rows).Order("deleted_at DESC").Scan(ctx); err != nil {
		return nil, handleError("list", "archive", moderation.ErrArchiveNotFound, err)
	}

	out := make([]moderation.Archive, len(rows))
	for i := range rows {
		out[i] = rows[i].Domain()
	}
	return out, nil
}
