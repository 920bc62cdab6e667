package repositories

import (
	"context"
	"errors"

	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/feed"
	"github.com/carrybid/carrybid/internal/gateways/database/models"
	"github.com/uptrace/bun"
)

type bidRepository struct {
	db *bun.DB
}

var _ bids.Repository = &bidRepository{}

func NewBidRepository(db *bun.DB) *bidRepository {
	return &bidRepository{db: db}
}

func (r *bidRepository) Create(ctx context.Context, bid *bids.Bid) error {
	err := writeTx(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(models.NewBid(bid)).Exec(ctx); err != nil {
			return err
		}
		return notify(ctx, tx, feed.Bids, feed.KindAdded, bid.ID)
	})
	if isUniqueViolation(err) {
		return bids.ErrActiveBid
	}
	return handleError("create", "bid", bids.ErrNotFound, err)
}

func (r *bidRepository) Get(ctx context.Context, id string) (*bids.Bid, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := new(models.Bid)
	if err := r.db.NewSelect().Model(m).Where("id = ?", id).Scan(ctx); err != nil {
		return nil, handleError("get", "bid", bids.ErrNotFound, err)
	}
	b := m.Domain()
	return &b, nil
}

func (r *bidRepository) Update(ctx context.Context, bid *bids.Bid) error {
	err := writeTx(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().Model(models.NewBid(bid)).WherePK().Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return bids.ErrNotFound
		}
		return notify(ctx, tx, feed.Bids, feed.KindModified, bid.ID)
	})
	if errors.Is(err, bids.ErrNotFound) {
		return err
	}
	return handleError("update", "bid", bids.ErrNotFound, err)
}

func (r *bidRepository) Delete(ctx context.Context, id string) error {
	err := writeTx(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().Model((*models.Bid)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return bids.ErrNotFound
		}
		return notify(ctx, tx, feed.Bids, feed.KindRemoved, id)
	})
	if errors.Is(err, bids.ErrNotFound) {
		return err
	}
	return handleError("delete", "bid", bids.ErrNotFound, err)
}

func (r *bidRepository) FindActive(ctx context.Context, postID, bidderID string) (*bids.Bid, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := new(models.Bid)
	err := r.db.NewSelect().
		Model(m).
		Where("post_id = ?", postID).
		Where("bidder_id = ?", bidderID).
		Where("status <> ?", string(bids.StatusRejected)).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, handleError("find active", "bid", bids.ErrNotFound, err)
	}
	b := m.Domain()
	return &b, nil
}

func (r *bidRepository) list(ctx context.Context, column, value string) ([]bids.Bid, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []models.Bid
	err := r.db.NewSelect().
		Model(&rows).
		Where("? = ?", bun.Ident(column), value).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, handleError("list", "bid", bids.ErrNotFound, err)
	}
	return models.BidsDomain(rows), nil
}

func (r *bidRepository) ListByPost(ctx context.Context, postID string) ([]bids.Bid, error) {
	return r.list(ctx, "post_id", postID)
}

func (r *bidRepository) ListByBidder(ctx context.Context, bidderID string) ([]bids.Bid, error) {
	return r.list(ctx, "bidder_id", bidderID)
}

func (r *bidRepository) ListByPostOwner(ctx context.Context, ownerID string) ([]bids.Bid, error) {
	return r.list(ctx, "post_owner_id", ownerID)
}

func (r *bidRepository) CountByPost(ctx context.Context, postID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.db.NewSelect().Model((*models.Bid)(nil)).Where("post_id = ?", postID).Count(ctx)
	if err != nil {
		return 0, handleError("count", "bid", bids.ErrNotFound, err)
	}
	return n, nil
}
