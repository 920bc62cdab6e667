package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	webmodels "github.com/carrybid/carrybid/backend/models"
	"github.com/carrybid/carrybid/backend/utils"
	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/domain/listings"
	"github.com/carrybid/carrybid/internal/domain/media"
	"github.com/carrybid/carrybid/internal/domain/reviews"
	"github.com/carrybid/carrybid/internal/domain/users"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const defaultPostLimit = 50

// ListPosts returns open posts, featured first.
func ListPosts(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := listings.Filter{
			Type:        listings.Type(c.Query("type")),
			Origin:      c.Query("origin"),
			Destination: c.Query("destination"),
			Limit:       utils.QueryLimit(c, defaultPostLimit),
		}
		posts, err := webApp.App.Posts.ListOpen(c.Context(), filter)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, posts, "")
	}
}

// MyPosts lists every post of the caller, open or closed.
func MyPosts(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		posts, err := webApp.App.Posts.ListByOwner(c.Context(), sessionOf(c).UserID)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, posts, "")
	}
}

// CreatePost accepts a JSON body, or a multipart form carrying the JSON in
// the "post" field and an optional "image" file.
func CreatePost(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in listings.Input
		if err := parseForm(c, "post", &in); err != nil {
			return utils.SendBadRequest(c, "Invalid post payload", nil)
		}

		image, ok, err := utils.ReadImage(c, "image", media.CategoryItems)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		if ok {
			url, err := webApp.App.Blobs.Put(c.Context(), image)
			if err != nil {
				return utils.SendDomainError(c, err)
			}
			in.ItemImage = url
		}

		post, err := webApp.App.Posts.Create(c.Context(), sessionOf(c).Actor().Ref(), in)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendCreated(c, post, "Post created")
	}
}

// GetPost loads the post, then its bids, bid count and owner profile
// concurrently.
func GetPost(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.Context()
		post, err := webApp.App.Posts.Get(ctx, c.Params("id"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}

		detail := webmodels.PostDetail{Post: post}
		var (
			owner  *users.User
			rating reviews.Summary
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			detail.BidCount, err = webApp.App.Bids.CountForPost(gctx, post.ID)
			return err
		})
		g.Go(func() (err error) {
			detail.Bids, err = webApp.App.Bids.ListForPost(gctx, post.ID)
			return err
		})
		g.Go(func() (err error) {
			owner, err = webApp.App.Users.Get(gctx, post.Owner.ID)
			if errors.Is(err, users.ErrNotFound) {
				return nil
			}
			return err
		})
		g.Go(func() (err error) {
			rating, err = webApp.App.Reviews.Summary(gctx, post.Owner.ID)
			return err
		})
		if err := g.Wait(); err != nil {
			return utils.SendDomainError(c, err)
		}

		if owner != nil {
			detail.Owner = webmodels.NewPublicProfile(owner)
			detail.Owner.Rating = &rating
		}
		if detail.Bids == nil {
			detail.Bids = []bids.Bid{}
		}
		if viewer, ok := utils.ExtractUserSession(c); ok {
			for i := range detail.Bids {
				if b := &detail.Bids[i]; b.Bidder.ID == viewer.UserID && b.Active() {
					detail.ViewerBid = b
					break
				}
			}
		}
		return utils.SendSuccess(c, detail, "")
	}
}

func UpdatePost(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch listings.Patch
		if err := parseForm(c, "post", &patch); err != nil {
			return utils.SendBadRequest(c, "Invalid post payload", nil)
		}

		image, ok, err := utils.ReadImage(c, "image", media.CategoryItems)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		if ok {
			url, err := webApp.App.Blobs.Put(c.Context(), image)
			if err != nil {
				return utils.SendDomainError(c, err)
			}
			patch.ItemImage = &url
		}

		post, err := webApp.App.Posts.Update(c.Context(), sessionOf(c).Actor(), c.Params("id"), patch)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, post, "Post updated")
	}
}

func ClosePost(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		post, err := webApp.App.Posts.Close(c.Context(), sessionOf(c).Actor(), c.Params("id"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, post, "Post closed")
	}
}

func ReopenPost(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		post, err := webApp.App.Posts.Reopen(c.Context(), sessionOf(c).Actor(), c.Params("id"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, post, "Post reopened")
	}
}

// parseForm decodes a JSON body, or the JSON held in a multipart field.
func parseForm(c *fiber.Ctx, field string, v any) error {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		raw := c.FormValue(field)
		if raw == "" {
			return nil
		}
		return json.Unmarshal([]byte(raw), v)
	}
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(v)
}
