package handlers

import (
	webmodels "github.com/carrybid/carrybid/backend/models"
	"github.com/carrybid/carrybid/backend/utils"
	"github.com/carrybid/carrybid/internal/domain/fault"
	"github.com/carrybid/carrybid/internal/domain/media"
	"github.com/carrybid/carrybid/internal/domain/reviews"
	"github.com/carrybid/carrybid/internal/domain/users"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const defaultSuggestLimit = 8

// UpdateProfile patches the caller's profile. A new avatar may be uploaded
// as the "avatar" multipart field.
func UpdateProfile(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var profile users.Profile
		if err := parseForm(c, "profile", &profile); err != nil {
			return utils.SendBadRequest(c, "Invalid profile payload", nil)
		}

		avatar, ok, err := utils.ReadImage(c, "avatar", media.CategoryAvatars)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		if ok {
			url, err := webApp.App.Blobs.Put(c.Context(), avatar)
			if err != nil {
				return utils.SendDomainError(c, err)
			}
			profile.Avatar = &url
		}

		session := sessionOf(c)
		user, err := webApp.App.Users.UpdateProfile(c.Context(), session.Actor(), session.UserID, profile)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, user, "Profile updated")
	}
}

// SubmitVerification uploads both sides of an identity document.
func SubmitVerification(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		front, ok, err := utils.ReadImage(c, "front_image", media.CategoryIdentity)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		if !ok {
			return utils.SendDomainError(c, fault.Validation("front_image", "image is required"))
		}
		back, ok, err := utils.ReadImage(c, "back_image", media.CategoryIdentity)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		if !ok {
			return utils.SendDomainError(c, fault.Validation("back_image", "image is required"))
		}

		idType := users.IDType(c.FormValue("id_type"))
		user, err := webApp.App.Users.SubmitVerification(c.Context(), sessionOf(c).UserID, idType, front, back)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, user.Verification, "Verification submitted")
	}
}

// PublicProfile shows another user with their rating.
func PublicProfile(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var (
			user   *users.User
			rating reviews.Summary
		)
		g, gctx := errgroup.WithContext(c.Context())
		g.Go(func() (err error) {
			user, err = webApp.App.Users.Get(gctx, id)
			return err
		})
		g.Go(func() (err error) {
			rating, err = webApp.App.Reviews.Summary(gctx, id)
			return err
		})
		if err := g.Wait(); err != nil {
			return utils.SendDomainError(c, err)
		}

		profile := webmodels.NewPublicProfile(user)
		profile.Rating = &rating
		return utils.SendSuccess(c, profile, "")
	}
}

func ListUserReviews(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := webApp.App.Reviews.ListForUser(c.Context(), c.Params("id"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, list, "")
	}
}

// CreateReview rates the other party of an accepted bid.
func CreateReview(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.ReviewRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		review, err := webApp.App.Reviews.Create(c.Context(), sessionOf(c).Actor().Ref(), req.BidID, req.Rating, req.Comment)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendCreated(c, review, "Review saved")
	}
}

// SuggestLocations autocompletes city names.
func SuggestLocations(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		matches := webApp.App.Locations.Suggest(c.Query("q"), utils.QueryLimit(c, defaultSuggestLimit))
		if matches == nil {
			matches = []string{}
		}
		return utils.SendSuccess(c, matches, "")
	}
}
