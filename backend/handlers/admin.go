package handlers

import (
	"strconv"

	webmodels "github.com/carrybid/carrybid/backend/models"
	"github.com/carrybid/carrybid/backend/utils"
	"github.com/carrybid/carrybid/internal/domain/users"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultUserLimit  = 100
	defaultAuditLimit = 50
)

// ArchivePost soft-deletes a post together with its bids.
func ArchivePost(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.ReasonRequest
		if err := parseForm(c, "reason", &req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		entry, err := webApp.App.Moderation.SoftDeletePost(c.Context(), sessionOf(c).Actor(), c.Params("id"), req.Reason)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, entry, "Post archived")
	}
}

func ListArchive(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := webApp.App.Moderation.ListArchive(c.Context(), sessionOf(c).Actor())
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, list, "")
	}
}

func GetArchive(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entry, err := webApp.App.Moderation.GetArchive(c.Context(), sessionOf(c).Actor(), c.Params("id"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, entry, "")
	}
}

// RestoreArchive brings an archived post and its bids back with their
// original ids.
func RestoreArchive(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entry, err := webApp.App.Moderation.RestorePost(c.Context(), sessionOf(c).Actor(), c.Params("id"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, entry, "Post restored")
	}
}

func SetFeatured(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.FeaturedRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		post, err := webApp.App.Posts.SetFeatured(c.Context(), sessionOf(c).Actor(), c.Params("id"), req.Featured)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, post, "")
	}
}

// ListUsers filters users by ?q=, ?verification= and ?banned=.
func ListUsers(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := users.Filter{
			Query:        c.Query("q"),
			Verification: users.VerificationStatus(c.Query("verification")),
			Limit:        utils.QueryLimit(c, defaultUserLimit),
		}
		if raw := c.Query("banned"); raw != "" {
			banned, err := strconv.ParseBool(raw)
			if err != nil {
				return utils.SendBadRequest(c, "banned must be true or false", nil)
			}
			filter.Banned = &banned
		}

		list, err := webApp.App.Users.List(c.Context(), filter)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, list, "")
	}
}

// PendingVerifications lists users waiting for identity review.
func PendingVerifications(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := webApp.App.Users.List(c.Context(), users.Filter{
			Verification: users.VerificationPending,
			Limit:        utils.QueryLimit(c, defaultUserLimit),
		})
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, list, "")
	}
}

func ApproveVerification(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := webApp.App.Moderation.ApproveIdentity(c.Context(), sessionOf(c).Actor(), c.Params("id"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, user, "Identity approved")
	}
}

func RejectVerification(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.ReasonRequest
		if err := parseForm(c, "reason", &req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		user, err := webApp.App.Moderation.RejectIdentity(c.Context(), sessionOf(c).Actor(), c.Params("id"), req.Reason)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, user, "Identity rejected")
	}
}

func BanUser(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := webApp.App.Moderation.BanUser(c.Context(), sessionOf(c).Actor(), c.Params("id"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, user, "User banned")
	}
}

func UnbanUser(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := webApp.App.Moderation.UnbanUser(c.Context(), sessionOf(c).Actor(), c.Params("id"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, user, "User unbanned")
	}
}

func DeleteBid(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := webApp.App.Moderation.DeleteBid(c.Context(), sessionOf(c).Actor(), c.Params("id")); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendNoContent(c)
	}
}

// AuditLog returns the most recent moderation and bid actions.
func AuditLog(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := webApp.App.Moderation.Audit(c.Context(), sessionOf(c).Actor(), utils.QueryLimit(c, defaultAuditLimit))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, entries, "")
	}
}
