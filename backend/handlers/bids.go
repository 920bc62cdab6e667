package handlers

import (
	webmodels "github.com/carrybid/carrybid/backend/models"
	"github.com/carrybid/carrybid/backend/utils"
	"github.com/gofiber/fiber/v2"
)

// PlaceBid creates the caller's bid on a post or updates their active one.
func PlaceBid(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.BidRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		bid, err := webApp.App.Bids.PlaceOrUpdate(c.Context(), c.Params("id"), sessionOf(c).Actor().Ref(), req.Amount, req.Message)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, bid, "Bid saved")
	}
}

func ListPostBids(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := webApp.App.Bids.ListForPost(c.Context(), c.Params("id"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, list, "")
	}
}

// MyBids lists bids the caller placed.
func MyBids(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := webApp.App.Bids.ListByBidder(c.Context(), sessionOf(c).UserID)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, list, "")
	}
}

// ReceivedBids lists bids on the caller's posts.
func ReceivedBids(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := webApp.App.Bids.ListReceived(c.Context(), sessionOf(c).UserID)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, list, "")
	}
}

// AcceptBid accepts a bid and opens the conversation with the bidder.
func AcceptBid(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := webApp.App.Acceptance.Accept(c.Context(), sessionOf(c).Actor(), c.Params("id"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, result, "Bid accepted")
	}
}

func RejectBid(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bid, err := webApp.App.Bids.Reject(c.Context(), sessionOf(c).Actor(), c.Params("id"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, bid, "Bid rejected")
	}
}
