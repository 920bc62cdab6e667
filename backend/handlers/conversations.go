package handlers

import (
	webmodels "github.com/carrybid/carrybid/backend/models"
	"github.com/carrybid/carrybid/backend/utils"
	"github.com/carrybid/carrybid/internal/domain/media"
	"github.com/gofiber/fiber/v2"
)

type startConversationRequest struct {
	UserID string `json:"user_id"`
}

func ListConversations(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := webApp.App.Conversations.ListForUser(c.Context(), sessionOf(c).UserID)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, list, "")
	}
}

// StartConversation returns the caller's conversation with another user,
// creating it when the pair has none.
func StartConversation(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req startConversationRequest
		if err := c.BodyParser(&req); err != nil || req.UserID == "" {
			return utils.SendBadRequest(c, "user_id is required", nil)
		}

		other, err := webApp.App.Users.Get(c.Context(), req.UserID)
		if err != nil {
			return utils.SendDomainError(c, err)
		}

		conv, created, err := webApp.App.Conversations.GetOrCreate(c.Context(), sessionOf(c).Actor().Ref(), other.Ref(), "")
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		if created {
			return utils.SendCreated(c, conv, "Conversation created")
		}
		return utils.SendSuccess(c, conv, "")
	}
}

func GetConversation(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		conv, err := webApp.App.Conversations.Get(c.Context(), sessionOf(c).Actor(), c.Params("id"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, conv, "")
	}
}

// ListMessages returns the thread oldest first.
func ListMessages(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		msgs, err := webApp.App.Conversations.Messages(c.Context(), sessionOf(c).Actor(), c.Params("id"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, msgs, "")
	}
}

// SendMessage appends text and/or an image to a conversation. The image may
// be uploaded as the "image" multipart field.
func SendMessage(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.MessageRequest
		if err := parseForm(c, "message", &req); err != nil {
			return utils.SendBadRequest(c, "Invalid message payload", nil)
		}
		if c.FormValue("text") != "" {
			req.Text = c.FormValue("text")
		}

		image, ok, err := utils.ReadImage(c, "image", media.CategoryChat)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		if ok {
			if _, err := webApp.App.Conversations.Get(c.Context(), sessionOf(c).Actor(), c.Params("id")); err != nil {
				return utils.SendDomainError(c, err)
			}
			if req.ImageURL, err = webApp.App.Blobs.Put(c.Context(), image); err != nil {
				return utils.SendDomainError(c, err)
			}
		}

		msg, err := webApp.App.Conversations.AppendMessage(c.Context(), c.Params("id"), sessionOf(c).UserID, req.Text, req.ImageURL)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendCreated(c, msg, "Message sent")
	}
}
