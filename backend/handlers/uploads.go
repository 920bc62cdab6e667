package handlers

import (
	"github.com/carrybid/carrybid/backend/utils"
	"github.com/gofiber/fiber/v2"
)

// ServeUpload serves images kept by the in-memory blob store.
func ServeUpload(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		blobs := webApp.App.MemoryBlobs
		if blobs == nil {
			return utils.SendNotFound(c, "Uploads are served by the object store")
		}
		obj, ok := blobs.Object(c.Params("*"))
		if !ok {
			return utils.SendNotFound(c, "File not found")
		}
		c.Set(fiber.HeaderContentType, obj.ContentType)
		c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
		return c.Send(obj.Data)
	}
}
