package utils

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carrybid/carrybid/internal/domain/fault"
	"github.com/carrybid/carrybid/internal/domain/media"
	"github.com/gofiber/fiber/v2"
)

const maxListLimit = 100

// ReadImage reads the multipart file field into a validated media object.
// ok is false when the field is absent.
func ReadImage(c *fiber.Ctx, field string, category media.Category) (obj media.Object, ok bool, err error) {
	header, err := c.FormFile(field)
	if err != nil {
		return media.Object{}, false, nil
	}
	if header.Size > media.MaxSize {
		return media.Object{}, true, fault.Validation(field, fmt.Sprintf("image exceeds %d MB", media.MaxSize>>20))
	}

	file, err := header.Open()
	if err != nil {
		return media.Object{}, true, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, media.MaxSize+1))
	if err != nil {
		return media.Object{}, true, fmt.Errorf("failed to read upload: %w", err)
	}

	obj = media.Object{
		Category: category,
		Name:     header.Filename,
		Data:     data,
	}
	// otherwise derived from the extension
	if ct := header.Header.Get("Content-Type"); strings.HasPrefix(ct, "image/") {
		obj.ContentType = ct
	}
	if err := media.Validate(field, &obj); err != nil {
		return media.Object{}, true, err
	}
	return obj, true, nil
}

// QueryLimit parses ?limit=, falling back to def and capping at 100.
func QueryLimit(c *fiber.Ctx, def int) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n <= 0 {
		return def
	}
	if n > maxListLimit {
		return maxListLimit
	}
	return n
}
