package handlers

import (
	"io"

	"musiclabel/internal/services"
	"musiclabel/internal/types"
	"musiclabel/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const imageFormField = "image"

func paramID(c *fiber.Ctx) (int, error) {
	return validate.ParseID(c.Params("id"))
}

func listParams(c *fiber.Ctx, sorts []string) (types.ListParams, error) {
	return validate.ParseListParams(validate.ListQuery{
		Page:   c.Query("page"),
		Limit:  c.Query("limit"),
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
	}, sorts...)
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return validate.Failed("body", "must be a valid JSON object")
	}
	return nil
}

// readImage loads the multipart "image" field, reading at most one byte past
// the size cap so oversized files are still rejected by the image service.
func readImage(c *fiber.Ctx) ([]byte, error) {
	header, err := c.FormFile(imageFormField)
	if err != nil {
		return nil, validate.Failed(imageFormField, "a file is required")
	}
	if header.Size > services.MaxImageBytes {
		return nil, validate.Failed(imageFormField, "must be no larger than 5MB")
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(io.LimitReader(file, services.MaxImageBytes+1))
}
