package routes

import (
	"mime/multipart"

	"tradehub/services"

	"github.com/gofiber/fiber/v2"
)

func uploadRoutes(r fiber.Router, auth fiber.Handler, svc *services.UploadService) {
	r.Post("/single", func(c *fiber.Ctx) error {
		header, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No file provided")
		}
		file, err := header.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Failed to read uploaded file")
		}
		defer file.Close()

		uploaded, err := svc.Upload(c.UserContext(), fileInput(header, file))
		if err != nil {
			return err
		}
		return c.JSON(uploaded)
	})

	r.Post("/multiple", auth, func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No files provided")
		}
		headers := form.File["files"]

		inputs := make([]services.FileInput, 0, len(headers))
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Failed to read uploaded file")
			}
			defer file.Close()
			inputs = append(inputs, fileInput(header, file))
		}

		uploaded, err := svc.UploadMany(c.UserContext(), inputs)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"files": uploaded})
	})

	r.Delete("/:filename", auth, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("filename")); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "File deleted successfully"})
	})
}

func fileInput(header *multipart.FileHeader, file multipart.File) services.FileInput {
	return services.FileInput{
		OriginalName: header.Filename,
		ContentType:  header.Header.Get(fiber.HeaderContentType),
		Size:         header.Size,
		Content:      file,
	}
}
