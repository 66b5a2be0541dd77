package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Gfx-Boy/sovereign-ledger/internal/service"
)

type folderRequest struct {
	TrusteeName string `json:"trustee_name"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
}

type renameFolderRequest struct {
	ClientName string `json:"client_name"`
}

// CreateFolder handles POST /folders.
func CreateFolder(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req folderRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		folder, err := svc.Create(c.UserContext(), service.FolderInput{
			TrusteeName: req.TrusteeName,
			ClientName:  req.ClientName,
			ClientEmail: req.ClientEmail,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(folder)
	}
}

// ListFolders handles GET /folders?trustee_name=...
func ListFolders(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trustee := c.Query("trustee_name")
		if trustee == "" {
			return writeError(c, fiber.StatusBadRequest, "TRUSTEE_REQUIRED", "trustee_name is required")
		}

		folders, err := svc.ListByTrustee(c.UserContext(), trustee)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": folders})
	}
}

// FolderRecords handles GET /folders/:id/records.
func FolderRecords(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		records, err := svc.Records(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": records})
	}
}

// RenameFolder handles PATCH /folders/:id.
func RenameFolder(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req renameFolderRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if req.ClientName == "" {
			return writeError(c, fiber.StatusBadRequest, "CLIENT_NAME_REQUIRED", "client_name is required")
		}

		if err := svc.Rename(c.UserContext(), id, req.ClientName); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteFolder handles DELETE /folders/:id. Records filed in the folder are
// kept and become unfiled.
func DeleteFolder(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
