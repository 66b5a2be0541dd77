package handler

import (
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Gfx-Boy/sovereign-ledger/internal/service"
)

// defaultDownloadExpiry bounds how long a presigned download link stays valid.
const defaultDownloadExpiry = 15 * time.Minute

// SubmitRecord handles POST /records.
//
// Expects multipart/form-data with the PDF in the "file" field and the
// submission metadata in regular form fields.
//
// @Summary      Submit a document for recording
// @Tags         records
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "PDF document"
// @Param        title formData string true "Document title"
// @Param        submitter_name formData string false "Submitter display name"
// @Param        is_trustee_upload formData bool false "Whether a trustee submits on behalf of a client"
// @Param        trustee_name formData string false "Trustee name (trustee uploads)"
// @Param        client_name formData string false "Client name (trustee uploads)"
// @Param        client_email formData string false "Client email"
// @Param        private_note formData string false "Private note, never shown publicly"
// @Param        folder_id formData string false "Client folder to file the record into"
// @Param        is_public formData bool false "List the record in the public archive"
// @Success      201 {object} model.Record
// @Failure      400 {object} errorPayload
// @Failure      409 {object} errorPayload
// @Router       /records [post]
func SubmitRecord(svc service.RecordService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		pdf, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_READ_ERROR", "cannot read uploaded file")
		}

		in := service.SubmitInput{
			Title:           c.FormValue("title"),
			SubmitterName:   c.FormValue("submitter_name"),
			IsTrusteeUpload: c.FormValue("is_trustee_upload") == "true",
			TrusteeName:     c.FormValue("trustee_name"),
			ClientName:      c.FormValue("client_name"),
			ClientEmail:     c.FormValue("client_email"),
			PrivateNote:     c.FormValue("private_note"),
			FolderID:        c.FormValue("folder_id"),
			IsPublic:        c.FormValue("is_public") == "true",
		}

		rec, err := svc.Submit(c.UserContext(), pdf, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// SearchRecords handles GET /records: the public archive search.
//
// @Summary      Search public records
// @Tags         records
// @Produce      json
// @Param        record_number query string false "Exact-ish record number filter"
// @Param        title query string false "Title substring filter"
// @Param        name query string false "Submitter or client name substring filter"
// @Param        limit query int false "Page size" default(10)
// @Param        offset query int false "Page offset" default(0)
// @Success      200 {object} service.RecordListResult
// @Router       /records [get]
func SearchRecords(svc service.RecordService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.Search(c.UserContext(), service.SearchQuery{
			RecordNumber: c.Query("record_number"),
			Title:        c.Query("title"),
			Name:         c.Query("name"),
			Limit:        limit,
			Offset:       offset,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// DashboardRecords handles GET /records/dashboard: a submitter's own records,
// private ones included.
func DashboardRecords(svc service.RecordService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		submitter := c.Query("submitter_name")
		if submitter == "" {
			return writeError(c, fiber.StatusBadRequest, "SUBMITTER_REQUIRED", "submitter_name is required")
		}

		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.Dashboard(c.UserContext(), submitter, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetRecord handles GET /records/:id.
func GetRecord(svc service.RecordService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rec, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// GetRecordByNumber handles GET /records/number/:number, the shareable
// lookup by display record number.
func GetRecordByNumber(svc service.RecordService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("number")
		rec, err := svc.GetByRecordNumber(c.UserContext(), number)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// DownloadRecord handles GET /records/:id/download and returns a time-limited
// presigned URL rather than streaming the object through the API.
func DownloadRecord(svc service.RecordService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		url, err := svc.DownloadURL(c.UserContext(), id, defaultDownloadExpiry)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// DeleteRecord handles DELETE /records/:id.
func DeleteRecord(svc service.RecordService) fiber.Handler {
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
