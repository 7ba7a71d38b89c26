package handlers

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-tracker/internal/api/dto"
	"github.com/spec-kit/sla-tracker/internal/ingest"
	"github.com/spec-kit/sla-tracker/internal/observability"
	apperrors "github.com/spec-kit/sla-tracker/pkg/util"
)

// IngestService is the ingestion surface the upload endpoint needs.
type IngestService interface {
	Ingest(ctx context.Context, fileName string, content []byte) (ingest.Result, error)
}

// UploadHandler accepts spreadsheet uploads.
type UploadHandler struct {
	ingest  IngestService
	metrics *observability.Metrics
}

// NewUploadHandler constructs handler.
func NewUploadHandler(ingestService IngestService, metrics *observability.Metrics) *UploadHandler {
	return &UploadHandler{ingest: ingestService, metrics: metrics}
}

// UploadExcel POST /api/upload-excel.
func (h *UploadHandler) UploadExcel(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("multipart field 'file' required", nil)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		return apperrors.NewValidationError("only .xlsx and .xls files are accepted", map[string]any{
			"file_name": fileHeader.Filename,
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	result, err := h.ingest.Ingest(c.UserContext(), fileHeader.Filename, content)
	if err != nil {
		return apperrors.NewValidationError("unable to process spreadsheet", map[string]any{
			"file_name": fileHeader.Filename,
			"reason":    err.Error(),
		})
	}

	h.metrics.RecordIngest(result.TicketsProcessed)
	return c.JSON(dto.UploadResponse{
		Message:          "file processed successfully",
		FileName:         fileHeader.Filename,
		TicketsProcessed: result.TicketsProcessed,
		AgentsCreated:    result.AgentsCreated,
	})
}
