package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotesync/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotesync/internal/adapters/transfer"
	"github.com/jsamuelsen/quotesync/internal/app"
	"github.com/jsamuelsen/quotesync/internal/domain"
)

// TransferService is what import and export need from app.QuoteService.
type TransferService interface {
	Export(ctx context.Context) []domain.Quote
	Import(ctx context.Context, records []domain.ImportRecord) (int, error)
	RejectImport(ctx context.Context, err error)
}

// TransferHandler serves JSON import and export.
type TransferHandler struct {
	svc   TransferService
	codec *transfer.Codec
}

// NewTransferHandler creates a TransferHandler.
func NewTransferHandler(svc TransferService, codec *transfer.Codec) *TransferHandler {
	return &TransferHandler{svc: svc, codec: codec}
}

// Export handles GET /api/v1/export as a quotes.json download.
func (h *TransferHandler) Export(c *gin.Context) {
	quotes := h.svc.Export(c.Request.Context())

	c.Header("Content-Disposition", `attachment; filename="`+transfer.Filename+`"`)
	c.Header("Content-Type", "application/json")
	c.Status(http.StatusOK)

	if err := h.codec.Encode(c.Writer, quotes); err != nil {
		_ = c.Error(err)
	}
}

// Import handles POST /api/v1/import. The body is a JSON array of
// {text, category}; one bad element rejects the whole payload. Bodies over
// the server's request size limit are rejected like any oversized payload.
func (h *TransferHandler) Import(c *gin.Context) {
	ctx := c.Request.Context()

	records, err := h.codec.Decode(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = domain.NewImportError(-1, "", domain.ImportReasonTooLarge)
		}

		h.svc.RejectImport(ctx, err)
		dto.HandleError(c, err)

		return
	}

	n, err := h.svc.Import(ctx, records)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ImportResponse{Imported: n, Message: app.MsgImported})
}

// RegisterRoutes registers the transfer routes on rg.
func (h *TransferHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/export", h.Export)
	rg.POST("/import", h.Import)
}
