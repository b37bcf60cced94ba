package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotesync/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotesync/internal/app"
	"github.com/jsamuelsen/quotesync/internal/domain"
	"github.com/jsamuelsen/quotesync/internal/ports"
)

// SyncService is what the sync endpoints need from app.QuoteService.
type SyncService interface {
	Sync(ctx context.Context) domain.SyncResult
	Syncing() bool
	PostLocal(ctx context.Context) (*ports.PostReceipt, error)
	Conflicts(ctx context.Context, limit int) ([]domain.ConflictRecord, error)
}

// AutoSync is the scheduler switch.
type AutoSync interface {
	SetEnabled(ctx context.Context, enabled bool)
	Enabled() bool
	Interval() time.Duration
}

// SyncHandler serves manual sync, push, the auto-sync switch and the
// conflict log.
type SyncHandler struct {
	svc  SyncService
	auto AutoSync
}

// NewSyncHandler creates a SyncHandler.
func NewSyncHandler(svc SyncService, auto AutoSync) *SyncHandler {
	return &SyncHandler{svc: svc, auto: auto}
}

// Sync handles POST /api/v1/sync. Resolved and no-data runs answer 200,
// a run that overlapped another answers 409, a failed run answers 502.
// The body is the sync result in every case.
func (h *SyncHandler) Sync(c *gin.Context) {
	ctx := app.WithSyncTrigger(c.Request.Context(), app.TriggerManual)

	result := h.svc.Sync(ctx)
	msg, _ := app.SyncMessage(result)

	c.JSON(syncStatusCode(result), dto.NewSyncResultResponse(result, msg))
}

func syncStatusCode(r domain.SyncResult) int {
	switch r.Status {
	case domain.SyncSkipped:
		return http.StatusConflict
	case domain.SyncFailed:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

// Push handles POST /api/v1/sync/push.
func (h *SyncHandler) Push(c *gin.Context) {
	receipt, err := h.svc.PostLocal(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPushResponse(receipt, app.MsgPosted))
}

// GetAuto handles GET /api/v1/sync/auto.
func (h *SyncHandler) GetAuto(c *gin.Context) {
	c.JSON(http.StatusOK, h.autoState())
}

// SetAuto handles PUT /api/v1/sync/auto.
func (h *SyncHandler) SetAuto(c *gin.Context) {
	var req dto.AutoSyncRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondBindError(c, err)
		return
	}

	h.auto.SetEnabled(c.Request.Context(), *req.Enabled)

	c.JSON(http.StatusOK, h.autoState())
}

func (h *SyncHandler) autoState() dto.AutoSyncResponse {
	resp := dto.AutoSyncResponse{
		Enabled:  h.auto.Enabled(),
		Interval: h.auto.Interval().String(),
		Syncing:  h.svc.Syncing(),
		Message:  app.MsgAutoSyncOff,
	}

	if resp.Enabled {
		resp.Message = app.AutoSyncMessage(h.auto.Interval())
	}

	return resp
}

// Conflicts handles GET /api/v1/conflicts?limit=n.
func (h *SyncHandler) Conflicts(c *gin.Context) {
	var req dto.ConflictsRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondBindError(c, err)
		return
	}

	records, err := h.svc.Conflicts(c.Request.Context(), req.Limit)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewConflictResponses(records))
}

// RegisterRoutes registers the sync routes on rg.
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sync := rg.Group("/sync")
	sync.POST("", h.Sync)
	sync.POST("/push", h.Push)
	sync.GET("/auto", h.GetAuto)
	sync.PUT("/auto", h.SetAuto)

	rg.GET("/conflicts", h.Conflicts)
}
