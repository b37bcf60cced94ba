package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotesync/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotesync/internal/adapters/notify"
	"github.com/jsamuelsen/quotesync/internal/adapters/storage/memory"
	"github.com/jsamuelsen/quotesync/internal/adapters/transfer"
	"github.com/jsamuelsen/quotesync/internal/app"
	"github.com/jsamuelsen/quotesync/internal/domain"
	"github.com/jsamuelsen/quotesync/internal/mocks"
	"github.com/jsamuelsen/quotesync/internal/ports"
)

type harness struct {
	router *gin.Engine
	svc    *app.QuoteService
	remote *mocks.MockRemoteQuoteSource
	board  *notify.Board
	store  *memory.Store
}

func newHarness(t testing.TB, seed []domain.Quote) *harness {
	t.Helper()

	h := &harness{
		remote: mocks.NewMockRemoteQuoteSource(t),
		board:  notify.NewBoard(time.Minute, 50),
		store:  memory.New(),
	}

	ctx := context.Background()
	require.NoError(t, h.store.SaveAll(ctx, seed))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h.svc = app.NewQuoteService(app.QuoteServiceConfig{
		Store:     h.store,
		Prefs:     h.store,
		Conflicts: h.store,
		Remote:    h.remote,
		Notifier:  h.board,
		Logger:    logger,
	})
	require.NoError(t, h.svc.Load(ctx))

	sched := app.NewScheduler(h.svc, app.SchedulerConfig{
		Interval: 30 * time.Second,
		Enabled:  true,
		Notifier: h.board,
		Logger:   logger,
	})

	h.router = gin.New()
	api := h.router.Group("/api/v1")
	NewQuoteHandler(h.svc).RegisterRoutes(api)
	NewSyncHandler(h.svc, sched).RegisterRoutes(api)
	NewTransferHandler(h.svc, transfer.NewCodec()).RegisterRoutes(api)
	NewNotificationHandler(h.board).RegisterRoutes(api)

	return h
}

func (h *harness) do(method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	return w
}

func (h *harness) messages() []string {
	var out []string
	for _, n := range h.board.Active() {
		out = append(out, n.Message)
	}

	return out
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

var seedQuotes = []domain.Quote{
	{Text: "Stay hungry.", Category: "Motivation"},
	{Text: "Less is more.", Category: "Design"},
	{Text: "Keep going.", Category: "Motivation"},
}

func TestQuoteHandler_ListPaginates(t *testing.T) {
	h := newHarness(t, seedQuotes)

	w := h.do(http.MethodGet, "/api/v1/quotes?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	first := decodeBody[dto.Page[dto.QuoteResponse]](t, w)
	assert.Len(t, first.Items, 2)
	assert.Equal(t, 3, first.Total)
	assert.True(t, first.HasMore)
	require.NotEmpty(t, first.NextCursor)

	w = h.do(http.MethodGet, "/api/v1/quotes?limit=2&cursor="+first.NextCursor, "")
	second := decodeBody[dto.Page[dto.QuoteResponse]](t, w)
	assert.Equal(t, []dto.QuoteResponse{{Text: "Keep going.", Category: "Motivation"}}, second.Items)
	assert.False(t, second.HasMore)
}

func TestQuoteHandler_ListFiltersAndRejectsBadQuery(t *testing.T) {
	h := newHarness(t, seedQuotes)

	page := decodeBody[dto.Page[dto.QuoteResponse]](t, h.do(http.MethodGet, "/api/v1/quotes?category=Design", ""))
	assert.Equal(t, []dto.QuoteResponse{{Text: "Less is more.", Category: "Design"}}, page.Items)

	page = decodeBody[dto.Page[dto.QuoteResponse]](t, h.do(http.MethodGet, "/api/v1/quotes?category=none", ""))
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/api/v1/quotes?cursor=%21%21", "").Code)

	w := h.do(http.MethodGet, "/api/v1/quotes?limit=500", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody[dto.ErrorResponse](t, w).Error.Details, "limit")
}

func TestQuoteHandler_Add(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{name: "valid", body: `{"text":"  New one  ","category":"Fresh"}`, wantStatus: http.StatusCreated},
		{name: "blank text", body: `{"text":"   ","category":"Fresh"}`, wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidation},
		{name: "missing category", body: `{"text":"x"}`, wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeValidation},
		{name: "malformed", body: `{"text":`, wantStatus: http.StatusBadRequest, wantCode: dto.ErrorCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, seedQuotes)

			w := h.do(http.MethodPost, "/api/v1/quotes", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeBody[dto.ErrorResponse](t, w).Error.Code)
				assert.Len(t, h.svc.Quotes(context.Background()), 3)

				return
			}

			assert.Equal(t, dto.QuoteResponse{Text: "New one", Category: "Fresh"}, decodeBody[dto.QuoteResponse](t, w))
			assert.Contains(t, h.messages(), app.MsgQuoteAdded)
		})
	}
}

func TestQuoteHandler_RandomAndLast(t *testing.T) {
	h := newHarness(t, seedQuotes)

	w := h.do(http.MethodGet, "/api/v1/quotes/last", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = h.do(http.MethodGet, "/api/v1/quotes/random?category=Design", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.QuoteResponse{Text: "Less is more.", Category: "Design"}, decodeBody[dto.QuoteResponse](t, w))

	// The saved filter applies when the query omits a category.
	w = h.do(http.MethodGet, "/api/v1/quotes/random", "")
	assert.Equal(t, "Design", decodeBody[dto.QuoteResponse](t, w).Category)

	w = h.do(http.MethodGet, "/api/v1/quotes/last", "")
	assert.Equal(t, "Less is more.", decodeBody[dto.QuoteResponse](t, w).Text)

	w = h.do(http.MethodGet, "/api/v1/quotes/random?category=Missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeNotFound, decodeBody[dto.ErrorResponse](t, w).Error.Code)

	cats := decodeBody[dto.CategoriesResponse](t, h.do(http.MethodGet, "/api/v1/categories", ""))
	assert.Equal(t, []string{"Motivation", "Design"}, cats.Categories)
	assert.Equal(t, "Missing", cats.Selected)
}

func TestSyncHandler_SyncResolvesConflicts(t *testing.T) {
	h := newHarness(t, seedQuotes)
	h.remote.EXPECT().FetchRemote(mock.Anything).Return([]domain.Quote{
		{Text: "stay HUNGRY.", Category: "Server"},
		{Text: "Brand new", Category: "API"},
	}, nil)

	w := h.do(http.MethodPost, "/api/v1/sync", "")
	require.Equal(t, http.StatusOK, w.Code)

	res := decodeBody[dto.SyncResultResponse](t, w)
	assert.Equal(t, string(domain.SyncResolved), res.Status)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Conflicts)
	assert.Equal(t, "Synced successfully! 1 conflict(s) resolved (server data took precedence).", res.Message)
	require.Len(t, res.Resolved, 1)
	assert.Equal(t, "Server", res.Resolved[0].Server.Category)

	records := decodeBody[[]dto.ConflictResponse](t, h.do(http.MethodGet, "/api/v1/conflicts?limit=5", ""))
	require.Len(t, records, 1)
	assert.Equal(t, "Motivation", records[0].Local.Category)
	assert.Equal(t, domain.ResolutionServerWins, records[0].Resolution)
	assert.NotNil(t, records[0].DetectedAt)

	assert.Equal(t, []string{app.MsgSyncing, res.Message}, h.messages())
}

func TestSyncHandler_SyncOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		remote     []domain.Quote
		err        error
		wantStatus int
		wantResult domain.SyncStatus
		wantMsg    string
	}{
		{name: "no data", wantStatus: http.StatusOK, wantResult: domain.SyncNoData, wantMsg: app.MsgNoData},
		{name: "fetch failure", err: domain.NewFetchError("quote-source", errors.New("dial tcp")), wantStatus: http.StatusBadGateway, wantResult: domain.SyncFailed, wantMsg: app.MsgSyncFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, seedQuotes)
			h.remote.EXPECT().FetchRemote(mock.Anything).Return(tt.remote, tt.err)

			w := h.do(http.MethodPost, "/api/v1/sync", "")
			assert.Equal(t, tt.wantStatus, w.Code)

			res := decodeBody[dto.SyncResultResponse](t, w)
			assert.Equal(t, string(tt.wantResult), res.Status)
			assert.Equal(t, tt.wantMsg, res.Message)
		})
	}
}

func TestSyncStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusConflict, syncStatusCode(domain.Skipped()))
	assert.Equal(t, http.StatusBadGateway, syncStatusCode(domain.Failed("x")))
	assert.Equal(t, http.StatusOK, syncStatusCode(domain.NoData()))
	assert.Equal(t, http.StatusOK, syncStatusCode(domain.Resolved(domain.MergeOutcome{})))
}

func TestSyncHandler_Push(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		h := newHarness(t, seedQuotes)
		h.remote.EXPECT().PostLocal(mock.Anything, seedQuotes).Return(&ports.PostReceipt{ID: "101", Accepted: 3}, nil)

		w := h.do(http.MethodPost, "/api/v1/sync/push", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, dto.PushResponse{ID: "101", Accepted: 3, Message: app.MsgPosted}, decodeBody[dto.PushResponse](t, w))
	})

	t.Run("remote down", func(t *testing.T) {
		h := newHarness(t, seedQuotes)
		h.remote.EXPECT().PostLocal(mock.Anything, mock.Anything).
			Return(nil, domain.NewUnavailableError("quote-source", "circuit breaker is open"))

		w := h.do(http.MethodPost, "/api/v1/sync/push", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, h.messages(), app.MsgPostFailed)
	})
}

func TestSyncHandler_AutoSync(t *testing.T) {
	h := newHarness(t, seedQuotes)

	state := decodeBody[dto.AutoSyncResponse](t, h.do(http.MethodGet, "/api/v1/sync/auto", ""))
	assert.Equal(t, dto.AutoSyncResponse{Enabled: true, Interval: "30s", Message: "Auto-sync enabled (every 30 seconds)"}, state)

	w := h.do(http.MethodPut, "/api/v1/sync/auto", `{"enabled":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	state = decodeBody[dto.AutoSyncResponse](t, w)
	assert.False(t, state.Enabled)
	assert.Equal(t, app.MsgAutoSyncOff, state.Message)
	assert.Equal(t, []string{app.MsgAutoSyncOff}, h.messages())

	w = h.do(http.MethodPut, "/api/v1/sync/auto", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "this field is required", decodeBody[dto.ErrorResponse](t, w).Error.Details["enabled"])
}

func TestTransferHandler_Export(t *testing.T) {
	h := newHarness(t, seedQuotes[:1])

	w := h.do(http.MethodGet, "/api/v1/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="quotes.json"`, w.Header().Get("Content-Disposition"))
	assert.JSONEq(t, `[{"text":"Stay hungry.","category":"Motivation"}]`, w.Body.String())
}

func TestTransferHandler_Import(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCount  int
		wantMsg    string
	}{
		{name: "valid", body: `[{"text":"A","category":"X"},{"text":"B","category":"Y"}]`, wantStatus: http.StatusOK, wantCount: 5, wantMsg: app.MsgImported},
		{name: "missing category", body: `[{"text":"A","category":"X"},{"text":"B"}]`, wantStatus: http.StatusBadRequest, wantCount: 3, wantMsg: app.MsgInvalidImport},
		{name: "not an array", body: `{"text":"A","category":"X"}`, wantStatus: http.StatusBadRequest, wantCount: 3, wantMsg: app.MsgImportNotArray},
		{name: "malformed", body: `[{"text":`, wantStatus: http.StatusBadRequest, wantCount: 3, wantMsg: app.MsgImportParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, seedQuotes)

			w := h.do(http.MethodPost, "/api/v1/import", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Len(t, h.svc.Quotes(context.Background()), tt.wantCount)
			assert.Equal(t, []string{tt.wantMsg}, h.messages())

			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, dto.ErrorCodeInvalidImport, decodeBody[dto.ErrorResponse](t, w).Error.Code)
			}
		})
	}
}

func TestNotificationHandler_List(t *testing.T) {
	h := newHarness(t, seedQuotes)

	list := decodeBody[[]dto.NotificationResponse](t, h.do(http.MethodGet, "/api/v1/notifications", ""))
	assert.Empty(t, list)
	assert.NotNil(t, list)

	h.board.Notify(context.Background(), "hello", ports.LevelInfo)

	list = decodeBody[[]dto.NotificationResponse](t, h.do(http.MethodGet, "/api/v1/notifications", ""))
	require.Len(t, list, 1)
	assert.Equal(t, "hello", list[0].Message)
	assert.Equal(t, "info", list[0].Level)
}
