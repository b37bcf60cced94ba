package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotesync/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotesync/internal/domain"
)

// QuoteService is what the quote endpoints need from app.QuoteService.
type QuoteService interface {
	Quotes(ctx context.Context) []domain.Quote
	Categories(ctx context.Context) []string
	SelectedCategory(ctx context.Context) string
	RandomQuote(ctx context.Context, category string) (domain.Quote, error)
	LastViewed(ctx context.Context) (domain.Quote, error)
	AddQuote(ctx context.Context, text, category string) (domain.Quote, error)
}

// QuoteHandler serves the quote collection.
type QuoteHandler struct {
	svc QuoteService
}

// NewQuoteHandler creates a QuoteHandler.
func NewQuoteHandler(svc QuoteService) *QuoteHandler {
	return &QuoteHandler{svc: svc}
}

// List handles GET /api/v1/quotes with optional category, cursor and limit.
func (h *QuoteHandler) List(c *gin.Context) {
	var req dto.ListQuotesRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondBindError(c, err)
		return
	}

	offset, err := req.Offset()
	if err != nil {
		dto.RespondWithCode(c, dto.ErrorCodeBadRequest, err.Error())
		return
	}

	quotes := domain.NewCollection(h.svc.Quotes(c.Request.Context())).Filter(req.Category)

	c.JSON(http.StatusOK, dto.Paginate(dto.NewQuoteResponses(quotes), offset, req.GetLimit()))
}

// Random handles GET /api/v1/quotes/random. Without a category query the
// saved filter is used; either way the filter is saved.
func (h *QuoteHandler) Random(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RandomQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		dto.RespondWithCode(c, dto.ErrorCodeBadRequest, "malformed query")
		return
	}

	category := h.svc.SelectedCategory(ctx)
	if req.Category != nil {
		category = strings.TrimSpace(*req.Category)
	}

	q, err := h.svc.RandomQuote(ctx, category)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(q))
}

// Last handles GET /api/v1/quotes/last.
func (h *QuoteHandler) Last(c *gin.Context) {
	q, err := h.svc.LastViewed(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(q))
}

// Add handles POST /api/v1/quotes.
func (h *QuoteHandler) Add(c *gin.Context) {
	var req dto.AddQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondBindError(c, err)
		return
	}

	q, err := h.svc.AddQuote(c.Request.Context(), req.Text, req.Category)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuoteResponse(q))
}

// Categories handles GET /api/v1/categories.
func (h *QuoteHandler) Categories(c *gin.Context) {
	ctx := c.Request.Context()

	cats := h.svc.Categories(ctx)
	if cats == nil {
		cats = []string{}
	}

	c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: cats, Selected: h.svc.SelectedCategory(ctx)})
}

// RegisterRoutes registers the quote routes on rg.
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.List)
	quotes.POST("", h.Add)
	quotes.GET("/random", h.Random)
	quotes.GET("/last", h.Last)

	rg.GET("/categories", h.Categories)
}
