package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jsamuelsen/quotesync/internal/adapters/clients"
	"github.com/jsamuelsen/quotesync/internal/domain"
	"github.com/jsamuelsen/quotesync/internal/ports"
)

// Categories assigned to remote posts by id parity.
const (
	CategoryServer = "Server"
	CategoryAPI    = "API"
)

// remotePost is the external post shape. It never leaves this package.
type remotePost struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// postReceipt is what the remote echoes back after a POST.
type postReceipt struct {
	ID json.Number `json:"id"`
}

// QuoteSource adapts a JSON posts endpoint into a ports.RemoteQuoteSource.
type QuoteSource struct {
	BaseAdapter

	path     string
	maxItems int
}

var _ ports.RemoteQuoteSource = (*QuoteSource)(nil)

// NewQuoteSource creates a QuoteSource reading at most maxItems posts from path.
func NewQuoteSource(client *clients.Client, path string, maxItems int) *QuoteSource {
	if maxItems <= 0 {
		maxItems = 1
	}

	return &QuoteSource{
		BaseAdapter: NewBaseAdapter(client, client.Name()),
		path:        path,
		maxItems:    maxItems,
	}
}

// FetchRemote implements ports.RemoteQuoteSource.
func (s *QuoteSource) FetchRemote(ctx context.Context) ([]domain.Quote, error) {
	body, err := s.Get(ctx, s.path, "fetch quotes")
	if err != nil {
		return nil, domain.NewFetchError(s.ServiceName(), err)
	}

	posts, err := DecodeResponse[[]remotePost](body)
	if err != nil {
		return nil, domain.NewFetchError(s.ServiceName(), err)
	}

	if len(posts) > s.maxItems {
		posts = posts[:s.maxItems]
	}

	quotes, err := TranslateSlice(posts, translatePost)
	if err != nil {
		return nil, domain.NewFetchError(s.ServiceName(), err)
	}

	return quotes, nil
}

// PostLocal implements ports.RemoteQuoteSource.
func (s *QuoteSource) PostLocal(ctx context.Context, quotes []domain.Quote) (*ports.PostReceipt, error) {
	if quotes == nil {
		quotes = []domain.Quote{}
	}

	payload, err := json.Marshal(quotes)
	if err != nil {
		return nil, fmt.Errorf("encoding quotes: %w", err)
	}

	body, err := s.Post(ctx, s.path, payload, "post quotes")
	if err != nil {
		return nil, err
	}

	receipt, err := DecodeResponse[postReceipt](body)
	if err != nil {
		return nil, domain.NewUnavailableError(s.ServiceName(), err.Error())
	}

	return &ports.PostReceipt{ID: receipt.ID.String(), Accepted: len(quotes)}, nil
}

// Name implements ports.HealthChecker.
func (s *QuoteSource) Name() string {
	return s.ServiceName()
}

// Check implements ports.HealthChecker without calling the remote.
func (s *QuoteSource) Check(ctx context.Context) error {
	return s.client.Check(ctx)
}

// translatePost maps a remote post onto a quote: the title is the text and
// the category follows the id parity. Titles are not trimmed; validation
// happens when the batch is merged.
func translatePost(p *remotePost) (domain.Quote, error) {
	if p.ID <= 0 {
		return domain.Quote{}, domain.NewValidationError("id", "must be positive, got "+strconv.Itoa(p.ID))
	}

	category := CategoryAPI
	if p.ID%2 == 0 {
		category = CategoryServer
	}

	return domain.Quote{Text: p.Title, Category: category}, nil
}
