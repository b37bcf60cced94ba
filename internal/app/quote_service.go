// Package app contains application services that orchestrate use cases.
// It coordinates the domain with infrastructure through ports and never
// deals with HTTP or storage details itself.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/quotesync/internal/domain"
	"github.com/jsamuelsen/quotesync/internal/platform/logging"
	"github.com/jsamuelsen/quotesync/internal/ports"
)

// User-facing notification messages.
const (
	MsgSyncing         = "Syncing with server..."
	MsgNoData          = "No data received from server."
	MsgSyncFailed      = "Failed to sync with server. Check your connection."
	MsgSyncClean       = "Synced successfully! No conflicts detected."
	msgSyncConflicts   = "Synced successfully! %d conflict(s) resolved (server data took precedence)."
	MsgPosting         = "Posting quotes to server..."
	MsgPosted          = "Quotes posted to server successfully!"
	MsgPostFailed      = "Failed to post quotes to server."
	MsgQuoteAdded      = "Quote added successfully!"
	MsgImported        = "Quotes imported successfully!"
	MsgInvalidImport   = `Invalid quote format. Each quote must have "text" and "category" properties.`
	MsgImportNotArray  = "Invalid JSON format. Expected an array of quotes."
	MsgImportParse     = "Error parsing JSON file. Please ensure the file is valid JSON."
	msgAutoSyncEnabled = "Auto-sync enabled (every %s)"
	MsgAutoSyncOff     = "Auto-sync disabled"
)

// FlagConflictAudit switches persistence of resolved conflicts.
const FlagConflictAudit = "conflict_audit"

// Conflict listing bounds.
const (
	DefaultConflictLimit = 20
	MaxConflictLimit     = 100
)

// Sync triggers recorded in logs.
const (
	TriggerManual    = "manual"
	TriggerScheduler = "scheduler"
	TriggerStartup   = "startup"
)

// SyncObserver receives sync and collection metrics.
// telemetry.SyncMetrics implements it.
type SyncObserver interface {
	ObserveSync(status string, added, conflicts int, elapsed time.Duration)
	SetQuoteCount(n int)
}

// QuoteServiceConfig holds the service dependencies.
// Store, Prefs, Remote and Notifier are required.
type QuoteServiceConfig struct {
	Store     ports.QuoteStore
	Prefs     ports.PreferenceStore
	Conflicts ports.ConflictLog
	Remote    ports.RemoteQuoteSource
	Notifier  ports.Notifier
	Flags     ports.FeatureFlags
	Metrics   SyncObserver
	Logger    *slog.Logger

	// SyncTimeout bounds one remote fetch. Zero means no extra bound.
	SyncTimeout time.Duration
}

// QuoteService owns the collection. Every read-modify-write runs under mu;
// the remote fetch of a sync runs outside it.
type QuoteService struct {
	store     ports.QuoteStore
	prefs     ports.PreferenceStore
	conflicts ports.ConflictLog
	remote    ports.RemoteQuoteSource
	notifier  ports.Notifier
	flags     ports.FeatureFlags
	metrics   SyncObserver
	logger    *slog.Logger
	exec      *Executor

	syncTimeout time.Duration
	now         func() time.Time

	mu       sync.Mutex
	coll     *domain.Collection
	selected string

	syncing atomic.Bool
}

// NewQuoteService creates a QuoteService. It panics when a required
// dependency is missing.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Store == nil || cfg.Prefs == nil || cfg.Remote == nil || cfg.Notifier == nil {
		panic("app: QuoteService requires Store, Prefs, Remote and Notifier")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	flags := cfg.Flags
	if flags == nil {
		flags = ports.NewStaticFeatureFlags(nil)
	}

	return &QuoteService{
		store:       cfg.Store,
		prefs:       cfg.Prefs,
		conflicts:   cfg.Conflicts,
		remote:      cfg.Remote,
		notifier:    cfg.Notifier,
		flags:       flags,
		metrics:     cfg.Metrics,
		logger:      logger,
		exec:        NewExecutor(logger),
		syncTimeout: cfg.SyncTimeout,
		now:         time.Now,
		coll:        domain.NewCollection(nil),
		selected:    domain.CategoryAll,
	}
}

// Load reads the collection and the selected category from storage.
// An empty store is seeded with the default quotes.
func (s *QuoteService) Load(ctx context.Context) error {
	quotes, selected, err := Parallel2(ctx,
		s.store.LoadAll,
		func(ctx context.Context) (string, error) {
			v, err := s.prefs.GetPreference(ctx, ports.PrefSelectedCategory)
			if domain.IsNotFound(err) {
				return domain.CategoryAll, nil
			}

			return v, err
		},
	)
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	if len(quotes) == 0 {
		quotes = domain.DefaultQuotes()

		if err := s.store.SaveAll(ctx, quotes); err != nil {
			return fmt.Errorf("seeding default quotes: %w", err)
		}

		s.logger.InfoContext(ctx, "seeded default quotes", slog.Int("count", len(quotes)))
	}

	s.mu.Lock()
	s.coll = domain.NewCollection(quotes)
	s.selected = selected
	s.mu.Unlock()

	s.setQuoteCount(len(quotes))
	s.logger.InfoContext(ctx, "quotes loaded", slog.Int("count", len(quotes)), slog.String("selected_category", selected))

	return nil
}

// Quotes returns a snapshot of the collection.
func (s *QuoteService) Quotes(context.Context) []domain.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.coll.All()
}

// Categories returns the distinct categories in first-seen order.
func (s *QuoteService) Categories(context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.coll.Categories()
}

// SelectedCategory returns the last category filter used for RandomQuote.
func (s *QuoteService) SelectedCategory(context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.selected
}

// RandomQuote picks a quote from category ("" or "all" for every quote)
// and remembers both the filter and the quote shown.
func (s *QuoteService) RandomQuote(ctx context.Context, category string) (domain.Quote, error) {
	if category == "" {
		category = domain.CategoryAll
	}

	s.mu.Lock()
	q, err := s.coll.Random(category)
	s.selected = category
	s.mu.Unlock()

	s.remember(ctx, ports.PrefSelectedCategory, category)

	if err != nil {
		return domain.Quote{}, err
	}

	if raw, err := json.Marshal(q); err == nil {
		s.remember(ctx, ports.PrefLastViewedQuote, string(raw))
	}

	return q, nil
}

// LastViewed returns the quote most recently returned by RandomQuote.
func (s *QuoteService) LastViewed(ctx context.Context) (domain.Quote, error) {
	raw, err := s.prefs.GetPreference(ctx, ports.PrefLastViewedQuote)
	if domain.IsNotFound(err) {
		return domain.Quote{}, domain.NewNotFoundError("last viewed quote", "")
	}

	if err != nil {
		return domain.Quote{}, fmt.Errorf("reading last viewed quote: %w", err)
	}

	var q domain.Quote
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		return domain.Quote{}, fmt.Errorf("decoding last viewed quote: %w", err)
	}

	return q, nil
}

// remember persists a preference. Failures are logged, not returned.
func (s *QuoteService) remember(ctx context.Context, key, value string) {
	if err := s.prefs.SetPreference(ctx, key, value); err != nil {
		s.logger.WarnContext(ctx, "failed to persist preference", slog.String("key", key), slog.Any("error", err))
	}
}

type addInput struct {
	text, category string
}

// AddQuote trims and validates a new quote, appends it and persists.
func (s *QuoteService) AddQuote(ctx context.Context, text, category string) (domain.Quote, error) {
	var added domain.Quote

	op := appendOperation(s, "add_quote", func(in addInput) ([]domain.Quote, error) {
		q, err := domain.NewQuote(in.text, in.category)
		added = q

		return []domain.Quote{q}, err
	})

	s.mu.Lock()
	_, err := Execute(ctx, s.exec, op, addInput{text: text, category: category})
	s.mu.Unlock()

	if err != nil {
		return domain.Quote{}, err
	}

	s.notifier.Notify(ctx, MsgQuoteAdded, ports.LevelSuccess)

	return added, nil
}

// Import appends every record or none. It returns the number of quotes imported.
func (s *QuoteService) Import(ctx context.Context, records []domain.ImportRecord) (int, error) {
	op := appendOperation(s, "import", domain.ImportQuotes)

	s.mu.Lock()
	_, err := Execute(ctx, s.exec, op, records)
	s.mu.Unlock()

	if err != nil {
		s.RejectImport(ctx, err)

		return 0, err
	}

	s.notifier.Notify(ctx, MsgImported, ports.LevelSuccess)

	return len(records), nil
}

// RejectImport tells the user why a payload was refused. Callers that
// decode payloads themselves use it for decode failures.
func (s *QuoteService) RejectImport(ctx context.Context, err error) {
	if msg := ImportFailureMessage(err); msg != "" {
		s.notifier.Notify(ctx, msg, ports.LevelError)
	}
}

// ImportFailureMessage maps an import error to its notification, or ""
// for errors that are not about the payload.
func ImportFailureMessage(err error) string {
	var ie *domain.ImportError
	if !errors.As(err, &ie) {
		if domain.IsValidation(err) {
			return MsgInvalidImport
		}

		return ""
	}

	switch {
	case ie.Index >= 0:
		return MsgInvalidImport
	case ie.Reason == domain.ImportReasonNotArray:
		return MsgImportNotArray
	default:
		return MsgImportParse
	}
}

// appendOperation builds the pipeline shared by AddQuote and Import:
// convert input, append to a copy, persist the copy, then swap it in.
// The caller holds s.mu.
func appendOperation[I any](
	s *QuoteService,
	name string,
	convert func(I) ([]domain.Quote, error),
) Operation[I, []domain.Quote, *domain.Collection, int] {
	return Operation[I, []domain.Quote, *domain.Collection, int]{
		Name: name,
		Perform: func(_ context.Context, in I) ([]domain.Quote, error) {
			return convert(in)
		},
		Verify: func(_ context.Context, _ I, quotes []domain.Quote) (*domain.Collection, error) {
			next := s.coll.Clone()
			next.Append(quotes...)

			if next.Len() != s.coll.Len()+len(quotes) {
				return nil, errors.New("collection size mismatch after append")
			}

			return next, nil
		},
		Archive: func(ctx context.Context, _ I, next *domain.Collection) error {
			return s.store.SaveAll(ctx, next.All())
		},
		Respond: func(_ context.Context, _ I, next *domain.Collection) (int, error) {
			s.coll = next
			s.setQuoteCount(next.Len())

			return next.Len(), nil
		},
	}
}

// Export returns a snapshot of the collection for encoding.
func (s *QuoteService) Export(ctx context.Context) []domain.Quote {
	return s.Quotes(ctx)
}

type triggerKey struct{}

// WithSyncTrigger labels the sync runs started with ctx.
func WithSyncTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, triggerKey{}, trigger)
}

func syncTrigger(ctx context.Context) string {
	if t, ok := ctx.Value(triggerKey{}).(string); ok {
		return t
	}

	return TriggerManual
}

// Syncing reports whether a sync run is in flight.
func (s *QuoteService) Syncing() bool {
	return s.syncing.Load()
}

// Sync pulls the remote batch and merges it with server-wins resolution.
// A call that overlaps a running sync returns Skipped immediately.
func (s *QuoteService) Sync(ctx context.Context) domain.SyncResult {
	if !s.syncing.CompareAndSwap(false, true) {
		s.observe(domain.Skipped(), 0)

		return domain.Skipped()
	}
	defer s.syncing.Store(false)

	ctx = logging.WithSyncRun(ctx, uuid.NewString(), syncTrigger(ctx))
	logger := logging.FromContext(ctx)
	start := time.Now()

	s.notifier.Notify(ctx, MsgSyncing, ports.LevelInfo)

	result := s.runSync(ctx)
	elapsed := time.Since(start)

	s.observe(result, elapsed)
	s.announce(ctx, result)

	logger.InfoContext(ctx, "sync finished",
		slog.String("status", string(result.Status)),
		slog.Int("added", result.Added),
		slog.Int("conflicts", result.Conflicts),
		slog.String("reason", result.Reason),
		slog.Duration("duration", elapsed),
	)

	return result
}

func (s *QuoteService) runSync(ctx context.Context) domain.SyncResult {
	fetchCtx := ctx
	if s.syncTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.syncTimeout)
		defer cancel()
	}

	remote, err := Fetch(fetchCtx, s.remote.FetchRemote)
	if err != nil {
		return domain.Failed(err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.coll.Clone()

	result := Apply(next, remote)
	if !result.Succeeded() {
		return result
	}

	if err := s.store.SaveAll(ctx, next.All()); err != nil {
		return domain.Failed(fmt.Sprintf("persisting merged quotes: %v", err))
	}

	s.coll = next
	s.setQuoteCount(next.Len())
	s.audit(ctx, result.Records)

	return result
}

// audit appends the resolved conflicts to the log when the flag is on.
func (s *QuoteService) audit(ctx context.Context, conflicts []domain.Conflict) {
	if len(conflicts) == 0 || s.conflicts == nil || !s.flags.IsEnabled(ctx, FlagConflictAudit, true) {
		return
	}

	now := s.now().UTC()
	records := make([]domain.ConflictRecord, 0, len(conflicts))

	for _, c := range conflicts {
		records = append(records, domain.ConflictRecord{
			ID:         uuid.NewString(),
			Local:      c.Local,
			Server:     c.Server,
			Resolution: domain.ResolutionServerWins,
			DetectedAt: now,
		})
	}

	if err := s.conflicts.AppendConflicts(ctx, records); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "failed to record conflicts", slog.Any("error", err))
	}
}

func (s *QuoteService) announce(ctx context.Context, r domain.SyncResult) {
	msg, level := SyncMessage(r)
	if msg != "" {
		s.notifier.Notify(ctx, msg, level)
	}
}

// SyncMessage is the notification shown for a finished sync run.
// Skipped runs have no message of their own.
func SyncMessage(r domain.SyncResult) (string, ports.NotificationLevel) {
	switch {
	case r.Status == domain.SyncSkipped:
		return "", ports.LevelInfo
	case r.Status == domain.SyncNoData:
		return MsgNoData, ports.LevelWarning
	case r.Status == domain.SyncFailed:
		return MsgSyncFailed, ports.LevelError
	case r.Conflicts > 0:
		return fmt.Sprintf(msgSyncConflicts, r.Conflicts), ports.LevelWarning
	default:
		return MsgSyncClean, ports.LevelSuccess
	}
}

func (s *QuoteService) observe(r domain.SyncResult, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveSync(string(r.Status), r.Added, r.Conflicts, elapsed)
	}
}

func (s *QuoteService) setQuoteCount(n int) {
	if s.metrics != nil {
		s.metrics.SetQuoteCount(n)
	}
}

// PostLocal sends the whole collection to the remote source.
func (s *QuoteService) PostLocal(ctx context.Context) (*ports.PostReceipt, error) {
	s.notifier.Notify(ctx, MsgPosting, ports.LevelInfo)

	receipt, err := s.remote.PostLocal(ctx, s.Quotes(ctx))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to post quotes", slog.Any("error", err))
		s.notifier.Notify(ctx, MsgPostFailed, ports.LevelError)

		return nil, err
	}

	s.notifier.Notify(ctx, MsgPosted, ports.LevelSuccess)

	return receipt, nil
}

// Conflicts returns recent audit records, newest first. limit is clamped
// to [1, MaxConflictLimit]; zero or less means DefaultConflictLimit.
func (s *QuoteService) Conflicts(ctx context.Context, limit int) ([]domain.ConflictRecord, error) {
	if s.conflicts == nil {
		return []domain.ConflictRecord{}, nil
	}

	switch {
	case limit <= 0:
		limit = DefaultConflictLimit
	case limit > MaxConflictLimit:
		limit = MaxConflictLimit
	}

	records, err := s.conflicts.RecentConflicts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("reading conflict log: %w", err)
	}

	return records, nil
}

// AutoSyncMessage is the notification shown when auto-sync is switched on.
func AutoSyncMessage(interval time.Duration) string {
	return fmt.Sprintf(msgAutoSyncEnabled, humanInterval(interval))
}

func humanInterval(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%d seconds", int(d/time.Second))
	}

	return d.String()
}
