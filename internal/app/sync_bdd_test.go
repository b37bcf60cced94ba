package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"testing"

	"github.com/cucumber/godog"

	"github.com/jsamuelsen/quotesync/internal/adapters/storage/memory"
	"github.com/jsamuelsen/quotesync/internal/domain"
	"github.com/jsamuelsen/quotesync/internal/ports"
)

// stubRemote serves a canned batch.
type stubRemote struct {
	quotes []domain.Quote
	err    error
}

func (r *stubRemote) FetchRemote(context.Context) ([]domain.Quote, error) {
	return r.quotes, r.err
}

func (r *stubRemote) PostLocal(_ context.Context, q []domain.Quote) (*ports.PostReceipt, error) {
	return &ports.PostReceipt{Accepted: len(q)}, nil
}

// syncWorld holds state shared by the steps of one scenario.
type syncWorld struct {
	initial []domain.Quote
	remote  *stubRemote
	notes   *recorder
	svc     *QuoteService
	result  domain.SyncResult
}

func tableQuotes(table *godog.Table) []domain.Quote {
	out := make([]domain.Quote, 0, len(table.Rows))

	for _, row := range table.Rows[1:] {
		out = append(out, domain.Quote{Text: row.Cells[0].Value, Category: row.Cells[1].Value})
	}

	return out
}

func (w *syncWorld) theLocalCollection(table *godog.Table) error {
	w.initial = tableQuotes(table)

	return nil
}

func (w *syncWorld) theRemoteReturns(table *godog.Table) error {
	w.remote.quotes = tableQuotes(table)

	return nil
}

func (w *syncWorld) theRemoteReturnsNothing() error {
	w.remote.quotes = []domain.Quote{}

	return nil
}

func (w *syncWorld) theRemoteFailsWith(msg string) error {
	w.remote.err = domain.NewFetchError("quote-source", errors.New(msg))

	return nil
}

func (w *syncWorld) iSync(ctx context.Context) error {
	store := memory.New()
	if err := store.SaveAll(ctx, w.initial); err != nil {
		return err
	}

	w.svc = NewQuoteService(QuoteServiceConfig{
		Store: store, Prefs: store, Conflicts: store, Remote: w.remote, Notifier: w.notes, Logger: discardLogger(),
	})
	if err := w.svc.Load(ctx); err != nil {
		return err
	}

	w.result = w.svc.Sync(ctx)

	return nil
}

func (w *syncWorld) theSyncStatusIs(status string) error {
	if string(w.result.Status) != status {
		return fmt.Errorf("expected status %q, got %q (reason %q)", status, w.result.Status, w.result.Reason)
	}

	return nil
}

func (w *syncWorld) conflictsAreReported(n int) error {
	if w.result.Conflicts != n {
		return fmt.Errorf("expected %d conflicts, got %d", n, w.result.Conflicts)
	}

	return nil
}

func (w *syncWorld) theLocalCollectionIs(table *godog.Table) error {
	return w.collectionEquals(tableQuotes(table))
}

func (w *syncWorld) theLocalCollectionIsUnchanged() error {
	return w.collectionEquals(w.initial)
}

func (w *syncWorld) collectionEquals(want []domain.Quote) error {
	got := w.svc.Quotes(context.Background())
	if !reflect.DeepEqual(got, want) {
		return fmt.Errorf("expected collection %v, got %v", want, got)
	}

	return nil
}

func (w *syncWorld) theLatestNotificationIs(msg string) error {
	all := w.notes.all()
	if len(all) == 0 || all[len(all)-1].Message != msg {
		return fmt.Errorf("expected latest notification %q, got %v", msg, all)
	}

	return nil
}

func (w *syncWorld) exactlyErrorNotifications(n int) error {
	count := 0

	for _, s := range w.notes.all() {
		if s.Level == ports.LevelError {
			count++
		}
	}

	if count != n {
		return fmt.Errorf("expected %d error notifications, got %d", n, count)
	}

	return nil
}

func initializeSyncScenario(sc *godog.ScenarioContext) {
	w := &syncWorld{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*w = syncWorld{remote: &stubRemote{}, notes: &recorder{}}

		return ctx, nil
	})

	sc.Step(`^the local collection:$`, w.theLocalCollection)
	sc.Step(`^the remote returns:$`, w.theRemoteReturns)
	sc.Step(`^the remote returns nothing$`, w.theRemoteReturnsNothing)
	sc.Step(`^the remote fails with "([^"]*)"$`, w.theRemoteFailsWith)
	sc.Step(`^I sync$`, w.iSync)
	sc.Step(`^the sync status is "([^"]*)"$`, w.theSyncStatusIs)
	sc.Step(`^(\d+) conflicts? (?:is|are) reported$`, w.conflictsAreReported)
	sc.Step(`^the local collection is:$`, w.theLocalCollectionIs)
	sc.Step(`^the local collection is unchanged$`, w.theLocalCollectionIsUnchanged)
	sc.Step(`^the latest notification is "([^"]*)"$`, w.theLatestNotificationIs)
	sc.Step(`^exactly (\d+) error notifications? (?:was|were) sent$`, w.exactlyErrorNotifications)
}

func TestSyncFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeSyncScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
