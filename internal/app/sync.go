package app

import (
	"context"
	"fmt"

	"github.com/jsamuelsen/quotesync/internal/domain"
)

// FetchFunc obtains one batch of remote quotes.
type FetchFunc func(ctx context.Context) ([]domain.Quote, error)

// Sync fetches a remote batch and merges it into local with server-wins
// resolution. local is only touched when the result is Resolved.
func Sync(ctx context.Context, local *domain.Collection, fetch FetchFunc) domain.SyncResult {
	remote, err := Fetch(ctx, fetch)
	if err != nil {
		return domain.Failed(err.Error())
	}

	return Apply(local, remote)
}

// Fetch calls fetch and validates the batch. A panic inside fetch is
// returned as an error. Any invalid remote quote rejects the whole batch.
func Fetch(ctx context.Context, fetch FetchFunc) (remote []domain.Quote, err error) {
	defer func() {
		if r := recover(); r != nil {
			remote, err = nil, fmt.Errorf("fetch panicked: %v", r)
		}
	}()

	remote, err = fetch(ctx)
	if err != nil {
		return nil, err
	}

	for i := range remote {
		if verr := remote[i].Validate(); verr != nil {
			return nil, fmt.Errorf("remote quote %d: %w", i, verr)
		}
	}

	return remote, nil
}

// Apply merges an already validated batch. An empty batch is NoData.
func Apply(local *domain.Collection, remote []domain.Quote) domain.SyncResult {
	if len(remote) == 0 {
		return domain.NoData()
	}

	return domain.Resolved(domain.Merge(local, remote))
}
