package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sk408/yt-fix/internal/models"
)

// ErrMaxPagesReached is returned by a Paginator that hit its page safety
// limit before upstream signalled exhaustion.
var ErrMaxPagesReached = errors.New("maximum page count reached before pagination completed")

// ErrPaginatorExhausted is returned when a Paginator is driven again after
// it already completed or failed. A new instance must be created per fetch.
var ErrPaginatorExhausted = errors.New("paginator is not restartable")

// PageFunc fetches one page of an upstream listing. An empty cursor requests
// the first page; an empty next cursor signals pagination is complete.
type PageFunc func(ctx context.Context, cursor string) (items []models.RawEntry, next string, err error)

// Paginator drives repeated calls to a listing endpoint until exhaustion,
// accumulating entries in upstream order. A transient failure on a cursor is
// retried once after a fixed backoff; a second consecutive failure on the
// same cursor is fatal and the accumulation so far is returned alongside the
// error.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Paginator struct {
	page         PageFunc
	maxPages     int
	retryBackoff time.Duration
	done         bool
}

// PaginatorOptions configures a Paginator.
type PaginatorOptions struct {
	// MaxPages caps the number of pages fetched, guarding against an
	// upstream that never stops returning cursors. 0 means the default.
	MaxPages int

	// RetryBackoff is the fixed delay before the single retry of a
	// failed page. Negative means no delay; 0 means the default.
	RetryBackoff time.Duration
}

const (
	defaultMaxPages     = 100
	defaultRetryBackoff = 2 * time.Second
)

// NewPaginator creates a Paginator over the given page function.
func NewPaginator(page PageFunc, opts PaginatorOptions) *Paginator {
	if opts.MaxPages <= 0 {
		opts.MaxPages = defaultMaxPages
	}
	if opts.RetryBackoff == 0 {
		opts.RetryBackoff = defaultRetryBackoff
	}
	if opts.RetryBackoff < 0 {
		opts.RetryBackoff = 0
	}
	return &Paginator{
		page:         page,
		maxPages:     opts.MaxPages,
		retryBackoff: opts.RetryBackoff,
	}
}

// All retrieves every remaining page. On failure the entries accumulated
// before the failing page are returned together with the error.
func (p *Paginator) All(ctx context.Context) ([]models.RawEntry, error) {
	if p.done {
		return nil, ErrPaginatorExhausted
	}
	p.done = true

	var all []models.RawEntry
	cursor := ""

	for pageNum := 1; ; pageNum++ {
		if pageNum > p.maxPages {
			return all, fmt.Errorf("page %d: %w", pageNum, ErrMaxPagesReached)
		}

		items, next, err := p.fetchPage(ctx, cursor)
		if err != nil {
			return all, fmt.Errorf("page %d: %w", pageNum, err)
		}

		all = append(all, items...)

		if next == "" {
			return all, nil
		}
		cursor = next
	}
}

// fetchPage fetches one page, retrying once after the fixed backoff if the
// first attempt fails with a retryable error.
func (p *Paginator) fetchPage(ctx context.Context, cursor string) ([]models.RawEntry, string, error) {
	items, next, err := p.page(ctx, cursor)
	if err == nil {
		return items, next, nil
	}
	if !IsRetryable(err) {
		return nil, "", err
	}

	if p.retryBackoff > 0 {
		timer := time.NewTimer(p.retryBackoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, "", ctx.Err()
		}
	}

	items, next, retryErr := p.page(ctx, cursor)
	if retryErr != nil {
		return nil, "", fmt.Errorf("retry failed: %w", retryErr)
	}
	return items, next, nil
}
