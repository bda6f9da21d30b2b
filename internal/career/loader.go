// ABOUTME: Loads career pages from the company endpoint with a TTL cache
// ABOUTME: Failures still yield the placeholder page plus a displayable error

package career

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Talentid15/Candidate/internal/cache"
	"github.com/Talentid15/Candidate/internal/client"
)

// MsgLoadFailed is shown for every failure other than not-found
const MsgLoadFailed = "Failed to load company data."

// Fetcher looks up one company
type Fetcher interface {
	Company(ctx context.Context, name string) (*client.CompanyDetail, error)
}

// LoadError is the error banner of the career screen
type LoadError struct {
	Company  string
	NotFound bool
	Err      error
}

func (e *LoadError) Error() string {
	if e.NotFound {
		return fmt.Sprintf("Company \"%s\" not found", e.Company)
	}
	return MsgLoadFailed
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader fetches career pages, caching successful lookups
type Loader struct {
	fetcher Fetcher
	cache   *cache.Cache[Page]
}

// NewLoader creates a loader. pages may be nil to disable caching.
func NewLoader(fetcher Fetcher, pages *cache.Cache[Page]) *Loader {
	return &Loader{fetcher: fetcher, cache: pages}
}

// Load returns the career page for name. On failure it returns the
// placeholder page together with a *LoadError.
func (l *Loader) Load(ctx context.Context, name string) (Page, error) {
	if l.cache != nil {
		if page, ok := l.cache.Get(name); ok {
			return page, nil
		}
	}

	detail, err := l.fetcher.Company(ctx, name)
	if err != nil {
		loadErr := &LoadError{Company: name, NotFound: errors.Is(err, client.ErrNotFound), Err: err}
		slog.WarnContext(ctx, "Career page load failed", "company", name, "not_found", loadErr.NotFound, "error", err)
		return Placeholder(name), loadErr
	}

	page := FromDetail(name, detail)
	if l.cache != nil {
		l.cache.Set(name, page)
	}
	slog.DebugContext(ctx, "Career page loaded", "company", name)
	return page, nil
}
