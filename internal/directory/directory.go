// ABOUTME: Per-session cache of the company directory
// ABOUTME: Loaded once after login through the session so a 401 resets it

package directory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Talentid15/Candidate/internal/client"
)

// Fetcher lists every company
type Fetcher interface {
	SearchCompanies(ctx context.Context, token string) ([]client.Company, error)
}

// Authorizer runs calls that need the bearer token
type Authorizer interface {
	Authorized(ctx context.Context, fn func(ctx context.Context, token string) error) error
}

// Directory holds the companies for the current session
type Directory struct {
	fetcher Fetcher
	auth    Authorizer
	group   singleflight.Group

	mu        sync.RWMutex
	companies []client.Company
	loaded    bool
	gen       uint64
}

// New creates an empty directory
func New(fetcher Fetcher, auth Authorizer) *Directory {
	return &Directory{fetcher: fetcher, auth: auth}
}

// Load fetches the directory once per session. Concurrent callers share the
// in-flight request; later callers get the snapshot.
func (d *Directory) Load(ctx context.Context) ([]client.Company, error) {
	d.mu.RLock()
	if d.loaded {
		out := d.copyLocked()
		d.mu.RUnlock()
		return out, nil
	}
	gen := d.gen
	d.mu.RUnlock()

	// The shared fetch outlives any one caller; a caller that gives up only
	// stops waiting for it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := d.group.DoChan(fmt.Sprintf("companies-%d", gen), func() (any, error) {
		var list []client.Company
		err := d.auth.Authorized(fetchCtx, func(ctx context.Context, token string) error {
			var err error
			list, err = d.fetcher.SearchCompanies(ctx, token)
			return err
		})
		if err != nil {
			return nil, err
		}

		d.mu.Lock()
		defer d.mu.Unlock()
		// Drop results that belong to a session reset while in flight.
		if d.gen == gen {
			d.companies = list
			d.loaded = true
		}
		slog.Debug("Company directory loaded", "count", len(list))
		return nil, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("loading company directory: %w", ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, fmt.Errorf("loading company directory: %w", res.Err)
	}
	if res.Shared {
		slog.Debug("Company directory load shared with concurrent caller")
	}
	return d.Companies(), nil
}

// Companies returns a copy of the loaded directory (empty before Load)
func (d *Directory) Companies() []client.Company {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.copyLocked()
}

// Loaded reports whether the directory has been fetched this session
func (d *Directory) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}

// Reset drops the snapshot when the session ends
func (d *Directory) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.companies = nil
	d.loaded = false
	d.gen++
}

func (d *Directory) copyLocked() []client.Company {
	out := make([]client.Company, len(d.companies))
	copy(out, d.companies)
	return out
}
