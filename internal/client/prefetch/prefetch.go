package prefetch

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/phrazzld/notes-api/internal/domain"
	"github.com/phrazzld/notes-api/internal/service"
)

// Cache keys filled by OnRouteEnter.
const (
	NotesListKey = "notesList"
	UsersListKey = "usersList"
)

// API is the part of the notes client the prefetcher reads from.
type API interface {
	GetNotes(ctx context.Context) ([]service.NoteWithUsername, error)
	GetUsers(ctx context.Context) ([]*domain.User, error)
}

// Prefetcher refreshes the note and user lists whenever a protected route is entered.
type Prefetcher struct {
	api    API
	cache  *Cache
	logger *slog.Logger
}

// New creates a Prefetcher that stores into cache.
func New(api API, cache *Cache, logger *slog.Logger) *Prefetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prefetcher{
		api:    api,
		cache:  cache,
		logger: logger.With("component", "prefetch"),
	}
}

// OnRouteEnter force-fetches both lists concurrently, replacing whatever is cached.
// Each fetch runs to completion regardless of the other; the first error is returned.
func (p *Prefetcher) OnRouteEnter(ctx context.Context) error {
	var g errgroup.Group

	g.Go(func() error {
		_, err := p.cache.Fetch(ctx, NotesListKey, func(ctx context.Context) (any, error) {
			return p.api.GetNotes(ctx)
		}, true)
		if err != nil {
			p.logger.WarnContext(ctx, "prefetch failed", "key", NotesListKey, "error", err)
			return fmt.Errorf("prefetch %s: %w", NotesListKey, err)
		}
		return nil
	})

	g.Go(func() error {
		_, err := p.cache.Fetch(ctx, UsersListKey, func(ctx context.Context) (any, error) {
			return p.api.GetUsers(ctx)
		}, true)
		if err != nil {
			p.logger.WarnContext(ctx, "prefetch failed", "key", UsersListKey, "error", err)
			return fmt.Errorf("prefetch %s: %w", UsersListKey, err)
		}
		return nil
	})

	return g.Wait()
}

// Notes returns the cached note list.
func (p *Prefetcher) Notes() ([]service.NoteWithUsername, bool) {
	e, ok := p.cache.Get(NotesListKey)
	if !ok {
		return nil, false
	}
	notes, ok := e.Data.([]service.NoteWithUsername)
	return notes, ok
}

// Users returns the cached user list.
func (p *Prefetcher) Users() ([]*domain.User, bool) {
	e, ok := p.cache.Get(UsersListKey)
	if !ok {
		return nil, false
	}
	users, ok := e.Data.([]*domain.User)
	return users, ok
}
