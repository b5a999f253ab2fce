package prefetch_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phrazzld/notes-api/internal/client/prefetch"
	"github.com/phrazzld/notes-api/internal/domain"
	"github.com/phrazzld/notes-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	notes    []service.NoteWithUsername
	users    []*domain.User
	notesErr error
	usersErr error

	notesCalls atomic.Int32
	usersCalls atomic.Int32

	// both fetches block here until released, proving they run concurrently
	started sync.WaitGroup
}

func (f *fakeAPI) GetNotes(ctx context.Context) ([]service.NoteWithUsername, error) {
	f.notesCalls.Add(1)
	f.started.Done()
	f.started.Wait()
	return f.notes, f.notesErr
}

func (f *fakeAPI) GetUsers(ctx context.Context) ([]*domain.User, error) {
	f.usersCalls.Add(1)
	f.started.Done()
	f.started.Wait()
	return f.users, f.usersErr
}

func newFakeAPI() *fakeAPI {
	f := &fakeAPI{
		notes: []service.NoteWithUsername{{Note: domain.Note{Title: "T", Ticket: 1}, Username: "alice"}},
		users: []*domain.User{{Username: "alice"}},
	}
	return f
}

func TestPrefetcher_OnRouteEnterFillsBothKeys(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.started.Add(2)
	cache := prefetch.NewCache()
	p := prefetch.New(api, cache, nil)

	done := make(chan error, 1)
	go func() { done <- p.OnRouteEnter(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("fetches did not run concurrently")
	}

	notes, ok := p.Notes()
	require.True(t, ok)
	assert.Equal(t, "alice", notes[0].Username)

	users, ok := p.Users()
	require.True(t, ok)
	assert.Equal(t, "alice", users[0].Username)

	_, ok = cache.Get(prefetch.NotesListKey)
	assert.True(t, ok)
	_, ok = cache.Get(prefetch.UsersListKey)
	assert.True(t, ok)
}

func TestPrefetcher_ForceReplacesCachedEntries(t *testing.T) {
	t.Parallel()

	cache := prefetch.NewCache()
	cache.Set(prefetch.NotesListKey, []service.NoteWithUsername{})
	cache.Set(prefetch.UsersListKey, []*domain.User{})

	api := newFakeAPI()
	api.started.Add(2)
	p := prefetch.New(api, cache, nil)
	require.NoError(t, p.OnRouteEnter(context.Background()))

	assert.EqualValues(t, 1, api.notesCalls.Load())
	assert.EqualValues(t, 1, api.usersCalls.Load())
	notes, _ := p.Notes()
	assert.Len(t, notes, 1)
	users, _ := p.Users()
	assert.Len(t, users, 1)
}

func TestPrefetcher_OneFailureDoesNotBlockTheOther(t *testing.T) {
	t.Parallel()

	cache := prefetch.NewCache()
	stale := []service.NoteWithUsername{{Username: "stale"}}
	cache.Set(prefetch.NotesListKey, stale)

	api := newFakeAPI()
	api.started.Add(2)
	api.notesErr = errors.New("connection refused")
	p := prefetch.New(api, cache, nil)

	err := p.OnRouteEnter(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), prefetch.NotesListKey)

	notes, ok := p.Notes()
	require.True(t, ok)
	assert.Equal(t, "stale", notes[0].Username)

	users, ok := p.Users()
	require.True(t, ok)
	assert.Len(t, users, 1)
}

func TestCache_FetchWithoutForceUsesCachedEntry(t *testing.T) {
	t.Parallel()

	cache := prefetch.NewCache()
	var calls int
	fetch := func(context.Context) (any, error) {
		calls++
		return calls, nil
	}

	v, err := cache.Fetch(context.Background(), "k", fetch, false)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = cache.Fetch(context.Background(), "k", fetch, false)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = cache.Fetch(context.Background(), "k", fetch, true)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	entry, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, entry.Data)
	assert.False(t, entry.FetchedAt.IsZero())
}
