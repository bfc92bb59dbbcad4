package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sp3dr4/folio/internal/domain"
	"github.com/sp3dr4/folio/internal/infrastructure/cache"
	"github.com/sp3dr4/folio/internal/infrastructure/memory"
)

// spyStore counts the post reads that reach the store and can fail or
// block them on demand.
type spyStore struct {
	*memory.Store

	mu        sync.Mutex
	listCalls int
	slugCalls int
	failWith  error
	gate      chan struct{}
}

func newSpyStore() *spyStore {
	return &spyStore{Store: memory.NewStore()}
}

func (s *spyStore) enter(counter *int) (chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*counter++
	return s.gate, s.failWith
}

func (s *spyStore) ListPublishedPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	gate, err := s.enter(&s.listCalls)
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return s.Store.ListPublishedPosts(ctx, limit)
}

func (s *spyStore) FindPublishedPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	gate, err := s.enter(&s.slugCalls)
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return s.Store.FindPublishedPostBySlug(ctx, slug)
}

func (s *spyStore) calls() (list, slug int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls, s.slugCalls
}

func (s *spyStore) setFailure(err error) {
	s.mu.Lock()
	s.failWith = err
	s.mu.Unlock()
}

func (s *spyStore) setGate(gate chan struct{}) {
	s.mu.Lock()
	s.gate = gate
	s.mu.Unlock()
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestReader(t *testing.T, store domain.PostRepository) (*PostReader, *fakeClock) {
	t.Helper()

	memCache, err := cache.NewMemoryCache(64)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}

	clock := &fakeClock{now: time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)}
	reader := NewPostReader(store, memCache, time.Minute, nil, nil)
	reader.now = clock.Now
	return reader, clock
}

func seedPost(t *testing.T, store *spyStore, slug string, viewCount int, publishedAt time.Time) *domain.Post {
	t.Helper()

	post, err := domain.NewPost(slug, "Title "+slug, "Content of "+slug, "", &publishedAt)
	if err != nil {
		t.Fatalf("failed to build post: %v", err)
	}
	post.ViewCount = viewCount

	created, err := store.CreatePost(context.Background(), post)
	if err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return created
}

func TestPostReader_GetPostsIsCachedPerQuery(t *testing.T) {
	store := newSpyStore()
	reader, _ := newTestReader(t, store)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, slug := range []string{"a", "b", "c"} {
		seedPost(t, store, slug, 0, base.Add(time.Duration(i)*time.Hour))
	}

	first, err := reader.GetPosts(ctx, PostQuery{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := reader.GetPosts(ctx, PostQuery{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if list, _ := store.calls(); list != 1 {
		t.Fatalf("expected 1 store call for identical queries, got %d", list)
	}
	if len(first) != 2 || len(second) != 2 || &first[0] != &second[0] {
		t.Fatalf("expected the identical cached result, got %v and %v", first, second)
	}
	if first[0].Slug != "c" {
		t.Errorf("expected newest post first, got %s", first[0].Slug)
	}

	all, err := reader.GetPosts(ctx, PostQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 posts without a limit, got %d", len(all))
	}
	if list, _ := store.calls(); list != 2 {
		t.Fatalf("expected a different limit to miss the cache, got %d calls", list)
	}

	// negative and zero limits normalise to the same key
	if _, err := reader.GetPosts(ctx, PostQuery{Limit: -1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list, _ := store.calls(); list != 2 {
		t.Fatalf("expected limit -1 to share the unlimited entry, got %d calls", list)
	}
}

func TestPostReader_GetPostBySlugIsCached(t *testing.T) {
	store := newSpyStore()
	reader, _ := newTestReader(t, store)
	ctx := context.Background()
	seedPost(t, store, "hello", 0, time.Now())

	first, err := reader.GetPostBySlug(ctx, "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := reader.GetPostBySlug(ctx, "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("expected the same cached value")
	}
	if _, slug := store.calls(); slug != 1 {
		t.Errorf("expected at most 1 store call, got %d", slug)
	}
}

func TestPostReader_DistinctSlugsAreIndependent(t *testing.T) {
	store := newSpyStore()
	reader, _ := newTestReader(t, store)
	ctx := context.Background()
	seedPost(t, store, "one", 0, time.Now())
	seedPost(t, store, "two", 0, time.Now())

	one, err := reader.GetPostBySlug(ctx, "one")
	if err != nil || one == nil || one.Slug != "one" {
		t.Fatalf("expected post one, got %v (%v)", one, err)
	}

	two, err := reader.GetPostBySlug(ctx, "two")
	if err != nil || two == nil || two.Slug != "two" {
		t.Fatalf("expected post two, got %v (%v)", two, err)
	}
	if _, slug := store.calls(); slug != 2 {
		t.Fatalf("expected populating one slug not to serve another, got %d calls", slug)
	}

	again, _ := reader.GetPostBySlug(ctx, "one")
	if again != one {
		t.Errorf("expected slug one to still be cached")
	}
	if _, slug := store.calls(); slug != 2 {
		t.Errorf("expected no extra store call, got %d", slug)
	}
}

func TestPostReader_ClearCacheForcesStoreRead(t *testing.T) {
	store := newSpyStore()
	reader, _ := newTestReader(t, store)
	ctx := context.Background()
	seedPost(t, store, "hello", 0, time.Now())

	if _, err := reader.GetPostBySlug(ctx, "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := reader.GetPosts(ctx, PostQuery{Limit: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := reader.ClearCache(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := reader.GetPostBySlug(ctx, "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := reader.GetPosts(ctx, PostQuery{Limit: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, slug := store.calls()
	if list != 2 || slug != 2 {
		t.Errorf("expected every key to reach the store again, got list=%d slug=%d", list, slug)
	}
}

func TestPostReader_NonExistentSlugIsAbsent(t *testing.T) {
	store := newSpyStore()
	reader, _ := newTestReader(t, store)
	ctx := context.Background()

	post, err := reader.GetPostBySlug(ctx, "non-existent")
	if err != nil {
		t.Fatalf("expected absent value, got error %v", err)
	}
	if post != nil {
		t.Fatalf("expected nil post, got %v", post)
	}

	post, err = reader.GetPostBySlug(ctx, "non-existent")
	if err != nil || post != nil {
		t.Fatalf("expected cached absent value, got %v (%v)", post, err)
	}
	if _, slug := store.calls(); slug != 1 {
		t.Errorf("expected the absent marker to be cached, got %d store calls", slug)
	}
}

func TestPostReader_DraftIsAbsent(t *testing.T) {
	store := newSpyStore()
	reader, _ := newTestReader(t, store)

	draft, _ := domain.NewPost("draft", "Draft", "wip", "", nil)
	if _, err := store.CreatePost(context.Background(), draft); err != nil {
		t.Fatalf("failed to seed draft: %v", err)
	}

	post, err := reader.GetPostBySlug(context.Background(), "draft")
	if err != nil || post != nil {
		t.Fatalf("expected drafts to be invisible, got %v (%v)", post, err)
	}
}

func TestPostReader_StoreErrorIsNotCached(t *testing.T) {
	store := newSpyStore()
	reader, _ := newTestReader(t, store)
	ctx := context.Background()
	seedPost(t, store, "hello", 0, time.Now())

	boom := errors.New("connection refused")
	store.setFailure(boom)

	_, err := reader.GetPostBySlug(ctx, "hello")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected the store error to be wrapped, got %v", err)
	}
	if fetchErr.Key != "posts:slug:hello" {
		t.Errorf("unexpected key %q", fetchErr.Key)
	}

	if _, err := reader.GetPosts(ctx, PostQuery{}); !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError for list, got %v", err)
	}

	store.setFailure(nil)
	post, err := reader.GetPostBySlug(ctx, "hello")
	if err != nil || post == nil {
		t.Fatalf("expected recovery after the store comes back, got %v (%v)", post, err)
	}
	if _, slug := store.calls(); slug != 2 {
		t.Errorf("expected failed fetch not to be cached, got %d calls", slug)
	}
}

func TestPostReader_ExpiredEntryIsRefetched(t *testing.T) {
	store := newSpyStore()
	reader, clock := newTestReader(t, store)
	ctx := context.Background()
	seedPost(t, store, "hello", 0, time.Now())

	if _, err := reader.GetPostBySlug(ctx, "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock.Advance(reader.TTL() - time.Second)
	if _, err := reader.GetPostBySlug(ctx, "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, slug := store.calls(); slug != 1 {
		t.Fatalf("expected entry to be valid inside the lifetime, got %d calls", slug)
	}

	clock.Advance(time.Second)
	if _, err := reader.GetPostBySlug(ctx, "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, slug := store.calls(); slug != 2 {
		t.Fatalf("expected expired entry to be refetched, got %d calls", slug)
	}
}

func TestPostReader_EmptySlug(t *testing.T) {
	reader, _ := newTestReader(t, newSpyStore())

	for _, slug := range []string{"", "   "} {
		if _, err := reader.GetPostBySlug(context.Background(), slug); !errors.Is(err, domain.ErrInvalidSlug) {
			t.Errorf("expected ErrInvalidSlug for %q, got %v", slug, err)
		}
	}
}

func TestPostReader_SeededPostScenario(t *testing.T) {
	store := newSpyStore()
	reader, _ := newTestReader(t, store)
	ctx := context.Background()

	publishedAt, _ := time.Parse(time.RFC3339, "2026-02-10T00:00:00Z")
	seedPost(t, store, "test-post", 42, publishedAt)

	first, err := reader.GetPostBySlug(ctx, "test-post")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == nil || first.Slug != "test-post" || first.ViewCount != 42 {
		t.Fatalf("expected the seeded record, got %+v", first)
	}
	if first.PublishedAt == nil || !first.PublishedAt.Equal(publishedAt) {
		t.Fatalf("unexpected published_at %v", first.PublishedAt)
	}

	second, err := reader.GetPostBySlug(ctx, "test-post")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first {
		t.Errorf("expected the identical value on the second call")
	}
	if _, slug := store.calls(); slug != 1 {
		t.Errorf("expected the store-call counter to stay at 1, got %d", slug)
	}
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (*domain.CacheEntry, error) {
	return nil, errors.New("cache down")
}
func (brokenCache) Set(context.Context, string, *domain.CacheEntry) error {
	return errors.New("cache down")
}
func (brokenCache) Clear(context.Context) error { return errors.New("cache down") }
func (brokenCache) Ping(context.Context) error  { return errors.New("cache down") }

func TestPostReader_CacheFailureFallsThrough(t *testing.T) {
	store := newSpyStore()
	seedPost(t, store, "hello", 0, time.Now())
	reader := NewPostReader(store, brokenCache{}, time.Minute, nil, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		post, err := reader.GetPostBySlug(ctx, "hello")
		if err != nil || post == nil {
			t.Fatalf("expected a store read despite the cache failure, got %v (%v)", post, err)
		}
	}
	if _, slug := store.calls(); slug != 2 {
		t.Errorf("expected every read to reach the store, got %d", slug)
	}
	if err := reader.ClearCache(ctx); err == nil {
		t.Errorf("expected clear to report the backend failure")
	}
}

func TestPostReader_ConcurrentMissesShareOneFetch(t *testing.T) {
	store := newSpyStore()
	reader, _ := newTestReader(t, store)
	seedPost(t, store, "hello", 0, time.Now())

	gate := make(chan struct{})
	store.setGate(gate)

	const readers = 8
	var wg sync.WaitGroup
	results := make([]*domain.Post, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = reader.GetPostBySlug(context.Background(), "hello")
		}(i)
	}

	waitForCalls(t, store, 1)
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	if _, slug := store.calls(); slug != 1 {
		t.Errorf("expected concurrent misses to be coalesced, got %d store calls", slug)
	}
	for i, p := range results {
		if p == nil || p.Slug != "hello" {
			t.Errorf("reader %d got %v", i, p)
		}
	}
}

func TestPostReader_ClearDuringFetchDropsResult(t *testing.T) {
	store := newSpyStore()
	reader, _ := newTestReader(t, store)
	ctx := context.Background()
	seedPost(t, store, "hello", 0, time.Now())

	gate := make(chan struct{})
	store.setGate(gate)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = reader.GetPostBySlug(ctx, "hello")
	}()

	waitForCalls(t, store, 1)
	if err := reader.ClearCache(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(gate)
	<-done

	store.setGate(nil)
	if _, err := reader.GetPostBySlug(ctx, "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, slug := store.calls(); slug != 2 {
		t.Errorf("expected the result fetched before the clear to be dropped, got %d calls", slug)
	}
}

func TestPostReader_CancelledCallerDoesNotFailSharedFetch(t *testing.T) {
	store := newSpyStore()
	reader, _ := newTestReader(t, store)
	seedPost(t, store, "hello", 0, time.Now())

	gate := make(chan struct{})
	store.setGate(gate)

	firstCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	firstErr := make(chan error, 1)
	go func() {
		_, err := reader.GetPostBySlug(firstCtx, "hello")
		firstErr <- err
	}()
	waitForCalls(t, store, 1)

	type result struct {
		post *domain.Post
		err  error
	}
	second := make(chan result, 1)
	go func() {
		post, err := reader.GetPostBySlug(context.Background(), "hello")
		second <- result{post, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	select {
	case err := <-firstErr:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected the cancelled caller to get context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(gate)
	res := <-second
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if res.post == nil || res.post.Slug != "hello" {
		t.Errorf("expected post hello, got %v", res.post)
	}
	if _, slug := store.calls(); slug != 1 {
		t.Errorf("expected one shared store call, got %d", slug)
	}

	// The shared result was cached despite the first caller leaving.
	if _, err := reader.GetPostBySlug(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, slug := store.calls(); slug != 1 {
		t.Errorf("expected a cache hit, got %d store calls", slug)
	}
}

func TestPostReader_SharedFetchIsBounded(t *testing.T) {
	store := newSpyStore()
	reader, _ := newTestReader(t, store)
	reader.timeout = 20 * time.Millisecond
	seedPost(t, store, "hello", 0, time.Now())

	gate := make(chan struct{})
	defer close(gate)
	store.setGate(gate)

	_, err := reader.GetPostBySlug(context.Background(), "hello")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestPostReader_GetPostsReturnsDeepCopies(t *testing.T) {
	store := newSpyStore()
	reader, _ := newTestReader(t, store)
	ctx := context.Background()
	publishedAt := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	seedPost(t, store, "hello", 0, publishedAt)

	posts, err := reader.GetPosts(ctx, PostQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	*posts[0].PublishedAt = posts[0].PublishedAt.Add(time.Hour)
	posts[0].Title = "changed"

	again, err := reader.GetPosts(ctx, PostQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !again[0].PublishedAt.Equal(publishedAt) || again[0].Title == "changed" {
		t.Errorf("cached list was mutated through a returned post: %+v", again[0])
	}
	if list, _ := store.calls(); list != 1 {
		t.Errorf("expected the second read to hit the cache, got %d store calls", list)
	}
}

func waitForCalls(t *testing.T, store *spyStore, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, slug := store.calls(); slug >= want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("store never received %d calls", want)
}
