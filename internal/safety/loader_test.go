package safety

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cinepick/internal/domain"
)

type fakeSource struct {
	calls    atomic.Int32
	keywords []string
	err      error
	release  chan struct{} // if set, BannedKeywords blocks until closed
}

func (f *fakeSource) BannedKeywords(ctx context.Context) ([]string, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.keywords, f.err
}

func TestLoaderLoadsOnce(t *testing.T) {
	src := &fakeSource{keywords: []string{" BadWord ", "badword", "", "other"}}
	l := NewLoader(src, nil)

	assert.False(t, l.Ready())
	got := l.Load(context.Background())
	assert.Equal(t, []string{"badword", "other"}, got)
	assert.True(t, l.Ready())

	l.Load(context.Background())
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestLoaderConcurrentCallersShareFetch(t *testing.T) {
	src := &fakeSource{keywords: []string{"x"}, release: make(chan struct{})}
	l := NewLoader(src, nil)

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = l.Load(context.Background())
		}(i)
	}

	// Let the callers pile up on the in-flight fetch
	time.Sleep(20 * time.Millisecond)
	assert.False(t, l.Ready())
	close(src.release)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
	for _, r := range results {
		assert.Equal(t, []string{"x"}, r)
	}
}

func TestLoaderNotFoundIsReadyAndEmpty(t *testing.T) {
	l := NewLoader(&fakeSource{err: domain.ErrNotFound}, nil)
	assert.Empty(t, l.Load(context.Background()))
	assert.True(t, l.Ready())
}

func TestLoaderErrorIsReadyAndEmpty(t *testing.T) {
	l := NewLoader(&fakeSource{err: errors.New("permission denied")}, nil)
	assert.Empty(t, l.Load(context.Background()))
	assert.True(t, l.Ready())

	select {
	case <-l.Done():
	default:
		t.Fatal("done channel should be closed after a failed load")
	}
}

func TestLoaderNilSource(t *testing.T) {
	l := NewLoader(nil, nil)
	assert.Empty(t, l.Load(context.Background()))
	assert.True(t, l.Ready())
}

func TestLoaderSurvivesCallerCancel(t *testing.T) {
	src := &fakeSource{keywords: []string{"x"}, release: make(chan struct{})}
	l := NewLoader(src, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan []string)
	go func() { done <- l.Load(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()
	close(src.release)

	assert.Equal(t, []string{"x"}, <-done)
}

func TestWaitReady(t *testing.T) {
	src := &fakeSource{keywords: []string{"x"}, release: make(chan struct{})}
	l := NewLoader(src, nil)

	assert.False(t, l.WaitReady(context.Background(), 0))

	go l.Load(context.Background())
	assert.False(t, l.WaitReady(context.Background(), 10*time.Millisecond))

	close(src.release)
	require.True(t, l.WaitReady(context.Background(), time.Second))
	assert.Equal(t, []string{"x"}, l.Keywords())
}

func TestFilterUsesLoadedKeywords(t *testing.T) {
	l := NewLoader(&fakeSource{keywords: []string{"forbidden"}}, nil)
	f := NewFilter(l)

	title := safeTitle()
	title.Overview = "a forbidden tale"
	assert.True(t, f.Allowed(&title), "keywords are not applied before loading")

	l.Load(context.Background())
	assert.False(t, f.Allowed(&title))
}
