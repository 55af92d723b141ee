package safety

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mmcdole/cinepick/internal/domain"
)

const loadTimeout = 10 * time.Second

// Loader fetches the remote banned-keyword document once per lifetime.
// A missing document or a failed fetch yields an empty list; the loader
// is marked ready after the first attempt either way.
type Loader struct {
	source domain.KeywordSource
	logger *slog.Logger
	sf     singleflight.Group

	mu       sync.RWMutex
	keywords []string
	ready    bool
	done     chan struct{}
}

// NewLoader creates a keyword loader. A nil source loads an empty list.
func NewLoader(source domain.KeywordSource, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		source: source,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Load performs the initial fetch. Concurrent callers share one in-flight
// fetch; calls after the first completed load return the cached list.
func (l *Loader) Load(ctx context.Context) []string {
	if l.Ready() {
		return l.Keywords()
	}

	// The shared fetch must not die with whichever caller started it
	sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
	defer cancel()

	v, _, _ := l.sf.Do("keywords", func() (interface{}, error) {
		if l.Ready() {
			return l.Keywords(), nil
		}
		kws := l.fetch(sharedCtx)

		l.mu.Lock()
		l.keywords = kws
		l.ready = true
		close(l.done)
		l.mu.Unlock()

		return kws, nil
	})
	return v.([]string)
}

func (l *Loader) fetch(ctx context.Context) []string {
	if l.source == nil {
		return []string{}
	}

	raw, err := l.source.BannedKeywords(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		l.logger.Warn("banned keyword document not found, using built-in list only")
		return []string{}
	case err != nil:
		l.logger.Error("failed to load banned keywords", "error", err)
		return []string{}
	}

	kws := normalizeKeywords(raw)
	l.logger.Info("loaded banned keywords", "count", len(kws))
	return kws
}

// Ready reports whether the initial load has finished
func (l *Loader) Ready() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ready
}

// Done is closed once the initial load has finished
func (l *Loader) Done() <-chan struct{} { return l.done }

// Keywords returns the loaded list (empty before the load finishes)
func (l *Loader) Keywords() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.keywords
}

// WaitReady blocks until the loader is ready or the wait elapses
func (l *Loader) WaitReady(ctx context.Context, wait time.Duration) bool {
	if l.Ready() {
		return true
	}
	if wait <= 0 {
		return false
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-l.done:
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}

func normalizeKeywords(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, k := range raw {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
