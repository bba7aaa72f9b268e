package filtersync

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

const (
	DefaultDebounce = 500 * time.Millisecond
	DefaultPageSize = 12
)

// Fetcher is the listing contract of the catalog API.
type Fetcher interface {
	ListProducts(ctx context.Context, query url.Values) (models.ProductPage, error)
	PriceRange(ctx context.Context) (models.PriceRange, error)
}

// History replaces the current address bar entry. An empty query means the bare path.
type History interface {
	Replace(query string)
}

type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d, like time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Option func(*Synchronizer)

func WithDebounce(d time.Duration) Option {
	return func(s *Synchronizer) { s.debounce = d }
}

func WithPageSize(n int) Option {
	return func(s *Synchronizer) { s.pageSize = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Synchronizer) { s.logger = l }
}

func WithAfterFunc(f AfterFunc) Option {
	return func(s *Synchronizer) { s.afterFunc = f }
}

// Synchronizer owns the filter state of a product listing. Continuous price edits are debounced;
// every other edit commits at once. A commit writes the URL and fetches the matching page, and
// only the response of the latest commit is kept.
type Synchronizer struct {
	fetcher   Fetcher
	history   History
	logger    *zap.Logger
	debounce  time.Duration
	pageSize  int
	afterFunc AfterFunc

	mu           sync.Mutex
	ctx          context.Context
	stop         context.CancelFunc
	ready        bool
	bounds       Bounds
	state        FilterState
	committed    FilterState
	hasCommitted bool
	timer        Timer
	timerSeq     uint64
	generation   uint64
	cancelFetch  context.CancelFunc
	filtering    bool
	page         models.ProductPage
	hasPage      bool
	inflight     sync.WaitGroup
}

func New(fetcher Fetcher, history History, opts ...Option) *Synchronizer {
	ctx, stop := context.WithCancel(context.Background())
	s := &Synchronizer{
		fetcher:   fetcher,
		history:   history,
		logger:    zap.NewNop(),
		debounce:  DefaultDebounce,
		pageSize:  DefaultPageSize,
		afterFunc: realAfterFunc,
		ctx:       ctx,
		stop:      stop,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads the catalog price bounds, restores the state encoded in rawQuery and issues the
// first fetch. Edits made before Init succeeds have no effect.
func (s *Synchronizer) Init(ctx context.Context, rawQuery string) error {
	pr, err := s.fetcher.PriceRange(ctx)
	if err != nil {
		return fmt.Errorf("loading price range: %w", err)
	}
	values, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		s.logger.Warn("ignoring malformed query string", zap.String("query", rawQuery), zap.Error(err))
		values = url.Values{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = Bounds{Min: pr.Min, Max: pr.Max}
	s.ready = true
	s.state = Decode(values, Defaults(s.bounds))
	s.commitLocked()
	return nil
}

// EditPrice records an in-progress price edit. The commit happens on CommitPrice or once the
// debounce delay passes without further edits.
func (s *Synchronizer) EditPrice(minPrice, maxPrice int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	s.state.MinPrice, s.state.MaxPrice = minPrice, maxPrice
	s.state.Page = 1

	s.stopTimerLocked()
	seq := s.timerSeq
	s.timer = s.afterFunc(s.debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if seq != s.timerSeq {
			return
		}
		s.commitLocked()
	})
}

// CommitPrice commits the pending price edit, as on blur or Enter.
func (s *Synchronizer) CommitPrice() {
	s.edit(func(*FilterState) {})
}

func (s *Synchronizer) ToggleCategory(slug string) {
	if !categorySlugPattern.MatchString(slug) {
		return
	}
	s.edit(func(st *FilterState) {
		st.Categories = toggle(st.Categories, slug)
		st.Page = 1
	})
}

func (s *Synchronizer) SetInStock(v bool) {
	s.edit(func(st *FilterState) {
		st.InStock = v
		st.Page = 1
	})
}

func (s *Synchronizer) SetFeatured(v bool) {
	s.edit(func(st *FilterState) {
		st.Featured = v
		st.Page = 1
	})
}

func (s *Synchronizer) SetSort(sort models.ProductSort) {
	s.edit(func(st *FilterState) {
		st.Sort = models.ParseProductSort(string(sort))
		st.Page = 1
	})
}

func (s *Synchronizer) SetSearch(q string) {
	s.edit(func(st *FilterState) {
		st.Search = normalizeSearch(q)
		st.Page = 1
	})
}

func (s *Synchronizer) SetPage(page int) {
	s.edit(func(st *FilterState) {
		st.Page = max(page, 1)
	})
}

// Reset restores every default and strips the query string in a single commit.
func (s *Synchronizer) Reset() {
	s.edit(func(st *FilterState) {
		*st = Defaults(s.bounds)
	})
}

func (s *Synchronizer) edit(apply func(*FilterState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	apply(&s.state)
	s.commitLocked()
}

func (s *Synchronizer) stopTimerLocked() {
	s.timerSeq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Synchronizer) commitLocked() {
	if !s.ready {
		return
	}
	s.stopTimerLocked()

	next := s.state.Clamp(s.bounds)
	s.state = next
	if s.hasCommitted && next.Equal(s.committed) {
		return
	}
	s.committed = next.clone()
	s.hasCommitted = true
	s.history.Replace(Encode(next, Defaults(s.bounds)).Encode())

	s.generation++
	gen := s.generation
	if s.cancelFetch != nil {
		s.cancelFetch()
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancelFetch = cancel
	s.filtering = true

	s.inflight.Add(1)
	go s.fetch(ctx, gen, next.Query(s.pageSize))
}

func (s *Synchronizer) fetch(ctx context.Context, gen uint64, query url.Values) {
	defer s.inflight.Done()
	page, err := s.fetcher.ListProducts(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.logger.Debug("discarding superseded product page", zap.Uint64("generation", gen))
		return
	}
	s.cancelFetch()
	s.cancelFetch = nil
	s.filtering = false
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.logger.Warn("product fetch failed, keeping previous results", zap.String("query", query.Encode()), zap.Error(err))
		}
		return
	}
	s.page = page
	s.hasPage = true
}

// State is the current local state, including a price edit that has not been committed yet.
func (s *Synchronizer) State() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Committed is the state last written to the URL.
func (s *Synchronizer) Committed() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed.clone()
}

func (s *Synchronizer) Bounds() (Bounds, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds, s.ready
}

// Products returns the latest page received. The second value is false until a fetch succeeded.
func (s *Synchronizer) Products() (models.ProductPage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page, s.hasPage
}

// Filtering reports whether the latest commit is still waiting for its page.
func (s *Synchronizer) Filtering() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filtering
}

// Wait blocks until no fetch is in flight.
func (s *Synchronizer) Wait() {
	s.inflight.Wait()
}

// Close stops the debounce timer, cancels in-flight fetches and waits for them.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	s.stopTimerLocked()
	s.ready = false
	s.mu.Unlock()
	s.stop()
	s.inflight.Wait()
}
