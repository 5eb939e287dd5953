package profile

import (
	"context"
	"sync"
	"time"

	"github.com/candyhouse/talent-profile/internal/types"
	"go.uber.org/zap"
)

// DefaultStaleAfter is how old the last update must be before GetProfile refetches.
const DefaultStaleAfter = 5 * time.Minute

// ResumeAPI is the remote profile resource the store reads from and saves to.
type ResumeAPI interface {
	GetResume(ctx context.Context) (types.ResumePatch, error)
	PutResume(ctx context.Context, resume types.Resume) error
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now as the store's notion of the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithStaleAfter changes the staleness window used by GetProfile.
func WithStaleAfter(d time.Duration) Option {
	return func(s *Store) {
		s.staleAfter = d
	}
}

// WithInitialState starts the store from st instead of DefaultState.
func WithInitialState(st State) Option {
	return func(s *Store) {
		s.state = st.Clone()
	}
}

// WithLogger logs every dispatched action at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store owns the current profile State. Every Dispatch replaces the state wholesale.
type Store struct {
	api        ResumeAPI
	now        func() time.Time
	staleAfter time.Duration
	logger     *zap.Logger

	mu          sync.Mutex
	state       State
	subscribers map[int]func(State)
	order       []int
	nextID      int
}

// NewStore creates a store backed by api, starting at DefaultState.
func NewStore(api ResumeAPI, opts ...Option) *Store {
	s := &Store{
		api:         api,
		now:         time.Now,
		staleAfter:  DefaultStaleAfter,
		logger:      zap.NewNop(),
		state:       DefaultState(),
		subscribers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dispatch applies a to the current state and notifies subscribers synchronously,
// in subscription order, with a copy of the new state.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	subs := make([]func(State), 0, len(s.order))
	for _, id := range s.order {
		subs = append(subs, s.subscribers[id])
	}
	s.mu.Unlock()

	s.logger.Debug("dispatch",
		zap.Stringer("action", a),
		zap.Bool("busy", next.IsBusy),
		zap.String("error", next.ErrorMessage),
	)
	for _, fn := range subs {
		fn(next.Clone())
	}
}

// Subscribe registers fn to be called after every Dispatch. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.order = append(s.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}
