package usecase_session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/humanbelnik/movieparty/internal/model"
)

const defaultIdleTimeout = 30 * time.Minute

// ChangeListener receives every view change of every open session.
type ChangeListener func(View)

type key struct {
	party       model.PartyID
	participant model.ParticipantID
}

type entry struct {
	session    *Session
	ready      chan struct{}
	err        error
	lastActive time.Time
	holders    int
}

// Registry keeps one open Session per (party, participant) and closes the ones
// nobody touched for longer than the idle timeout.
type Registry struct {
	store       Store
	catalog     Catalog
	logger      *slog.Logger
	idleTimeout time.Duration
	link        func(model.PartyID) string
	listener    ChangeListener
	now         func() time.Time

	mu       sync.Mutex
	sessions map[key]*entry
}

type RegistryOption func(*Registry)

func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

func WithIdleTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) {
		if d > 0 {
			r.idleTimeout = d
		}
	}
}

func WithLinkBuilder(fn func(model.PartyID) string) RegistryOption {
	return func(r *Registry) {
		r.link = fn
	}
}

func WithListener(fn ChangeListener) RegistryOption {
	return func(r *Registry) {
		r.listener = fn
	}
}

func NewRegistry(store Store, catalog Catalog, opts ...RegistryOption) *Registry {
	r := &Registry{
		store:       store,
		catalog:     catalog,
		logger:      slog.Default(),
		idleTimeout: defaultIdleTimeout,
		now:         time.Now,
		sessions:    make(map[key]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Acquire returns the open session for the pair, opening it on first access.
func (r *Registry) Acquire(ctx context.Context, partyID model.PartyID, participantID model.ParticipantID) (*Session, error) {
	s, _, err := r.acquire(ctx, partyID, participantID, false)
	return s, err
}

// Hold is Acquire that also keeps the session from being reaped until release is called.
func (r *Registry) Hold(ctx context.Context, partyID model.PartyID, participantID model.ParticipantID) (*Session, func(), error) {
	return r.acquire(ctx, partyID, participantID, true)
}

func (r *Registry) acquire(
	ctx context.Context,
	partyID model.PartyID,
	participantID model.ParticipantID,
	hold bool,
) (*Session, func(), error) {
	k := key{party: partyID, participant: participantID}

	r.mu.Lock()
	e, ok := r.sessions[k]
	if !ok {
		e = r.newEntryLocked(k)
	}
	e.lastActive = r.now()
	if hold {
		e.holders++
	}
	r.mu.Unlock()

	if !ok {
		// Other callers wait on this open; one of them going away must not fail it.
		e.err = e.session.Open(context.WithoutCancel(ctx))
		if e.err != nil {
			r.mu.Lock()
			if r.sessions[k] == e {
				delete(r.sessions, k)
			}
			r.mu.Unlock()
			e.session.Close()
		}
		close(e.ready)
	}

	select {
	case <-e.ready:
	case <-ctx.Done():
		if hold {
			r.release(e)
		}
		return nil, nil, ctx.Err()
	}
	if e.err != nil {
		return nil, nil, e.err
	}

	release := func() {}
	if hold {
		var once sync.Once
		release = func() {
			once.Do(func() { r.release(e) })
		}
	}
	return e.session, release, nil
}

func (r *Registry) newEntryLocked(k key) *entry {
	opts := []Option{WithLogger(r.logger)}
	if r.link != nil {
		opts = append(opts, WithShareLink(r.link(k.party)))
	}
	if r.listener != nil {
		opts = append(opts, WithChangeListener(r.listener))
	}

	e := &entry{
		session: New(k.party, k.participant, r.store, r.catalog, opts...),
		ready:   make(chan struct{}),
	}
	r.sessions[k] = e
	return e
}

func (r *Registry) release(e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.holders > 0 {
		e.holders--
	}
	e.lastActive = r.now()
}

// Len is the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Reap closes sessions idle for longer than the idle timeout and returns how many.
func (r *Registry) Reap() int {
	cutoff := r.now().Add(-r.idleTimeout)

	r.mu.Lock()
	var stale []*Session
	for k, e := range r.sessions {
		if e.holders > 0 || !e.lastActive.Before(cutoff) {
			continue
		}
		select {
		case <-e.ready:
		default:
			continue
		}
		delete(r.sessions, k)
		stale = append(stale, e.session)
	}
	r.mu.Unlock()

	for _, s := range stale {
		s.Close()
		r.logger.Debug("idle session closed", "party_id", s.PartyID(), "participant_id", s.ParticipantID())
	}
	return len(stale)
}

// Run reaps idle sessions until ctx is done, then closes everything.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.idleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Close()
			return
		case <-ticker.C:
			if n := r.Reap(); n > 0 {
				r.logger.Info("reaped idle sessions", "count", n)
			}
		}
	}
}

func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[key]*entry)
	r.mu.Unlock()

	for _, e := range sessions {
		e.session.Close()
	}
}
