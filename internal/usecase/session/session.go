package usecase_session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/humanbelnik/movieparty/internal/model"
	"github.com/humanbelnik/movieparty/internal/service/tally"
)

// Session is the state machine of one participant inside one party.
//
// The mutex guards local state only. It is never held across store or catalog
// calls: the store may push a change back synchronously from inside a write.
type Session struct {
	partyID       model.PartyID
	participantID model.ParticipantID
	link          string

	store    Store
	catalog  Catalog
	logger   *slog.Logger
	onChange func(View)

	// notifyMu keeps snapshot and delivery together so listeners see views in order.
	notifyMu sync.Mutex

	mu     sync.Mutex
	opened bool
	closed bool
	unsubs []func()

	creatorID model.ParticipantID
	caps      Capabilities
	genres    model.Genres

	filters       model.Filters
	candidates    []model.Movie
	selection     []model.Movie
	showSelection bool

	locked      []model.Movie
	lockGen     uint64
	votingIndex int
	votes       model.Votes
	hasVoted    bool

	showResults bool
	results     []model.Result

	loading bool
	errMsg  string
}

type Option func(*Session)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithChangeListener registers fn to receive a fresh view after every state change.
func WithChangeListener(fn func(View)) Option {
	return func(s *Session) {
		s.onChange = fn
	}
}

func WithShareLink(link string) Option {
	return func(s *Session) {
		s.link = link
	}
}

func New(
	partyID model.PartyID,
	participantID model.ParticipantID,
	store Store,
	catalog Catalog,
	opts ...Option,
) *Session {
	s := &Session{
		partyID:       partyID,
		participantID: participantID,
		store:         store,
		catalog:       catalog,
		logger:        slog.Default(),
		filters:       model.DefaultFilters(),
		genres:        model.Genres{},
		votes:         model.Votes{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("party_id", partyID, "participant_id", participantID)
	return s
}

func (s *Session) PartyID() model.PartyID {
	return s.partyID
}

func (s *Session) ParticipantID() model.ParticipantID {
	return s.participantID
}

// Open joins the party: it subscribes to the party record, claims the creator
// slot when nobody holds it, loads the participant's vote state and the genre list.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.opened {
		s.mu.Unlock()
		return nil
	}
	s.opened = true
	s.mu.Unlock()

	if err := s.open(ctx); err != nil {
		s.mu.Lock()
		s.opened = false
		s.mu.Unlock()
		s.unsubscribeAll()
		return err
	}

	s.logger.Debug("session opened")
	s.notify()
	return nil
}

func (s *Session) open(ctx context.Context) error {
	unsubParty, err := s.store.SubscribeParty(ctx, s.partyID, s.onParty)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}
	s.addUnsub(unsubParty)

	party, found, err := s.store.GetParty(ctx, s.partyID)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}
	if !found || !party.HasCreator() {
		patch := model.PartyPatch{}.ClaimCreator(s.participantID)
		if err := s.store.SetParty(ctx, s.partyID, patch); err != nil {
			return errors.Join(ErrInternal, err)
		}
		party = patch.Apply(party)
		s.logger.Info("claimed party creator slot")
	}
	s.mu.Lock()
	s.applyPartyLocked(party)
	s.mu.Unlock()

	if err := s.refreshHasVoted(ctx); err != nil {
		return err
	}

	unsubVotes, err := s.store.SubscribeVotes(ctx, s.partyID, s.onVotes)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}
	s.addUnsub(unsubVotes)

	genres, err := s.catalog.ListGenres(ctx)
	if err != nil {
		s.logger.Warn("genre list unavailable", "error", err)
		genres = model.Genres{}
	}
	s.mu.Lock()
	s.genres = genres
	s.mu.Unlock()

	return nil
}

// Close drops the store subscriptions. A closed session ignores further pushes.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.unsubscribeAll()
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Search asks the catalog for candidates. A failure leaves the phase alone,
// clears the candidates and shows FetchFailedMessage inline.
func (s *Session) Search(ctx context.Context, filters model.Filters) error {
	s.mu.Lock()
	if err := s.creatorSelectingLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()

	movies, err := s.catalog.Search(ctx, filters)

	s.mu.Lock()
	s.loading = false
	switch {
	case errors.Is(err, ErrInvalidFilter):
	case err != nil:
		s.filters = filters
		s.candidates = nil
		s.errMsg = FetchFailedMessage
	default:
		s.filters = filters
		s.candidates = model.CloneMovies(movies)
		s.selection = nil
		s.showSelection = true
	}
	s.mu.Unlock()
	s.notify()

	if err != nil {
		s.logger.Warn("catalog search failed", "error", err)
		if errors.Is(err, ErrInvalidFilter) || errors.Is(err, ErrCatalogUnavailable) {
			return err
		}
		return errors.Join(ErrCatalogUnavailable, err)
	}
	return nil
}

// ToggleSelection flips membership of a candidate in the working selection.
func (s *Session) ToggleSelection(id model.MovieID) error {
	s.mu.Lock()
	if err := s.creatorSelectingLocked(); err != nil {
		s.mu.Unlock()
		return err
	}

	if i := s.selectionIndexLocked(id); i >= 0 {
		s.selection = append(s.selection[:i:i], s.selection[i+1:]...)
	} else {
		m, ok := s.candidateLocked(id)
		if !ok {
			s.mu.Unlock()
			return ErrUnknownMovie
		}
		s.selection = append(s.selection, m.Clone())
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// BackToFilters hides the candidate list. The working selection is kept.
func (s *Session) BackToFilters() error {
	s.mu.Lock()
	if err := s.creatorSelectingLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.showSelection = false
	s.mu.Unlock()

	s.notify()
	return nil
}

// LockIn freezes a deep copy of the working selection into the party record.
func (s *Session) LockIn(ctx context.Context) error {
	s.mu.Lock()
	if err := s.creatorSelectingLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	if len(s.selection) == 0 {
		s.mu.Unlock()
		return ErrEmptySelection
	}
	movies := model.CloneMovies(s.selection)
	creatorID := s.creatorID
	s.mu.Unlock()

	if err := s.store.SetParty(ctx, s.partyID, model.PartyPatch{}.LockMovies(movies)); err != nil {
		return errors.Join(ErrInternal, err)
	}
	s.logger.Info("movies locked in", "count", len(movies))

	s.onParty(model.Party{CreatorID: creatorID, LockedMovies: movies})
	return nil
}

// ReturnToSelection clears the locked list. Vote records stay in the store.
func (s *Session) ReturnToSelection(ctx context.Context) error {
	s.mu.Lock()
	if !s.caps.IsCreator {
		s.mu.Unlock()
		return ErrNotCreator
	}
	creatorID := s.creatorID
	s.mu.Unlock()

	if err := s.store.SetParty(ctx, s.partyID, model.PartyPatch{}.ClearLockedMovies()); err != nil {
		return errors.Join(ErrInternal, err)
	}
	s.logger.Info("returned to selection")

	s.mu.Lock()
	s.applyPartyLocked(model.Party{CreatorID: creatorID})
	s.resetVotingLocked()
	s.showResults = false
	s.results = nil
	s.showSelection = true
	s.mu.Unlock()

	s.notify()
	return nil
}

// Vote records choice for the current movie. The ballot is written once,
// after the last movie, and then results are shown.
func (s *Session) Vote(ctx context.Context, choice model.Choice) error {
	s.mu.Lock()
	switch {
	case s.caps.IsCreator:
		s.mu.Unlock()
		return ErrCreatorCannotVote
	case s.locked == nil:
		s.mu.Unlock()
		return ErrNotLocked
	case s.hasVoted:
		s.mu.Unlock()
		return ErrAlreadyVoted
	case !choice.Valid():
		s.mu.Unlock()
		return ErrInvalidChoice
	case s.votingIndex >= len(s.locked):
		s.mu.Unlock()
		return ErrVotingFinished
	}

	movieID := s.locked[s.votingIndex].ID
	s.votes[movieID] = choice
	s.votingIndex++
	if s.votingIndex < len(s.locked) {
		s.mu.Unlock()
		s.notify()
		return nil
	}
	ballot := s.votes.Clone()
	gen := s.lockGen
	s.mu.Unlock()

	if err := s.store.SetVote(ctx, s.partyID, s.participantID, ballot); err != nil {
		s.mu.Lock()
		// A lock change during the write already reset the progress.
		if s.lockGen == gen {
			s.votingIndex--
			delete(s.votes, movieID)
		}
		s.mu.Unlock()
		return errors.Join(ErrInternal, err)
	}
	s.logger.Info("ballot submitted", "movies", len(ballot))

	s.mu.Lock()
	s.hasVoted = true
	s.showResults = true
	s.mu.Unlock()

	return s.refreshResults(ctx)
}

// ShowResults tallies all ballots of the party and opens the results view.
func (s *Session) ShowResults(ctx context.Context) error {
	results, err := s.tally(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.showResults = true
	s.results = results
	s.mu.Unlock()

	s.notify()
	return nil
}

// BackToParty leaves the results view.
func (s *Session) BackToParty() {
	s.mu.Lock()
	s.showResults = false
	s.mu.Unlock()
	s.notify()
}

func (s *Session) refreshResults(ctx context.Context) error {
	results, err := s.tally(ctx)
	if err != nil {
		s.notify()
		return err
	}

	s.mu.Lock()
	s.results = results
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *Session) tally(ctx context.Context) ([]model.Result, error) {
	s.mu.Lock()
	movies := model.CloneMovies(s.locked)
	s.mu.Unlock()

	if len(movies) == 0 {
		party, found, err := s.store.GetParty(ctx, s.partyID)
		if err != nil {
			return nil, errors.Join(ErrInternal, err)
		}
		if found {
			movies = party.LockedMovies
		}
	}

	records, err := s.store.ListVotes(ctx, s.partyID)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}

	return tally.Tally(movies, records), nil
}

func (s *Session) onParty(party model.Party) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	lockChanged := s.applyPartyLocked(party)
	s.mu.Unlock()

	if lockChanged {
		if err := s.refreshHasVoted(context.Background()); err != nil {
			s.logger.Warn("failed to reload vote state", "error", err)
		}
	}
	s.notify()
}

func (s *Session) onVotes() {
	s.mu.Lock()
	live := !s.closed && s.showResults
	s.mu.Unlock()
	if !live {
		return
	}

	if err := s.refreshResults(context.Background()); err != nil {
		s.logger.Warn("failed to refresh live results", "error", err)
	}
}

// applyPartyLocked takes the party record as the source of truth and reports
// whether the locked list changed.
func (s *Session) applyPartyLocked(party model.Party) bool {
	s.creatorID = party.CreatorID
	s.caps = Capabilities{
		IsCreator: party.HasCreator() && party.CreatorID == s.participantID,
	}

	changed := !sameMovies(s.locked, party.LockedMovies)
	if !changed {
		return false
	}

	s.lockGen++
	if party.IsLocked() {
		s.locked = model.CloneMovies(party.LockedMovies)
		s.showSelection = false
	} else {
		s.locked = nil
	}
	s.resetVotingLocked()
	return true
}

func (s *Session) resetVotingLocked() {
	s.votingIndex = 0
	s.votes = model.Votes{}
}

func (s *Session) refreshHasVoted(ctx context.Context) error {
	_, found, err := s.store.GetVote(ctx, s.partyID, s.participantID)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}

	s.mu.Lock()
	s.hasVoted = found
	s.mu.Unlock()
	return nil
}

func (s *Session) creatorSelectingLocked() error {
	if !s.caps.IsCreator {
		return ErrNotCreator
	}
	if s.locked != nil {
		return ErrPartyLocked
	}
	return nil
}

func (s *Session) selectionIndexLocked(id model.MovieID) int {
	for i, m := range s.selection {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) isSelected(id model.MovieID) bool {
	return s.selectionIndexLocked(id) >= 0
}

func (s *Session) candidateLocked(id model.MovieID) (model.Movie, bool) {
	for _, m := range s.candidates {
		if m.ID == id {
			return m, true
		}
	}
	return model.Movie{}, false
}

func (s *Session) addUnsub(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsubs = append(s.unsubs, fn)
}

func (s *Session) unsubscribeAll() {
	s.mu.Lock()
	unsubs := s.unsubs
	s.unsubs = nil
	s.mu.Unlock()

	for _, fn := range unsubs {
		fn()
	}
}

func (s *Session) notify() {
	if s.onChange == nil {
		return
	}
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.onChange(s.View())
}

// sameMovies compares locked lists by presence and movie ids.
func sameMovies(a, b []model.Movie) bool {
	if (a == nil) != (b == nil) || len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
