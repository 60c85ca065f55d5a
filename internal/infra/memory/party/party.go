package infra_memory_party

import (
	"context"
	"sort"
	"sync"

	"github.com/humanbelnik/movieparty/internal/model"
)

// Repository keeps party documents in process memory. Used for local runs and tests.
type Repository struct {
	mu      sync.RWMutex
	parties map[model.PartyID]model.Party
	votes   map[model.PartyID]map[model.ParticipantID]model.Votes
}

func New() *Repository {
	return &Repository{
		parties: make(map[model.PartyID]model.Party),
		votes:   make(map[model.PartyID]map[model.ParticipantID]model.Votes),
	}
}

func (r *Repository) Party(ctx context.Context, id model.PartyID) (model.Party, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.Party{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.parties[id]
	if !ok {
		return model.Party{}, false, nil
	}
	p.LockedMovies = model.CloneMovies(p.LockedMovies)
	return p, true, nil
}

func (r *Repository) MergeParty(ctx context.Context, id model.PartyID, patch model.PartyPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.parties[id] = patch.Apply(r.parties[id])
	return nil
}

func (r *Repository) Vote(ctx context.Context, id model.PartyID, participant model.ParticipantID) (model.VoteRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.VoteRecord{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	votes, ok := r.votes[id][participant]
	if !ok {
		return model.VoteRecord{}, false, nil
	}
	return model.VoteRecord{ParticipantID: participant, Votes: votes.Clone()}, true, nil
}

func (r *Repository) MergeVote(ctx context.Context, id model.PartyID, participant model.ParticipantID, votes model.Votes) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	byParticipant, ok := r.votes[id]
	if !ok {
		byParticipant = make(map[model.ParticipantID]model.Votes)
		r.votes[id] = byParticipant
	}
	merged, ok := byParticipant[participant]
	if !ok {
		merged = model.Votes{}
	}
	for movieID, choice := range votes {
		merged[movieID] = choice
	}
	byParticipant[participant] = merged
	return nil
}

// Votes lists ballots ordered by participant id.
func (r *Repository) Votes(ctx context.Context, id model.PartyID) ([]model.VoteRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]model.VoteRecord, 0, len(r.votes[id]))
	for participant, votes := range r.votes[id] {
		records = append(records, model.VoteRecord{ParticipantID: participant, Votes: votes.Clone()})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ParticipantID < records[j].ParticipantID
	})
	return records, nil
}
