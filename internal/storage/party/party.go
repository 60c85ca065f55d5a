package storage_party

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/humanbelnik/movieparty/internal/model"
)

// DocumentRepository persists party records and ballots. Both writes merge.
type DocumentRepository interface {
	Party(ctx context.Context, id model.PartyID) (model.Party, bool, error)
	MergeParty(ctx context.Context, id model.PartyID, patch model.PartyPatch) error
	Vote(ctx context.Context, id model.PartyID, participant model.ParticipantID) (model.VoteRecord, bool, error)
	MergeVote(ctx context.Context, id model.PartyID, participant model.ParticipantID, votes model.Votes) error
	Votes(ctx context.Context, id model.PartyID) ([]model.VoteRecord, error)
}

// Broker fans a "something changed" signal out to every subscriber of a topic.
//
//go:generate mockery --name=Broker --output=./mocks/party/broker --filename=broker.go
type Broker interface {
	Publish(ctx context.Context, topic string) error
	Subscribe(ctx context.Context, topic string, fn func()) (func(), error)
}

func PartyTopic(id model.PartyID) string {
	return "party:" + string(id)
}

func VotesTopic(id model.PartyID) string {
	return "party:" + string(id) + ":votes"
}

// Storage is the party store: documents in a repository, change notifications
// through a broker. Subscribers re-read the document on every notification, so
// a push always carries the whole current record.
type Storage struct {
	repo   DocumentRepository
	broker Broker
	logger *slog.Logger
}

type Option func(*Storage)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Storage) {
		s.logger = logger
	}
}

func New(repo DocumentRepository, broker Broker, opts ...Option) *Storage {
	s := &Storage{
		repo:   repo,
		broker: broker,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Storage) GetParty(ctx context.Context, id model.PartyID) (model.Party, bool, error) {
	return s.repo.Party(ctx, id)
}

func (s *Storage) SetParty(ctx context.Context, id model.PartyID, patch model.PartyPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	if err := s.repo.MergeParty(ctx, id, patch); err != nil {
		return fmt.Errorf("merge party %s: %w", id, err)
	}
	return s.publish(ctx, PartyTopic(id))
}

// SubscribeParty pushes the current record before returning, when there is one.
func (s *Storage) SubscribeParty(ctx context.Context, id model.PartyID, fn func(model.Party)) (func(), error) {
	unsubscribe, err := s.broker.Subscribe(ctx, PartyTopic(id), func() {
		party, found, err := s.repo.Party(context.Background(), id)
		if err != nil {
			s.logger.Error("failed to reload party", "party_id", id, "error", err)
			return
		}
		if found {
			fn(party)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe party %s: %w", id, err)
	}

	party, found, err := s.repo.Party(ctx, id)
	if err != nil {
		unsubscribe()
		return nil, err
	}
	if found {
		fn(party)
	}

	return unsubscribe, nil
}

func (s *Storage) GetVote(ctx context.Context, id model.PartyID, participant model.ParticipantID) (model.VoteRecord, bool, error) {
	return s.repo.Vote(ctx, id, participant)
}

func (s *Storage) SetVote(ctx context.Context, id model.PartyID, participant model.ParticipantID, votes model.Votes) error {
	if err := s.repo.MergeVote(ctx, id, participant, votes); err != nil {
		return fmt.Errorf("merge vote %s/%s: %w", id, participant, err)
	}
	return s.publish(ctx, VotesTopic(id))
}

func (s *Storage) ListVotes(ctx context.Context, id model.PartyID) ([]model.VoteRecord, error) {
	return s.repo.Votes(ctx, id)
}

func (s *Storage) SubscribeVotes(ctx context.Context, id model.PartyID, fn func()) (func(), error) {
	unsubscribe, err := s.broker.Subscribe(ctx, VotesTopic(id), fn)
	if err != nil {
		return nil, fmt.Errorf("subscribe votes %s: %w", id, err)
	}
	return unsubscribe, nil
}

func (s *Storage) publish(ctx context.Context, topic string) error {
	if err := s.broker.Publish(ctx, topic); err != nil {
		s.logger.Error("failed to publish change", "topic", topic, "error", err)
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}
