package usecase_session

import (
	"context"
	"errors"

	"github.com/humanbelnik/movieparty/internal/model"
)

// FetchFailedMessage is what participants see inline when a catalog search fails.
const FetchFailedMessage = "Failed to fetch movies."

var (
	ErrInternal           = errors.New("internal error")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrInvalidFilter      = errors.New("invalid search filter")

	ErrNotCreator        = errors.New("only the party creator can do this")
	ErrCreatorCannotVote = errors.New("party creator does not vote")
	ErrPartyLocked       = errors.New("movies are already locked in")
	ErrNotLocked         = errors.New("no movies locked in")
	ErrEmptySelection    = errors.New("selection is empty")
	ErrUnknownMovie      = errors.New("movie is not among candidates")
	ErrAlreadyVoted      = errors.New("participant has already voted")
	ErrVotingFinished    = errors.New("no movies left to vote on")
	ErrInvalidChoice     = errors.New("invalid vote choice")
	ErrSessionClosed     = errors.New("session closed")
)

//go:generate mockery --name=Store --output=./mocks/session/store --filename=store.go
type Store interface {
	GetParty(ctx context.Context, id model.PartyID) (model.Party, bool, error)
	SetParty(ctx context.Context, id model.PartyID, patch model.PartyPatch) error
	SubscribeParty(ctx context.Context, id model.PartyID, fn func(model.Party)) (func(), error)

	GetVote(ctx context.Context, id model.PartyID, participant model.ParticipantID) (model.VoteRecord, bool, error)
	SetVote(ctx context.Context, id model.PartyID, participant model.ParticipantID, votes model.Votes) error
	ListVotes(ctx context.Context, id model.PartyID) ([]model.VoteRecord, error)
	SubscribeVotes(ctx context.Context, id model.PartyID, fn func()) (func(), error)
}

//go:generate mockery --name=Catalog --output=./mocks/session/catalog --filename=catalog.go
type Catalog interface {
	Search(ctx context.Context, filters model.Filters) ([]model.Movie, error)
	ListGenres(ctx context.Context) (model.Genres, error)
}
