package usecase_party

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/humanbelnik/movieparty/internal/model"
)

const idLen = 8

var (
	ErrInternal       = errors.New("internal error")
	ErrInvalidPartyID = errors.New("invalid party id")
)

//go:generate mockery --name=PartyWriter --output=./mocks/party/writer --filename=writer.go
type PartyWriter interface {
	SetParty(ctx context.Context, id model.PartyID, patch model.PartyPatch) error
}

type Usecase struct {
	writer PartyWriter
}

func New(writer PartyWriter) *Usecase {
	return &Usecase{writer: writer}
}

// Create makes a new party owned by creator.
func (u *Usecase) Create(ctx context.Context, creator model.ParticipantID) (model.PartyID, error) {
	id := NewID()
	if err := u.writer.SetParty(ctx, id, model.PartyPatch{}.ClaimCreator(creator)); err != nil {
		return model.EmptyPartyID, errors.Join(ErrInternal, err)
	}
	return id, nil
}

// NewID is the first eight characters of a random UUID.
func NewID() model.PartyID {
	return model.PartyID(uuid.New().String()[:idLen])
}

// ParseID accepts any short token of letters, digits and dashes, so links made
// elsewhere still open.
func ParseID(raw string) (model.PartyID, error) {
	if raw == "" || len(raw) > 64 {
		return model.EmptyPartyID, ErrInvalidPartyID
	}
	for _, c := range raw {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '-') {
			return model.EmptyPartyID, ErrInvalidPartyID
		}
	}
	return model.PartyID(raw), nil
}

func ShareLink(origin string, id model.PartyID) string {
	return strings.TrimRight(origin, "/") + "/party/" + string(id)
}
