package identity

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/humanbelnik/movieparty/internal/model"
)

const (
	idLen    = 10
	alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var ErrStorage = errors.New("identity storage failure")

// Storage is where a participant id lives between visits (a cookie, a header, a map in tests).
type Storage interface {
	Load() (string, bool)
	Save(id string) error
}

type Provider struct{}

func New() *Provider {
	return &Provider{}
}

// GetOrCreate returns the id already held by storage, or generates and saves a new one.
func (p *Provider) GetOrCreate(storage Storage) (model.ParticipantID, error) {
	if id, ok := storage.Load(); ok && Valid(id) {
		return model.ParticipantID(id), nil
	}

	id, err := generate()
	if err != nil {
		return model.EmptyParticipantID, err
	}
	if err := storage.Save(id); err != nil {
		return model.EmptyParticipantID, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return model.ParticipantID(id), nil
}

// Valid reports whether id looks like something GetOrCreate could have produced.
func Valid(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '-' || c == '_') {
			return false
		}
	}
	return true
}

func generate() (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, idLen)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}
