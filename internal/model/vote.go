package model

type Choice string

const (
	Like    Choice = "like"
	Dislike Choice = "dislike"
	Pass    Choice = "pass"
)

func (c Choice) Valid() bool {
	switch c {
	case Like, Dislike, Pass:
		return true
	}
	return false
}

type Votes map[MovieID]Choice

func (v Votes) Clone() Votes {
	out := make(Votes, len(v))
	for id, c := range v {
		out[id] = c
	}
	return out
}

// VoteRecord is one participant's ballot for a party.
type VoteRecord struct {
	ParticipantID ParticipantID `json:"-"`
	Votes         Votes         `json:"votes"`
}

// Result is a derived tally line, never stored.
type Result struct {
	Movie   Movie `json:"movie"`
	Like    int   `json:"like"`
	Dislike int   `json:"dislike"`
	Pass    int   `json:"pass"`
}
