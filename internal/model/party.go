package model

type PartyID string

const EmptyPartyID PartyID = ""

type ParticipantID string

const EmptyParticipantID ParticipantID = ""

// Party is the shared document of one voting session.
// LockedMovies == nil means the party is still in selection.
type Party struct {
	CreatorID    ParticipantID `json:"creatorId,omitempty"`
	LockedMovies []Movie       `json:"lockedMovies"`
}

func (p Party) HasCreator() bool {
	return p.CreatorID != EmptyParticipantID
}

func (p Party) IsLocked() bool {
	return p.LockedMovies != nil
}

// PartyPatch is a merge write: fields left unset are not touched.
type PartyPatch struct {
	creatorID    *ParticipantID
	lockedMovies *[]Movie
}

func (p PartyPatch) ClaimCreator(id ParticipantID) PartyPatch {
	p.creatorID = &id
	return p
}

// LockMovies stores a deep copy of movies. A nil or empty slice is stored as an
// empty list, not as null.
func (p PartyPatch) LockMovies(movies []Movie) PartyPatch {
	locked := CloneMovies(movies)
	if locked == nil {
		locked = []Movie{}
	}
	p.lockedMovies = &locked
	return p
}

// ClearLockedMovies writes an explicit null.
func (p PartyPatch) ClearLockedMovies() PartyPatch {
	var cleared []Movie
	p.lockedMovies = &cleared
	return p
}

func (p PartyPatch) CreatorID() (ParticipantID, bool) {
	if p.creatorID == nil {
		return EmptyParticipantID, false
	}
	return *p.creatorID, true
}

func (p PartyPatch) LockedMovies() ([]Movie, bool) {
	if p.lockedMovies == nil {
		return nil, false
	}
	return *p.lockedMovies, true
}

func (p PartyPatch) IsEmpty() bool {
	return p.creatorID == nil && p.lockedMovies == nil
}

// Apply merges the patch into party and returns the result.
func (p PartyPatch) Apply(party Party) Party {
	if id, ok := p.CreatorID(); ok {
		party.CreatorID = id
	}
	if movies, ok := p.LockedMovies(); ok {
		party.LockedMovies = CloneMovies(movies)
	}
	return party
}
