package usecase_session

import "github.com/humanbelnik/movieparty/internal/model"

type Phase string

const (
	PhaseSelecting Phase = "selecting"
	PhaseVoting    Phase = "voting"
	PhaseResults   Phase = "results"
)

type Screen string

const (
	ScreenFilters       Screen = "filters"
	ScreenSelection     Screen = "selection"
	ScreenWaiting       Screen = "waiting"
	ScreenBallot        Screen = "ballot"
	ScreenVoted         Screen = "voted"
	ScreenCreatorLocked Screen = "creator_locked"
	ScreenResults       Screen = "results"
)

// Capabilities is computed once per party record load and gates creator-only actions.
type Capabilities struct {
	IsCreator bool `json:"is_creator"`
}

type Candidate struct {
	model.Movie
	PosterURL string `json:"poster_url"`
	Selected  bool   `json:"selected"`
}

type Progress struct {
	Index int `json:"index"`
	Total int `json:"total"`
}

// View is an immutable snapshot of one participant's session.
type View struct {
	PartyID       model.PartyID       `json:"party_id"`
	ParticipantID model.ParticipantID `json:"participant_id"`
	Link          string              `json:"link,omitempty"`

	Phase        Phase        `json:"phase"`
	Screen       Screen       `json:"screen"`
	Capabilities Capabilities `json:"capabilities"`

	Genres     []model.Genre `json:"genres"`
	Filters    model.Filters `json:"filters"`
	Candidates []Candidate   `json:"candidates"`
	Selected   int           `json:"selected"`
	CanLockIn  bool          `json:"can_lock_in"`

	LockedMovies []model.Movie `json:"locked_movies"`
	CurrentMovie *Candidate    `json:"current_movie,omitempty"`
	Progress     *Progress     `json:"progress,omitempty"`
	HasVoted     bool          `json:"has_voted"`

	Results []model.Result `json:"results,omitempty"`

	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

func (s *Session) phaseLocked() Phase {
	switch {
	case s.showResults:
		return PhaseResults
	case s.locked != nil:
		return PhaseVoting
	default:
		return PhaseSelecting
	}
}

func (s *Session) screenLocked(phase Phase) Screen {
	switch phase {
	case PhaseResults:
		return ScreenResults
	case PhaseVoting:
		switch {
		case s.caps.IsCreator:
			return ScreenCreatorLocked
		case s.hasVoted || s.votingIndex >= len(s.locked):
			return ScreenVoted
		default:
			return ScreenBallot
		}
	default:
		switch {
		case !s.caps.IsCreator:
			return ScreenWaiting
		case s.showSelection:
			return ScreenSelection
		default:
			return ScreenFilters
		}
	}
}

func (s *Session) viewLocked() View {
	phase := s.phaseLocked()
	v := View{
		PartyID:       s.partyID,
		ParticipantID: s.participantID,
		Link:          s.link,
		Phase:         phase,
		Screen:        s.screenLocked(phase),
		Capabilities:  s.caps,
		Genres:        s.genres.Sorted(),
		Filters:       s.filters,
		Candidates:    make([]Candidate, 0, len(s.candidates)),
		Selected:      len(s.selection),
		CanLockIn:     s.caps.IsCreator && s.locked == nil && len(s.selection) > 0,
		LockedMovies:  model.CloneMovies(s.locked),
		HasVoted:      s.hasVoted,
		Loading:       s.loading,
		Error:         s.errMsg,
	}

	for _, m := range s.candidates {
		v.Candidates = append(v.Candidates, candidate(m, s.isSelected(m.ID)))
	}

	if phase == PhaseVoting && len(s.locked) > 0 {
		v.Progress = &Progress{Index: s.votingIndex, Total: len(s.locked)}
		if v.Screen == ScreenBallot {
			c := candidate(s.locked[s.votingIndex], false)
			v.CurrentMovie = &c
		}
	}

	if phase == PhaseResults {
		v.Results = make([]model.Result, len(s.results))
		for i, r := range s.results {
			r.Movie = r.Movie.Clone()
			v.Results[i] = r
		}
	}

	return v
}

func candidate(m model.Movie, selected bool) Candidate {
	return Candidate{
		Movie:     m.Clone(),
		PosterURL: m.PosterURL(model.DefaultPosterSize),
		Selected:  selected,
	}
}
