package infra_postgres_party

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/humanbelnik/movieparty/internal/model"
	"github.com/jmoiron/sqlx"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type partyDTO struct {
	CreatorID    sql.NullString `db:"creator_id"`
	LockedMovies []byte         `db:"locked_movies"`
}

type voteDTO struct {
	ParticipantID string `db:"participant_id"`
	Votes         []byte `db:"votes"`
}

const (
	selectPartyQuery = `SELECT creator_id, locked_movies FROM parties WHERE id = $1`

	// $4/$5 tell whether the patch carries the field; absent fields keep the stored value.
	mergePartyQuery = `
		INSERT INTO parties (id, creator_id, locked_movies, updated_at)
		VALUES ($1, $2, $3::jsonb, NOW())
		ON CONFLICT (id) DO UPDATE SET
			creator_id    = CASE WHEN $4::boolean THEN EXCLUDED.creator_id ELSE parties.creator_id END,
			locked_movies = CASE WHEN $5::boolean THEN EXCLUDED.locked_movies ELSE parties.locked_movies END,
			updated_at    = NOW()
	`

	selectVoteQuery = `SELECT participant_id, votes FROM votes WHERE party_id = $1 AND participant_id = $2`

	mergeVoteQuery = `
		INSERT INTO votes (party_id, participant_id, votes, updated_at)
		VALUES ($1, $2, $3::jsonb, NOW())
		ON CONFLICT (party_id, participant_id) DO UPDATE SET
			votes      = votes.votes || EXCLUDED.votes,
			updated_at = NOW()
	`

	selectVotesQuery = `SELECT participant_id, votes FROM votes WHERE party_id = $1 ORDER BY participant_id`
)

func (d *Driver) Party(ctx context.Context, id model.PartyID) (model.Party, bool, error) {
	var dto partyDTO
	if err := d.db.GetContext(ctx, &dto, selectPartyQuery, string(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Party{}, false, nil
		}
		return model.Party{}, false, err
	}

	party := model.Party{CreatorID: model.ParticipantID(dto.CreatorID.String)}
	if dto.LockedMovies != nil {
		if err := json.Unmarshal(dto.LockedMovies, &party.LockedMovies); err != nil {
			return model.Party{}, false, fmt.Errorf("decode locked movies of %s: %w", id, err)
		}
	}
	return party, true, nil
}

func (d *Driver) MergeParty(ctx context.Context, id model.PartyID, patch model.PartyPatch) error {
	var creatorArg any
	creatorID, hasCreator := patch.CreatorID()
	if hasCreator {
		creatorArg = string(creatorID)
	}

	var moviesArg any
	movies, hasMovies := patch.LockedMovies()
	if hasMovies && movies != nil {
		raw, err := json.Marshal(movies)
		if err != nil {
			return fmt.Errorf("encode locked movies: %w", err)
		}
		moviesArg = string(raw)
	}

	_, err := d.db.ExecContext(ctx, mergePartyQuery, string(id), creatorArg, moviesArg, hasCreator, hasMovies)
	return err
}

func (d *Driver) Vote(ctx context.Context, id model.PartyID, participant model.ParticipantID) (model.VoteRecord, bool, error) {
	var dto voteDTO
	if err := d.db.GetContext(ctx, &dto, selectVoteQuery, string(id), string(participant)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.VoteRecord{}, false, nil
		}
		return model.VoteRecord{}, false, err
	}

	record, err := dto.toModel()
	if err != nil {
		return model.VoteRecord{}, false, err
	}
	return record, true, nil
}

func (d *Driver) MergeVote(ctx context.Context, id model.PartyID, participant model.ParticipantID, votes model.Votes) error {
	if votes == nil {
		votes = model.Votes{}
	}
	raw, err := json.Marshal(votes)
	if err != nil {
		return fmt.Errorf("encode votes: %w", err)
	}

	_, err = d.db.ExecContext(ctx, mergeVoteQuery, string(id), string(participant), string(raw))
	return err
}

func (d *Driver) Votes(ctx context.Context, id model.PartyID) ([]model.VoteRecord, error) {
	var dtos []voteDTO
	if err := d.db.SelectContext(ctx, &dtos, selectVotesQuery, string(id)); err != nil {
		return nil, err
	}

	records := make([]model.VoteRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, err := dto.toModel()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (dto voteDTO) toModel() (model.VoteRecord, error) {
	record := model.VoteRecord{
		ParticipantID: model.ParticipantID(dto.ParticipantID),
		Votes:         model.Votes{},
	}
	if len(dto.Votes) == 0 {
		return record, nil
	}
	if err := json.Unmarshal(dto.Votes, &record.Votes); err != nil {
		return model.VoteRecord{}, fmt.Errorf("decode votes of %s: %w", dto.ParticipantID, err)
	}
	return record, nil
}
