package infra_postgres_party

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/humanbelnik/movieparty/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type PartyInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	db     *sqlx.DB
	mock   sqlmock.Sqlmock
	driver *Driver
	ctx    context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return &resources{
		db:     sqlxDB,
		mock:   mock,
		driver: New(sqlxDB),
		ctx:    context.Background(),
	}
}

func validPartyID() model.PartyID {
	return model.PartyID("abc12345")
}

var (
	selectParty = regexp.QuoteMeta("SELECT creator_id, locked_movies FROM parties WHERE id = $1")
	mergeParty  = regexp.QuoteMeta("INSERT INTO parties (id, creator_id, locked_movies, updated_at)")
	selectVote  = regexp.QuoteMeta("SELECT participant_id, votes FROM votes WHERE party_id = $1 AND participant_id = $2")
	mergeVote   = regexp.QuoteMeta("INSERT INTO votes (party_id, participant_id, votes, updated_at)")
	selectVotes = regexp.QuoteMeta("SELECT participant_id, votes FROM votes WHERE party_id = $1 ORDER BY participant_id")
)

func (s *PartyInfraUnitSuite) TestParty(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		setupMocks  func(r *resources)
		expected    model.Party
		expectFound bool
		expectError bool
	}{
		{
			name: "Should decode a locked party",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery(selectParty).
					WithArgs(string(validPartyID())).
					WillReturnRows(sqlmock.NewRows([]string{"creator_id", "locked_movies"}).
						AddRow("creator", []byte(`[{"id":1,"title":"A"},{"id":2,"title":"B"}]`)))
			},
			expected: model.Party{
				CreatorID:    "creator",
				LockedMovies: []model.Movie{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}},
			},
			expectFound: true,
		},
		{
			name: "Should keep null locked movies as nil",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery(selectParty).
					WithArgs(string(validPartyID())).
					WillReturnRows(sqlmock.NewRows([]string{"creator_id", "locked_movies"}).
						AddRow("creator", nil))
			},
			expected:    model.Party{CreatorID: "creator"},
			expectFound: true,
		},
		{
			name: "Should report a missing party as absent",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery(selectParty).
					WithArgs(string(validPartyID())).
					WillReturnRows(sqlmock.NewRows([]string{"creator_id", "locked_movies"}))
			},
		},
		{
			name: "Should return database errors",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery(selectParty).
					WithArgs(string(validPartyID())).
					WillReturnError(errors.New("connection refused"))
			},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			party, found, err := r.driver.Party(r.ctx, validPartyID())

			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectFound, found)
				assert.Equal(t, tc.expected, party)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *PartyInfraUnitSuite) TestMergeParty(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		patch model.PartyPatch
		args  []any
	}{
		{
			name:  "Should only set the creator",
			patch: model.PartyPatch{}.ClaimCreator("creator"),
			args:  []any{string(validPartyID()), "creator", nil, true, false},
		},
		{
			name:  "Should only set locked movies",
			patch: model.PartyPatch{}.LockMovies([]model.Movie{{ID: 7, Title: "G"}}),
			args:  []any{string(validPartyID()), nil, `[{"id":7,"title":"G"}]`, false, true},
		},
		{
			name:  "Should write explicit null when clearing",
			patch: model.PartyPatch{}.ClearLockedMovies(),
			args:  []any{string(validPartyID()), nil, nil, false, true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)

			r.mock.ExpectExec(mergeParty).
				WithArgs(toDriverValues(tc.args)...).
				WillReturnResult(sqlmock.NewResult(0, 1))

			err := r.driver.MergeParty(r.ctx, validPartyID(), tc.patch)

			assert.NoError(t, err)
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (s *PartyInfraUnitSuite) TestVotes(t provider.T) {
	t.Parallel()

	t.Run("Should merge a ballot as jsonb", func(t provider.T) {
		r := initResources(t)
		r.mock.ExpectExec(mergeVote).
			WithArgs(string(validPartyID()), "p1", `{"1":"like","2":"pass"}`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := r.driver.MergeVote(r.ctx, validPartyID(), "p1", model.Votes{1: model.Like, 2: model.Pass})

		assert.NoError(t, err)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should read one ballot", func(t provider.T) {
		r := initResources(t)
		r.mock.ExpectQuery(selectVote).
			WithArgs(string(validPartyID()), "p1").
			WillReturnRows(sqlmock.NewRows([]string{"participant_id", "votes"}).
				AddRow("p1", []byte(`{"1":"like"}`)))

		record, found, err := r.driver.Vote(r.ctx, validPartyID(), "p1")

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, model.VoteRecord{ParticipantID: "p1", Votes: model.Votes{1: model.Like}}, record)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should report a missing ballot as absent", func(t provider.T) {
		r := initResources(t)
		r.mock.ExpectQuery(selectVote).
			WithArgs(string(validPartyID()), "p1").
			WillReturnRows(sqlmock.NewRows([]string{"participant_id", "votes"}))

		_, found, err := r.driver.Vote(r.ctx, validPartyID(), "p1")

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Should list every ballot of the party", func(t provider.T) {
		r := initResources(t)
		r.mock.ExpectQuery(selectVotes).
			WithArgs(string(validPartyID())).
			WillReturnRows(sqlmock.NewRows([]string{"participant_id", "votes"}).
				AddRow("p1", []byte(`{"1":"like","2":"dislike"}`)).
				AddRow("p2", []byte(`{"1":"dislike","2":"like"}`)))

		records, err := r.driver.Votes(r.ctx, validPartyID())

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, model.Votes{1: model.Like, 2: model.Dislike}, records[0].Votes)
		assert.Equal(t, model.ParticipantID("p2"), records[1].ParticipantID)
	})

	t.Run("Should fail on a corrupt ballot", func(t provider.T) {
		r := initResources(t)
		r.mock.ExpectQuery(selectVotes).
			WithArgs(string(validPartyID())).
			WillReturnRows(sqlmock.NewRows([]string{"participant_id", "votes"}).
				AddRow("p1", []byte(`{"1":`)))

		_, err := r.driver.Votes(r.ctx, validPartyID())
		assert.Error(t, err)
	})
}

func toDriverValues(args []any) []driver.Value {
	out := make([]driver.Value, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}

func TestPartyInfraSuite(t *testing.T) {
	suite.RunSuite(t, new(PartyInfraUnitSuite))
}
