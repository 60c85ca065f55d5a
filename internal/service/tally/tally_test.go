package tally

import (
	"testing"

	"github.com/humanbelnik/movieparty/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TallyUnitSuite struct {
	suite.Suite
}

func movie(id model.MovieID, title string) model.Movie {
	return model.Movie{ID: id, Title: title}
}

func ballot(votes model.Votes) model.VoteRecord {
	return model.VoteRecord{Votes: votes}
}

func lockedAB() []model.Movie {
	return []model.Movie{movie(1, "A"), movie(2, "B")}
}

func threeBallots() []model.VoteRecord {
	return []model.VoteRecord{
		ballot(model.Votes{1: model.Like, 2: model.Dislike}),
		ballot(model.Votes{1: model.Like, 2: model.Pass}),
		ballot(model.Votes{1: model.Dislike, 2: model.Like}),
	}
}

func ids(results []model.Result) []model.MovieID {
	out := make([]model.MovieID, len(results))
	for i, r := range results {
		out[i] = r.Movie.ID
	}
	return out
}

func (s *TallyUnitSuite) TestCounts(t provider.T) {
	t.Run("Should count three ballots and rank by likes", func(t provider.T) {
		results := Tally(lockedAB(), threeBallots())

		require.Len(t, results, 2)
		assert.Equal(t, model.MovieID(1), results[0].Movie.ID)
		assert.Equal(t, 2, results[0].Like)
		assert.Equal(t, 1, results[0].Dislike)
		assert.Equal(t, 0, results[0].Pass)

		assert.Equal(t, model.MovieID(2), results[1].Movie.ID)
		assert.Equal(t, 1, results[1].Like)
		assert.Equal(t, 1, results[1].Dislike)
		assert.Equal(t, 1, results[1].Pass)
	})

	t.Run("Should return zero lines when nobody voted", func(t provider.T) {
		results := Tally(lockedAB(), nil)

		require.Len(t, results, 2)
		assert.Equal(t, []model.MovieID{1, 2}, ids(results))
		for _, r := range results {
			assert.Zero(t, r.Like+r.Dislike+r.Pass)
		}
	})

	t.Run("Should return empty result for empty locked list", func(t provider.T) {
		results := Tally(nil, threeBallots())
		assert.Empty(t, results)
	})
}

func (s *TallyUnitSuite) TestOrdering(t provider.T) {
	t.Run("Should break like ties by passes", func(t provider.T) {
		movies := []model.Movie{movie(1, "A"), movie(2, "B")}
		records := []model.VoteRecord{
			ballot(model.Votes{1: model.Like, 2: model.Like}),
			ballot(model.Votes{1: model.Dislike, 2: model.Pass}),
		}

		assert.Equal(t, []model.MovieID{2, 1}, ids(Tally(movies, records)))
	})

	t.Run("Should break like and pass ties by fewer dislikes", func(t provider.T) {
		movies := []model.Movie{movie(1, "A"), movie(2, "B"), movie(3, "C")}
		records := []model.VoteRecord{
			ballot(model.Votes{1: model.Dislike, 2: model.Like, 3: model.Like}),
			ballot(model.Votes{1: model.Dislike, 2: model.Dislike}),
		}

		assert.Equal(t, []model.MovieID{3, 2, 1}, ids(Tally(movies, records)))
	})

	t.Run("Should keep locked order for full ties", func(t provider.T) {
		movies := []model.Movie{movie(5, "E"), movie(4, "D"), movie(3, "C")}
		records := []model.VoteRecord{
			ballot(model.Votes{5: model.Pass, 4: model.Pass, 3: model.Pass}),
		}

		assert.Equal(t, []model.MovieID{5, 4, 3}, ids(Tally(movies, records)))
	})

	t.Run("Should be sorted by like desc, pass desc, dislike asc", func(t provider.T) {
		movies := []model.Movie{movie(1, "A"), movie(2, "B"), movie(3, "C"), movie(4, "D")}
		records := []model.VoteRecord{
			ballot(model.Votes{1: model.Pass, 2: model.Like, 3: model.Dislike, 4: model.Like}),
			ballot(model.Votes{1: model.Like, 2: model.Pass, 3: model.Pass, 4: model.Dislike}),
			ballot(model.Votes{1: model.Dislike, 2: model.Dislike, 3: model.Like, 4: model.Pass}),
		}

		results := Tally(movies, records)
		for i := 1; i < len(results); i++ {
			prev, cur := results[i-1], results[i]
			assert.False(t, less(cur, prev), "line %d ranks above line %d", i, i-1)
		}
	})
}

func (s *TallyUnitSuite) TestFiltering(t provider.T) {
	t.Run("Should ignore votes for movies outside the locked list", func(t provider.T) {
		records := append(threeBallots(), ballot(model.Votes{99: model.Like, 1: model.Pass}))

		results := Tally(lockedAB(), records)

		require.Len(t, results, 2)
		assert.Equal(t, []model.MovieID{1, 2}, ids(results))
		assert.Equal(t, 1, results[0].Pass)
	})

	t.Run("Should ignore unknown choices", func(t provider.T) {
		records := []model.VoteRecord{ballot(model.Votes{1: model.Choice("superlike")})}

		results := Tally(lockedAB(), records)

		for _, r := range results {
			assert.Zero(t, r.Like+r.Dislike+r.Pass)
		}
	})

	t.Run("Should fold a movie locked twice into one line", func(t provider.T) {
		movies := []model.Movie{movie(1, "A"), movie(2, "B"), movie(1, "A")}
		records := []model.VoteRecord{ballot(model.Votes{1: model.Like})}

		results := Tally(movies, records)

		require.Len(t, results, 2)
		assert.Equal(t, 1, results[0].Like)
	})
}

func (s *TallyUnitSuite) TestIdempotent(t provider.T) {
	t.Run("Should give identical output for identical input", func(t provider.T) {
		movies := lockedAB()
		records := threeBallots()

		first := Tally(movies, records)
		second := Tally(movies, records)

		assert.Equal(t, first, second)
	})

	t.Run("Should not mutate the locked list", func(t provider.T) {
		movies := []model.Movie{movie(2, "B"), movie(1, "A")}
		movies[0].GenreIDs = []int{18}

		results := Tally(movies, threeBallots())
		results[1].Movie.GenreIDs[0] = 35

		assert.Equal(t, []model.MovieID{2, 1}, []model.MovieID{movies[0].ID, movies[1].ID})
		assert.Equal(t, 18, movies[0].GenreIDs[0])
	})
}

func TestTallySuite(t *testing.T) {
	suite.RunSuite(t, new(TallyUnitSuite))
}

func TestTallyGolden(t *testing.T) {
	g := goldie.New(t)
	g.AssertJson(t, "three_ballots", Tally(lockedAB(), threeBallots()))
}
