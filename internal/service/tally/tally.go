package tally

import (
	"sort"

	"github.com/humanbelnik/movieparty/internal/model"
)

// Tally counts choices per locked movie and orders the lines by
// likes desc, passes desc, dislikes asc. Equal lines keep the locked order.
//
// Votes for movies outside the locked list (left over from an earlier lock)
// are dropped, as are unknown choices. The result depends only on its inputs.
func Tally(movies []model.Movie, records []model.VoteRecord) []model.Result {
	results := make([]model.Result, len(movies))
	index := make(map[model.MovieID]int, len(movies))
	for i, m := range movies {
		results[i] = model.Result{Movie: m.Clone()}
		if _, dup := index[m.ID]; !dup {
			index[m.ID] = i
		}
	}

	for _, r := range records {
		for movieID, choice := range r.Votes {
			i, ok := index[movieID]
			if !ok {
				continue
			}
			switch choice {
			case model.Like:
				results[i].Like++
			case model.Dislike:
				results[i].Dislike++
			case model.Pass:
				results[i].Pass++
			}
		}
	}

	results = dedupe(results, index)
	sort.SliceStable(results, func(a, b int) bool {
		return less(results[a], results[b])
	})

	return results
}

func less(a, b model.Result) bool {
	if a.Like != b.Like {
		return a.Like > b.Like
	}
	if a.Pass != b.Pass {
		return a.Pass > b.Pass
	}
	return a.Dislike < b.Dislike
}

// A movie locked twice gets a single line, at its first position.
func dedupe(results []model.Result, index map[model.MovieID]int) []model.Result {
	if len(index) == len(results) {
		return results
	}
	out := make([]model.Result, 0, len(index))
	for i, r := range results {
		if index[r.Movie.ID] == i {
			out = append(out, r)
		}
	}
	return out
}
