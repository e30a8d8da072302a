package storage

import (
	"github.com/sahilm/fuzzy"
)

// TurnMatch is one history search hit.
type TurnMatch struct {
	Turn  Turn
	Score int
}

// SearchTurns fuzzy-matches the query against stored questions and answers,
// best matches first. An empty query returns everything in list order.
func (ts *TurnStorage) SearchTurns(query string) ([]TurnMatch, error) {
	turns, err := ts.List()
	if err != nil {
		return nil, err
	}

	if query == "" {
		matches := make([]TurnMatch, len(turns))
		for i, t := range turns {
			matches[i] = TurnMatch{Turn: t}
		}
		return matches, nil
	}

	haystack := make([]string, len(turns))
	for i, t := range turns {
		haystack[i] = t.Question + " " + t.Answer
	}

	results := fuzzy.Find(query, haystack)
	matches := make([]TurnMatch, 0, len(results))
	for _, r := range results {
		matches = append(matches, TurnMatch{Turn: turns[r.Index], Score: r.Score})
	}
	return matches, nil
}
