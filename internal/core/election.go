package core

import "fmt"

// AnalyzeElection computes the election summary in a single forward
// pass. Each row is (ballot id, region, candidate name); one row is
// one vote. Candidates are reported in first-appearance order, and the
// winner is the candidate with strictly the most votes, so the
// first-seen candidate wins ties.
//
// A dataset with no rows returns ErrEmptyDataset rather than dividing
// by a zero vote total.
func AnalyzeElection(ds Dataset) (ElectionSummary, error) {
	if len(ds) == 0 {
		return ElectionSummary{}, ErrEmptyDataset
	}

	votes := make(map[string]int)
	var order []string

	for i, row := range ds {
		if len(row) != 3 {
			return ElectionSummary{}, fmt.Errorf("row %d: want 3 fields, got %d: %w", i+1, len(row), ErrBadRecord)
		}
		name := row[2]
		if _, seen := votes[name]; !seen {
			order = append(order, name)
		}
		votes[name]++
	}

	total := len(ds)
	candidates := make([]CandidateTally, 0, len(order))
	for _, name := range order {
		n := votes[name]
		candidates = append(candidates, CandidateTally{
			Name:       name,
			Votes:      n,
			Percentage: float64(n) * 100.0 / float64(total),
		})
	}

	winner := candidates[0]
	for _, c := range candidates[1:] {
		if c.Votes > winner.Votes {
			winner = c
		}
	}

	return ElectionSummary{
		TotalVotes: total,
		Candidates: candidates,
		Winner:     winner.Name,
	}, nil
}
