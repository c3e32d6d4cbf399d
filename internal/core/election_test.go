package core

import (
	"errors"
	"math"
	"testing"
)

func TestAnalyzeElection(t *testing.T) {
	ds := Dataset{
		{"1", "A", "X"},
		{"2", "A", "Y"},
		{"3", "B", "X"},
	}

	s, err := AnalyzeElection(ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TotalVotes != 3 {
		t.Errorf("TotalVotes = %d, want 3", s.TotalVotes)
	}
	if len(s.Candidates) != 2 {
		t.Fatalf("len(Candidates) = %d, want 2", len(s.Candidates))
	}
	x, y := s.Candidates[0], s.Candidates[1]
	if x.Name != "X" || x.Votes != 2 {
		t.Errorf("first candidate = %+v, want X with 2 votes", x)
	}
	if math.Abs(x.Percentage-66.667) > 0.001 {
		t.Errorf("X percentage = %v, want ~66.667", x.Percentage)
	}
	if y.Name != "Y" || y.Votes != 1 {
		t.Errorf("second candidate = %+v, want Y with 1 vote", y)
	}
	if s.Winner != "X" {
		t.Errorf("Winner = %q, want X", s.Winner)
	}
}

func TestAnalyzeElectionInvariants(t *testing.T) {
	ds := Dataset{
		{"1", "A", "X"},
		{"2", "B", "Y"},
		{"3", "C", "Z"},
		{"4", "A", "Y"},
		{"5", "B", "Y"},
		{"6", "C", "X"},
		{"7", "A", "Z"},
	}
	s, err := AnalyzeElection(ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := 0
	pctSum := 0.0
	for _, c := range s.Candidates {
		sum += c.Votes
		pctSum += c.Percentage
	}
	if sum != s.TotalVotes {
		t.Errorf("candidate votes sum to %d, want %d", sum, s.TotalVotes)
	}
	if math.Abs(pctSum-100.0) > 1e-9 {
		t.Errorf("percentages sum to %v, want 100.0", pctSum)
	}

	// The winner never has fewer votes than any other candidate.
	var winnerVotes int
	for _, c := range s.Candidates {
		if c.Name == s.Winner {
			winnerVotes = c.Votes
		}
	}
	for _, c := range s.Candidates {
		if c.Votes > winnerVotes {
			t.Errorf("winner %q has %d votes but %q has %d", s.Winner, winnerVotes, c.Name, c.Votes)
		}
	}
}

func TestAnalyzeElectionTieKeepsFirstSeen(t *testing.T) {
	ds := Dataset{
		{"1", "A", "Y"},
		{"2", "B", "X"},
		{"3", "A", "X"},
		{"4", "B", "Y"},
	}
	s, err := AnalyzeElection(ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Winner != "Y" {
		t.Errorf("Winner = %q, want Y (first seen on tie)", s.Winner)
	}
}

func TestAnalyzeElectionEmptyDataset(t *testing.T) {
	_, err := AnalyzeElection(Dataset{})
	if !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("AnalyzeElection(empty) error = %v, want %v", err, ErrEmptyDataset)
	}
}

func TestAnalyzeElectionBadRow(t *testing.T) {
	_, err := AnalyzeElection(Dataset{{"1", "A", "X"}, {"2", "B"}})
	if !errors.Is(err, ErrBadRecord) {
		t.Errorf("AnalyzeElection() error = %v, want %v", err, ErrBadRecord)
	}
}
