package core

import "errors"

type (
	// Row is one record from a dataset source, as an ordered tuple of
	// field strings. Rows are never mutated after load.
	Row []string

	// Dataset is the full ordered collection of rows for one run,
	// header already discarded.
	Dataset []Row

	// Money is an exact amount in cents. Signed: budget ledgers carry
	// both profits and losses.
	Money struct {
		Cents int64
	}

	// ExtremalChange is the period label and delta of the single best
	// increase or decrease seen across a budget dataset.
	ExtremalChange struct {
		Label string
		Delta Money
	}

	// BudgetSummary is the fixed-shape aggregate produced by one pass
	// over a budget dataset.
	BudgetSummary struct {
		Months           int
		Total            Money
		AverageChange    float64 // dollars, only defined for Months >= 2
		GreatestIncrease ExtremalChange
		GreatestDecrease ExtremalChange
	}

	// CandidateTally is one candidate's share of an election.
	CandidateTally struct {
		Name       string
		Votes      int
		Percentage float64
	}

	// ElectionSummary is the fixed-shape aggregate produced by one pass
	// over an election dataset. Candidates keep first-appearance order.
	ElectionSummary struct {
		TotalVotes int
		Candidates []CandidateTally
		Winner     string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrBadRecord        = errors.New("malformed record")
	ErrEmptyDataset     = errors.New("empty dataset")
	ErrInsufficientData = errors.New("insufficient data")
)

// Dollars returns the dollar value as a float64 for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}
