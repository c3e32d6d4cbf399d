package core

import "fmt"

// AnalyzeBudget computes the budget summary in a single forward pass.
//
// Each row is (period label, signed amount). The pass carries the
// running total, the sum of period-to-period changes, the previous
// amount, and the best increase and decrease seen so far. Comparisons
// are strict, so the earliest-seen extremum wins ties.
//
// A dataset with no rows returns ErrEmptyDataset; a dataset with one
// row returns ErrInsufficientData, because the average change divides
// by months-1 and is undefined for fewer than two periods.
func AnalyzeBudget(ds Dataset) (BudgetSummary, error) {
	switch len(ds) {
	case 0:
		return BudgetSummary{}, ErrEmptyDataset
	case 1:
		return BudgetSummary{}, fmt.Errorf("average change needs at least two periods: %w", ErrInsufficientData)
	}

	var (
		totalCents int64
		changeSum  int64
		prev       int64
		havePrev   bool
		increase   ExtremalChange
		decrease   ExtremalChange
		haveChange bool
	)

	for i, row := range ds {
		if len(row) != 2 {
			return BudgetSummary{}, fmt.Errorf("row %d: want 2 fields, got %d: %w", i+1, len(row), ErrBadRecord)
		}
		label := row[0]
		cents, err := ParseSignedCents(row[1])
		if err != nil {
			return BudgetSummary{}, fmt.Errorf("row %d (%s): amount %q: %w", i+1, label, row[1], err)
		}

		totalCents += cents

		if havePrev {
			change := cents - prev
			changeSum += change
			if !haveChange || change > increase.Delta.Cents {
				increase = ExtremalChange{Label: label, Delta: Money{Cents: change}}
			}
			if !haveChange || change < decrease.Delta.Cents {
				decrease = ExtremalChange{Label: label, Delta: Money{Cents: change}}
			}
			haveChange = true
		}

		prev = cents
		havePrev = true
	}

	return BudgetSummary{
		Months:           len(ds),
		Total:            Money{Cents: totalCents},
		AverageChange:    float64(changeSum) / float64(len(ds)-1) / 100.0,
		GreatestIncrease: increase,
		GreatestDecrease: decrease,
	}, nil
}
