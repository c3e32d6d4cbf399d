// Package report renders summaries into the plain-text report format.
// Formatting is pure: the same summary always yields the same bytes.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"tally/internal/core"
)

const (
	budgetRule   = "----------------------------"
	electionRule = "-------------------------"
)

// FormatBudget renders a budget summary. The total is rounded to whole
// dollars, the average change keeps two decimals, and the extremal
// entries render as "<label> ($<signed amount>)".
func FormatBudget(s core.BudgetSummary) string {
	lines := []string{
		"Financial Analysis",
		budgetRule,
		fmt.Sprintf("Total Months: %d", s.Months),
		fmt.Sprintf("Total: $%d", wholeDollars(s.Total)),
		fmt.Sprintf("Average Change: $%.2f", s.AverageChange),
		fmt.Sprintf("Greatest Increase in Profits: %s ($%s)", s.GreatestIncrease.Label, amount(s.GreatestIncrease.Delta)),
		fmt.Sprintf("Greatest Decrease in Profits: %s ($%s)", s.GreatestDecrease.Label, amount(s.GreatestDecrease.Delta)),
	}
	return strings.Join(lines, "\n")
}

// FormatElection renders an election summary: title, rule, vote total,
// one line per candidate with percentage to three decimals, then the
// winner between rules.
func FormatElection(s core.ElectionSummary) string {
	lines := []string{
		"Election Results",
		electionRule,
		fmt.Sprintf("Total Votes: %d", s.TotalVotes),
		electionRule,
	}
	for _, c := range s.Candidates {
		lines = append(lines, fmt.Sprintf("%s: %.3f%% (%d)", c.Name, c.Percentage, c.Votes))
	}
	lines = append(lines,
		electionRule,
		fmt.Sprintf("Winner: %s", s.Winner),
		electionRule,
	)
	return strings.Join(lines, "\n")
}

// wholeDollars rounds to the nearest dollar, half away from zero.
func wholeDollars(m core.Money) int64 {
	c := m.Cents
	if c < 0 {
		return -((-c + 50) / 100)
	}
	return (c + 50) / 100
}

// amount renders a signed money value, dropping the decimals when the
// value is a whole dollar amount.
func amount(m core.Money) string {
	if m.Cents%100 == 0 {
		return strconv.FormatInt(m.Cents/100, 10)
	}
	return fmt.Sprintf("%.2f", m.Dollars())
}
