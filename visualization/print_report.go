package visualization

import (
	"fmt"
	"io"
	"strings"
)

const defaultStyle = "\x1b[0m"
const boldStyle = "\x1b[1m"
const redColor = "\x1b[91m"
const greenColor = "\x1b[32m"
const yellowColor = "\x1b[33m"
const cyanColor = "\x1b[36m"
const grayColor = "\x1b[90m"

// PrintReport writes the terminal summary of a finished game: per-round
// outcomes followed by the final standings.
func PrintReport(w io.Writer, report *GameReport) {
	if report.RoundsPlayed() == 0 {
		fmt.Fprintln(w, "Got no results!")
		return
	}

	fmt.Fprintf(w, "Finished %d rounds (%d sold, %d unsold) in %s\n",
		report.RoundsPlayed(), report.RoundsSold(), report.RoundsUnsold(), report.Duration)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Rounds")
	for i, round := range report.Result.Rounds {
		marker := "[OPT]"
		if round.Item.IsRequired {
			marker = "[REQ]"
		}

		if round.Winner != "" {
			fmt.Fprintf(w, "  %2d. %s%-24s%s %s Q:%-3d → %s%s%s for %d (%d iterations)\n",
				i+1, boldStyle, round.Item.Name, defaultStyle, marker, round.Item.Quality,
				greenColor, round.Winner, defaultStyle, round.WinningBid, round.Iterations)
		} else {
			fmt.Fprintf(w, "  %2d. %s%-24s%s %s Q:%-3d → %sunsold%s (%d iterations)\n",
				i+1, boldStyle, round.Item.Name, defaultStyle, marker, round.Item.Quality,
				grayColor, defaultStyle, round.Iterations)
		}
	}
	fmt.Fprintln(w)

	bidStats := report.WinningBidStats()
	iterStats := report.IterationStats()
	fmt.Fprintf(w, "Winning bids: min %.0f | mean %.1f | max %.0f | total %.0f\n",
		bidStats.Min, bidStats.Mean, bidStats.Max, bidStats.Total)
	fmt.Fprintf(w, "Iterations per round: mean %.1f | max %.0f\n", iterStats.Mean, iterStats.Max)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Final Standings")
	for _, entry := range report.Result.Rankings {
		color := cyanColor
		if entry.Rank == 1 {
			color = yellowColor
		}
		tie := ""
		if entry.Tied {
			tie = grayColor + " (tied)" + defaultStyle
		}
		fmt.Fprintf(w, "  %s#%d %s%s%s  Required=%d  Quality=%d  Budget=%d  Items=[%s]\n",
			color, entry.Rank, boldStyle, entry.Team, defaultStyle+tie,
			entry.RequiredCount, entry.QualitySum, entry.RemainingBudget,
			strings.Join(entry.Items, ", "))
	}

	if report.Result.Fatal != "" {
		fmt.Fprintf(w, "\n%sGAME ABORTED:%s %s\n", redColor, defaultStyle, report.Result.Fatal)
	}
}
