package visualization

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctionrunner"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctiontypes"
	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/ranking"
)

// WriteBidLogCSV exports one row per submitted bid, rejected and degraded
// ones included.
func WriteBidLogCSV(path string, result auctionrunner.GameResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"item_name",
		"item_quality",
		"item_required",
		"team_name",
		"bid_amount",
		"iteration",
		"sequence_index",
		"outcome",
		"failure_reason",
		"won",
		"winning_bid",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, round := range result.Rounds {
		for _, bid := range round.Bids {
			won := round.Outcome == auctiontypes.RoundWon &&
				bid.Team == round.Winner &&
				bid.Amount == round.WinningBid &&
				bid.Outcome == auctiontypes.BidAccepted

			row := []string{
				round.Item.Name,
				strconv.Itoa(round.Item.Quality),
				strconv.FormatBool(round.Item.IsRequired),
				bid.Team,
				strconv.Itoa(bid.Amount),
				strconv.Itoa(bid.Iteration),
				strconv.Itoa(bid.SequenceIndex),
				string(bid.Outcome),
				bid.FailureReason,
				strconv.FormatBool(won),
				strconv.Itoa(round.WinningBid),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return nil
}

func WriteRankingsCSV(path string, entries []ranking.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"rank",
		"team_name",
		"required_count",
		"total_quality",
		"remaining_budget",
		"tied",
		"items",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, entry := range entries {
		row := []string{
			strconv.Itoa(entry.Rank),
			entry.Team,
			strconv.Itoa(entry.RequiredCount),
			strconv.Itoa(entry.QualitySum),
			strconv.Itoa(entry.RemainingBudget),
			strconv.FormatBool(entry.Tied),
			strings.Join(entry.Items, "; "),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}
