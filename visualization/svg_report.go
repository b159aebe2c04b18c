package visualization

import (
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"
)

const border = 10
const headerHeight = 60
const barWidth = 18
const barSpacing = 6
const chartHeight = 220
const labelHeight = 90
const standingsWidth = 360

const textStyle = `text-anchor:start;font-size:14px;font-family:Helvetica Neue`
const headerStyle = `text-anchor:start;font-size:24px;font-family:Helvetica Neue`
const labelStyle = `text-anchor:end;font-size:10px;font-family:Helvetica Neue`

// WriteSVGReport renders the game as a report card: one bar per round
// (height proportional to the winning bid, gray for unsold items) plus the
// final standings column.
func WriteSVGReport(path string, report *GameReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rounds := report.Result.Rounds
	chartWidth := border*2 + len(rounds)*(barWidth+barSpacing)
	width := chartWidth + standingsWidth + border
	height := headerHeight + chartHeight + labelHeight + border*2

	s := svg.New(f)
	s.Start(width, height)

	s.Text(border, headerHeight/2+8,
		fmt.Sprintf("Auction %s: %d rounds, %d sold", report.Result.GameID, report.RoundsPlayed(), report.RoundsSold()),
		headerStyle)

	maxBid := 1.0
	for _, round := range rounds {
		if float64(round.WinningBid) > maxBid {
			maxBid = float64(round.WinningBid)
		}
	}

	for i, round := range rounds {
		x := border + i*(barWidth+barSpacing)
		barHeight := int(float64(chartHeight) * float64(round.WinningBid) / maxBid)
		y := headerHeight + chartHeight - barHeight

		style := "fill:#4a90d9"
		if round.Winner == "" {
			barHeight = 4
			y = headerHeight + chartHeight - barHeight
			style = "fill:#cccccc"
		} else if round.Item.IsRequired {
			style = "fill:#d94a4a"
		}
		s.Rect(x, y, barWidth, barHeight, style)

		s.TranslateRotate(x+barWidth/2, headerHeight+chartHeight+8, -60)
		s.Text(0, 0, round.Item.Name, labelStyle)
		s.Gend()
	}

	tx := chartWidth + border
	ty := headerHeight + 20
	s.Text(tx, ty, "Final Standings", textStyle)
	for i, entry := range report.Result.Rankings {
		line := fmt.Sprintf("#%d %s: req %d, quality %d, budget %d",
			entry.Rank, entry.Team, entry.RequiredCount, entry.QualitySum, entry.RemainingBudget)
		if entry.Tied {
			line += " (tied)"
		}
		s.Text(tx, ty+(i+1)*20, line, textStyle)
	}

	s.End()
	return nil
}
