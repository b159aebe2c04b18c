package llmclient

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"code.cloudfoundry.org/lager"

	"github.com/jedrzejkarpiewskiallegro/wolf-of-allegro/auctiontypes"
)

var leadingInteger = regexp.MustCompile(`^-?\d+`)

// Source is the model-backed decision source for one team. The strategy
// text is human-authored and opaque to the engine; the full item catalog is
// serialized once at construction since it never changes mid-game.
type Source struct {
	client       *Client
	team         string
	strategyText string
	catalogJSON  string
	logger       lager.Logger
}

func NewSource(client *Client, team, strategyText string, catalogItems []auctiontypes.Item, logger lager.Logger) (*Source, error) {
	catalogJSON, err := json.MarshalIndent(catalogItems, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing catalog for team %q: %w", team, err)
	}

	return &Source{
		client:       client,
		team:         team,
		strategyText: strategyText,
		catalogJSON:  string(catalogJSON),
		logger:       logger.Session("llm-source", lager.Data{"team": team}),
	}, nil
}

func (s *Source) BidFor(ctx context.Context, view auctiontypes.GameView) (int, error) {
	logger := s.logger.Session("bid-for", lager.Data{
		"item":      view.CurrentItem.Name,
		"iteration": view.Iteration,
	})

	response, err := s.client.ChatCompletion(ctx, s.strategyText, s.userMessage(view))
	if err != nil {
		logger.Error("completion-failed", err)
		return 0, err
	}

	amount, err := ParseBid(response)
	if err != nil {
		logger.Error("unparseable-bid", err, lager.Data{"response": response})
		return 0, err
	}

	logger.Debug("bid-parsed", lager.Data{"amount": amount})
	return amount, nil
}

func (s *Source) userMessage(view auctiontypes.GameView) string {
	return fmt.Sprintf(`all_items:
%s

game_state:
%s

Based on all_items and game_state above, determine your bid.
Respond with ONLY a single integer (your bid amount). Nothing else.`, s.catalogJSON, promptContext(view))
}

// ParseBid extracts the integer bid from a raw model response. The agent is
// told to answer with a bare integer; anything else, including a negative
// amount, is an inability signal.
func ParseBid(response string) (int, error) {
	cleaned := strings.TrimSpace(response)

	match := leadingInteger.FindString(cleaned)
	if match == "" {
		return 0, fmt.Errorf("no integer at start of response %q", response)
	}

	amount, err := strconv.Atoi(match)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", match, err)
	}
	if amount < 0 {
		return 0, fmt.Errorf("negative bid %d", amount)
	}
	return amount, nil
}

// promptContext renders the private game view as the text block the
// strategy prompt reasons over.
func promptContext(view auctiontypes.GameView) string {
	b := &strings.Builder{}

	fmt.Fprintf(b, "=== CURRENT AUCTION ===\n")
	fmt.Fprintf(b, "Item: %s\n", view.CurrentItem.Name)
	fmt.Fprintf(b, "Quality: %d\n", view.CurrentItem.Quality)
	fmt.Fprintf(b, "Required: %s\n", yesNo(view.CurrentItem.IsRequired))
	fmt.Fprintf(b, "Iteration: %d/%d\n", view.Iteration, view.IterationLimit)
	if view.HighestBidder != "" {
		fmt.Fprintf(b, "Current highest bid: %d by %s\n", view.HighestBid, view.HighestBidder)
	} else {
		fmt.Fprintf(b, "Current highest bid: none\n")
	}

	fmt.Fprintf(b, "\n=== YOUR TEAM ===\n")
	fmt.Fprintf(b, "Budget: %d\n", view.MyTeam.Budget)
	fmt.Fprintf(b, "Required items collected: %d\n", view.MyTeam.RequiredCount())
	fmt.Fprintf(b, "Items owned: %s\n", itemNames(view.MyTeam.Acquired))

	fmt.Fprintf(b, "\n=== OPPONENTS ===\n")
	for _, opponent := range view.Opponents {
		fmt.Fprintf(b, "- %s: Budget=%d, Required=%d, Items=%s\n",
			opponent.Name, opponent.Budget, opponent.RequiredCount(), itemNames(opponent.Acquired))
	}

	fmt.Fprintf(b, "\n=== REMAINING ITEMS ===\n")
	fmt.Fprintf(b, "Total remaining: %d\n", len(view.RemainingItems))
	requiredRemaining := 0
	for _, item := range view.RemainingItems {
		if item.IsRequired {
			requiredRemaining++
		}
	}
	fmt.Fprintf(b, "Required remaining: %d\n", requiredRemaining)
	for _, item := range view.RemainingItems {
		marker := "[OPT]"
		if item.IsRequired {
			marker = "[REQ]"
		}
		fmt.Fprintf(b, "  - %s (Q:%d) %s\n", item.Name, item.Quality, marker)
	}

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "YES"
	}
	return "NO"
}

func itemNames(items []auctiontypes.Item) string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return "[" + strings.Join(names, ", ") + "]"
}
