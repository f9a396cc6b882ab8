package rules

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/agenda/internal/domain"
)

// CategoryDistribution sums categorized, non-cancelled time per category
// name, largest first. Events without a known category are not tracked.
func CategoryDistribution(dayEvents []*domain.Event, categoryNames map[string]string) ([]domain.CategoryShare, float64) {
	hours := map[string]float64{}
	var total float64
	for _, e := range dayEvents {
		if !e.Active() || e.CategoryID == "" {
			continue
		}
		name, ok := categoryNames[e.CategoryID]
		if !ok {
			continue
		}
		h := e.Duration().Hours()
		hours[name] += h
		total += h
	}

	out := make([]domain.CategoryShare, 0, len(hours))
	for name, h := range hours {
		out = append(out, domain.CategoryShare{Category: name, Hours: h})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hours != out[j].Hours {
			return out[i].Hours > out[j].Hours
		}
		return out[i].Category < out[j].Category
	})
	return out, total
}

// BalanceRule emits at most one balance_day draft when a single category
// holds more than the balance threshold of the day's tracked time.
func BalanceRule(p Policy, dayEvents []*domain.Event, categoryNames map[string]string, date time.Time) []Draft {
	dist, total := CategoryDistribution(dayEvents, categoryNames)
	if total == 0 {
		return nil
	}

	dominant := dist[0]
	share := dominant.Hours / total
	if share <= p.BalanceThreshold {
		return nil
	}

	var others []string
	for _, c := range dist[1:] {
		if len(others) == p.MaxOtherCategories {
			break
		}
		others = append(others, c.Category)
	}
	othersText := "other activities"
	if len(others) > 0 {
		othersText = strings.Join(others, ", ")
	}

	rounded := make([]domain.CategoryShare, len(dist))
	for i, c := range dist {
		rounded[i] = domain.CategoryShare{Category: c.Category, Hours: roundTo(c.Hours, 2)}
	}
	pct := roundTo(share*100, 1)
	return []Draft{{
		Type:  domain.SuggestionBalanceDay,
		Title: "Rebalance your day",
		Description: fmt.Sprintf("Your day is heavily focused on %q (%.1f%% of your time). Consider balancing with %s.",
			dominant.Category, pct, othersText),
		Priority: domain.PriorityLow,
		Rule:     RuleBalance,
		Payload: domain.BalancePayload{
			DominantCategory: dominant.Category,
			Share:            share,
			Distribution:     rounded,
			Date:             date,
		},
	}}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
