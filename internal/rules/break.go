package rules

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/agenda/internal/domain"
)

// Block is a run of events separated by gaps no longer than the block gap.
type Block struct {
	Start  time.Time
	End    time.Time
	Worked time.Duration
	Events int
}

// ContinuousBlocks partitions non-cancelled events into blocks. Worked is
// the sum of event durations, so idle gaps inside a block do not count.
func ContinuousBlocks(events []*domain.Event, gap time.Duration) []Block {
	active := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if e.Active() {
			active = append(active, e)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Start.Before(active[j].Start)
	})

	var blocks []Block
	for _, e := range active {
		if n := len(blocks); n > 0 && e.Start.Sub(blocks[n-1].End) <= gap {
			b := &blocks[n-1]
			b.Worked += e.Duration()
			b.Events++
			if e.End.After(b.End) {
				b.End = e.End
			}
			continue
		}
		blocks = append(blocks, Block{Start: e.Start, End: e.End, Worked: e.Duration(), Events: 1})
	}
	return blocks
}

// BreakRule emits a take_break draft for every block whose worked time
// reaches the break threshold. The break is suggested at the block's end.
func BreakRule(p Policy, dayEvents []*domain.Event) []Draft {
	var out []Draft
	for _, b := range ContinuousBlocks(dayEvents, p.BlockGap) {
		if b.Worked < p.BreakThreshold {
			continue
		}
		hours := b.Worked.Hours()
		out = append(out, Draft{
			Type:  domain.SuggestionTakeBreak,
			Title: "Time for a break",
			Description: fmt.Sprintf("You have worked %.1f hours in a row. Take a %d minute break to keep your focus.",
				hours, int(p.BreakDuration/time.Minute)),
			Priority: domain.PriorityMedium,
			Rule:     RuleBreak,
			Payload: domain.BreakPayload{
				HoursWorked:   roundTo(hours, 2),
				BreakDuration: p.BreakDuration,
				BlockStart:    b.Start,
				SuggestedAt:   b.End,
			},
		})
	}
	return out
}
