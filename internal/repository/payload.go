package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/agenda/internal/domain"
)

// Stored payload shapes. Durations are kept in minutes and times as
// RFC 3339 so the JSON stays readable from the sqlite shell.

type breakPayloadJSON struct {
	HoursWorked          float64 `json:"hours_worked"`
	BreakDurationMinutes int     `json:"break_duration_minutes"`
	BlockStart           string  `json:"block_start"`
	SuggestedAt          string  `json:"suggested_at"`
}

type categoryShareJSON struct {
	Category string  `json:"category"`
	Hours    float64 `json:"hours"`
}

type balancePayloadJSON struct {
	DominantCategory string              `json:"dominant_category"`
	Share            float64             `json:"share"`
	Distribution     []categoryShareJSON `json:"distribution"`
	Date             string              `json:"date"`
}

type movePayloadJSON struct {
	EventID        string `json:"event_id"`
	EventTitle     string `json:"event_title"`
	CurrentStart   string `json:"current_start"`
	StalledMinutes int    `json:"stalled_minutes"`
}

func encodePayload(p domain.SuggestionPayload) (string, error) {
	var v any
	switch p := p.(type) {
	case nil:
		return "{}", nil
	case domain.BreakPayload:
		v = breakPayloadJSON{
			HoursWorked:          p.HoursWorked,
			BreakDurationMinutes: int(p.BreakDuration / time.Minute),
			BlockStart:           formatTime(p.BlockStart),
			SuggestedAt:          formatTime(p.SuggestedAt),
		}
	case domain.BalancePayload:
		dist := make([]categoryShareJSON, len(p.Distribution))
		for i, d := range p.Distribution {
			dist[i] = categoryShareJSON{Category: d.Category, Hours: d.Hours}
		}
		v = balancePayloadJSON{
			DominantCategory: p.DominantCategory,
			Share:            p.Share,
			Distribution:     dist,
			Date:             p.Date.Format(dayLayout),
		}
	case domain.MovePayload:
		v = movePayloadJSON{
			EventID:        p.EventID,
			EventTitle:     p.EventTitle,
			CurrentStart:   formatTime(p.CurrentStart),
			StalledMinutes: int(p.Stalled / time.Minute),
		}
	default:
		return "", fmt.Errorf("unsupported suggestion payload %T", p)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding suggestion payload: %w", err)
	}
	return string(b), nil
}

func decodePayload(t domain.SuggestionType, raw string) (domain.SuggestionPayload, error) {
	if raw == "" || raw == "{}" {
		return nil, nil
	}
	switch t {
	case domain.SuggestionTakeBreak:
		var v breakPayloadJSON
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("decoding break payload: %w", err)
		}
		blockStart, err := parseTime(v.BlockStart, "break payload block_start")
		if err != nil {
			return nil, err
		}
		suggestedAt, err := parseTime(v.SuggestedAt, "break payload suggested_at")
		if err != nil {
			return nil, err
		}
		return domain.BreakPayload{
			HoursWorked:   v.HoursWorked,
			BreakDuration: time.Duration(v.BreakDurationMinutes) * time.Minute,
			BlockStart:    blockStart,
			SuggestedAt:   suggestedAt,
		}, nil
	case domain.SuggestionBalanceDay:
		var v balancePayloadJSON
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("decoding balance payload: %w", err)
		}
		dist := make([]domain.CategoryShare, len(v.Distribution))
		for i, d := range v.Distribution {
			dist[i] = domain.CategoryShare{Category: d.Category, Hours: d.Hours}
		}
		date, err := time.Parse(dayLayout, v.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing balance payload date: %w", err)
		}
		return domain.BalancePayload{
			DominantCategory: v.DominantCategory,
			Share:            v.Share,
			Distribution:     dist,
			Date:             date,
		}, nil
	case domain.SuggestionMoveEvent:
		var v movePayloadJSON
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("decoding move payload: %w", err)
		}
		current, err := parseTime(v.CurrentStart, "move payload current_start")
		if err != nil {
			return nil, err
		}
		return domain.MovePayload{
			EventID:      v.EventID,
			EventTitle:   v.EventTitle,
			CurrentStart: current,
			Stalled:      time.Duration(v.StalledMinutes) * time.Minute,
		}, nil
	default:
		return nil, fmt.Errorf("unknown suggestion type %q", t)
	}
}
