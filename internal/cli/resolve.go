package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/agenda/internal/domain"
	"github.com/alexanderramin/agenda/internal/repository"
)

// prefixWindowDays bounds the event scan used to resolve a short ID.
const prefixWindowDays = 366

// resolveEventID resolves a full event ID or a unique prefix such as the
// eight characters shown by "event list".
func resolveEventID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("event ID is required")
	}
	if _, err := app.Events.Get(ctx, app.User, input); err == nil {
		return input, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	now := app.now()
	events, err := app.Events.ListRange(ctx, app.User,
		now.AddDate(0, 0, -prefixWindowDays), now.AddDate(0, 0, prefixWindowDays))
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	return matchPrefix("event", input, ids)
}

// resolveSuggestionID resolves a full suggestion ID or a unique prefix.
func resolveSuggestionID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("suggestion ID is required")
	}
	if _, err := app.Suggestions.Get(ctx, app.User, input); err == nil {
		return input, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	var ids []string
	for _, status := range []domain.SuggestionStatus{
		domain.SuggestionPending, domain.SuggestionAccepted,
		domain.SuggestionRejected, domain.SuggestionExpired,
	} {
		list, err := app.Suggestions.ListByStatus(ctx, app.User, status)
		if err != nil {
			return "", err
		}
		for _, s := range list {
			ids = append(ids, s.ID)
		}
	}
	return matchPrefix("suggestion", input, ids)
}

func matchPrefix(kind, prefix string, ids []string) (string, error) {
	seen := make(map[string]bool)
	var match string
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) || seen[id] {
			continue
		}
		seen[id] = true
		if match != "" {
			return "", fmt.Errorf("%s ID %q is ambiguous", kind, prefix)
		}
		match = id
	}
	if match == "" {
		return "", fmt.Errorf("%s %q: %w", kind, prefix, repository.ErrNotFound)
	}
	return match, nil
}
