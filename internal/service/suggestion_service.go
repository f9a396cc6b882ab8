package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/agenda/internal/app"
	"github.com/alexanderramin/agenda/internal/db"
	"github.com/alexanderramin/agenda/internal/domain"
	"github.com/alexanderramin/agenda/internal/repository"
	"github.com/alexanderramin/agenda/internal/rules"
)

type suggestionService struct {
	suggestions repository.SuggestionRepo
	uow         db.UnitOfWork
	policy      rules.Policy
	opts        options
}

func NewSuggestionService(
	suggestions repository.SuggestionRepo,
	uow db.UnitOfWork,
	policy rules.Policy,
	opts ...Option,
) app.SuggestionUseCase {
	return &suggestionService{
		suggestions: suggestions,
		uow:         uow,
		policy:      policy,
		opts:        buildOptions(opts),
	}
}

// Generate sweeps expired suggestions, runs every rule for the reference
// day and stores the drafts that have no active equivalent. All writes
// share one transaction.
func (s *suggestionService) Generate(ctx context.Context, req app.GenerateRequest) (resp *app.GenerateResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user": req.UserID}
	defer func() {
		if resp != nil {
			fields["created"] = len(resp.Created)
			fields["expired"] = resp.Expired
			fields["skipped"] = resp.Skipped
		}
		observe(ctx, s.opts.observer, "generate-suggestions", startedAt, fields, &err)
	}()

	if req.UserID == "" {
		return nil, app.NewValidationError("user", "is required")
	}
	now := s.opts.clock()
	ref := now
	if req.Reference != nil {
		ref = req.Reference.In(s.opts.loc)
	}
	day := repository.DayKey(ref)
	fields["day"] = day

	resp = &app.GenerateResponse{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		suggestions := repository.NewSQLiteSuggestionRepo(tx)
		events := repository.NewSQLiteEventRepo(tx)
		categories := repository.NewSQLiteCategoryRepo(tx)

		expired, err := suggestions.ExpirePending(ctx, req.UserID, now)
		if err != nil {
			return err
		}
		resp.Expired = expired

		drafts, err := s.evaluate(ctx, events, categories, req.UserID, ref, now)
		if err != nil {
			return err
		}

		for _, d := range drafts {
			key := repository.DedupKey{
				UserID:         req.UserID,
				Type:           d.Type,
				ReferenceDay:   day,
				RelatedEventID: d.RelatedEventID,
			}
			active, err := suggestions.HasActive(ctx, key, now)
			if err != nil {
				return err
			}
			if active {
				resp.Skipped++
				continue
			}
			sg := d.Suggestion(req.UserID, day, now, s.policy.Expiry)
			if err := suggestions.Save(ctx, sg); err != nil {
				return err
			}
			resp.Created = append(resp.Created, sg)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("generating suggestions: %w", err)
	}
	return resp, nil
}

// evaluate runs the break, balance and postponement rules in that order.
func (s *suggestionService) evaluate(
	ctx context.Context,
	events repository.EventRepo,
	categories repository.CategoryRepo,
	userID string,
	ref, now time.Time,
) ([]rules.Draft, error) {
	dayEvents, err := events.ListDay(ctx, userID, ref)
	if err != nil {
		return nil, fmt.Errorf("loading day events: %w", err)
	}
	cats, err := categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	recent, err := events.ListUpdatedSince(ctx, userID, now.Add(-s.policy.PostponementWindow))
	if err != nil {
		return nil, fmt.Errorf("loading recent events: %w", err)
	}

	var drafts []rules.Draft
	drafts = append(drafts, rules.BreakRule(s.policy, dayEvents)...)
	drafts = append(drafts, rules.BalanceRule(s.policy, dayEvents, names, ref)...)
	drafts = append(drafts, rules.PostponementRule(s.policy, recent, now)...)
	return drafts, nil
}

// ListActive sweeps expired suggestions before listing.
func (s *suggestionService) ListActive(ctx context.Context, userID string) ([]*domain.Suggestion, error) {
	now := s.opts.clock()
	if _, err := s.suggestions.ExpirePending(ctx, userID, now); err != nil {
		return nil, err
	}
	return s.suggestions.ListActive(ctx, userID, now)
}

func (s *suggestionService) ListByStatus(ctx context.Context, userID string, status domain.SuggestionStatus) ([]*domain.Suggestion, error) {
	if !domain.ValidSuggestionStatuses[string(status)] {
		return nil, app.NewValidationError("status", "unknown status %q", status)
	}
	if _, err := s.suggestions.ExpirePending(ctx, userID, s.opts.clock()); err != nil {
		return nil, err
	}
	return s.suggestions.ListByStatus(ctx, userID, status)
}

func (s *suggestionService) Get(ctx context.Context, userID, id string) (*domain.Suggestion, error) {
	return s.suggestions.GetByID(ctx, id, userID)
}

func (s *suggestionService) Accept(ctx context.Context, userID, id string) (*domain.Suggestion, error) {
	return s.setStatus(ctx, userID, id, domain.SuggestionAccepted)
}

func (s *suggestionService) Reject(ctx context.Context, userID, id string) (*domain.Suggestion, error) {
	return s.setStatus(ctx, userID, id, domain.SuggestionRejected)
}

func (s *suggestionService) Delete(ctx context.Context, userID, id string) error {
	return s.suggestions.Delete(ctx, id, userID)
}

func (s *suggestionService) setStatus(ctx context.Context, userID, id string, status domain.SuggestionStatus) (sg *domain.Suggestion, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user": userID, "suggestion": id, "status": string(status)}
	defer observe(ctx, s.opts.observer, "update-suggestion-status", startedAt, fields, &err)

	return s.suggestions.UpdateStatus(ctx, id, userID, status)
}
