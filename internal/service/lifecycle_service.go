package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nordsym/guldkant-api/internal/domain"
	"github.com/nordsym/guldkant-api/internal/webhook"
	"go.uber.org/zap"
)

// LifecycleService moves quotes through the status lifecycle. Every
// transition loads the current record from the store, applies a pure
// transition from the domain package, and persists the result.
type LifecycleService struct {
	quotes *QuoteService
	client *webhook.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(quotes *QuoteService, client *webhook.Client, logger *zap.Logger) *LifecycleService {
	return &LifecycleService{
		quotes: quotes,
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// ChangeStatus performs a manual status change on the stored quote
func (s *LifecycleService) ChangeStatus(ctx context.Context, id string, next domain.Status) (*domain.Quote, error) {
	current, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, err := domain.ChangeStatus(*current, next, s.now())
	if err != nil {
		return nil, err
	}

	saved, err := s.quotes.Save(ctx, &changed)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Quote status changed",
		zap.String("quote_id", saved.ID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(saved.Status)),
	)
	return saved, nil
}

// SendProposal moves a draft to förslag-skickat, persists it, then triggers
// the proposal email. The returned dispatch error is informational: the
// status change is already durable and is never rolled back when the email
// trigger fails.
func (s *LifecycleService) SendProposal(ctx context.Context, id string) (*domain.Quote, error, error) {
	current, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	sent, err := domain.SendProposal(*current, s.now())
	if err != nil {
		return nil, nil, err
	}

	saved, err := s.quotes.Save(ctx, &sent)
	if err != nil {
		return nil, nil, err
	}

	var dispatchErr error
	if err := s.client.DispatchProposal(ctx, saved.ID); err != nil {
		dispatchErr = fmt.Errorf("proposal saved but dispatch failed: %w", err)
		s.logger.Warn("Proposal dispatch failed after successful save",
			zap.String("quote_id", saved.ID),
			zap.Error(err),
		)
	} else {
		s.logger.Info("Proposal sent", zap.String("quote_id", saved.ID))
	}

	return saved, dispatchErr, nil
}

// ApproveProposal moves a sent proposal to godkänd and persists it
func (s *LifecycleService) ApproveProposal(ctx context.Context, id string) (*domain.Quote, error) {
	current, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	approved, err := domain.ApproveProposal(*current, s.now())
	if err != nil {
		return nil, err
	}

	saved, err := s.quotes.Save(ctx, &approved)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Proposal approved", zap.String("quote_id", saved.ID))
	return saved, nil
}
