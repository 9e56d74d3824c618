package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nordsym/guldkant-api/internal/domain"
	"github.com/nordsym/guldkant-api/internal/webhook"
	"go.uber.org/zap"
)

// QuoteService owns the quote collection view and quote persistence.
// All state lives behind the webhook endpoints; this service fetches,
// normalizes, prices and saves.
type QuoteService struct {
	client *webhook.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewQuoteService creates a new quote service
func NewQuoteService(client *webhook.Client, logger *zap.Logger) *QuoteService {
	return &QuoteService{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// List returns the filtered, searched and sorted collection plus its
// summary line
func (s *QuoteService) List(ctx context.Context, filter domain.Filter, search string) (*domain.QuoteListResponse, error) {
	raw, err := s.client.FetchQuotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	quotes := domain.QueryQuotes(raw, filter, search)
	return &domain.QuoteListResponse{
		Quotes:  quotes,
		Summary: domain.Summarize(quotes, filter),
	}, nil
}

// All returns every non-null quote, hydrated and re-totalled, without
// filtering. Used by the dashboard metrics and the follow-up scan.
func (s *QuoteService) All(ctx context.Context) ([]domain.Quote, error) {
	raw, err := s.client.FetchQuotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading quotes: %w", err)
	}

	out := make([]domain.Quote, 0, len(raw))
	for _, q := range raw {
		if q == nil {
			continue
		}
		c := q.Clone()
		c.Hydrate()
		c.Total = domain.CalculateTotal(&c)
		out = append(out, c)
	}
	return out, nil
}

// FindByID locates one quote in the store's collection
func (s *QuoteService) FindByID(ctx context.Context, id string) (*domain.Quote, error) {
	quotes, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range quotes {
		if quotes[i].ID == id {
			return &quotes[i], nil
		}
	}
	return nil, ErrQuoteNotFound
}

// Save hydrates the quote, recomputes the total so a stale or tampered
// client value never reaches the store, persists it, and returns the stored
// record with its total recomputed again.
func (s *QuoteService) Save(ctx context.Context, q *domain.Quote) (*domain.Quote, error) {
	c := q.Clone()
	c.Hydrate()
	if c.ID == "" {
		c.ID = domain.NewTempID(s.now())
	}
	c.Total = domain.CalculateTotal(&c)

	saved, err := s.client.SaveQuote(ctx, &c)
	if err != nil {
		return nil, fmt.Errorf("saving quote %s: %w", c.ID, err)
	}

	saved.Hydrate()
	saved.Total = domain.CalculateTotal(saved)
	return saved, nil
}

// NewTemplate returns the in-memory template for a new case; nothing is
// persisted until the first save
func (s *QuoteService) NewTemplate() domain.Quote {
	t := domain.NewQuoteTemplate(s.now())
	t.Total = domain.CalculateTotal(&t)
	return t
}
