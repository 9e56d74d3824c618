package service

import (
	"context"

	"github.com/nordsym/guldkant-api/internal/domain"
	"go.uber.org/zap"
)

// MetricsService computes the dashboard overview numbers from the live
// collection
type MetricsService struct {
	quotes *QuoteService
	logger *zap.Logger
}

// NewMetricsService creates a new metrics service
func NewMetricsService(quotes *QuoteService, logger *zap.Logger) *MetricsService {
	return &MetricsService{quotes: quotes, logger: logger}
}

// ActivePipeline returns count, total value and average value of the
// in-flight quotes. Totals include VAT, matching what the customer sees.
func (s *MetricsService) ActivePipeline(ctx context.Context) (*domain.DashboardMetrics, error) {
	quotes, err := s.quotes.All(ctx)
	if err != nil {
		return nil, err
	}

	m := &domain.DashboardMetrics{}
	for i := range quotes {
		if !quotes[i].Status.IsActive() {
			continue
		}
		m.ActiveCount++
		m.ActiveValue += quotes[i].Total
	}
	if m.ActiveCount > 0 {
		m.AverageValue = m.ActiveValue / float64(m.ActiveCount)
	}
	m.ActiveValueText = domain.FormatSEK(m.ActiveValue)
	m.AverageValueText = domain.FormatSEK(m.AverageValue)
	return m, nil
}
