package jobs

import (
	"context"
	"time"

	"github.com/nordsym/guldkant-api/internal/domain"
	"go.uber.org/zap"
)

// FollowUpJobName is the name of the periodic follow-up scan job
const FollowUpJobName = "follow_up_scan"

// upcomingWindow is how far ahead the scan looks for booked events
const upcomingWindow = 7 * 24 * time.Hour

// QuoteLister defines the collection access the scan needs. The interface
// keeps the job from importing the service package directly.
type QuoteLister interface {
	All(ctx context.Context) ([]domain.Quote, error)
}

// FollowUpJob periodically scans the collection and logs proposals that
// have sat unanswered past the stale window plus confirmed events coming
// up within the next week. Output goes to the log only; chasing the
// customer stays a human decision.
type FollowUpJob struct {
	quotes    QuoteLister
	logger    *zap.Logger
	staleDays int
	timeout   time.Duration
}

// NewFollowUpJob creates a new follow-up scan job
func NewFollowUpJob(quotes QuoteLister, logger *zap.Logger, staleDays int, timeout time.Duration) *FollowUpJob {
	return &FollowUpJob{
		quotes:    quotes,
		logger:    logger,
		staleDays: staleDays,
		timeout:   timeout,
	}
}

// Run executes one scan. Called by the scheduler according to the cron
// expression.
func (j *FollowUpJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	quotes, err := j.quotes.All(ctx)
	if err != nil {
		j.logger.Error("follow-up scan failed to load quotes",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	now := time.Now()
	staleBefore := now.AddDate(0, 0, -j.staleDays)
	stale, upcoming := 0, 0

	for i := range quotes {
		q := &quotes[i]

		if q.Status == domain.StatusProposalSent {
			sentAt := lastEventTime(q)
			if !sentAt.IsZero() && sentAt.Before(staleBefore) {
				stale++
				j.logger.Warn("proposal awaiting answer past follow-up window",
					zap.String("quote_id", q.ID),
					zap.String("customer", q.Customer),
					zap.Time("sent_at", sentAt),
					zap.Int("stale_days", j.staleDays),
				)
			}
		}

		if q.Status == domain.StatusApproved || q.Status == domain.StatusFulfilled {
			if eventDate, err := time.Parse("2006-01-02", q.EventDate); err == nil {
				if eventDate.After(now) && eventDate.Before(now.Add(upcomingWindow)) {
					upcoming++
					j.logger.Info("booked event within the next week",
						zap.String("quote_id", q.ID),
						zap.String("customer", q.Customer),
						zap.String("event_date", q.EventDate),
					)
				}
			}
		}
	}

	j.logger.Info("follow-up scan completed",
		zap.Int("quotes", len(quotes)),
		zap.Int("stale_proposals", stale),
		zap.Int("upcoming_events", upcoming),
		zap.Duration("duration", time.Since(start)),
	)
}

func lastEventTime(q *domain.Quote) time.Time {
	if len(q.Events) == 0 {
		return time.Time{}
	}
	return q.Events[len(q.Events)-1].Timestamp
}
