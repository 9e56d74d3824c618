package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nordsym/guldkant-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type staticLister struct {
	quotes []domain.Quote
	err    error
}

func (l *staticLister) All(ctx context.Context) ([]domain.Quote, error) {
	return l.quotes, l.err
}

func TestFollowUpJobRun(t *testing.T) {
	now := time.Now()

	lister := &staticLister{quotes: []domain.Quote{
		{
			ID:       "q1",
			Customer: "Volvo",
			Status:   domain.StatusProposalSent,
			Events: []domain.Event{
				{Timestamp: now.AddDate(0, 0, -10), Event: "Förslag skickat till kund (via portal)"},
			},
		},
		{
			ID:        "q2",
			Customer:  "Eriksson",
			Status:    domain.StatusApproved,
			EventDate: now.AddDate(0, 0, 3).Format("2006-01-02"),
		},
		{
			ID:        "q3",
			Status:    domain.StatusApproved,
			EventDate: now.AddDate(0, 0, 30).Format("2006-01-02"),
		},
		{
			ID:     "q4",
			Status: domain.StatusDraft,
		},
	}}

	core, logs := observer.New(zap.InfoLevel)
	job := NewFollowUpJob(lister, zap.New(core), 5, time.Second)
	job.Run()

	assert.Equal(t, 1, logs.FilterMessage("proposal awaiting answer past follow-up window").Len())
	assert.Equal(t, 1, logs.FilterMessage("booked event within the next week").Len())

	completed := logs.FilterMessage("follow-up scan completed")
	assert.Equal(t, 1, completed.Len())
}

func TestFollowUpJobFetchFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	job := NewFollowUpJob(&staticLister{err: errors.New("store down")}, zap.New(core), 5, time.Second)
	job.Run()

	assert.Equal(t, 1, logs.FilterMessage("follow-up scan failed to load quotes").Len())
	assert.Equal(t, 0, logs.FilterMessage("follow-up scan completed").Len())
}
