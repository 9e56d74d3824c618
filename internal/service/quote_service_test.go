package service

import (
	"context"
	"testing"
	"time"

	"github.com/nordsym/guldkant-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteServiceList(t *testing.T) {
	store := &stubStore{quotes: []*domain.Quote{
		{ID: "q1", Customer: "Volvo", Status: domain.StatusDraft,
			GuestCount: 10, PricePerGuest: 500,
			Events: []domain.Event{{Timestamp: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}}},
		{ID: "q2", Customer: "Eriksson", Status: domain.StatusPaid,
			Events: []domain.Event{{Timestamp: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)}}},
		nil,
	}}
	srv, quotes, _ := newStubEnv(store)
	defer srv.Close()

	resp, err := quotes.List(context.Background(), domain.FilterAll, "")
	require.NoError(t, err)

	require.Len(t, resp.Quotes, 1)
	assert.Equal(t, "q1", resp.Quotes[0].ID)
	assert.InDelta(t, 5600.0, resp.Quotes[0].Total, 0.001)
	assert.Equal(t, 1, resp.Summary.Count)
	assert.Equal(t, "Visar 1 aktiva ärende med ett totalt värde av 5 600,00 kr.", resp.Summary.Text)
}

func TestQuoteServiceSave(t *testing.T) {
	t.Run("new quote gets durable id and recomputed total", func(t *testing.T) {
		store := &stubStore{nextID: "stored-1"}
		srv, quotes, _ := newStubEnv(store)
		defer srv.Close()

		saved, err := quotes.Save(context.Background(), &domain.Quote{
			Customer:      "Volvo",
			GuestCount:    10,
			PricePerGuest: 500,
			Total:         12345, // client-supplied, must be ignored
		})
		require.NoError(t, err)

		assert.Equal(t, "stored-1", saved.ID)
		assert.InDelta(t, 5600.0, saved.Total, 0.001)

		// the body sent upstream already carried the recomputed total
		require.Len(t, store.savedBodies, 1)
		assert.InDelta(t, 5600.0, store.savedBodies[0].Total, 0.001)
	})

	t.Run("save failure surfaces upstream message", func(t *testing.T) {
		store := &stubStore{failSave: true}
		srv, quotes, _ := newStubEnv(store)
		defer srv.Close()

		_, err := quotes.Save(context.Background(), &domain.Quote{Customer: "Volvo"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "save rejected")
	})
}

func TestQuoteServiceFindByID(t *testing.T) {
	store := &stubStore{quotes: []*domain.Quote{
		{ID: "q1", Customer: "Volvo", Status: domain.StatusDraft},
	}}
	srv, quotes, _ := newStubEnv(store)
	defer srv.Close()

	found, err := quotes.FindByID(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, "Volvo", found.Customer)

	_, err = quotes.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestQuoteServiceNewTemplate(t *testing.T) {
	srv, quotes, _ := newStubEnv(&stubStore{})
	defer srv.Close()

	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	quotes.now = fixedClock(now)

	tpl := quotes.NewTemplate()
	assert.True(t, tpl.IsNew())
	assert.Equal(t, "Nytt ärende", tpl.Customer)
	assert.Equal(t, "2026-03-15", tpl.EventDate)
	require.Len(t, tpl.Events, 1)
	assert.Equal(t, "Ärende skapat", tpl.Events[0].Event)
}
