package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/nordsym/guldkant-api/internal/config"
	"github.com/nordsym/guldkant-api/internal/domain"
	"github.com/nordsym/guldkant-api/internal/webhook"
	"go.uber.org/zap"
)

// stubStore is an in-memory stand-in for the external automation endpoints
type stubStore struct {
	mu           sync.Mutex
	quotes       []*domain.Quote
	failSave     bool
	failDispatch bool
	dispatched   []string
	savedBodies  []domain.Quote
	nextID       string
}

func (s *stubStore) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/quotes", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]interface{}{"quotes": s.quotes})
	})

	mux.HandleFunc("/intake", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.failSave {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"save rejected"}`))
			return
		}

		var q domain.Quote
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.savedBodies = append(s.savedBodies, q)

		if q.IsNew() && s.nextID != "" {
			q.ID = s.nextID
		}

		replaced := false
		for i := range s.quotes {
			if s.quotes[i] != nil && s.quotes[i].ID == q.ID {
				s.quotes[i] = &q
				replaced = true
				break
			}
		}
		if !replaced {
			s.quotes = append(s.quotes, &q)
		}

		json.NewEncoder(w).Encode(q)
	})

	mux.HandleFunc("/dispatch", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.failDispatch {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"message":"mail flow down"}`))
			return
		}

		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		s.dispatched = append(s.dispatched, payload["offerId"])
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

func newStubEnv(store *stubStore) (*httptest.Server, *QuoteService, *LifecycleService) {
	srv := httptest.NewServer(store.handler())

	cfg := &config.WebhookConfig{
		QuotesURL:      srv.URL + "/quotes",
		IntakeURL:      srv.URL + "/intake",
		DispatchURL:    srv.URL + "/dispatch",
		TimeoutSeconds: 5,
	}
	client := webhook.NewClient(cfg, zap.NewNop())

	quotes := NewQuoteService(client, zap.NewNop())
	lifecycle := NewLifecycleService(quotes, client, zap.NewNop())
	return srv, quotes, lifecycle
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
