package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nordsym/guldkant-api/internal/config"
	"github.com/nordsym/guldkant-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(srv *httptest.Server) *Client {
	cfg := &config.WebhookConfig{
		QuotesURL:      srv.URL + "/quotes",
		IntakeURL:      srv.URL + "/intake",
		DispatchURL:    srv.URL + "/dispatch",
		TimeoutSeconds: 5,
	}
	return NewClient(cfg, zap.NewNop())
}

func TestFetchQuotes(t *testing.T) {
	t.Run("decodes envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			w.Write([]byte(`{"quotes":[{"id":"q1","customer":"Volvo"},null,{"id":"q2"}]}`))
		}))
		defer srv.Close()

		quotes, err := newTestClient(srv).FetchQuotes(context.Background())
		require.NoError(t, err)
		require.Len(t, quotes, 3)
		assert.Equal(t, "q1", quotes[0].ID)
		assert.Nil(t, quotes[1])
	})

	t.Run("decodes records with cleared numeric inputs", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"quotes":[{"id":"q1","pricePerGuest":"","guestCount":10,"discountAmount":""}]}`))
		}))
		defer srv.Close()

		quotes, err := newTestClient(srv).FetchQuotes(context.Background())
		require.NoError(t, err)
		require.Len(t, quotes, 1)
		assert.Equal(t, domain.Count(10), quotes[0].GuestCount)
		assert.Equal(t, domain.Amount(0), quotes[0].PricePerGuest)
	})

	t.Run("missing quotes field means empty collection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		quotes, err := newTestClient(srv).FetchQuotes(context.Background())
		require.NoError(t, err)
		assert.Empty(t, quotes)
	})

	t.Run("non-2xx is a status error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"workflow error"}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv).FetchQuotes(context.Background())
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
		assert.Equal(t, "workflow error", statusErr.Message)
	})
}

func TestSaveQuote(t *testing.T) {
	t.Run("posts quote and returns persisted record", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var received domain.Quote
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			assert.Equal(t, "temp_1700000000000", received.ID)

			received.ID = "stored-1"
			json.NewEncoder(w).Encode(received)
		}))
		defer srv.Close()

		saved, err := newTestClient(srv).SaveQuote(context.Background(), &domain.Quote{
			ID:       "temp_1700000000000",
			Customer: "Volvo",
		})
		require.NoError(t, err)
		assert.Equal(t, "stored-1", saved.ID)
		assert.Equal(t, "Volvo", saved.Customer)
	})

	t.Run("empty response body falls back to sent quote", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		saved, err := newTestClient(srv).SaveQuote(context.Background(), &domain.Quote{ID: "q1"})
		require.NoError(t, err)
		assert.Equal(t, "q1", saved.ID)
	})

	t.Run("save failure carries upstream message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"customer missing"}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv).SaveQuote(context.Background(), &domain.Quote{})
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Contains(t, statusErr.Error(), "customer missing")
	})
}

func TestDispatchProposal(t *testing.T) {
	t.Run("posts offerId payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "stored-1", payload["offerId"])
		}))
		defer srv.Close()

		require.NoError(t, newTestClient(srv).DispatchProposal(context.Background(), "stored-1"))
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		err := newTestClient(srv).DispatchProposal(context.Background(), "stored-1")
		var statusErr *StatusError
		assert.ErrorAs(t, err, &statusErr)
	})
}
