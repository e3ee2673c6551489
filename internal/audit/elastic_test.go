package audit

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/payment-gateway/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElasticSinkIndexesDocument(t *testing.T) {
	var gotPath string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sink := NewElasticSink(server.URL, 2*time.Second)

	doc := RefundDocument{
		PaymentIntentID: "pi_1",
		RefundID:        "re_1",
		Amount:          500,
		Status:          "succeeded",
		Timestamp:       time.Now(),
	}

	err := sink.Index(context.Background(), IndexRefunds, doc)
	require.NoError(t, err)

	assert.Equal(t, "/refunds/_doc", gotPath)

	var decoded RefundDocument
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.Equal(t, "pi_1", decoded.PaymentIntentID)
	assert.Equal(t, "re_1", decoded.RefundID)
}

func TestElasticSinkReportsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	sink := NewElasticSink(server.URL, 2*time.Second)

	err := sink.Index(context.Background(), IndexFailedPayments, FailedPaymentDocument{PaymentIntentID: "pi_1"})
	assert.Error(t, err)
}

func TestDispatcherDeliversInBackground(t *testing.T) {
	received := make(chan string, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- r.URL.Path
	}))
	defer server.Close()

	pool := worker.NewPool(1, 8)
	defer pool.Stop()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := NewDispatcher(NewElasticSink(server.URL, 2*time.Second), pool, 2*time.Second, logger)

	dispatcher.Report(IndexFailedPayments, FailedPaymentDocument{PaymentIntentID: "pi_1"})

	select {
	case path := <-received:
		assert.Equal(t, "/failed-payments/_doc", path)
	case <-time.After(2 * time.Second):
		t.Fatal("audit document was not delivered")
	}
}
