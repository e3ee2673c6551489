package integration_test

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/payment-gateway/internal/domain"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		return k == "timestamp" || k == "requestId" || k == "createdAt"
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

// signedWebhookHeaders produces a Stripe-Signature header for the payload,
// signed with the suite's webhook secret.
func signedWebhookHeaders(payload []byte) map[string]string {
	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, TestWebhookSecret)

	return map[string]string{
		"Stripe-Signature": fmt.Sprintf("t=%d,v1=%s", now.Unix(), hex.EncodeToString(sig)),
	}
}

func getPaymentRecord(t testing.TB, db *pgxpool.Pool, transactionID string) *domain.Payment {
	var p domain.Payment

	query := `SELECT transaction_id, amount, currency, status FROM payments WHERE transaction_id = $1`
	err := db.QueryRow(context.Background(), query, transactionID).
		Scan(&p.TransactionID, &p.Amount, &p.Currency, &p.Status)
	require.NoError(t, err)

	return &p
}
