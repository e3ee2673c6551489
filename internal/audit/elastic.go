// Package audit ships refund and failure documents to an external
// Elasticsearch-compatible index. Delivery is best effort: failures are
// logged, never surfaced to the request that produced the document.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	IndexRefunds        = "refunds"
	IndexFailedPayments = "failed-payments"
)

// RefundDocument is indexed for every refund issued through the API.
type RefundDocument struct {
	PaymentIntentID string    `json:"payment_intent_id"`
	RefundID        string    `json:"refund_id"`
	Amount          int64     `json:"amount"`
	Status          string    `json:"status"`
	Timestamp       time.Time `json:"timestamp"`
}

// FailedPaymentDocument is indexed when the processor reports a failed
// payment intent.
type FailedPaymentDocument struct {
	PaymentIntentID string    `json:"payment_intent_id"`
	ErrorCode       string    `json:"error_code"`
	ErrorMessage    string    `json:"error_message,omitempty"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	Timestamp       time.Time `json:"timestamp"`
}

// ElasticSink POSTs documents to {baseURL}/{index}/_doc.
type ElasticSink struct {
	baseURL string
	client  *http.Client
}

func NewElasticSink(baseURL string, timeout time.Duration) *ElasticSink {
	return &ElasticSink{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *ElasticSink) Index(ctx context.Context, index string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/_doc", s.baseURL, index)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("audit sink returned status %d for index %s", resp.StatusCode, index)
	}

	return nil
}
