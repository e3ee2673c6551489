package integration_test

const (
	// TestWebhookSecret signs the webhook payloads posted by the tests. The
	// mock payment provider verifies signatures exactly like the real one.
	TestWebhookSecret = "whsec_test_secret"

	TestTransactionAmount = 2000
	TestRefundAmount      = 500
	TestCurrency          = "usd"
)
