package integration_test

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/payment-gateway/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

const (
	dbName         = "payment_gateway"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"
)

type auditDocument struct {
	Path string
	Body []byte
}

type BaseSuite struct {
	suite.Suite
	app            *TestApp
	dbContainer    *PostgresContainer
	cacheContainer *RedisContainer
	auditServer    *httptest.Server
	auditDocs      chan auditDocument
	server         *httptest.Server
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	postgresContainer, err := getDbContainer(ctx)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	redisContainer, err := getCacheContainer(ctx)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	s.dbContainer = postgresContainer
	s.cacheContainer = redisContainer

	s.auditDocs = make(chan auditDocument, 32)
	s.auditServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		select {
		case s.auditDocs <- auditDocument{Path: r.URL.Path, Body: body}:
		default:
		}
		w.WriteHeader(http.StatusCreated)
	}))

	cfg := app.Config{
		Port: 3000,
		Env:  "test",
		DB: app.DBConfig{
			DSN:          postgresContainer.ConnectionString,
			MaxOpenConns: 25,
			MaxIdleTime:  2 * time.Minute,
		},
		Redis: app.RedisConfig{
			URL:          redisContainer.ConnectionString,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
		},
		Stripe: app.StripeConfig{
			WebhookSecret: TestWebhookSecret,
		},
		Audit: app.AuditConfig{
			URL:       s.auditServer.URL,
			Timeout:   2 * time.Second,
			Workers:   2,
			QueueSize: 16,
		},
	}

	testApp, err := newTestApp(cfg)
	if err != nil {
		log.Printf("cannot initialize app: %s", err)
		return
	}

	s.app = testApp
	s.server = httptest.NewServer(testApp.App.Routes())
}

func (s *BaseSuite) TearDownSuite() {
	s.server.Close()
	s.app.Close()
	s.auditServer.Close()

	if err := testcontainers.TerminateContainer(s.dbContainer.Container.Container); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
	if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

// waitForAuditDocument blocks until the audit sink receives a document for the
// given index, or fails the test after the deadline. Delivery is asynchronous.
func (s *BaseSuite) waitForAuditDocument(t testing.TB, index string) auditDocument {
	select {
	case doc := <-s.auditDocs:
		require.Equal(t, "/"+index+"/_doc", doc.Path)
		return doc
	case <-time.After(5 * time.Second):
		t.Fatalf("no audit document received for index %s", index)
		return auditDocument{}
	}
}

type Scenario struct {
	Name             string
	Method           string
	URL              string
	Body             io.Reader
	Headers          map[string]string
	ExpectedStatus   int
	ExpectedResponse string
	BeforeTestFunc   func(t testing.TB, app *TestApp)
	AfterTestFunc    func(t testing.TB, app *TestApp, res *http.Response)
}

func (s Scenario) Run(t *testing.T, testApp *TestApp) {
	t.Run(s.Name, func(t *testing.T) {
		req, err := prepareRequest(s.Method, s.URL, s.Body, s.Headers)
		require.NoError(t, err)

		if s.BeforeTestFunc != nil {
			s.BeforeTestFunc(t, testApp)
		}

		rec := httptest.NewRecorder()
		testApp.App.Routes().ServeHTTP(rec, req)

		res := rec.Result()
		defer res.Body.Close()

		assert.Equal(t, s.ExpectedStatus, res.StatusCode)

		if s.ExpectedResponse != "" {
			compareResponse(t, res.Body, s.ExpectedResponse)
		}

		if s.AfterTestFunc != nil {
			s.AfterTestFunc(t, testApp, res)
		}
	})
}
