package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockAuditReporter struct {
	mock.Mock
}

func (m *MockAuditReporter) Report(index string, doc any) {
	m.Called(index, doc)
}

type MockMetricsRecorder struct {
	mock.Mock
}

func (m *MockMetricsRecorder) IncSuccess(currency string) {
	m.Called(currency)
}

func (m *MockMetricsRecorder) IncFailure(currency, errorCode string) {
	m.Called(currency, errorCode)
}

type MockDeduper struct {
	mock.Mock
}

func (m *MockDeduper) Seen(ctx context.Context, eventID string) bool {
	args := m.Called(ctx, eventID)
	return args.Bool(0)
}

func (m *MockDeduper) Mark(ctx context.Context, eventID string) {
	m.Called(ctx, eventID)
}
