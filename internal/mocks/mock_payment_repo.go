package mocks

import (
	"context"

	"github.com/metinatakli/payment-gateway/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPaymentRepo struct {
	mock.Mock
	domain.PaymentRepository
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepo) UpdateStatus(
	ctx context.Context,
	transactionID string,
	status domain.PaymentStatus) (int64, error) {

	args := m.Called(ctx, transactionID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepo) Rebind(ctx context.Context, oldID, newID string) (int64, error) {
	args := m.Called(ctx, oldID, newID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepo) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	args := m.Called(ctx, transactionID)
	return args.Get(0).(*domain.Payment), args.Error(1)
}
