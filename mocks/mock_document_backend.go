package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tradedesk/internal/domain"
)

// MockDocumentBackend is a mock implementation of port.DocumentBackend.
type MockDocumentBackend struct {
	mock.Mock
}

func (m *MockDocumentBackend) GetSource(ctx context.Context, sess *domain.Session, kind domain.SourceKind, id string) (*domain.SourceDocument, error) {
	args := m.Called(ctx, sess, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceDocument), args.Error(1)
}

func (m *MockDocumentBackend) ListConsumptions(ctx context.Context, sess *domain.Session, kind domain.SourceKind, sourceID string) ([]domain.ConsumptionRecord, error) {
	args := m.Called(ctx, sess, kind, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConsumptionRecord), args.Error(1)
}

func (m *MockDocumentBackend) SubmitConsumption(ctx context.Context, sess *domain.Session, sub *domain.ConsumptionSubmission) (*domain.ConsumptionRecord, error) {
	args := m.Called(ctx, sess, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConsumptionRecord), args.Error(1)
}

func (m *MockDocumentBackend) GetSalesInvoice(ctx context.Context, sess *domain.Session, id string) (*domain.SalesInvoice, error) {
	args := m.Called(ctx, sess, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesInvoice), args.Error(1)
}

func (m *MockDocumentBackend) ListSalesInvoices(ctx context.Context, sess *domain.Session) ([]domain.SalesInvoice, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesInvoice), args.Error(1)
}
