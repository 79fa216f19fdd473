package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tradedesk/internal/domain"
	"tradedesk/internal/listing"
	"tradedesk/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) ComputeTotals(ctx context.Context, req *service.TotalsRequest) (*domain.DocumentTotals, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentTotals), args.Error(1)
}

func (m *MockDocumentService) Remaining(ctx context.Context, sess *domain.Session, kind domain.SourceKind, sourceID string) (*service.RemainingView, error) {
	args := m.Called(ctx, sess, kind, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RemainingView), args.Error(1)
}

func (m *MockDocumentService) ListConsumptions(ctx context.Context, sess *domain.Session, kind domain.SourceKind, sourceID string, in service.ListConsumptionsInput) ([]domain.ConsumptionRecord, listing.Window, error) {
	args := m.Called(ctx, sess, kind, sourceID, in)
	if args.Get(0) == nil {
		return nil, args.Get(1).(listing.Window), args.Error(2)
	}
	return args.Get(0).([]domain.ConsumptionRecord), args.Get(1).(listing.Window), args.Error(2)
}

func (m *MockDocumentService) Submit(ctx context.Context, sess *domain.Session, kind domain.SourceKind, sourceID string, req *service.SubmitRequest) (*service.SubmitResult, error) {
	args := m.Called(ctx, sess, kind, sourceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmitResult), args.Error(1)
}

func (m *MockDocumentService) ListAudits(ctx context.Context, sess *domain.Session, kind domain.SourceKind, sourceID string, offset, limit int) ([]domain.SubmissionAudit, int, error) {
	args := m.Called(ctx, sess, kind, sourceID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.SubmissionAudit), args.Int(1), args.Error(2)
}
