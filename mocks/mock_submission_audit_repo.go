package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tradedesk/internal/domain"
)

// MockSubmissionAuditRepo is a mock implementation of port.SubmissionAuditRepository.
type MockSubmissionAuditRepo struct {
	mock.Mock
}

func (m *MockSubmissionAuditRepo) Create(ctx context.Context, a *domain.SubmissionAudit) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockSubmissionAuditRepo) ListBySource(ctx context.Context, kind domain.SourceKind, sourceID string, offset, limit int) ([]domain.SubmissionAudit, int, error) {
	args := m.Called(ctx, kind, sourceID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.SubmissionAudit), args.Int(1), args.Error(2)
}
