package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tradedesk/internal/domain"
)

// MockSessionManager is a mock implementation of session.Manager.
type MockSessionManager struct {
	mock.Mock
}

func (m *MockSessionManager) Load(ctx context.Context, bearer string) (*domain.Session, error) {
	args := m.Called(ctx, bearer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionManager) Clear(ctx context.Context, sess *domain.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}
