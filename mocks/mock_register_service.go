package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tradedesk/internal/domain"
	"tradedesk/internal/service"
)

// MockRegisterService is a mock implementation of service.RegisterService.
type MockRegisterService struct {
	mock.Mock
}

func (m *MockRegisterService) Export(ctx context.Context, sess *domain.Session, format, query string) (*service.RegisterFile, error) {
	args := m.Called(ctx, sess, format, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RegisterFile), args.Error(1)
}
