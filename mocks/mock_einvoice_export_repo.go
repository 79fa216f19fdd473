package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tradedesk/internal/domain"
)

// MockEInvoiceExportRepo is a mock implementation of port.EInvoiceExportRepository.
type MockEInvoiceExportRepo struct {
	mock.Mock
}

func (m *MockEInvoiceExportRepo) Create(ctx context.Context, e *domain.EInvoiceExport) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEInvoiceExportRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]domain.EInvoiceExport, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EInvoiceExport), args.Error(1)
}
