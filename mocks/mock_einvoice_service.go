package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tradedesk/internal/domain"
	"tradedesk/internal/einvoice"
	"tradedesk/internal/service"
)

// MockEInvoiceService is a mock implementation of service.EInvoiceService.
type MockEInvoiceService struct {
	mock.Mock
}

func (m *MockEInvoiceService) Project(ctx context.Context, sess *domain.Session, invoiceID string) ([]einvoice.Document, error) {
	args := m.Called(ctx, sess, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]einvoice.Document), args.Error(1)
}

func (m *MockEInvoiceService) Export(ctx context.Context, sess *domain.Session, invoiceID string) (*service.EInvoiceExportOutput, error) {
	args := m.Called(ctx, sess, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EInvoiceExportOutput), args.Error(1)
}

func (m *MockEInvoiceService) ListExports(ctx context.Context, sess *domain.Session, invoiceID string) ([]domain.EInvoiceExport, error) {
	args := m.Called(ctx, sess, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EInvoiceExport), args.Error(1)
}
