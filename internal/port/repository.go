package port

import (
	"context"

	"tradedesk/internal/domain"
)

// EInvoiceExportRepository records e-invoice files written to object storage.
type EInvoiceExportRepository interface {
	Create(ctx context.Context, export *domain.EInvoiceExport) error
	ListByInvoice(ctx context.Context, invoiceID string) ([]domain.EInvoiceExport, error)
}

// SubmissionAuditRepository keeps the outcome of every consumption submission.
type SubmissionAuditRepository interface {
	Create(ctx context.Context, audit *domain.SubmissionAudit) error
	ListBySource(ctx context.Context, kind domain.SourceKind, sourceID string, offset, limit int) ([]domain.SubmissionAudit, int, error)
}
