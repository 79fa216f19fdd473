package port

import (
	"context"

	"tradedesk/internal/domain"
)

// DocumentBackend is the external system of record for documents. Every call
// is made on behalf of sess and forwards its bearer token.
type DocumentBackend interface {
	GetSource(ctx context.Context, sess *domain.Session, kind domain.SourceKind, id string) (*domain.SourceDocument, error)
	ListConsumptions(ctx context.Context, sess *domain.Session, kind domain.SourceKind, sourceID string) ([]domain.ConsumptionRecord, error)
	// SubmitConsumption creates a consumption record. The backend re-checks the
	// allocation and a rejection is returned as domain.ErrAllocationConflict.
	SubmitConsumption(ctx context.Context, sess *domain.Session, sub *domain.ConsumptionSubmission) (*domain.ConsumptionRecord, error)
	GetSalesInvoice(ctx context.Context, sess *domain.Session, id string) (*domain.SalesInvoice, error)
	ListSalesInvoices(ctx context.Context, sess *domain.Session) ([]domain.SalesInvoice, error)
}
