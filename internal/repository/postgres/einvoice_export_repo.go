package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"tradedesk/internal/domain"
	"tradedesk/internal/port"
)

type einvoiceExportRepo struct {
	db *sqlx.DB
}

// NewEInvoiceExportRepo creates a new PostgreSQL-backed EInvoiceExportRepository.
func NewEInvoiceExportRepo(db *sqlx.DB) port.EInvoiceExportRepository {
	return &einvoiceExportRepo{db: db}
}

func (r *einvoiceExportRepo) Create(ctx context.Context, e *domain.EInvoiceExport) error {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO einvoice_exports (id, invoice_id, invoice_number, s3_bucket, s3_key, exported_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		e.ID, e.InvoiceID, e.InvoiceNumber, e.S3Bucket, e.S3Key, e.ExportedBy).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("einvoiceExportRepo.Create: %w", err)
	}
	return nil
}

func (r *einvoiceExportRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]domain.EInvoiceExport, error) {
	var exports []domain.EInvoiceExport
	err := r.db.SelectContext(ctx, &exports,
		`SELECT * FROM einvoice_exports WHERE invoice_id = $1 ORDER BY created_at DESC`,
		invoiceID)
	if err != nil {
		return nil, fmt.Errorf("einvoiceExportRepo.ListByInvoice: %w", err)
	}
	return exports, nil
}
