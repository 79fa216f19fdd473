package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tradedesk/internal/domain"
	"tradedesk/internal/einvoice"
	"tradedesk/internal/export"
	"tradedesk/internal/port"
)

// EInvoiceExportOutput is a stored e-invoice file and a time-limited link to it.
type EInvoiceExportOutput struct {
	Export      *domain.EInvoiceExport `json:"export"`
	DownloadURL string                 `json:"download_url"`
	Filename    string                 `json:"filename"`
}

// EInvoiceService projects sales invoices into the government e-invoice schema.
type EInvoiceService interface {
	Project(ctx context.Context, sess *domain.Session, invoiceID string) ([]einvoice.Document, error)
	Export(ctx context.Context, sess *domain.Session, invoiceID string) (*EInvoiceExportOutput, error)
	ListExports(ctx context.Context, sess *domain.Session, invoiceID string) ([]domain.EInvoiceExport, error)
}

// EInvoiceServiceConfig holds the storage settings for exported files.
type EInvoiceServiceConfig struct {
	Bucket        string
	KeyPrefix     string
	PresignExpiry int64
}

type einvoiceService struct {
	backend   port.DocumentBackend
	exports   port.EInvoiceExportRepository
	storage   port.ObjectStorage
	projector *einvoice.Projector
	cfg       EInvoiceServiceConfig
}

// NewEInvoiceService creates a new EInvoiceService implementation.
func NewEInvoiceService(
	backend port.DocumentBackend,
	exports port.EInvoiceExportRepository,
	storage port.ObjectStorage,
	projector *einvoice.Projector,
	cfg EInvoiceServiceConfig,
) EInvoiceService {
	return &einvoiceService{
		backend:   backend,
		exports:   exports,
		storage:   storage,
		projector: projector,
		cfg:       cfg,
	}
}

func (s *einvoiceService) Project(ctx context.Context, sess *domain.Session, invoiceID string) ([]einvoice.Document, error) {
	if err := sess.Require(domain.PermSalesInvoiceRead); err != nil {
		return nil, err
	}
	_, docs, err := s.project(ctx, sess, invoiceID)
	return docs, err
}

func (s *einvoiceService) project(ctx context.Context, sess *domain.Session, invoiceID string) (*domain.SalesInvoice, []einvoice.Document, error) {
	inv, err := s.backend.GetSalesInvoice(ctx, sess, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	docs, err := s.projector.Project(inv)
	if err != nil {
		return nil, nil, err
	}
	return inv, docs, nil
}

func (s *einvoiceService) Export(ctx context.Context, sess *domain.Session, invoiceID string) (*EInvoiceExportOutput, error) {
	if err := sess.Require(domain.PermEInvoiceExport); err != nil {
		return nil, err
	}
	inv, docs, err := s.project(ctx, sess, invoiceID)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling e-invoice: %w", err)
	}

	id := uuid.New()
	key := fmt.Sprintf("%s/%s/%s.json", s.cfg.KeyPrefix, invoiceID, id.String())
	filename := export.BuildFilename("einvoice_"+inv.Number, "json", timeNow())

	log.Info().
		Str("invoice_id", invoiceID).
		Str("s3_key", key).
		Int("size", len(body)).
		Msg("uploading e-invoice export")

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:             s.cfg.Bucket,
		Key:                key,
		Body:               bytes.NewReader(body),
		ContentType:        "application/json",
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", filename),
		Size:               int64(len(body)),
	}); err != nil {
		log.Error().Err(err).Str("s3_key", key).Msg("e-invoice upload failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	rec := &domain.EInvoiceExport{
		ID:            id,
		InvoiceID:     invoiceID,
		InvoiceNumber: inv.Number,
		S3Bucket:      s.cfg.Bucket,
		S3Key:         key,
		ExportedBy:    sess.UserID,
	}
	if err := s.exports.Create(ctx, rec); err != nil {
		// Don't leave an orphaned object behind.
		if delErr := s.storage.Delete(ctx, s.cfg.Bucket, key); delErr != nil {
			log.Error().Err(delErr).Str("s3_key", key).Msg("failed to clean up e-invoice object")
		}
		return nil, fmt.Errorf("recording e-invoice export: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presigning e-invoice download: %w", err)
	}

	return &EInvoiceExportOutput{Export: rec, DownloadURL: url, Filename: filename}, nil
}

func (s *einvoiceService) ListExports(ctx context.Context, sess *domain.Session, invoiceID string) ([]domain.EInvoiceExport, error) {
	if err := sess.Require(domain.PermSalesInvoiceRead); err != nil {
		return nil, err
	}
	return s.exports.ListByInvoice(ctx, invoiceID)
}
