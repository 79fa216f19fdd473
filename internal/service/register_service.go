package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tradedesk/internal/domain"
	"tradedesk/internal/export"
	"tradedesk/internal/gst"
	"tradedesk/internal/listing"
	"tradedesk/internal/port"
)

// timeNow stamps export filenames.
var timeNow = time.Now

// Register file formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// RegisterFile is a rendered sales register ready to be downloaded.
type RegisterFile struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

// RegisterService exports the sales register.
type RegisterService interface {
	Export(ctx context.Context, sess *domain.Session, format, query string) (*RegisterFile, error)
}

type registerService struct {
	backend    port.DocumentBackend
	classifier gst.Classifier
}

// NewRegisterService creates a new RegisterService implementation.
func NewRegisterService(backend port.DocumentBackend, classifier gst.Classifier) RegisterService {
	return &registerService{backend: backend, classifier: classifier}
}

func (s *registerService) Export(ctx context.Context, sess *domain.Session, format, query string) (*RegisterFile, error) {
	if err := sess.Require(domain.PermSalesInvoiceRead); err != nil {
		return nil, err
	}
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatXLSX {
		return nil, domain.FieldErrors{{Field: "format", Message: "must be one of csv, xlsx"}}
	}

	invoices, err := s.backend.ListSalesInvoices(ctx, sess)
	if err != nil {
		return nil, err
	}
	invoices = listing.Filter(invoices, query, invoiceFields, listing.Options{})
	rows := export.BuildRows(invoices, s.classifier)

	var buf bytes.Buffer
	file := &RegisterFile{
		Filename: export.BuildFilename("sales_register", format, timeNow()),
		Rows:     len(rows),
	}
	switch format {
	case FormatXLSX:
		file.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = export.WriteXLSX(&buf, rows)
	default:
		file.ContentType = "text/csv; charset=utf-8"
		err = export.WriteCSV(&buf, rows)
	}
	if err != nil {
		return nil, fmt.Errorf("rendering sales register: %w", err)
	}
	file.Body = buf.Bytes()

	log.Info().
		Str("user_id", sess.UserID).
		Str("format", format).
		Int("rows", file.Rows).
		Msg("sales register exported")
	return file, nil
}

func invoiceFields(inv domain.SalesInvoice) []string {
	return []string{inv.Number, inv.Date, inv.Buyer.Name, inv.Buyer.GSTIN, inv.WorkOrderID}
}
