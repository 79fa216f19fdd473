package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is a single item row on any financial document.
type LineItem struct {
	ItemID      string          `json:"item_id"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description,omitempty"`
	HSNCode     string          `json:"hsn_code,omitempty" validate:"omitempty,hsn"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"gt=0"`
	Unit        string          `json:"unit,omitempty"`
}

// Amount returns quantity * unit price without rounding.
func (li LineItem) Amount() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// ChargeParameters are the document-level charges applied on top of the line items.
type ChargeParameters struct {
	DiscountPercent decimal.Decimal `json:"discount_percent" validate:"gte=0,lte=100"`
	TaxSlabPercent  decimal.Decimal `json:"tax_slab_percent" validate:"taxslab"`
	TCSPercent      decimal.Decimal `json:"tcs_percent" validate:"gte=0,lte=100"`
}

// DocumentTotals is derived from line items and charges. Never edited by hand.
type DocumentTotals struct {
	Subtotal             decimal.Decimal `json:"subtotal"`
	DiscountAmount       decimal.Decimal `json:"discount_amount"`
	DiscountedSubtotal   decimal.Decimal `json:"discounted_subtotal"`
	CGST                 decimal.Decimal `json:"cgst"`
	SGST                 decimal.Decimal `json:"sgst"`
	IGST                 decimal.Decimal `json:"igst"`
	TotalBeforeSurcharge decimal.Decimal `json:"total_before_surcharge"`
	TCS                  decimal.Decimal `json:"tcs"`
	Total                decimal.Decimal `json:"total"`
	IsIntraState         bool            `json:"is_intra_state"`
	TaxSlab              decimal.Decimal `json:"tax_slab"`
}

// SourceDocument is a document whose quantities are drawn down by consumption records:
// a work order (drawn by sales invoices) or a defective-find record (drawn by restores).
type SourceDocument struct {
	ID         string     `json:"id"`
	Kind       SourceKind `json:"kind"`
	Number     string     `json:"number"`
	Date       string     `json:"date"`
	PartyName  string     `json:"party_name,omitempty"`
	PartyGSTIN string     `json:"party_gstin,omitempty"`
	Items      []LineItem `json:"items"`
}

// ConsumptionRecord debits quantities from the SourceDocument it references.
type ConsumptionRecord struct {
	ID       string          `json:"id"`
	Kind     ConsumptionKind `json:"kind"`
	SourceID string          `json:"source_id"`
	Number   string          `json:"number"`
	Date     string          `json:"date"`
	Items    []LineItem      `json:"items"`
}

// Party is a buyer or seller on an invoice.
type Party struct {
	Name      string `json:"name" validate:"required"`
	GSTIN     string `json:"gstin" validate:"omitempty,gstin"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2,omitempty"`
	Location  string `json:"location"`
	Pincode   string `json:"pincode" validate:"omitempty,numeric,len=6"`
	StateCode string `json:"state_code,omitempty" validate:"omitempty,statecode"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Transport holds e-way-bill transport details for a sales invoice.
type Transport struct {
	TransporterID   string `json:"transporter_id,omitempty"`
	TransporterName string `json:"transporter_name,omitempty"`
	DistanceKM      int    `json:"distance_km"`
	DocNumber       string `json:"doc_number,omitempty"`
	DocDate         string `json:"doc_date,omitempty"`
	VehicleNumber   string `json:"vehicle_number,omitempty"`
	Mode            string `json:"mode,omitempty"`
}

// SalesInvoice is a finalized invoice as stored by the backend.
// Totals is whatever the backend cached and is never trusted for exports.
type SalesInvoice struct {
	ID          string           `json:"id"`
	Number      string           `json:"number"`
	Date        string           `json:"date"`
	WorkOrderID string           `json:"work_order_id,omitempty"`
	Buyer       Party            `json:"buyer"`
	Items       []LineItem       `json:"items"`
	Charges     ChargeParameters `json:"charges"`
	Totals      *DocumentTotals  `json:"totals,omitempty"`
	Transport   *Transport       `json:"transport,omitempty"`
}

// ConsumptionSubmission is the payload sent to the backend when creating a consumption record.
type ConsumptionSubmission struct {
	Kind      ConsumptionKind  `json:"kind"`
	SourceID  string           `json:"source_id"`
	Date      string           `json:"date"`
	Party     *Party           `json:"party,omitempty"`
	Items     []LineItem       `json:"items"`
	Charges   ChargeParameters `json:"charges"`
	Totals    *DocumentTotals  `json:"totals,omitempty"`
	Remarks   string           `json:"remarks,omitempty"`
	Transport *Transport       `json:"transport,omitempty"`
}

// EInvoiceExport records one e-invoice JSON file written to object storage.
type EInvoiceExport struct {
	ID            uuid.UUID `db:"id" json:"id"`
	InvoiceID     string    `db:"invoice_id" json:"invoice_id"`
	InvoiceNumber string    `db:"invoice_number" json:"invoice_number"`
	S3Bucket      string    `db:"s3_bucket" json:"s3_bucket"`
	S3Key         string    `db:"s3_key" json:"s3_key"`
	ExportedBy    string    `db:"exported_by" json:"exported_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// SubmissionAudit records the outcome of one consumption submission attempt.
type SubmissionAudit struct {
	ID              uuid.UUID         `db:"id" json:"id"`
	SourceKind      SourceKind        `db:"source_kind" json:"source_kind"`
	SourceID        string            `db:"source_id" json:"source_id"`
	ConsumptionKind ConsumptionKind   `db:"consumption_kind" json:"consumption_kind"`
	RecordID        string            `db:"record_id" json:"record_id"`
	Outcome         SubmissionOutcome `db:"outcome" json:"outcome"`
	Violations      json.RawMessage   `db:"violations" json:"violations"`
	Totals          json.RawMessage   `db:"totals" json:"totals"`
	SubmittedBy     string            `db:"submitted_by" json:"submitted_by"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
}
