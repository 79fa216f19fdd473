package domain

// SourceKind identifies the type of a SourceDocument.
type SourceKind string

const (
	SourceWorkOrder     SourceKind = "work_order"
	SourceDefectiveFind SourceKind = "defective_find"
)

// ConsumptionKind identifies the type of a ConsumptionRecord.
type ConsumptionKind string

const (
	ConsumptionSalesInvoice ConsumptionKind = "sales_invoice"
	ConsumptionRestore      ConsumptionKind = "restore"
)

// ConsumedBy maps each source kind to the record kind that draws it down.
var ConsumedBy = map[SourceKind]ConsumptionKind{
	SourceWorkOrder:     ConsumptionSalesInvoice,
	SourceDefectiveFind: ConsumptionRestore,
}

// ParseSourceKind validates a source kind from a URL segment.
// Accepts both "work_order" and "work-orders" style values.
func ParseSourceKind(s string) (SourceKind, error) {
	switch s {
	case "work_order", "work-order", "work-orders":
		return SourceWorkOrder, nil
	case "defective_find", "defective-find", "defective-finds":
		return SourceDefectiveFind, nil
	default:
		return "", ErrUnknownSourceKind
	}
}

// SubmissionOutcome is the result of a consumption submission attempt.
type SubmissionOutcome string

const (
	OutcomeAccepted        SubmissionOutcome = "accepted"
	OutcomeRejectedClient  SubmissionOutcome = "rejected_client"
	OutcomeRejectedBackend SubmissionOutcome = "rejected_backend"
)

// Permission names embedded in backend-issued session tokens.
const (
	PermWorkOrderRead      = "work_order:read"
	PermDefectiveFindRead  = "defective_find:read"
	PermSalesInvoiceRead   = "sales_invoice:read"
	PermSalesInvoiceCreate = "sales_invoice:create"
	PermRestoreCreate      = "restore:create"
	PermEInvoiceExport     = "einvoice:export"
)

// ReadPermission returns the permission needed to read a source of the given kind.
func ReadPermission(kind SourceKind) string {
	if kind == SourceDefectiveFind {
		return PermDefectiveFindRead
	}
	return PermWorkOrderRead
}

// CreatePermission returns the permission needed to create a record of the given kind.
func CreatePermission(kind ConsumptionKind) string {
	if kind == ConsumptionRestore {
		return PermRestoreCreate
	}
	return PermSalesInvoiceCreate
}
