package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tradedesk/internal/domain"
	"tradedesk/internal/gst"
	"tradedesk/internal/listing"
	"tradedesk/internal/port"
	"tradedesk/internal/reconcile"
	"tradedesk/internal/validator"
)

// TotalsRequest is the input to the totals calculator, shared by purchase
// order, sales invoice and work order forms.
type TotalsRequest struct {
	Items             []domain.LineItem       `json:"items" validate:"dive"`
	Charges           domain.ChargeParameters `json:"charges"`
	CounterpartyGSTIN string                  `json:"counterparty_gstin" validate:"omitempty,gstin"`
}

// RemainingView is everything a form needs to cap a new consumption record.
type RemainingView struct {
	Source       *domain.SourceDocument     `json:"source"`
	Remaining    reconcile.Remaining        `json:"remaining"`
	Available    []reconcile.AvailableItem  `json:"available_items"`
	Negative     []string                   `json:"negative_keys"`
	LegacyLines  []reconcile.LegacyLine     `json:"legacy_lines"`
	Consumptions []domain.ConsumptionRecord `json:"consumptions"`
}

// ListConsumptionsInput filters and pages a source's consumption records.
type ListConsumptionsInput struct {
	Query    string
	Page     int
	PageSize int
}

// SubmitRequest is a new consumption record drawn from a source document.
type SubmitRequest struct {
	Date      string                   `json:"date" validate:"required"`
	Party     *domain.Party            `json:"party"`
	Items     []domain.LineItem        `json:"items" validate:"required,min=1,dive"`
	Charges   *domain.ChargeParameters `json:"charges"`
	Remarks   string                   `json:"remarks"`
	Transport *domain.Transport        `json:"transport"`
}

// SubmitResult is an accepted consumption record and the totals sent with it.
type SubmitResult struct {
	Record *domain.ConsumptionRecord `json:"record"`
	Totals *domain.DocumentTotals    `json:"totals,omitempty"`
}

// DocumentService computes totals and reconciles source documents against
// their consumption records.
type DocumentService interface {
	ComputeTotals(ctx context.Context, req *TotalsRequest) (*domain.DocumentTotals, error)
	Remaining(ctx context.Context, sess *domain.Session, kind domain.SourceKind, sourceID string) (*RemainingView, error)
	ListConsumptions(ctx context.Context, sess *domain.Session, kind domain.SourceKind, sourceID string, in ListConsumptionsInput) ([]domain.ConsumptionRecord, listing.Window, error)
	Submit(ctx context.Context, sess *domain.Session, kind domain.SourceKind, sourceID string, req *SubmitRequest) (*SubmitResult, error)
	ListAudits(ctx context.Context, sess *domain.Session, kind domain.SourceKind, sourceID string, offset, limit int) ([]domain.SubmissionAudit, int, error)
}

type documentService struct {
	backend    port.DocumentBackend
	audits     port.SubmissionAuditRepository
	validate   *validator.Validator
	classifier gst.Classifier
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	backend port.DocumentBackend,
	audits port.SubmissionAuditRepository,
	validate *validator.Validator,
	classifier gst.Classifier,
) DocumentService {
	return &documentService{
		backend:    backend,
		audits:     audits,
		validate:   validate,
		classifier: classifier,
	}
}

func (s *documentService) ComputeTotals(_ context.Context, req *TotalsRequest) (*domain.DocumentTotals, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	totals := s.classifier.ComputeTotals(req.Items, req.Charges, req.CounterpartyGSTIN)
	return &totals, nil
}

func (s *documentService) Remaining(ctx context.Context, sess *domain.Session, kind domain.SourceKind, sourceID string) (*RemainingView, error) {
	if err := sess.Require(domain.ReadPermission(kind)); err != nil {
		return nil, err
	}
	source, consumptions, err := s.fetch(ctx, sess, kind, sourceID)
	if err != nil {
		return nil, err
	}

	remaining := reconcile.RemainingQuantities(*source, consumptions)
	view := &RemainingView{
		Source:       source,
		Remaining:    remaining,
		Available:    reconcile.AvailableLineItems(*source, consumptions),
		Negative:     reconcile.Negative(remaining),
		LegacyLines:  reconcile.LegacyLines(*source, consumptions),
		Consumptions: consumptions,
	}
	if len(view.Negative) > 0 {
		log.Warn().
			Str("source_kind", string(kind)).
			Str("source_id", sourceID).
			Strs("keys", view.Negative).
			Msg("source is over-consumed")
	}
	return view, nil
}

func (s *documentService) ListConsumptions(ctx context.Context, sess *domain.Session, kind domain.SourceKind, sourceID string, in ListConsumptionsInput) ([]domain.ConsumptionRecord, listing.Window, error) {
	if err := sess.Require(domain.ReadPermission(kind)); err != nil {
		return nil, listing.Window{}, err
	}
	recs, err := s.backend.ListConsumptions(ctx, sess, kind, sourceID)
	if err != nil {
		return nil, listing.Window{}, err
	}
	recs = reconcile.Matching(domain.SourceDocument{ID: sourceID}, recs)
	recs = listing.Filter(recs, in.Query, consumptionFields, listing.Options{})

	w := listing.Paginate(len(recs), in.Page, in.PageSize)
	return listing.Slice(recs, w), w, nil
}

func consumptionFields(r domain.ConsumptionRecord) []string {
	fields := []string{r.ID, r.Number, r.Date}
	for _, li := range r.Items {
		fields = append(fields, li.Name, li.ItemID)
	}
	return fields
}

func (s *documentService) Submit(ctx context.Context, sess *domain.Session, kind domain.SourceKind, sourceID string, req *SubmitRequest) (*SubmitResult, error) {
	consumedBy, ok := domain.ConsumedBy[kind]
	if !ok {
		return nil, domain.ErrUnknownSourceKind
	}
	if err := sess.Require(domain.CreatePermission(consumedBy)); err != nil {
		return nil, err
	}
	if err := sess.Require(domain.ReadPermission(kind)); err != nil {
		return nil, err
	}
	if err := s.validateSubmit(consumedBy, req); err != nil {
		return nil, err
	}

	// Always reconcile against freshly fetched data; the backend re-checks on write.
	source, consumptions, err := s.fetch(ctx, sess, kind, sourceID)
	if err != nil {
		return nil, err
	}
	remaining := reconcile.RemainingQuantities(*source, consumptions)

	audit := &domain.SubmissionAudit{
		ID:              uuid.New(),
		SourceKind:      kind,
		SourceID:        sourceID,
		ConsumptionKind: consumedBy,
		SubmittedBy:     sess.UserID,
	}

	if res := reconcile.ValidateConsumption(req.Items, remaining); !res.OK() {
		audit.Outcome = domain.OutcomeRejectedClient
		audit.Violations = mustJSON(res.Violations)
		s.recordAudit(ctx, audit)
		return nil, res.Err()
	}

	var totals *domain.DocumentTotals
	if req.Charges != nil {
		t := s.classifier.ComputeTotals(req.Items, *req.Charges, counterpartyGSTIN(req, source))
		totals = &t
		audit.Totals = mustJSON(totals)
	}

	sub := &domain.ConsumptionSubmission{
		Kind:      consumedBy,
		SourceID:  sourceID,
		Date:      req.Date,
		Party:     req.Party,
		Items:     req.Items,
		Totals:    totals,
		Remarks:   req.Remarks,
		Transport: req.Transport,
	}
	if req.Charges != nil {
		sub.Charges = *req.Charges
	}

	rec, err := s.backend.SubmitConsumption(ctx, sess, sub)
	if err != nil {
		// A conflict means another user drew the balance down first. It is
		// terminal for this attempt; the caller must re-fetch before resubmitting.
		if errors.Is(err, domain.ErrAllocationConflict) {
			audit.Outcome = domain.OutcomeRejectedBackend
			audit.Violations = mustJSON([]domain.Violation{{Error: err.Error()}})
			s.recordAudit(ctx, audit)
		}
		return nil, err
	}

	audit.Outcome = domain.OutcomeAccepted
	audit.RecordID = rec.ID
	s.recordAudit(ctx, audit)

	return &SubmitResult{Record: rec, Totals: totals}, nil
}

func (s *documentService) ListAudits(ctx context.Context, sess *domain.Session, kind domain.SourceKind, sourceID string, offset, limit int) ([]domain.SubmissionAudit, int, error) {
	if err := sess.Require(domain.ReadPermission(kind)); err != nil {
		return nil, 0, err
	}
	return s.audits.ListBySource(ctx, kind, sourceID, offset, limit)
}

func (s *documentService) validateSubmit(kind domain.ConsumptionKind, req *SubmitRequest) error {
	errs := s.validate.Errors(req)
	errs = append(errs, validator.ItemIDs("items", req.Items)...)
	if kind == domain.ConsumptionSalesInvoice && req.Charges == nil {
		errs = append(errs, domain.FieldError{Field: "charges", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (s *documentService) fetch(ctx context.Context, sess *domain.Session, kind domain.SourceKind, sourceID string) (*domain.SourceDocument, []domain.ConsumptionRecord, error) {
	source, err := s.backend.GetSource(ctx, sess, kind, sourceID)
	if err != nil {
		return nil, nil, err
	}
	consumptions, err := s.backend.ListConsumptions(ctx, sess, kind, sourceID)
	if err != nil {
		return nil, nil, err
	}
	return source, consumptions, nil
}

func (s *documentService) recordAudit(ctx context.Context, audit *domain.SubmissionAudit) {
	if err := s.audits.Create(ctx, audit); err != nil {
		log.Error().Err(err).
			Str("source_id", audit.SourceID).
			Str("outcome", string(audit.Outcome)).
			Msg("failed to record submission audit")
	}
}

func counterpartyGSTIN(req *SubmitRequest, source *domain.SourceDocument) string {
	if req.Party != nil && strings.TrimSpace(req.Party.GSTIN) != "" {
		return req.Party.GSTIN
	}
	return source.PartyGSTIN
}

func mustJSON(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(fmt.Sprintf(`{"error":%q}`, err.Error()))
	}
	return b
}
