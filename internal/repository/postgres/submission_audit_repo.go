package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"tradedesk/internal/domain"
	"tradedesk/internal/port"
)

type submissionAuditRepo struct {
	db *sqlx.DB
}

// NewSubmissionAuditRepo creates a new PostgreSQL-backed SubmissionAuditRepository.
func NewSubmissionAuditRepo(db *sqlx.DB) port.SubmissionAuditRepository {
	return &submissionAuditRepo{db: db}
}

func (r *submissionAuditRepo) Create(ctx context.Context, a *domain.SubmissionAudit) error {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO submission_audits
		   (id, source_kind, source_id, consumption_kind, record_id, outcome, violations, totals, submitted_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`,
		a.ID, a.SourceKind, a.SourceID, a.ConsumptionKind, a.RecordID, a.Outcome,
		nullJSON(a.Violations), nullJSON(a.Totals), a.SubmittedBy).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("submissionAuditRepo.Create: %w", err)
	}
	return nil
}

func (r *submissionAuditRepo) ListBySource(ctx context.Context, kind domain.SourceKind, sourceID string, offset, limit int) ([]domain.SubmissionAudit, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM submission_audits WHERE source_kind = $1 AND source_id = $2`,
		kind, sourceID)
	if err != nil {
		return nil, 0, fmt.Errorf("submissionAuditRepo.ListBySource count: %w", err)
	}

	var audits []domain.SubmissionAudit
	err = r.db.SelectContext(ctx, &audits,
		`SELECT * FROM submission_audits
		 WHERE source_kind = $1 AND source_id = $2
		 ORDER BY created_at DESC
		 LIMIT $3 OFFSET $4`,
		kind, sourceID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("submissionAuditRepo.ListBySource: %w", err)
	}
	return audits, total, nil
}

// nullJSON stores empty payloads as SQL NULL rather than invalid JSONB.
func nullJSON(b json.RawMessage) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
