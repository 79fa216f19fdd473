package postgres_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradedesk/internal/domain"
	"tradedesk/internal/repository/postgres"
)

// openTestDB migrates and connects to TRADEDESK_TEST_DATABASE_URL, skipping when unset.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("TRADEDESK_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TRADEDESK_TEST_DATABASE_URL not set")
	}

	m, err := migrate.New("file://../../../db/migrations", dsn)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		require.NoError(t, err)
	}
	_, _ = m.Close()

	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestEInvoiceExportRepo_CreateAndList(t *testing.T) {
	db := openTestDB(t)
	repo := postgres.NewEInvoiceExportRepo(db)
	ctx := context.Background()
	invoiceID := "SI-" + uuid.NewString()

	first := &domain.EInvoiceExport{ID: uuid.New(), InvoiceID: invoiceID, InvoiceNumber: "SI/001", S3Bucket: "b", S3Key: "k1", ExportedBy: "u1"}
	second := &domain.EInvoiceExport{ID: uuid.New(), InvoiceID: invoiceID, InvoiceNumber: "SI/001", S3Bucket: "b", S3Key: "k2", ExportedBy: "u1"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.False(t, first.CreatedAt.IsZero())

	got, err := repo.ListByInvoice(ctx, invoiceID)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestSubmissionAuditRepo_CreateAndList(t *testing.T) {
	db := openTestDB(t)
	repo := postgres.NewSubmissionAuditRepo(db)
	ctx := context.Background()
	sourceID := "WO-" + uuid.NewString()

	violations, _ := json.Marshal([]domain.Violation{{ItemName: "Bolt", Error: "quantity 40 exceeds remaining 30"}})
	rejected := &domain.SubmissionAudit{
		ID: uuid.New(), SourceKind: domain.SourceWorkOrder, SourceID: sourceID,
		ConsumptionKind: domain.ConsumptionSalesInvoice, Outcome: domain.OutcomeRejectedClient,
		Violations: violations, SubmittedBy: "u1",
	}
	accepted := &domain.SubmissionAudit{
		ID: uuid.New(), SourceKind: domain.SourceWorkOrder, SourceID: sourceID,
		ConsumptionKind: domain.ConsumptionSalesInvoice, RecordID: "SI-1", Outcome: domain.OutcomeAccepted,
		SubmittedBy: "u1",
	}
	require.NoError(t, repo.Create(ctx, rejected))
	require.NoError(t, repo.Create(ctx, accepted))

	got, total, err := repo.ListBySource(ctx, domain.SourceWorkOrder, sourceID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, got, 2)
	for _, a := range got {
		if a.Outcome == domain.OutcomeRejectedClient {
			assert.JSONEq(t, string(violations), string(a.Violations))
		}
	}

	page, total, err := repo.ListBySource(ctx, domain.SourceWorkOrder, sourceID, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, page, 1)
}
