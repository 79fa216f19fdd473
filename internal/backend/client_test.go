package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradedesk/internal/backend"
	"tradedesk/internal/config"
	"tradedesk/internal/domain"
)

var sess = &domain.Session{UserID: "u1", Token: "tok-123"}

func newClient(t *testing.T, h http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return backend.NewClient(&config.BackendConfig{BaseURL: srv.URL})
}

func TestClient_GetSourceForwardsToken(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/work-orders/WO-1", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"data":{"id":"WO-1","number":"WO/001","items":[{"item_id":"X","name":"Bolt","quantity":"50","unit_price":"2"}]}}`)
	})

	doc, err := c.GetSource(context.Background(), sess, domain.SourceWorkOrder, "WO-1")

	require.NoError(t, err)
	assert.Equal(t, domain.SourceWorkOrder, doc.Kind)
	require.Len(t, doc.Items, 1)
	assert.True(t, decimal.NewFromInt(50).Equal(doc.Items[0].Quantity))
}

func TestClient_ListConsumptionsMapsReferences(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/restores", r.URL.Path)
		assert.Equal(t, "DF-9", r.URL.Query().Get("defective_find_id"))
		_, _ = io.WriteString(w, `[{"id":"R-1","defective_find_id":"DF-9","items":[{"item_id":"X","name":"Bolt","quantity":3,"unit_price":1}]},
			{"id":"R-2","source_id":"DF-9","items":[]}]`)
	})

	recs, err := c.ListConsumptions(context.Background(), sess, domain.SourceDefectiveFind, "DF-9")

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "DF-9", recs[0].SourceID)
	assert.Equal(t, domain.ConsumptionRestore, recs[0].Kind)
	assert.True(t, decimal.NewFromInt(3).Equal(recs[0].Items[0].Quantity))
	assert.Equal(t, "DF-9", recs[1].SourceID)
}

func TestClient_SubmitConsumption(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sales-invoices", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "WO-1", body["work_order_id"])
		assert.Equal(t, "WO-1", body["source_id"])
		assert.NotContains(t, body, "defective_find_id")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"SI-7","number":"SI/007"}`)
	})

	rec, err := c.SubmitConsumption(context.Background(), sess, &domain.ConsumptionSubmission{
		Kind:     domain.ConsumptionSalesInvoice,
		SourceID: "WO-1",
		Items:    []domain.LineItem{{ItemID: "X", Name: "Bolt", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(2)}},
	})

	require.NoError(t, err)
	assert.Equal(t, "SI-7", rec.ID)
	assert.Equal(t, "WO-1", rec.SourceID)
}

func TestClient_SubmitRejectionIsAllocationConflict(t *testing.T) {
	for _, status := range []int{http.StatusConflict, http.StatusUnprocessableEntity} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			calls := 0
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(status)
				_, _ = io.WriteString(w, `{"message":"Bolt: only 10 remaining"}`)
			})

			_, err := c.SubmitConsumption(context.Background(), sess, &domain.ConsumptionSubmission{Kind: domain.ConsumptionSalesInvoice, SourceID: "WO-1"})

			require.ErrorIs(t, err, domain.ErrAllocationConflict)
			assert.Contains(t, err.Error(), "only 10 remaining")
			assert.Equal(t, 1, calls)
		})
	}
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, domain.ErrUnauthorized},
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusInternalServerError, domain.ErrBackendUnavailable},
		{http.StatusBadGateway, domain.ErrBackendUnavailable},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := c.GetSalesInvoice(context.Background(), sess, "SI-1")

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_UnknownKind(t *testing.T) {
	c := backend.NewClient(&config.BackendConfig{BaseURL: "http://127.0.0.1:0"})

	_, err := c.GetSource(context.Background(), sess, domain.SourceKind("bom"), "B-1")

	assert.ErrorIs(t, err, domain.ErrUnknownSourceKind)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()
	c := backend.NewClient(&config.BackendConfig{BaseURL: url})

	_, err := c.ListSalesInvoices(context.Background(), sess)

	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
}

func TestClient_ListSalesInvoices(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sales-invoices", r.URL.Path)
		_, _ = io.WriteString(w, `{"success":true,"data":[{"id":"SI-1","number":"SI/001","buyer":{"name":"Patel","gstin":"24AAACP1234A1Z5"}}]}`)
	})

	invs, err := c.ListSalesInvoices(context.Background(), sess)

	require.NoError(t, err)
	require.Len(t, invs, 1)
	assert.Equal(t, "Patel", invs[0].Buyer.Name)
}
