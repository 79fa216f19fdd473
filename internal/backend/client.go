// Package backend is the HTTP client for the document system of record.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"tradedesk/internal/config"
	"tradedesk/internal/domain"
	"tradedesk/internal/port"
)

// Client implements port.DocumentBackend over the backend REST API.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ port.DocumentBackend = (*Client)(nil)

// NewClient creates a backend client rooted at cfg.BaseURL.
func NewClient(cfg *config.BackendConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// route describes where a source kind and its consumption records live.
type route struct {
	source      string
	consumption string
	sourceParam string
}

var routes = map[domain.SourceKind]route{
	domain.SourceWorkOrder:     {source: "/work-orders", consumption: "/sales-invoices", sourceParam: "work_order_id"},
	domain.SourceDefectiveFind: {source: "/defective-finds", consumption: "/restores", sourceParam: "defective_find_id"},
}

func routeFor(kind domain.SourceKind) (route, error) {
	r, ok := routes[kind]
	if !ok {
		return route{}, domain.ErrUnknownSourceKind
	}
	return r, nil
}

func (c *Client) GetSource(ctx context.Context, sess *domain.Session, kind domain.SourceKind, id string) (*domain.SourceDocument, error) {
	r, err := routeFor(kind)
	if err != nil {
		return nil, err
	}
	var doc domain.SourceDocument
	if err := c.do(ctx, sess, http.MethodGet, r.source+"/"+url.PathEscape(id), nil, &doc); err != nil {
		return nil, fmt.Errorf("backend.GetSource: %w", err)
	}
	if doc.ID == "" {
		doc.ID = id
	}
	doc.Kind = kind
	return &doc, nil
}

func (c *Client) ListConsumptions(ctx context.Context, sess *domain.Session, kind domain.SourceKind, sourceID string) ([]domain.ConsumptionRecord, error) {
	r, err := routeFor(kind)
	if err != nil {
		return nil, err
	}
	q := url.Values{r.sourceParam: {sourceID}}
	var wire []wireConsumption
	if err := c.do(ctx, sess, http.MethodGet, r.consumption+"?"+q.Encode(), nil, &wire); err != nil {
		return nil, fmt.Errorf("backend.ListConsumptions: %w", err)
	}
	out := make([]domain.ConsumptionRecord, 0, len(wire))
	for i := range wire {
		out = append(out, wire[i].record(domain.ConsumedBy[kind]))
	}
	return out, nil
}

func (c *Client) SubmitConsumption(ctx context.Context, sess *domain.Session, sub *domain.ConsumptionSubmission) (*domain.ConsumptionRecord, error) {
	var (
		path    string
		payload = wireSubmission{ConsumptionSubmission: sub}
	)
	switch sub.Kind {
	case domain.ConsumptionSalesInvoice:
		path = routes[domain.SourceWorkOrder].consumption
		payload.WorkOrderID = sub.SourceID
	case domain.ConsumptionRestore:
		path = routes[domain.SourceDefectiveFind].consumption
		payload.DefectiveFindID = sub.SourceID
	default:
		return nil, domain.ErrUnknownSourceKind
	}

	var wire wireConsumption
	if err := c.do(ctx, sess, http.MethodPost, path, payload, &wire); err != nil {
		return nil, fmt.Errorf("backend.SubmitConsumption: %w", err)
	}
	rec := wire.record(sub.Kind)
	if rec.SourceID == "" {
		rec.SourceID = sub.SourceID
	}
	return &rec, nil
}

func (c *Client) GetSalesInvoice(ctx context.Context, sess *domain.Session, id string) (*domain.SalesInvoice, error) {
	var inv domain.SalesInvoice
	if err := c.do(ctx, sess, http.MethodGet, "/sales-invoices/"+url.PathEscape(id), nil, &inv); err != nil {
		return nil, fmt.Errorf("backend.GetSalesInvoice: %w", err)
	}
	return &inv, nil
}

func (c *Client) ListSalesInvoices(ctx context.Context, sess *domain.Session) ([]domain.SalesInvoice, error) {
	var invs []domain.SalesInvoice
	if err := c.do(ctx, sess, http.MethodGet, "/sales-invoices", nil, &invs); err != nil {
		return nil, fmt.Errorf("backend.ListSalesInvoices: %w", err)
	}
	return invs, nil
}

func (c *Client) do(ctx context.Context, sess *domain.Session, method, path string, body, out interface{}) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil && sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrBackendUnavailable, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", domain.ErrBackendUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("backend request rejected")
		return statusError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	return decodeData(respBody, out)
}
