package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"tradedesk/internal/domain"
)

// wireConsumption accepts both the generic source_id field and the
// kind-specific reference fields the backend uses.
type wireConsumption struct {
	ID              string            `json:"id"`
	Number          string            `json:"number"`
	Date            string            `json:"date"`
	SourceID        string            `json:"source_id"`
	WorkOrderID     string            `json:"work_order_id"`
	DefectiveFindID string            `json:"defective_find_id"`
	Items           []domain.LineItem `json:"items"`
}

func (w *wireConsumption) record(kind domain.ConsumptionKind) domain.ConsumptionRecord {
	src := w.SourceID
	if src == "" {
		if kind == domain.ConsumptionRestore {
			src = w.DefectiveFindID
		} else {
			src = w.WorkOrderID
		}
	}
	return domain.ConsumptionRecord{
		ID:       w.ID,
		Kind:     kind,
		SourceID: src,
		Number:   w.Number,
		Date:     w.Date,
		Items:    w.Items,
	}
}

type wireSubmission struct {
	*domain.ConsumptionSubmission
	WorkOrderID     string `json:"work_order_id,omitempty"`
	DefectiveFindID string `json:"defective_find_id,omitempty"`
}

// decodeData unwraps an optional {"data": ...} envelope.
func decodeData(body []byte, out interface{}) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
			trimmed = env.Data
		}
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}
	return nil
}

func statusError(status int, body []byte) error {
	msg := errorMessage(body)
	switch status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", domain.ErrAllocationConflict, msg)
	default:
		return fmt.Errorf("%w: status %d: %s", domain.ErrBackendUnavailable, status, msg)
	}
}

func errorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil {
		if e.Message != "" {
			return e.Message
		}
		switch v := e.Error.(type) {
		case string:
			return v
		case map[string]any:
			if m, ok := v["message"].(string); ok {
				return m
			}
		}
	}
	return truncate(string(body), 200)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
