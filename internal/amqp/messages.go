package amqp

import (
	"encoding/json"
	"time"
)

// ReportRequestMessage asks the worker to recompute the analytics report.
// It carries no payload beyond an id: the worker reads the ledger from its
// own backend, so a request is safe to redeliver.
type ReportRequestMessage struct {
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ReportReadyMessage carries a computed report back to whoever asked.
// Result holds the serialized analytics result as-is.
type ReportReadyMessage struct {
	RequestID   string          `json:"request_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	RowCount    int             `json:"row_count"`
	Result      json.RawMessage `json:"result"`
}

// NewReportRequestMessage creates a request message with the given id.
func NewReportRequestMessage(requestID string) *ReportRequestMessage {
	return &ReportRequestMessage{
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReportRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportRequestMessageFromJSON creates a request message from JSON bytes
func ReportRequestMessageFromJSON(data []byte) (*ReportRequestMessage, error) {
	var msg ReportRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ToJSON converts the message to JSON bytes
func (m *ReportReadyMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportReadyMessageFromJSON creates a ready message from JSON bytes
func ReportReadyMessageFromJSON(data []byte) (*ReportReadyMessage, error) {
	var msg ReportReadyMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
