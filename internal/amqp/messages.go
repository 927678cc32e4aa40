package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mobiz/internal/core"
)

// RecordAppendedMessage announces one record appended to the ledger. It
// carries the stored fields so consumers never read the store back.
type RecordAppendedMessage struct {
	ID        string    `json:"id"`
	Kind      core.Kind `json:"kind"`
	Fields    []string  `json:"fields"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordAppendedMessage creates a message with a fresh random ID.
func NewRecordAppendedMessage(kind core.Kind, fields []string) *RecordAppendedMessage {
	return &RecordAppendedMessage{
		ID:        uuid.NewString(),
		Kind:      kind,
		Fields:    append([]string(nil), fields...),
		Timestamp: time.Now().UTC(),
	}
}

// Validate checks the ID, the kind and that the fields form a storable line.
func (m *RecordAppendedMessage) Validate() error {
	if _, err := uuid.Parse(m.ID); err != nil {
		return fmt.Errorf("invalid message id %q: %w", m.ID, err)
	}
	if !m.Kind.IsValid() {
		return fmt.Errorf("message %s: %w: %q", m.ID, core.ErrUnknownKind, m.Kind)
	}
	if _, err := core.JoinFields(m.Kind, m.Fields); err != nil {
		return fmt.Errorf("message %s: %w", m.ID, err)
	}
	return nil
}

// ToJSON converts the message to JSON bytes
func (m *RecordAppendedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordAppendedMessageFromJSON decodes and validates a message.
func RecordAppendedMessageFromJSON(data []byte) (*RecordAppendedMessage, error) {
	var msg RecordAppendedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
