package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	storefront_errors "storefront-events/pkg/errors"
)

// Envelope is implemented by every payload shape placed on a queue.
type Envelope interface {
	Validate() error
}

// Decode parses a raw queue payload into E. Syntax errors and envelopes that
// break their own invariants both wrap ErrMalformedMessage.
func Decode[E Envelope](payload []byte) (E, error) {
	var e E
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return e, fmt.Errorf("%w: empty payload", storefront_errors.ErrMalformedMessage)
	}
	if err := json.Unmarshal(trimmed, &e); err != nil {
		return e, fmt.Errorf("%w: %v", storefront_errors.ErrMalformedMessage, err)
	}
	if err := e.Validate(); err != nil {
		return e, fmt.Errorf("%w: %w", storefront_errors.ErrMalformedMessage, err)
	}
	return e, nil
}

// Encode serializes an envelope to the flat JSON wire format.
func Encode(e Envelope) (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", storefront_errors.ErrInvalidEnvelope, fmt.Sprintf(format, args...))
}

// Timestamp marshals as an RFC 3339 UTC string. On input it also accepts the
// zone-less form some producers emit, read as UTC.
type Timestamp struct {
	time.Time
}

const zonelessLayout = "2006-01-02T15:04:05.9999999"

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t.Time = parsed.UTC()
		return nil
	}
	parsed, err := time.ParseInLocation(zonelessLayout, raw, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q", raw)
	}
	t.Time = parsed
	return nil
}
