package messaging

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
)

// envelope carries a verified processor payload across the broker. The
// payload is kept verbatim so the consumer decodes exactly what was verified.
type envelope struct {
	EventID    string          `json:"event_id" validate:"required"`
	EventType  string          `json:"event_type" validate:"required"`
	ReceivedAt time.Time       `json:"received_at"`
	Payload    json.RawMessage `json:"payload" validate:"required"`
}

var envelopeValidator = validator.New()

func decodeEnvelope(body []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return envelope{}, err
	}
	if err := envelopeValidator.Struct(env); err != nil {
		return envelope{}, err
	}
	return env, nil
}
